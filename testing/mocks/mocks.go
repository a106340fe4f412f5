package mocks

//go:generate mockgen -destination=response_writer.go -package=mocks -mock_names=ResponseWriter=ResponseWriter net/http ResponseWriter
