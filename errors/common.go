package errors

import "errors"

// ErrListen is returned when the server socket can not be bound, e.g. the port is already in use.
var ErrListen = errors.New("failed to bind listener")

// ErrInvalidPort is returned when the configured port is not a positive integer in the TCP range.
var ErrInvalidPort = errors.New("invalid port")

var ErrServerClosed = errors.New("server closed")

var ErrShutdown = errors.New("shutdown error")
