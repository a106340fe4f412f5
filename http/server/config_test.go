package server_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pysugar/cisample/errors"
	. "github.com/pysugar/cisample/http/server"
)

func TestParsePort(t *testing.T) {
	cases := []struct {
		input string
		port  int
		valid bool
	}{
		{input: "3000", port: 3000, valid: true},
		{input: " 8080 ", port: 8080, valid: true},
		{input: "65535", port: 65535, valid: true},
		{input: "0"},
		{input: "-1"},
		{input: "65536"},
		{input: "http"},
		{input: ""},
	}

	for _, c := range cases {
		port, err := ParsePort(c.input)
		if c.valid {
			assert.NoError(t, err, c.input)
			assert.Equal(t, c.port, port)
		} else {
			assert.True(t, errors.Is(err, errors.ErrInvalidPort), "input %q: %v", c.input, err)
		}
	}
}

func TestConfigAddress(t *testing.T) {
	assert.Equal(t, ":3000", Config{Port: 3000}.Address())
	assert.Equal(t, "127.0.0.1:0", Config{Host: "127.0.0.1"}.Address())
	assert.Equal(t, "[::1]:80", Config{Host: "::1", Port: 80}.Address())
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{Port: 0}.Validate())
	assert.NoError(t, Config{Port: 3000}.Validate())
	assert.Error(t, Config{Port: -1}.Validate())
	assert.Error(t, Config{Port: 65536}.Validate())
}
