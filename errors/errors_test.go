package errors_test

import (
	"io"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/pysugar/cisample/errors"
)

func TestSingle(t *testing.T) {
	err := Single(ErrListen, syscall.EADDRINUSE)

	assert.True(t, Is(err, ErrListen))
	assert.True(t, Is(err, syscall.EADDRINUSE))
	assert.False(t, Is(err, ErrInvalidPort))
	assert.Equal(t, "failed to bind listener: address already in use", err.Error())
}

func TestCause(t *testing.T) {
	err := Single(ErrListen, Single(ErrInvalidPort, io.EOF))
	if Cause(err) != io.EOF {
		t.Error("expected io.EOF, but got ", Cause(err))
	}
	if Cause(nil) != nil {
		t.Error("cause of nil should be nil")
	}
}

func TestMulti(t *testing.T) {
	if err := Multi(ErrShutdown, nil, nil); err != nil {
		t.Fatal("expected nil, but got ", err)
	}

	err := Multi(ErrShutdown, nil, io.EOF, io.ErrClosedPipe)
	assert.True(t, Is(err, ErrShutdown))
	assert.True(t, Is(err, io.ErrClosedPipe))
	assert.Equal(t, "shutdown error: [EOF; io: read/write on closed pipe]", err.Error())
}
