package server

import (
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/pysugar/cisample/errors"
)

const defaultProxyHeaderTimeout = 3 * time.Second

type Config struct {
	// Host to bind, empty means all interfaces.
	Host string
	// Port to bind. 0 lets the kernel pick a free port.
	Port int
	// ProxyProtocol accepts an optional PROXY protocol v1/v2 header in front of each connection.
	ProxyProtocol      bool
	ProxyHeaderTimeout time.Duration
	// Verbose logs every request and response.
	Verbose bool
}

func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return errors.Single(errors.ErrInvalidPort, errors.New(strconv.Itoa(c.Port)+" out of range"))
	}
	return nil
}

func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ParsePort parses a user supplied port, which must be a positive integer.
func ParsePort(s string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Single(errors.ErrInvalidPort, err)
	}
	if port < 1 || port > 65535 {
		return 0, errors.Single(errors.ErrInvalidPort, errors.New(strconv.Itoa(port)+" out of range"))
	}
	return port, nil
}
