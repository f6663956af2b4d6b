// Package netutil finds free local ports and waits for servers to accept
// connections on them.
package netutil

import (
	"io"
	"net"
	"strconv"

	"github.com/EnigmaCurry/shell-scene/errors"
)

// MaxPort is the highest TCP port number.
const MaxPort = 65535

// DefaultHost is the loopback address ports are probed and dialed on.
const DefaultHost = "127.0.0.1"

// ListenFunc claims a port and returns a handle that releases it.
type ListenFunc func(host string, port uint16) (io.Closer, error)

// PortScanner probes ports for availability. The zero value probes
// DefaultHost with net.Listen.
type PortScanner struct {
	Host   string
	Listen ListenFunc
}

// FindFreePort scans upward from start with the default scanner.
func FindFreePort(start uint16) (uint16, error) {
	return PortScanner{}.FindFreePort(start)
}

// FindFreePort returns the first port at or after start that can be bound,
// wrapping from 65535 to 1. A start of 0 is treated as 1. Every port is
// probed at most once; when none can be bound a PORTS_EXHAUSTED error is
// returned. The port is released before returning, so another process may
// still take it before the caller binds it.
func (s PortScanner) FindFreePort(start uint16) (uint16, error) {
	host := s.Host
	if host == "" {
		host = DefaultHost
	}
	listen := s.Listen
	if listen == nil {
		listen = tcpListen
	}

	port := start
	if port == 0 {
		port = 1
	}

	for probed := 0; probed < MaxPort; probed++ {
		if l, err := listen(host, port); err == nil {
			_ = l.Close()
			return port, nil
		}

		if port == MaxPort {
			port = 1
		} else {
			port++
		}
	}

	return 0, errors.PortsExhausted(int(start))
}

func tcpListen(host string, port uint16) (io.Closer, error) {
	return net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(int(port))))
}
