package netutil

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"syscall"
)

const maxPort = 65535

var ErrNoFreePort = errors.New("no free ports found")

// ListenFirstFree binds the first port in [startPort, 65535] that accepts a listener.
// Only "address in use" failures move the scan forward; the bound listener is returned
// so the caller serves on it directly.
func ListenFirstFree(host string, startPort int) (net.Listener, error) {
	const op = "netutil.ListenFirstFree"

	if startPort < 1 || startPort > maxPort {
		return nil, fmt.Errorf("%s: invalid start port %d", op, startPort)
	}

	for port := startPort; port <= maxPort; port++ {
		l, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
		if err == nil {
			return l, nil
		}

		if !errors.Is(err, syscall.EADDRINUSE) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil, fmt.Errorf("%s: %w", op, ErrNoFreePort)
}

// Port extracts the TCP port a listener is bound to.
func Port(l net.Listener) int {
	if addr, ok := l.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}

	return 0
}
