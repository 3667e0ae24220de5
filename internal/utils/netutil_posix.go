//go:build !windows

package utils

import (
	"context"
	"fmt"
	"net"
	"syscall"
)

// checkPortListenable binds the port with SO_REUSEADDR disabled, so a socket
// lingering in TIME_WAIT still counts as taken.
func checkPortListenable(port int) bool {
	lc := net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			return c.Control(func(fd uintptr) {
				syscall.SetsockoptInt(int(fd), syscall.SOL_SOCKET, syscall.SO_REUSEADDR, 0)
			})
		},
	}
	l, err := lc.Listen(context.Background(), "tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return false
	}
	l.Close()
	return true
}
