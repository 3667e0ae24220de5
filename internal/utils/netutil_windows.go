//go:build windows

package utils

import (
	"context"
	"fmt"
	"net"
	"syscall"
)

// checkPortListenable binds the port with SO_REUSEADDR disabled. The bind is
// scoped to the loopback address; the stack's services publish there only.
func checkPortListenable(port int) bool {
	lc := net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			return c.Control(func(fd uintptr) {
				syscall.SetsockoptInt(syscall.Handle(fd), syscall.SOL_SOCKET, syscall.SO_REUSEADDR, 0)
			})
		},
	}
	l, err := lc.Listen(context.Background(), "tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return false
	}
	l.Close()
	return true
}
