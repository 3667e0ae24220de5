package utils

import (
	"fmt"
	"net"
	"time"
)

// CheckPortConnectable reports whether something accepts TCP connections on
// the given localhost port. A connectable port means a process is listening.
func CheckPortConnectable(port int) bool {
	conn, err := net.DialTimeout("tcp", net.JoinHostPort("localhost", fmt.Sprintf("%d", port)), time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// CheckPortListenable reports whether the given port can still be bound on
// this host. Used by the pre-flight port scan before stack start.
func CheckPortListenable(port int) bool {
	return checkPortListenable(port)
}
