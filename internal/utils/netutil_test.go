package utils

import (
	"net"
	"testing"
)

func TestCheckPortConnectable(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := l.Addr().(*net.TCPAddr).Port

	if !CheckPortConnectable(port) {
		t.Fatal("a listening port must be connectable")
	}

	l.Close()
	if CheckPortConnectable(port) {
		t.Fatal("a closed port must not be connectable")
	}
}

func TestCheckPortListenable(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := l.Addr().(*net.TCPAddr).Port

	if CheckPortListenable(port) {
		t.Fatal("an occupied port must not be listenable")
	}

	l.Close()
	if !CheckPortListenable(port) {
		t.Fatal("a released port must be listenable again")
	}
}
