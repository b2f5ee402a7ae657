//go:build !unix

package telemetry

import (
	"syscall"
)

// broadcastControl is a no-op where the unix socket options are not
// available. The Go runtime already enables broadcast on UDP sockets.
func broadcastControl(network, address string, c syscall.RawConn) error {
	return nil
}

func reuseControl(network, address string, c syscall.RawConn) error {
	return nil
}
