package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog"
)

// Packet is one decoded fix as seen by a receiver.
type Packet struct {
	Direction int32     `json:"direction"`
	Distance  int32     `json:"distance"`
	Source    string    `json:"source"`
	Time      time.Time `json:"time"`
}

// Handler receives decoded packets.
type Handler func(Packet)

// Listener receives fixes on a UDP port.
type Listener struct {
	conn   *net.UDPConn
	logger zerolog.Logger
}

// Listen binds a UDP socket on address (for example ":5801"). The port may be
// shared with other listeners on the same host.
func Listen(address string, logger zerolog.Logger) (*Listener, error) {
	lc := net.ListenConfig{Control: reuseControl}
	pc, err := lc.ListenPacket(context.Background(), "udp4", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	return &Listener{conn: pc.(*net.UDPConn), logger: logger}, nil
}

// Addr returns the bound local address.
func (l *Listener) Addr() *net.UDPAddr {
	return l.conn.LocalAddr().(*net.UDPAddr)
}

// Run reads datagrams until ctx is cancelled, calling h for every valid one.
// Datagrams of the wrong size are logged and skipped.
func (l *Listener) Run(ctx context.Context, h Handler) error {
	buf := make([]byte, 64)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_ = l.conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
		n, addr, err := l.conn.ReadFromUDP(buf)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read failed: %w", err)
		}

		direction, distance, err := DecodeDatagram(buf[:n])
		if err != nil {
			l.logger.Debug().Err(err).Stringer("from", addr).Msg("ignoring datagram")
			continue
		}
		h(Packet{Direction: direction, Distance: distance, Source: addr.String(), Time: time.Now()})
	}
}

// Close closes the socket.
func (l *Listener) Close() error {
	return l.conn.Close()
}
