package telemetry

import (
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/ipv4"
)

// Default broadcaster settings.
const (
	DefaultPort         = 5801
	DefaultWriteTimeout = 10 * time.Millisecond
	DefaultLogInterval  = 10 * time.Second

	// DefaultTOS marks datagrams low-delay (IPTOS_LOWDELAY).
	DefaultTOS = 0x10
)

// BroadcasterConfig configures a Broadcaster.
type BroadcasterConfig struct {
	// WriteTimeout bounds each Send. Zero selects DefaultWriteTimeout.
	WriteTimeout time.Duration

	// LogInterval is the minimum time between two failure log lines. Zero
	// selects DefaultLogInterval.
	LogInterval time.Duration

	// TOS is the IPv4 type-of-service byte. Zero leaves the system default.
	TOS int
}

// Stats counts datagrams since the broadcaster was created.
type Stats struct {
	Sent   uint64 `json:"sent"`
	Failed uint64 `json:"failed"`
}

// Broadcaster sends fixes to a frozen set of endpoints from one unconnected
// UDP socket.
//
// Send is safe for concurrent use, though the pipeline only calls it from one
// goroutine.
type Broadcaster struct {
	conn      *net.UDPConn
	endpoints []*net.UDPAddr
	cfg       BroadcasterConfig
	logger    zerolog.Logger

	mu       sync.Mutex
	buf      []byte
	failures int
	lastErr  error
	lastLog  time.Time

	sent   atomic.Uint64
	failed atomic.Uint64
}

// NewBroadcaster opens the sending socket. An error here is a startup error;
// after construction the broadcaster never fails.
func NewBroadcaster(endpoints Endpoints, cfg BroadcasterConfig, logger zerolog.Logger) (*Broadcaster, error) {
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.LogInterval <= 0 {
		cfg.LogInterval = DefaultLogInterval
	}

	lc := net.ListenConfig{Control: broadcastControl}
	pc, err := lc.ListenPacket(context.Background(), "udp4", ":0")
	if err != nil {
		return nil, fmt.Errorf("failed to open broadcast socket: %w", err)
	}
	conn := pc.(*net.UDPConn)

	if cfg.TOS != 0 {
		if err := ipv4.NewConn(conn).SetTOS(cfg.TOS); err != nil {
			logger.Debug().Err(err).Int("tos", cfg.TOS).Msg("failed to set TOS")
		}
	}

	b := &Broadcaster{
		conn:      conn,
		endpoints: endpoints.List(),
		cfg:       cfg,
		logger:    logger,
		buf:       make([]byte, 0, DatagramSize),
	}

	if len(b.endpoints) == 0 {
		logger.Warn().Msg("no telemetry endpoints, fixes will not be sent")
	} else {
		logger.Info().Stringer("endpoints", endpoints).Msg("broadcasting telemetry")
	}
	return b, nil
}

// Send encodes the fix once and writes it to every endpoint. Failures are
// counted and logged at most once per LogInterval; they never reach the
// caller. With no endpoints Send does nothing.
func (b *Broadcaster) Send(direction, distance int32) {
	if len(b.endpoints) == 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.buf = AppendDatagram(b.buf[:0], direction, distance)
	_ = b.conn.SetWriteDeadline(time.Now().Add(b.cfg.WriteTimeout))

	for _, addr := range b.endpoints {
		if _, err := b.conn.WriteToUDP(b.buf, addr); err != nil {
			b.failed.Add(1)
			b.failures++
			b.lastErr = fmt.Errorf("%s: %w", addr, err)
			continue
		}
		b.sent.Add(1)
	}

	b.maybeLogFailures(time.Now())
}

// maybeLogFailures reports accumulated failures once per interval.
func (b *Broadcaster) maybeLogFailures(now time.Time) {
	if b.failures == 0 || now.Sub(b.lastLog) < b.cfg.LogInterval {
		return
	}
	b.logger.Warn().
		Err(b.lastErr).
		Int("failures", b.failures).
		Dur("interval", b.cfg.LogInterval).
		Msg("telemetry send failures")
	b.failures = 0
	b.lastErr = nil
	b.lastLog = now
}

// Endpoints returns a copy of the destination addresses.
func (b *Broadcaster) Endpoints() []*net.UDPAddr {
	out := make([]*net.UDPAddr, len(b.endpoints))
	copy(out, b.endpoints)
	return out
}

// Stats returns the send counters.
func (b *Broadcaster) Stats() Stats {
	return Stats{Sent: b.sent.Load(), Failed: b.failed.Load()}
}

// Close closes the socket.
func (b *Broadcaster) Close() error {
	return b.conn.Close()
}
