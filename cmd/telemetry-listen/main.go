// Command telemetry-listen prints the fixes target-vision broadcasts, either
// live from a UDP port or from a packet capture.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/ironsheep/target-vision/internal/logging"
	"github.com/ironsheep/target-vision/internal/telemetry"
)

func main() {
	port := flag.Int("port", telemetry.DefaultPort, "UDP port to listen on or filter the capture by")
	pcapFile := flag.String("pcap", "", "read fixes from a pcap/pcapng file instead of the network")
	quiet := flag.Bool("quiet", false, "print only the per-second packet rate")
	level := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	logger, err := logging.Init(*level, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry-listen: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	show := func(p telemetry.Packet) {
		if *quiet {
			return
		}
		fmt.Printf("%s %-21s direction=%5d distance=%5d\n",
			p.Time.Format("15:04:05.000"), p.Source, p.Direction, p.Distance)
	}

	if *pcapFile != "" {
		n, err := telemetry.ReadCapture(ctx, *pcapFile, *port, show)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Fatal().Err(err).Str("file", *pcapFile).Msg("failed to read capture")
		}
		fmt.Printf("%d fixes\n", n)
		return
	}

	l, err := telemetry.Listen(fmt.Sprintf(":%d", *port), logging.Component(logger, "listener"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to listen")
	}
	defer l.Close()

	fmt.Printf("UDP listener started on %s\n", l.Addr())

	var packetCount atomic.Int64

	// Statistics goroutine
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if packets := packetCount.Swap(0); packets > 0 {
					fmt.Printf("Received: %d packets/sec\n", packets)
				}
			}
		}
	}()

	err = l.Run(ctx, func(p telemetry.Packet) {
		packetCount.Add(1)
		show(p)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("listener stopped")
	}
}
