package telemetry

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// packetReader is satisfied by both pcapgo readers.
type packetReader interface {
	gopacket.PacketDataSource
	LinkType() layers.LinkType
}

// ReadCapture decodes telemetry datagrams from a pcap or pcapng file.
//
// Only UDP packets to the given destination port with an 8-byte payload are
// reported. Packet times are the capture timestamps. Returns the number of
// packets passed to h.
func ReadCapture(ctx context.Context, path string, port int, h Handler) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open capture: %w", err)
	}
	defer f.Close()

	r, err := openCapture(bufio.NewReader(f))
	if err != nil {
		return 0, err
	}

	src := gopacket.NewPacketSource(r, r.LinkType())
	src.DecodeOptions = gopacket.DecodeOptions{Lazy: true}

	count := 0
	for {
		if err := ctx.Err(); err != nil {
			return count, err
		}

		packet, err := src.NextPacket()
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, fmt.Errorf("failed to read packet %d: %w", count+1, err)
		}

		udpLayer := packet.Layer(layers.LayerTypeUDP)
		if udpLayer == nil {
			continue
		}
		udp := udpLayer.(*layers.UDP)
		if int(udp.DstPort) != port {
			continue
		}

		direction, distance, err := DecodeDatagram(udp.Payload)
		if err != nil {
			continue
		}

		source := ""
		if nl := packet.NetworkLayer(); nl != nil {
			source = fmt.Sprintf("%s:%d", nl.NetworkFlow().Src(), udp.SrcPort)
		}

		h(Packet{
			Direction: direction,
			Distance:  distance,
			Source:    source,
			Time:      packet.Metadata().Timestamp,
		})
		count++
	}
}

// openCapture sniffs the file magic and returns the matching reader.
func openCapture(br *bufio.Reader) (packetReader, error) {
	magic, err := br.Peek(4)
	if err != nil {
		return nil, fmt.Errorf("failed to read capture header: %w", err)
	}

	// pcapng section header block type.
	if magic[0] == 0x0a && magic[1] == 0x0d && magic[2] == 0x0d && magic[3] == 0x0a {
		r, err := pcapgo.NewNgReader(br, pcapgo.DefaultNgReaderOptions)
		if err != nil {
			return nil, fmt.Errorf("failed to open pcapng capture: %w", err)
		}
		return r, nil
	}

	r, err := pcapgo.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("failed to open pcap capture: %w", err)
	}
	return r, nil
}
