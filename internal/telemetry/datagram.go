package telemetry

import (
	"encoding/binary"
	"fmt"
)

// DatagramSize is the length of an encoded fix.
const DatagramSize = 8

// AppendDatagram appends the encoded (direction, distance) pair to dst.
func AppendDatagram(dst []byte, direction, distance int32) []byte {
	dst = binary.BigEndian.AppendUint32(dst, uint32(direction))
	return binary.BigEndian.AppendUint32(dst, uint32(distance))
}

// EncodeDatagram returns the 8-byte wire form of a fix.
func EncodeDatagram(direction, distance int32) []byte {
	return AppendDatagram(make([]byte, 0, DatagramSize), direction, distance)
}

// DecodeDatagram parses the wire form of a fix. It fails unless b is exactly
// DatagramSize bytes long.
func DecodeDatagram(b []byte) (direction, distance int32, err error) {
	if len(b) != DatagramSize {
		return 0, 0, fmt.Errorf("invalid datagram length %d, want %d", len(b), DatagramSize)
	}
	direction = int32(binary.BigEndian.Uint32(b[0:4]))
	distance = int32(binary.BigEndian.Uint32(b[4:8]))
	return direction, distance, nil
}
