// Package telemetry broadcasts target fixes to the robot controller over UDP.
//
// Each fix is one 8-byte datagram: direction then distance, each a signed
// 32-bit big-endian integer, with no header or framing. The same datagram is
// sent once to every endpoint discovered at startup.
//
// # Endpoints
//
// DiscoverEndpoints walks the network interfaces once, collects the IPv4
// broadcast address of every interface that is up, and appends a fixed
// fallback address for the robot network. The resulting Endpoints value is
// immutable; interfaces that appear later are not picked up.
//
// # Delivery
//
// Delivery is best effort. Broadcaster.Send never blocks longer than its
// write timeout and never returns an error: per-endpoint failures are counted
// and logged at most once per log interval. The receiver uses the most
// recent datagram it has, so a lost fix is simply replaced by the next one.
//
// # Receiving
//
// Listener and ReadCapture decode datagrams on the receiving side, from a
// live socket or from a recorded pcap/pcapng file. They exist for bench
// testing and for the telemetry-listen tool.
package telemetry
