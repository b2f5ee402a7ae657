package telemetry

import (
	"fmt"
	"net"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultFallback is the broadcast address of the robot network. It is always
// added so the controller is reached even when interface discovery misses it.
const DefaultFallback = "10.23.93.255"

// Endpoints is the frozen list of broadcast destinations.
type Endpoints struct {
	addrs []*net.UDPAddr
}

// NewEndpoints builds an Endpoints value from explicit host addresses and a
// port. Duplicate hosts are dropped.
func NewEndpoints(port int, hosts ...string) (Endpoints, error) {
	var e Endpoints
	for _, h := range hosts {
		ip := net.ParseIP(h)
		if ip == nil {
			return Endpoints{}, fmt.Errorf("invalid endpoint address %q", h)
		}
		e.add(ip, port)
	}
	return e, nil
}

func (e *Endpoints) add(ip net.IP, port int) {
	for _, a := range e.addrs {
		if a.IP.Equal(ip) {
			return
		}
	}
	e.addrs = append(e.addrs, &net.UDPAddr{IP: ip, Port: port})
}

// Len returns the number of endpoints.
func (e Endpoints) Len() int {
	return len(e.addrs)
}

// List returns a copy of the endpoint addresses.
func (e Endpoints) List() []*net.UDPAddr {
	out := make([]*net.UDPAddr, len(e.addrs))
	for i, a := range e.addrs {
		cp := *a
		cp.IP = append(net.IP(nil), a.IP...)
		out[i] = &cp
	}
	return out
}

// String returns the endpoints as a comma-separated list.
func (e Endpoints) String() string {
	parts := make([]string, len(e.addrs))
	for i, a := range e.addrs {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}

// DiscoverEndpoints collects the IPv4 broadcast address of every interface
// that is up and supports broadcast, then appends fallback (skipped when
// empty). Interface enumeration errors are logged and leave only the
// fallback; an unparsable fallback is an error.
func DiscoverEndpoints(port int, fallback string, logger zerolog.Logger) (Endpoints, error) {
	var e Endpoints

	ifaces, err := net.Interfaces()
	if err != nil {
		logger.Warn().Err(err).Msg("interface enumeration failed, using fallback only")
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagBroadcast == 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			logger.Debug().Err(err).Str("interface", iface.Name).Msg("skipping interface")
			continue
		}
		for _, ip := range broadcastAddrs(addrs) {
			logger.Debug().Str("interface", iface.Name).Stringer("broadcast", ip).Msg("found endpoint")
			e.add(ip, port)
		}
	}

	if fallback != "" {
		ip := net.ParseIP(fallback)
		if ip == nil || ip.To4() == nil {
			return Endpoints{}, fmt.Errorf("invalid fallback broadcast address %q", fallback)
		}
		e.add(ip.To4(), port)
	}

	return e, nil
}

// broadcastAddrs returns the directed broadcast address of each IPv4 network
// in addrs. Host routes (/31, /32) have no broadcast address and are skipped.
func broadcastAddrs(addrs []net.Addr) []net.IP {
	var out []net.IP
	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok {
			continue
		}
		ip4 := ipnet.IP.To4()
		if ip4 == nil {
			continue
		}
		mask := ipnet.Mask
		if len(mask) == net.IPv6len {
			mask = mask[12:]
		}
		if ones, bits := mask.Size(); bits != 32 || ones >= 31 {
			continue
		}
		bc := make(net.IP, net.IPv4len)
		for i := range bc {
			bc[i] = ip4[i] | ^mask[i]
		}
		out = append(out, bc)
	}
	return out
}
