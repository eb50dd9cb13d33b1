// internal/scope/scope.go
package scope

import (
	"net"
	"strings"
)

// The forwarder only ships flows whose source sits inside the RFC 1918
// ranges 10.0.0.0/8, 172.16.0.0/12 and 192.168.0.0/16. This is a
// whitelist: an address that is missing, unparseable, or not IPv4
// (including any IPv6 form) is out of scope. Fail closed rather than
// forward records about arbitrary public traffic.

// PrivateIPv4 reports whether s is an IPv4 address inside one of the
// private-use ranges.
func PrivateIPv4(s string) bool {
	ip := safeParseIP(s)
	if ip == nil {
		return false
	}
	v4 := ip.To4()
	if v4 == nil {
		return false
	}
	return v4.IsPrivate()
}

// safeParseIP tolerates surrounding whitespace and empty values,
// returning nil for anything that is not an address.
func safeParseIP(s string) net.IP {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return net.ParseIP(s)
}
