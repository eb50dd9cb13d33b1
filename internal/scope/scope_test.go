package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrivateIPv4(t *testing.T) {
	tests := []struct {
		name string
		addr string
		want bool
	}{
		{"ten range", "10.1.2.3", true},
		{"ten range edge low", "10.0.0.0", true},
		{"ten range edge high", "10.255.255.255", true},
		{"one seventy two range", "172.16.0.1", true},
		{"one seventy two range high", "172.31.255.255", true},
		{"just below 172.16", "172.15.255.255", false},
		{"just above 172.31", "172.32.0.1", false},
		{"one ninety two range", "192.168.10.5", true},
		{"public dns", "8.8.8.8", false},
		{"public web", "203.0.113.7", false},
		{"loopback", "127.0.0.1", false},
		{"link local", "169.254.1.1", false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"garbage", "not-an-ip", false},
		{"out of range octet", "256.1.1.1", false},
		{"ipv6 global", "2001:db8::1", false},
		{"ipv6 ula", "fd00::1", false},
		{"surrounding whitespace", " 10.0.0.5 ", true},
		{"ipv4 mapped ipv6", "::ffff:192.168.1.1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrivateIPv4(tt.addr), "addr=%q", tt.addr)
		})
	}
}
