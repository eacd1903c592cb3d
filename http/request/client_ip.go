package request

import (
	"net"
	"net/http"
	"strings"
)

// FindClientIP resolves the originating client address, trusting forwarding
// headers before falling back to the socket address.
func FindClientIP(r *http.Request) string {
	headers := []string{"X-Forwarded-For", "X-Real-Ip"}
	for _, header := range headers {
		value := r.Header.Get(header)
		if value != "" {
			addresses := strings.Split(value, ",")
			address := strings.TrimSpace(addresses[0])
			address = dropIPv6zone(address)
			if net.ParseIP(address) != nil {
				return address
			}
		}
	}

	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return dropIPv6zone(r.RemoteAddr)
	}
	return dropIPv6zone(remoteIP)
}

func dropIPv6zone(address string) string {
	if i := strings.IndexByte(address, '%'); i >= 0 {
		address = address[:i]
	}
	return address
}
