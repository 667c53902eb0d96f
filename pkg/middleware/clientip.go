package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
)

// parseCIDRs returns the valid networks of cidrs. Invalid entries are logged
// and skipped.
func parseCIDRs(cidrs []string, purpose string, logger *slog.Logger) []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, cidr := range cidrs {
		cidr = strings.TrimSpace(cidr)
		if cidr == "" {
			continue
		}
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			logger.Warn("invalid "+purpose+" CIDR, skipping",
				slog.String("cidr", cidr),
				slog.String("error", err.Error()),
			)
			continue
		}
		nets = append(nets, ipNet)
	}
	return nets
}

// ClientIPResolver finds the client address of a request. X-Forwarded-For and
// X-Real-IP are only read when the direct peer is a trusted proxy.
type ClientIPResolver struct {
	trusted []*net.IPNet
}

// NewClientIPResolver trusts forwarding headers from peers inside trustedProxies.
// An empty list trusts no one and every request is keyed by its peer address.
func NewClientIPResolver(trustedProxies []string, logger *slog.Logger) *ClientIPResolver {
	return &ClientIPResolver{trusted: parseCIDRs(trustedProxies, "trusted proxy", logger)}
}

// ClientIP returns the peer address, or the forwarded client address when the
// peer is trusted. X-Forwarded-For is walked right to left, skipping trusted
// hops, so a client cannot pick its own address by prepending entries.
// A nil resolver trusts no one.
func (c *ClientIPResolver) ClientIP(r *http.Request) string {
	peer := peerIP(r)
	if c == nil || !containsIP(c.trusted, net.ParseIP(peer)) {
		return peer
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		for i := len(parts) - 1; i >= 0; i-- {
			ip := net.ParseIP(strings.TrimSpace(parts[i]))
			if ip == nil {
				continue
			}
			if !containsIP(c.trusted, ip) {
				return ip.String()
			}
		}
	}

	if ip := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); ip != nil {
		return ip.String()
	}
	return peer
}

// ClientIP returns the address of the direct peer.
func ClientIP(r *http.Request) string {
	return peerIP(r)
}

func peerIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
