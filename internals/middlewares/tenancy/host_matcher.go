// file: internals/middlewares/tenancy/host_matcher.go
package tenancy

import (
	"net"
	"strings"
)

/* ==========================
   HostMatcher (pure, tanpa I/O)
========================== */

// HostMatch: hasil klasifikasi host. Central=true berarti request dianggap
// tanpa tenant; kalau false, Subdomain berisi kandidat label sekolah.
type HostMatch struct {
	Central   bool
	Subdomain string
}

// HostMatcher mengklasifikasi raw Host header → central / kandidat subdomain.
// Ambigu selalu jatuh ke central (fail-safe: host aneh tidak pernah
// ter-resolve jadi tenant).
type HostMatcher struct {
	BaseDomain     string   // contoh: "eduhost.id"; kosong = pakai fallback ≥3 label
	CentralDomains []string // exact match setelah normalisasi
}

func (m HostMatcher) Match(rawHost string) HostMatch {
	host := NormalizeHost(rawHost)
	if host == "" {
		return HostMatch{Central: true}
	}

	// IP literal / localhost → central
	if isLocalHostOrIP(host) {
		return HostMatch{Central: true}
	}

	for _, cd := range m.CentralDomains {
		if host == NormalizeHost(cd) {
			return HostMatch{Central: true}
		}
	}

	base := NormalizeHost(m.BaseDomain)
	if base != "" {
		if host == base {
			return HostMatch{Central: true}
		}
		// harus persis {label}.{base} - label tanpa titik lagi
		suffix := "." + base
		if !strings.HasSuffix(host, suffix) {
			return HostMatch{Central: true}
		}
		label := strings.TrimSuffix(host, suffix)
		if label == "" || strings.Contains(label, ".") {
			return HostMatch{Central: true}
		}
		return HostMatch{Subdomain: label}
	}

	// Tanpa base domain: minimal 3 label (sub.domain.tld), ambil label pertama
	parts := strings.Split(host, ".")
	if len(parts) < 3 || parts[0] == "" {
		return HostMatch{Central: true}
	}
	return HostMatch{Subdomain: parts[0]}
}

// NormalizeHost: lowercase, buang spasi, trailing dot, dan port.
func NormalizeHost(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	if h == "" {
		return ""
	}
	h = strings.TrimSuffix(h, ".")
	if host, _, err := net.SplitHostPort(h); err == nil {
		h = host
	} else if i := strings.LastIndex(h, ":"); i >= 0 && !strings.Contains(h, "]") {
		// host:port tanpa bentuk valid buat SplitHostPort (mis. port kosong)
		if !strings.Contains(h[:i], ":") {
			h = h[:i]
		}
	}
	h = strings.Trim(h, "[]") // IPv6 literal
	return h
}

func isLocalHostOrIP(h string) bool {
	if h == "localhost" || h == "localhost.localdomain" {
		return true
	}
	return net.ParseIP(h) != nil
}
