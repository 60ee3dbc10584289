package tenancy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHost(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Alpha.Eduhost.Test", "alpha.eduhost.test"},
		{"  alpha.eduhost.test  ", "alpha.eduhost.test"},
		{"alpha.eduhost.test.", "alpha.eduhost.test"},
		{"alpha.eduhost.test:8080", "alpha.eduhost.test"},
		{"alpha.eduhost.test:", "alpha.eduhost.test"},
		{"localhost:3000", "localhost"},
		{"[::1]:3000", "::1"},
		{"127.0.0.1", "127.0.0.1"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeHost(tc.in), "input %q", tc.in)
	}
}

func TestHostMatcher_BaseDomain(t *testing.T) {
	m := HostMatcher{BaseDomain: "eduhost.test"}

	cases := []struct {
		name string
		host string
		want HostMatch
	}{
		{"subdomain sekolah", "alpha.eduhost.test", HostMatch{Subdomain: "alpha"}},
		{"base domain polos", "eduhost.test", HostMatch{Central: true}},
		{"base domain uppercase", "EDUHOST.test", HostMatch{Central: true}},
		{"subdomain uppercase + port", "Alpha.Eduhost.Test:443", HostMatch{Subdomain: "alpha"}},
		{"nested label ditolak", "a.b.eduhost.test", HostMatch{Central: true}},
		{"domain lain", "example.com", HostMatch{Central: true}},
		{"suffix mirip tapi bukan subdomain", "evileduhost.test", HostMatch{Central: true}},
		{"localhost", "localhost:3000", HostMatch{Central: true}},
		{"ip literal", "127.0.0.1:3000", HostMatch{Central: true}},
		{"ipv6 literal", "[::1]:3000", HostMatch{Central: true}},
		{"host kosong", "", HostMatch{Central: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, m.Match(tc.host))
		})
	}
}

func TestHostMatcher_CentralDomains(t *testing.T) {
	m := HostMatcher{
		BaseDomain:     "eduhost.test",
		CentralDomains: []string{"admin.eduhost.test", "Panel.Eduhost.Test"},
	}

	// central domain menang walau bentuknya {label}.{base}
	assert.Equal(t, HostMatch{Central: true}, m.Match("admin.eduhost.test"))
	assert.Equal(t, HostMatch{Central: true}, m.Match("ADMIN.eduhost.test:443"))
	assert.Equal(t, HostMatch{Central: true}, m.Match("panel.eduhost.test"))
	assert.Equal(t, HostMatch{Subdomain: "alpha"}, m.Match("alpha.eduhost.test"))
}

func TestHostMatcher_FallbackTanpaBaseDomain(t *testing.T) {
	m := HostMatcher{}

	// tanpa base domain: minimal 3 label, label pertama jadi kandidat
	assert.Equal(t, HostMatch{Subdomain: "alpha"}, m.Match("alpha.sekolah.id"))
	assert.Equal(t, HostMatch{Central: true}, m.Match("sekolah.id"))
	assert.Equal(t, HostMatch{Central: true}, m.Match("id"))
	assert.Equal(t, HostMatch{Subdomain: "a"}, m.Match("a.b.c.d"))
}

func TestHostMatcher_Idempoten(t *testing.T) {
	m := HostMatcher{BaseDomain: "eduhost.test", CentralDomains: []string{"admin.eduhost.test"}}
	hosts := []string{"alpha.eduhost.test", "EDUHOST.test", "admin.eduhost.test", "localhost:3000"}
	for _, h := range hosts {
		first := m.Match(h)
		second := m.Match(h)
		assert.Equal(t, first, second, "host %q", h)
	}
}
