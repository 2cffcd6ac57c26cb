package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidDomain(t *testing.T) {
	tests := []struct {
		domain string
		valid  bool
	}{
		{"example.org", true},
		{"localhost", true},
		{"a.b.c.d.e", true},
		{"xn--fiqs8s.cn", true},
		{"ads-1.example.com", true},
		{"123.456.789", true},
		{"", false},
		{".example.org", false},
		{"example.org.", false},
		{"-ads.example.com", false},
		{"ads-.example.com", false},
		{"ads..example.com", false},
		{"ads_example.com", false},
		{"||example.com^", false},
		{"example.com/path", false},
		{strings.Repeat("a", 63) + ".com", true},
		{strings.Repeat("a", 64) + ".com", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, IsValidDomain(tt.domain), "domain %q", tt.domain)
	}
}

func TestIsIPv4Literal(t *testing.T) {
	assert.True(t, IsIPv4Literal("0.0.0.0"))
	assert.True(t, IsIPv4Literal("127.0.0.1"))
	assert.True(t, IsIPv4Literal("999.1.1.1"))
	assert.False(t, IsIPv4Literal("1.1.1"))
	assert.False(t, IsIPv4Literal("1.1.1.1.1"))
	assert.False(t, IsIPv4Literal("1..1.1"))
	assert.False(t, IsIPv4Literal("::1"))
	assert.False(t, IsIPv4Literal("a.b.c.d"))
}

func TestNormalizeDomain(t *testing.T) {
	assert.Equal(t, "example.com", NormalizeDomain(" Example.COM. "))
	assert.Equal(t, "", NormalizeDomain(""))
}
