package imgtag

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainIn(t *testing.T) {
	tests := []struct {
		hostname string
		expected bool
	}{
		{hostname: "upload.wikimedia.org", expected: true},
		{hostname: "x.upload.wikimedia.org", expected: true},
		{hostname: "a.b.upload.wikimedia.org", expected: true},
		{hostname: "evil-upload.wikimedia.org", expected: false},
		{hostname: "evilupload.wikimedia.org", expected: false},
		{hostname: "upload.wikimedia.org.evil.com", expected: false},
		{hostname: "wikimedia.org", expected: false},
		{hostname: "notwikimedia.org", expected: false},
		{hostname: "", expected: false},
	}

	domains := []string{"upload.wikimedia.org"}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.hostname), func(t *testing.T) {
			assert.Equal(t, tt.expected, domainIn(tt.hostname, domains))
		})
	}
}

func TestNormalizeDomain(t *testing.T) {
	tests := []test{
		{in: "Upload.Wikimedia.ORG", expected: "upload.wikimedia.org"},
		{in: "  example.com.  ", expected: "example.com"},
		{in: ".example.com", expected: "example.com"},
		{in: "bücher.example", expected: "xn--bcher-kva.example"},
		{in: "", expected: ""},
		{in: "   ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeDomain(tt.in))
		})
	}
}
