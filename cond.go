package imgtag

import (
	"strings"

	"golang.org/x/net/idna"
)

// domainIn checks that hostname is one of given domains or a subdomain of it.
// Both hostname and domains must be normalized by normalizeDomain.
func domainIn(hostname string, domains []string) bool {
	for _, s := range domains {
		if s == hostname {
			return true
		}

		before, ok := strings.CutSuffix(hostname, s)
		if ok && strings.HasSuffix(before, ".") {
			return true
		}
	}
	return false
}

// normalizeDomain returns lower-cased ASCII form of a domain name, like
// "bücher.example" becomes "xn--bcher-kva.example". Returns empty string if it
// can't be converted.
func normalizeDomain(s string) string {
	s = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), ".")
	s = strings.TrimPrefix(s, ".")
	if s == "" {
		return ""
	}

	ascii, err := idna.Punycode.ToASCII(s)
	if err != nil {
		return ""
	}
	return ascii
}
