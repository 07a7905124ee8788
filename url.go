package imgtag

import (
	"net/url"
	"strconv"
	"strings"
)

// ValidateURL is a shortcut for p.ValidateURL(rawurl).
func ValidateURL(rawurl string, p *Policy) (string, error) {
	return p.ValidateURL(rawurl)
}

// ValidateURL checks rawurl against allowed URL schemes, domains and file
// extensions of the policy.
//
// It returns clean URL, reconstructed as scheme://host[:port]path[?query], so
// user info and fragment are always dropped. Validating a clean URL returns it
// unchanged. Returned error wraps one of ErrMissingSource, ErrInvalidURL,
// ErrDisallowedProtocol, ErrMissingHost, ErrDisallowedDomain,
// ErrDisallowedExtension, ErrMissingImageExtension or ErrNilPolicy.
func (self *Policy) ValidateURL(rawurl string) (string, error) {
	if self == nil {
		return "", wrapErr(ErrNilPolicy, rawurl)
	}
	self.init()

	rawurl = strings.TrimSpace(rawurl)
	if rawurl == "" {
		return "", wrapErr(ErrMissingSource, rawurl)
	}

	u, err := url.Parse(rawurl)
	if err != nil || !validPort(u.Port()) {
		return "", wrapErr(ErrInvalidURL, rawurl)
	}

	if !self.matchScheme(u) {
		return "", wrapErr(ErrDisallowedProtocol, rawurl)
	} else if u.Host == "" || u.Hostname() == "" {
		return "", wrapErr(ErrMissingHost, rawurl)
	} else if !self.matchDomain(u) {
		return "", wrapErr(ErrDisallowedDomain, rawurl)
	} else if err := self.matchExtension(u); err != nil {
		return "", wrapErr(err, rawurl)
	}
	return cleanURL(u), nil
}

func validPort(port string) bool {
	if port == "" {
		return true
	}
	n, err := strconv.Atoi(port)
	return err == nil && n >= 1 && n <= 65535
}

func (self *Policy) matchScheme(u *url.URL) bool {
	if u.Scheme == "" {
		return false
	}
	_, ok := self.urlSchemes[strings.ToLower(u.Scheme)]
	return ok
}

func (self *Policy) matchDomain(u *url.URL) bool {
	if !self.sanitizeDomains {
		return true
	}

	hostname := normalizeDomain(u.Hostname())
	if hostname == "" {
		return false
	}
	return domainIn(hostname, self.domains)
}

func (self *Policy) matchExtension(u *url.URL) error {
	path := strings.ToLower(u.Path)
	for _, ext := range self.forbidExts {
		if strings.HasSuffix(path, ext) {
			return ErrDisallowedExtension
		}
	}

	if len(self.requireExts) == 0 {
		return nil
	}
	for _, ext := range self.requireExts {
		if strings.HasSuffix(path, ext) {
			return nil
		}
	}
	return ErrMissingImageExtension
}

func cleanURL(u *url.URL) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(u.Scheme))
	b.WriteString("://")
	b.WriteString(u.Host)
	b.WriteString(u.EscapedPath())
	if u.RawQuery != "" {
		b.WriteByte('?')
		b.WriteString(u.RawQuery)
	}
	return b.String()
}
