// Copyright (c) 2014, David Kitchen <david@buro9.com>
//
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
//
// * Redistributions of source code must retain the above copyright notice, this
//   list of conditions and the following disclaimer.
//
// * Redistributions in binary form must reproduce the above copyright notice,
//   this list of conditions and the following disclaimer in the documentation
//   and/or other materials provided with the distribution.
//
// * Neither the name of the organisation (Microcosm) nor the names of its
//   contributors may be used to endorse or promote products derived from
//   this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
// FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
// DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
// CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
// OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

package imgtag

import (
	"maps"
	"slices"
	"strings"

	"github.com/rs/zerolog"
)

// Policy encapsulates the allowlist of URL schemes, domains and file
// extensions that will be applied to the src of rendered images.
//
// You should use imgtag.NewPolicy() to create a blank policy as the
// unexported fields contain maps that need to be initialized. Once built, a
// Policy is only read and can be shared by concurrent renders.
type Policy struct {
	// Declares whether the maps have been initialized, so Policy{} used
	// directly doesn't panic on nil maps
	initialized bool

	// map[scheme]struct{}, lower-cased
	urlSchemes map[string]struct{}

	// When true, the host of src must match one of domains.
	sanitizeDomains bool
	domains         []string

	// Lower-cased path suffixes, like ".png".
	requireExts []string
	forbidExts  []string

	// When false, src is passed through without URL validation.
	skipSrcValidation bool

	// If maxDimension is not zero, integer width and height are clamped to it.
	maxDimension int

	// map[htmlAttributeName]attrPolicy, fixed by newAttrPolicies
	attrs map[string]attrPolicy

	expander Expander
	messages Messages
	logger   zerolog.Logger
}

// Expander expands nested markup inside a raw attribute value, before it
// reaches the attribute sanitizer.
type Expander interface {
	Expand(s string) string
}

// ExpanderFunc is an adapter to use an ordinary function as [Expander].
type ExpanderFunc func(s string) string

func (self ExpanderFunc) Expand(s string) string { return self(s) }

// init initializes the maps if this has not been done already
func (self *Policy) init() {
	if self.initialized {
		return
	}

	self.urlSchemes = make(map[string]struct{})
	self.sanitizeDomains = true
	self.attrs = newAttrPolicies()
	self.messages = defaultMessages{}
	self.logger = zerolog.Nop()
	self.initialized = true
}

// NewPolicy returns a blank policy with nothing allowed or permitted. This
// is the recommended way to start building a policy and you should now use
// AllowURLSchemes() and AllowDomains() or AllowAllDomains() to construct the
// allowlist.
func NewPolicy() *Policy {
	p := Policy{}
	p.init()
	return &p
}

// AllowURLSchemes will append URL schemes to the allowlist
// Example: p.AllowURLSchemes("http", "https")
func (self *Policy) AllowURLSchemes(schemes ...string) *Policy {
	self.init()
	for _, scheme := range schemes {
		scheme = strings.ToLower(strings.TrimSpace(scheme))
		if scheme != "" {
			self.urlSchemes[scheme] = struct{}{}
		}
	}
	return self
}

// AllowDomains turns on domain checking and appends domains to the allowlist.
// A host is allowed when it equals one of the domains or is a subdomain of it.
func (self *Policy) AllowDomains(domains ...string) *Policy {
	self.init()
	self.sanitizeDomains = true
	for _, domain := range domains {
		if domain = normalizeDomain(domain); domain != "" {
			self.domains = append(self.domains, domain)
		}
	}
	return self
}

// AllowAllDomains turns off domain checking, any host is allowed. Domains
// added before are kept and used again if AllowDomains is called later.
func (self *Policy) AllowAllDomains() *Policy {
	self.init()
	self.sanitizeDomains = false
	return self
}

// RequireExtensions says that src path must end with one of given extensions.
// Example: p.RequireExtensions(".png", ".jpg")
func (self *Policy) RequireExtensions(exts ...string) *Policy {
	self.init()
	self.requireExts = appendExts(self.requireExts, exts)
	return self
}

// ForbidExtensions says that src path must not end with any of given
// extensions.
func (self *Policy) ForbidExtensions(exts ...string) *Policy {
	self.init()
	self.forbidExts = appendExts(self.forbidExts, exts)
	return self
}

func appendExts(dst, exts []string) []string {
	for _, ext := range exts {
		if ext = strings.ToLower(strings.TrimSpace(ext)); ext != "" {
			dst = append(dst, ext)
		}
	}
	return dst
}

// SanitizeSrc states whether src must be validated. When false, the trimmed
// src is used as is, but it's still HTML escaped.
func (self *Policy) SanitizeSrc(sanitize bool) *Policy {
	self.init()
	self.skipSrcValidation = !sanitize
	return self
}

// ClampDimensions limits integer width and height attributes to n. Zero
// turns clamping off, which is the default.
func (self *Policy) ClampDimensions(n int) *Policy {
	self.init()
	self.maxDimension = max(n, 0)
	return self
}

// WithExpander sets the host collaborator, which expands nested markup inside
// every raw attribute value.
func (self *Policy) WithExpander(e Expander) *Policy {
	self.init()
	self.expander = e
	return self
}

// WithMessages sets the source of error messages rendered inline.
func (self *Policy) WithMessages(m Messages) *Policy {
	self.init()
	if m == nil {
		m = defaultMessages{}
	}
	self.messages = m
	return self
}

// WithLogger sets the logger used for reporting rejected input. By default
// nothing is logged.
func (self *Policy) WithLogger(logger zerolog.Logger) *Policy {
	self.init()
	self.logger = logger
	return self
}

// Schemes returns sorted allowed URL schemes.
func (self *Policy) Schemes() []string {
	return slices.Sorted(maps.Keys(self.urlSchemes))
}

// Domains returns allowed domains and whether they are checked at all.
func (self *Policy) Domains() ([]string, bool) {
	return self.domains, self.sanitizeDomains
}
