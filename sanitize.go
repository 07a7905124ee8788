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

import "strings"

// SanitizeAttrs takes attributes and a set of allowed attribute names and
// returns attributes that match the allowlist, in original order.
//
// Values are trimmed and HTML escaped. Value of style is checked by
// SanitizeStyle first and the attribute is dropped if it's unsafe. Unknown
// attributes are silently dropped.
func SanitizeAttrs(attrs *Attributes, allowed ...string) *Attributes {
	policies := make(map[string]attrPolicy, len(allowed))
	for _, name := range allowed {
		name = strings.ToLower(name)
		policies[name] = attrPolicyOf(name)
	}
	return sanitizeAttrs(nil, attrs, policies)
}

// SanitizeAttrs applies attribute policies of img element to attrs and returns
// safe attributes, without src. See [SanitizeAttrs].
func (self *Policy) SanitizeAttrs(attrs *Attributes) *Attributes {
	if self == nil {
		return NewAttributes()
	}
	self.init()
	return sanitizeAttrs(self, attrs, self.attrs)
}

func sanitizeAttrs(p *Policy, attrs *Attributes,
	policies map[string]attrPolicy,
) *Attributes {
	safe := NewAttributes()
	for name, val := range attrs.All() {
		ap, ok := policies[name]
		if !ok {
			if p != nil {
				p.logger.Debug().Str("attr", name).Msg("imgtag: attribute dropped")
			}
			continue
		}

		if val, ok = ap(p, strings.TrimSpace(val)); ok {
			safe.Set(name, val)
		} else if p != nil {
			p.logger.Debug().Str("attr", name).Msg("imgtag: unsafe attribute value")
		}
	}
	return safe
}
