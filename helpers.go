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
	"regexp"
	"slices"
)

// Integer describes whole positive integers (including 0) used in places
// like img.width
// https://developer.mozilla.org/en-US/docs/Web/HTML/Element/img#attr-width
var Integer = regexp.MustCompile(`^[0-9]+$`)

var (
	// allowedAttrs contains attributes of img element, which are kept besides
	// src. The set is fixed and not configurable.
	allowedAttrs = [...]string{
		"id",
		"style",
		"alt",
		"title",
		"width",
		"height",
		"class",
		"fetchpriority",
		"loading",
		"sizes",
	}

	// imageExtensions handles path suffixes of common web image formats.
	imageExtensions = [...]string{
		".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".bmp",
	}

	// standardSchemes are URL schemes allowed by DefaultPolicy.
	standardSchemes = [...]string{"http", "https"}
)

// AllowedAttrs returns names of img attributes kept besides src.
func AllowedAttrs() []string { return slices.Clone(allowedAttrs[:]) }

// ImageExtensions handles path suffixes of common web image formats.
func ImageExtensions() []string { return slices.Clone(imageExtensions[:]) }

// DefaultPolicy returns a policy, which allows http and https images with
// common image file extensions from given domains and their subdomains.
//
// Without domains nothing is allowed. Use AllowAllDomains() to allow any host.
func DefaultPolicy(domains ...string) *Policy {
	return NewPolicy().
		AllowURLSchemes(standardSchemes[:]...).
		AllowDomains(domains...).
		RequireExtensions(ImageExtensions()...)
}
