package imgtag

import (
	"strings"

	"golang.org/x/net/html"
)

// ErrorClass is the class of the span rendered instead of an invalid image.
const ErrorClass = "error"

// Render is a shortcut for p.Render(attrs).
func Render(attrs *Attributes, p *Policy) string {
	return p.Render(attrs)
}

// Render takes attributes of an img tag and returns a single self-closing img
// element with validated src and safe attributes, src first and the others in
// original order.
//
// Render never fails. If src is missing or isn't allowed by the policy, it
// returns a span with class "error" and escaped error message instead. A nil
// policy allows nothing and renders the generic error span. Given attrs is not
// modified.
func (self *Policy) Render(attrs *Attributes) string {
	if self == nil {
		return errorSpan(defaultMessages{}.Message(ErrNilPolicy))
	}
	self.init()

	attrs = self.expand(attrs)
	rawSrc, _ := attrs.Get("src")
	src, err := self.src(rawSrc)
	if err != nil {
		self.logger.Debug().Err(err).Msg("imgtag: image rejected")
		return self.errorElement(err)
	}
	attrs.Delete("src")

	safe := NewAttributes(html.Attribute{Key: "src", Val: src})
	for key, val := range self.SanitizeAttrs(attrs).All() {
		safe.Set(key, val)
	}

	img := element{name: "img", attrs: safe}
	return img.String()
}

// expand returns a copy of attrs with values expanded by the host expander.
func (self *Policy) expand(attrs *Attributes) *Attributes {
	expanded := NewAttributes()
	for key, val := range attrs.All() {
		if self.expander != nil {
			val = self.expander.Expand(val)
		}
		expanded.Set(key, val)
	}
	return expanded
}

// src returns HTML escaped src.
func (self *Policy) src(rawSrc string) (string, error) {
	if !self.skipSrcValidation {
		src, err := self.ValidateURL(rawSrc)
		if err != nil {
			return "", err
		}
		return html.EscapeString(src), nil
	}

	src := strings.TrimSpace(rawSrc)
	if src == "" {
		return "", wrapErr(ErrMissingSource, src)
	}
	return html.EscapeString(src), nil
}

func (self *Policy) errorElement(err error) string {
	return errorSpan(self.messages.Message(err))
}

func errorSpan(msg string) string {
	return `<span class="` + ErrorClass + `">` + html.EscapeString(msg) + "</span>"
}

// RenderArgs renders the parser function form of the tag:
//
//	{{#img: https://example.com/a.png | alt=Example | width=100}}
//
// The first positional argument is src, subsequent key=value arguments are
// named attributes. Arguments without "=" and src given by name are ignored.
func (self *Policy) RenderArgs(args ...string) string {
	attrs := NewAttributes()
	if len(args) == 0 {
		return self.Render(attrs)
	}

	src := strings.TrimSpace(args[0])
	if len(src) >= 4 && strings.EqualFold(src[:4], "src=") {
		src = src[4:]
	}
	attrs.Set("src", src)

	for _, arg := range args[1:] {
		key, val, ok := strings.Cut(arg, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "src" {
			continue
		}
		attrs.Set(key, val)
	}
	return self.Render(attrs)
}
