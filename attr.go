package imgtag

import (
	"strconv"

	"golang.org/x/net/html"
)

// attrPolicy returns sanitized and HTML escaped value of an attribute, or false
// if the attribute must be dropped.
type attrPolicy func(p *Policy, val string) (string, bool)

func newAttrPolicies() map[string]attrPolicy {
	attrs := make(map[string]attrPolicy, len(allowedAttrs))
	for _, name := range allowedAttrs {
		attrs[name] = attrPolicyOf(name)
	}
	return attrs
}

func attrPolicyOf(name string) attrPolicy {
	switch name {
	case "style":
		return styleAttr
	case "width", "height":
		return dimensionAttr
	}
	return escapedAttr
}

func escapedAttr(_ *Policy, val string) (string, bool) {
	return html.EscapeString(val), true
}

func styleAttr(_ *Policy, val string) (string, bool) {
	style, ok := sanitizeStyle(val)
	if !ok {
		return "", false
	}
	return html.EscapeString(style), true
}

// dimensionAttr clamps integer values of width and height, if the policy has
// ClampDimensions. Any other value is escaped as is.
func dimensionAttr(p *Policy, val string) (string, bool) {
	if p == nil || p.maxDimension == 0 || !Integer.MatchString(val) {
		return escapedAttr(p, val)
	}

	// Atoi fails only on values out of int range here
	if n, err := strconv.Atoi(val); err != nil || n > p.maxDimension {
		return strconv.Itoa(p.maxDimension), true
	}
	return val, true
}
