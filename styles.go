package imgtag

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aymerick/douceur/parser"
	"github.com/gorilla/css/scanner"
)

var cssUnicodeChar = regexp.MustCompile(`\\[0-9a-fA-F]{1,6} ?`)

var (
	vendorPrefixes = [...]string{
		"-webkit-", "-moz-", "-ms-", "-o-", "mso-", "-xv-", "-atsc-", "-wap-",
		"-khtml-", "prince-", "-ah-", "-hp-", "-ro-", "-rim-", "-tc-",
	}

	// script-bearing properties, compared without vendor prefix
	unsafeProperties = [...]string{"behavior", "binding"}

	// compared against lower-cased value with comments and spaces removed
	unsafeValues = [...]string{
		"expression(", "javascript:", "vbscript:", "livescript:", "data:",
		"url(", "image(", "image-set(", "element(", "-moz-element(", "</", "<!--",
	}
)

// SanitizeStyle returns cleaned value of a style attribute, or false if it has
// anything unsafe, like expression() or javascript: URL, or it can't be parsed.
func SanitizeStyle(style string) (string, bool) {
	return sanitizeStyle(style)
}

func sanitizeStyle(style string) (string, bool) {
	style = strings.TrimSpace(style)
	if style == "" {
		return "", false
	}

	style = removeUnicode(style)
	if style == "" || strings.ContainsAny(style, "\\\x00") {
		return "", false
	} else if !safeTokens(style) {
		return "", false
	}

	// Add semi-colon to end to fix parsing issue
	if style[len(style)-1] != ';' {
		style += ";"
	}
	decs, err := parser.ParseDeclarations(style)
	if err != nil {
		return "", false
	}

	clean := make([]string, 0, len(decs))
	for _, dec := range decs {
		if !safeProperty(dec.Property) || strings.TrimSpace(dec.Value) == "" {
			return "", false
		}
		s := dec.Property + ": " + dec.Value
		if dec.Important {
			s += " !important"
		}
		clean = append(clean, s)
	}

	if len(clean) == 0 {
		return "", false
	}
	return strings.Join(clean, "; "), true
}

// safeTokens scans style and returns false if it has at-rules, unbalanced
// brackets or quotes, or script-bearing values.
func safeTokens(style string) bool {
	var compact strings.Builder
	var brackets []byte

	s := scanner.New(style)
	for {
		token := s.Next()
		switch token.Type {
		case scanner.TokenEOF:
			if len(brackets) != 0 {
				return false
			}
			return safeValue(compact.String())
		case scanner.TokenError, scanner.TokenAtKeyword, scanner.TokenCDO,
			scanner.TokenCDC, scanner.TokenURI, scanner.TokenBOM:
			return false
		case scanner.TokenComment, scanner.TokenS:
			continue
		case scanner.TokenFunction:
			brackets = append(brackets, ')')
		case scanner.TokenChar:
			switch v := token.Value; v {
			case "(":
				brackets = append(brackets, ')')
			case "[":
				brackets = append(brackets, ']')
			case "{", "}", "\"", "'", "<", ">":
				return false
			case ")", "]":
				if len(brackets) == 0 || brackets[len(brackets)-1] != v[0] {
					return false
				}
				brackets = brackets[:len(brackets)-1]
			}
		}
		compact.WriteString(strings.ToLower(token.Value))
	}
}

func safeValue(compact string) bool {
	for _, s := range unsafeValues {
		if strings.Contains(compact, s) {
			return false
		}
	}
	return true
}

func safeProperty(property string) bool {
	property = strings.ToLower(strings.TrimSpace(property))
	if property == "" {
		return false
	}

	for _, prefix := range vendorPrefixes {
		property = strings.TrimPrefix(property, prefix)
	}
	for _, s := range unsafeProperties {
		if property == s {
			return false
		}
	}
	return true
}

// removeUnicode decodes CSS escapes like `\72 ` in one pass. Escapes left
// after decoding, like `\5c 41` becoming `\41`, are not decoded again. It
// returns empty string if an escape isn't a valid BMP code point.
func removeUnicode(value string) string {
	var failed bool
	decoded := cssUnicodeChar.ReplaceAllStringFunc(value, func(esc string) string {
		if failed {
			return ""
		}
		v, err := strconv.ParseUint(strings.TrimSpace(esc[1:]), 16, 32)
		if err != nil || v > 0xFFFF || !utf8.ValidRune(rune(v)) {
			failed = true
			return ""
		}
		return strings.TrimSpace(string(rune(v)))
	})

	if failed {
		return ""
	}
	return decoded
}
