package imgtag

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoTag returned by [ParseTag] when markup has no start tag.
var ErrNoTag = errors.New("no start tag found")

// ParseTag reads the first start or self-closing tag of markup and returns its
// lower-cased name and attributes in source order. Attribute values are
// unescaped, the way a browser sees them.
func ParseTag(markup string) (string, *Attributes, error) {
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", nil, fmt.Errorf(genericErrMsg, err)
			}
			return "", nil, fmt.Errorf(genericErrMsg, ErrNoTag)
		case html.StartTagToken, html.SelfClosingTagToken:
			return readTag(z)
		}
	}
}

func readTag(z *html.Tokenizer) (string, *Attributes, error) {
	name, moreAttr := z.TagName()
	attrs := NewAttributes()
	for moreAttr {
		var key, val []byte
		key, val, moreAttr = z.TagAttr()
		keyStr := atom.String(key)
		if attrs.Contains(keyStr) {
			// first one wins, like in browsers
			continue
		}
		attrs.Set(keyStr, string(val))
	}

	if a := atom.Lookup(name); a != 0 {
		return a.String(), attrs, nil
	}
	return string(name), attrs, nil
}
