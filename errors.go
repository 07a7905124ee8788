package imgtag

import (
	"errors"
	"fmt"
)

const genericErrMsg = "imgtag: %w"

// Validation failures reported by [Policy.ValidateURL]. They are never
// returned by [Policy.Render], which turns them into inline error markup.
var (
	ErrMissingSource         = errors.New("missing src attribute")
	ErrInvalidURL            = errors.New("invalid URL")
	ErrDisallowedProtocol    = errors.New("disallowed protocol")
	ErrMissingHost           = errors.New("missing host")
	ErrDisallowedDomain      = errors.New("disallowed domain")
	ErrDisallowedExtension   = errors.New("disallowed file extension")
	ErrMissingImageExtension = errors.New("missing image file extension")
	ErrNilPolicy             = errors.New("nil policy")
)

func wrapErr(err error, rawurl string) error {
	return fmt.Errorf(genericErrMsg+": %q", err, rawurl)
}

// Messages returns human readable text for a validation error. Hosts
// implement it to plug in localized message lookup.
type Messages interface {
	Message(err error) string
}

// MessagesFunc is an adapter to use an ordinary function as [Messages].
type MessagesFunc func(err error) string

func (self MessagesFunc) Message(err error) string { return self(err) }

type defaultMessages struct{}

var englishMessages = [...]struct {
	err error
	msg string
}{
	{ErrMissingSource, "Error: img tag requires src attribute"},
	{ErrInvalidURL, "Error: Invalid image URL"},
	{ErrDisallowedProtocol, "Error: Invalid or disallowed image URL protocol"},
	{ErrMissingHost, "Error: Image URL has no host"},
	{ErrDisallowedDomain, "Error: Image URL domain is not allowed"},
	{ErrDisallowedExtension, "Error: Image URL file extension is not allowed"},
	{ErrMissingImageExtension, "Error: Image URL does not point to an image file"},
}

func (defaultMessages) Message(err error) string {
	for _, m := range englishMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return "Error: Invalid or unauthorized image URL"
}
