package imgtag

import "strings"

// MediaRegistry is the host collaborator, which knows local media files and
// records which of them are used by the page being rendered.
type MediaRegistry interface {
	// Resolve returns the canonical title of a local media file by name, or
	// false if it doesn't exist.
	Resolve(name string) (title string, ok bool)
	// RecordUsage records that the current page uses media file title.
	RecordUsage(title string)
}

var mediaNamespaces = [...]string{"file:", "image:"}

// MarkFileAsUsed strips optional "File:" or "Image:" prefix from text,
// resolves the rest to a local media file and, if it exists, records it as
// used by the current page. It always returns empty string, so it can be used
// as a parser function, which renders nothing.
func MarkFileAsUsed(text string, r MediaRegistry) string {
	if r == nil {
		return ""
	}

	name := mediaName(text)
	if name == "" {
		return ""
	}

	if title, ok := r.Resolve(name); ok {
		r.RecordUsage(title)
	}
	return ""
}

func mediaName(text string) string {
	name := strings.TrimSpace(text)
	lower := strings.ToLower(name)
	for _, ns := range mediaNamespaces {
		if strings.HasPrefix(lower, ns) {
			name = strings.TrimSpace(name[len(ns):])
			break
		}
	}
	return name
}
