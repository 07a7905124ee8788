package imgtag

import "strings"

// element is a void HTML element with already escaped attribute values.
type element struct {
	name  string
	attrs *Attributes
}

func (self *element) String() string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(self.name)
	for key, val := range self.attrs.All() {
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteString(`="`)
		b.WriteString(val)
		b.WriteByte('"')
	}
	b.WriteString(" />")
	return b.String()
}
