package imgtag

import (
	"iter"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Attributes is an ordered set of HTML attributes of one element. Attributes
// keep insertion order, setting an existing attribute keeps its position.
type Attributes struct {
	attrs []html.Attribute
	index map[string]int
}

// NewAttributes returns Attributes initialized by given attributes. A later
// attribute with the same name replaces the value of an earlier one.
func NewAttributes(attrs ...html.Attribute) *Attributes {
	self := &Attributes{
		attrs: make([]html.Attribute, 0, len(attrs)),
		index: make(map[string]int, len(attrs)),
	}
	for _, attr := range attrs {
		self.Set(attr.Key, attr.Val)
	}
	return self
}

// AttributesOf returns Attributes from alternating name, value pairs. An odd
// trailing name gets empty value.
//
//	attrs := AttributesOf("src", "https://example.com/a.png", "alt", "A")
func AttributesOf(pairs ...string) *Attributes {
	self := NewAttributes()
	for i := 0; i < len(pairs); i += 2 {
		var val string
		if i+1 < len(pairs) {
			val = pairs[i+1]
		}
		self.Set(pairs[i], val)
	}
	return self
}

func (self *Attributes) lazyInit() {
	if self.index == nil {
		self.index = make(map[string]int, len(self.attrs))
	}
}

func (self *Attributes) append(attr html.Attribute) *html.Attribute {
	self.lazyInit()
	i := len(self.attrs)
	self.index[attr.Key] = i
	self.attrs = append(self.attrs, attr)
	return &self.attrs[i]
}

// All returns an iterator over name, value pairs in order.
func (self *Attributes) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if self == nil {
			return
		}
		for _, a := range self.attrs {
			if !yield(a.Key, a.Val) {
				return
			}
		}
	}
}

// Contains returns true if attribute with name exists.
func (self *Attributes) Contains(key string) bool {
	if self == nil {
		return false
	}
	_, ok := self.index[strings.ToLower(key)]
	return ok
}

// Delete removes attribute with name key.
func (self *Attributes) Delete(key string) {
	key = strings.ToLower(key)
	i, ok := self.index[key]
	if !ok {
		return
	}

	self.attrs = slices.Delete(self.attrs, i, i+1)
	delete(self.index, key)

	for ; i < len(self.attrs); i++ {
		self.index[self.attrs[i].Key]--
	}
}

// Get returns value of attribute with name key.
func (self *Attributes) Get(key string) (string, bool) {
	if a := self.ref(strings.ToLower(key)); a != nil {
		return a.Val, true
	}
	return "", false
}

// Keys returns names of all attributes in order.
func (self *Attributes) Keys() []string {
	if self == nil {
		return nil
	}
	keys := make([]string, len(self.attrs))
	for i, a := range self.attrs {
		keys[i] = a.Key
	}
	return keys
}

// Len returns number of attributes.
func (self *Attributes) Len() int {
	if self == nil {
		return 0
	}
	return len(self.attrs)
}

func (self *Attributes) ref(key string) *html.Attribute {
	if self == nil {
		return nil
	}
	if i, ok := self.index[key]; ok {
		return &self.attrs[i]
	}
	return nil
}

// Set sets value of attribute with name key. Names are lower-cased.
func (self *Attributes) Set(key, val string) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return
	}

	if a := self.ref(key); a != nil {
		a.Val = val
		return
	}
	self.append(html.Attribute{Key: key, Val: val})
}

// Slice returns a copy of attributes as html.Attribute.
func (self *Attributes) Slice() []html.Attribute {
	if self == nil {
		return nil
	}
	return slices.Clone(self.attrs)
}
