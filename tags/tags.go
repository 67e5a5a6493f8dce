// Package tags is the list of tags carried by an event.
package tags

import (
	"nostrcore.lol/tag"
)

// T is an ordered list of tags.
type T struct {
	t []*tag.T
}

// New creates a tag list.
func New(t ...*tag.T) *T { return &T{t: t} }

// FromStrings creates a tag list from nested string slices, the form tags
// take in JSON.
func FromStrings(s ...[]string) (t *T) {
	t = &T{t: make([]*tag.T, len(s))}
	for i := range s {
		t.t[i] = tag.New(s[i]...)
	}
	return
}

// Len returns the number of tags.
func (t *T) Len() int {
	if t == nil {
		return 0
	}
	return len(t.t)
}

// N returns tag i, nil if out of range.
func (t *T) N(i int) *tag.T {
	if t.Len() <= i {
		return nil
	}
	return t.t[i]
}

// Append returns a new list with tgs added, leaving t unchanged.
func (t *T) Append(tgs ...*tag.T) *T {
	out := make([]*tag.T, 0, t.Len()+len(tgs))
	if t != nil {
		out = append(out, t.t...)
	}
	return &T{t: append(out, tgs...)}
}

// GetAll returns the tags whose first field is key.
func (t *T) GetAll(key string) (out []*tag.T) {
	for i := 0; i < t.Len(); i++ {
		if t.t[i].S(tag.Key) == key {
			out = append(out, t.t[i])
		}
	}
	return
}

// ToStringSlice returns the tags as nested string slices, never nil.
func (t *T) ToStringSlice() (s [][]string) {
	s = make([][]string, t.Len())
	for i := range s {
		s[i] = t.t[i].ToStringSlice()
	}
	return
}

// Equal reports whether two lists hold equal tags in the same order.
func (t *T) Equal(t2 *T) bool {
	if t.Len() != t2.Len() {
		return false
	}
	for i := 0; i < t.Len(); i++ {
		if !t.t[i].Equal(t2.t[i]) {
			return false
		}
	}
	return true
}

// Marshal appends the compact JSON form, an array of arrays of strings.
func (t *T) Marshal(dst []byte) (b []byte) {
	b = append(dst, '[')
	for i := 0; i < t.Len(); i++ {
		if i > 0 {
			b = append(b, ',')
		}
		b = t.t[i].Marshal(b)
	}
	return append(b, ']')
}
