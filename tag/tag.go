// Package tag is one element of an event's tag list: an ordered list of
// strings whose first field is usually a short key.
package tag

import (
	"nostrcore.lol/text"
)

// The tag position meanings, so they are clear when reading.
const (
	Key = iota
	Value
	Relay
)

// T is a list of fields with a literal ordering. Fields may repeat.
type T struct {
	field [][]byte
}

// New creates a tag from strings or byte slices.
func New[V string | []byte](fields ...V) (t *T) {
	t = &T{field: make([][]byte, len(fields))}
	for i, f := range fields {
		t.field[i] = []byte(f)
	}
	return
}

// Len returns the number of fields.
func (t *T) Len() int {
	if t == nil {
		return 0
	}
	return len(t.field)
}

// S returns field i as a string, empty if out of range.
func (t *T) S(i int) (s string) {
	if t.Len() <= i {
		return
	}
	return string(t.field[i])
}

// B returns field i, nil if out of range.
func (t *T) B(i int) (b []byte) {
	if t.Len() <= i {
		return
	}
	return t.field[i]
}

// Key returns the first field.
func (t *T) Key() []byte { return t.B(Key) }

// Value returns the second field.
func (t *T) Value() []byte { return t.B(Value) }

// ToStringSlice returns the fields as strings.
func (t *T) ToStringSlice() (s []string) {
	s = make([]string, t.Len())
	for i := range s {
		s[i] = string(t.field[i])
	}
	return
}

// Equal reports whether two tags have identical fields.
func (t *T) Equal(t2 *T) bool {
	if t.Len() != t2.Len() {
		return false
	}
	for i := 0; i < t.Len(); i++ {
		if string(t.field[i]) != string(t2.field[i]) {
			return false
		}
	}
	return true
}

// Marshal appends the compact JSON array form of the tag.
func (t *T) Marshal(dst []byte) (b []byte) {
	b = append(dst, '[')
	if t != nil {
		b = text.AppendList(b, t.field, ',', func(dst, src []byte) []byte {
			return text.AppendQuote(dst, src, text.NostrEscape)
		})
	}
	return append(b, ']')
}
