// Package envelopes frames events for the relay transport: JSON arrays whose
// first element is a label naming the message.
package envelopes

import (
	"github.com/goccy/go-json"

	"nostrcore.lol/chk"
	"nostrcore.lol/reason"
)

// Marshaler appends the elements of an envelope after its label.
type Marshaler func(dst []byte) (b []byte)

// Marshal appends ["<label>",<elements>] to dst.
func Marshal(dst []byte, label string, m Marshaler) (b []byte) {
	b = dst
	b = append(b, '[', '"')
	b = append(b, label...)
	b = append(b, '"', ',')
	b = m(b)
	b = append(b, ']')
	return
}

// Elements splits an envelope into its raw elements after checking that it
// has the expected label and n elements besides it.
func Elements(b []byte, label string, n int) (el []json.RawMessage, err error) {
	var l string
	if l, err = Identify(b); err != nil {
		return
	}
	if l != label {
		err = reason.MalformedEncoding.F("envelope label %q, expected %q", l, label)
		return
	}
	if err = json.Unmarshal(b, &el); chk.D(err) {
		err = reason.MalformedEncoding.Wrap(err, "%s envelope", label)
		return
	}
	if len(el) != n+1 {
		err = reason.MalformedEncoding.F("%s envelope has %d elements, expected %d",
			label, len(el)-1, n)
		el = nil
		return
	}
	el = el[1:]
	return
}
