// Package eventid is the 32 byte SHA-256 digest that identifies an event.
package eventid

import (
	"bytes"

	"lukechampine.com/frand"

	"nostrcore.lol/hex"
	"nostrcore.lol/reason"
	"nostrcore.lol/sha256"
)

// T is an event id. The zero value is an absent id.
type T struct {
	b by
}

// New returns an absent id.
func New() (ei *T) { return &T{} }

// NewFromBytes copies a 32 byte digest into an id.
func NewFromBytes(b by) (ei *T, err er) {
	if len(b) != sha256.Size {
		err = reason.SizeViolation.F("event id must be %d bytes, got %d",
			sha256.Size, len(b))
		return
	}
	ei = &T{b: append(make(by, 0, sha256.Size), b...)}
	return
}

// NewFromString decodes a 64 character hex id, in either case.
func NewFromString(s st) (ei *T, err er) {
	var b by
	if b, err = hex.Dec32("event id", s); chk.D(err) {
		return
	}
	return &T{b: b}, nil
}

// Gen creates a pseudorandom id for tests.
func Gen() (ei *T) { return &T{frand.Bytes(sha256.Size)} }

// IsZero reports whether the id is absent.
func (ei *T) IsZero() bo { return ei == nil || len(ei.b) == 0 }

// Bytes returns the raw digest.
func (ei *T) Bytes() (b by) {
	if ei == nil {
		return nil
	}
	return ei.b
}

// String returns the lowercase hex of the id, empty if absent.
func (ei *T) String() st {
	if ei.IsZero() {
		return ""
	}
	return hex.Enc(ei.b)
}

// ByteString appends the lowercase hex of the id to src.
func (ei *T) ByteString(src by) (b by) { return hex.EncAppend(src, ei.Bytes()) }

// Len is the length of the raw id, 0 or 32.
func (ei *T) Len() no { return len(ei.Bytes()) }

// Equal compares two ids.
func (ei *T) Equal(ei2 *T) bo { return bytes.Equal(ei.Bytes(), ei2.Bytes()) }

// MarshalJSON renders the id as a quoted hex string.
func (ei *T) MarshalJSON() (b []byte, err error) {
	if ei.IsZero() {
		err = reason.MissingRequiredField.F("event id absent")
		return
	}
	b = make(by, 0, 2*sha256.Size+2)
	b = append(b, '"')
	b = hex.EncAppend(b, ei.b)
	b = append(b, '"')
	return
}

// UnmarshalJSON decodes a quoted hex string.
func (ei *T) UnmarshalJSON(b []byte) (err error) {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		err = reason.MalformedEncoding.F("event id is not a JSON string")
		return
	}
	if ei.b, err = hex.Dec32("event id", b[1:len(b)-1]); chk.D(err) {
		return
	}
	return
}
