// Package tlv implements the Type Length Value records carried inside NIP-19
// bech32 entities. Each record is one type byte, one length byte and up to 255
// value bytes, with nothing between records.
package tlv

import (
	"errors"
	"io"

	"nostrcore.lol/reason"
)

// Record types.
const (
	Special byte = iota
	Relay
	Author
	Kind
)

// MaxValueLen is the largest value a one byte length can describe.
const MaxValueLen = 255

// ReadEntry reads one record. A reader that is already exhausted returns
// io.EOF; a record cut short returns a MalformedEncoding error.
func ReadEntry(r io.Reader) (typ byte, value []byte, err error) {
	var hdr [2]byte
	if _, err = io.ReadFull(r, hdr[:1]); err != nil {
		if !errors.Is(err, io.EOF) {
			err = reason.MalformedEncoding.Wrap(err, "tlv type")
		}
		return
	}
	typ = hdr[0]
	if _, err = io.ReadFull(r, hdr[1:]); err != nil {
		err = reason.MalformedEncoding.F("tlv record of type %d has no length", typ)
		return
	}
	value = make([]byte, hdr[1])
	if _, err = io.ReadFull(r, value); err != nil {
		err = reason.MalformedEncoding.F("tlv record of type %d truncated, want %d value bytes",
			typ, hdr[1])
		value = nil
		return
	}
	return
}

// WriteEntry writes one record, refusing values longer than MaxValueLen.
func WriteEntry(w io.Writer, typ byte, value []byte) (err error) {
	if len(value) > MaxValueLen {
		err = reason.SizeViolation.F("tlv record of type %d is %d bytes, limit is %d",
			typ, len(value), MaxValueLen)
		return
	}
	if _, err = w.Write([]byte{typ, byte(len(value))}); err != nil {
		return
	}
	_, err = w.Write(value)
	return
}
