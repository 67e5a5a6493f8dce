// Package hex encodes keys, ids and signatures as lowercase hexadecimal and
// decodes them case-insensitively, using an accelerated encoder where the CPU
// supports it.
package hex

import (
	"encoding/hex"

	"github.com/templexxx/xhex"

	"nostrcore.lol/reason"
)

// Enc encodes b as lowercase hex.
func Enc(b []byte) (s string) { return string(EncAppend(nil, b)) }

// EncAppend appends the lowercase hex of src to dst.
func EncAppend(dst, src []byte) (b []byte) {
	l := len(dst)
	dst = append(dst, make([]byte, len(src)*2)...)
	xhex.Encode(dst[l:], src)
	return dst
}

// DecLen is the number of bytes n hex characters decode to.
var DecLen = hex.DecodedLen

func lower(c byte) (l byte, ok bool) {
	switch {
	case c >= '0' && c <= '9', c >= 'a' && c <= 'f':
		return c, true
	case c >= 'A' && c <= 'F':
		return c + ('a' - 'A'), true
	}
	return
}

// DecAppend appends the bytes encoded by the hex in src to dst. Upper and
// lower case digits are both accepted.
func DecAppend(dst, src []byte) (b []byte, err error) {
	if len(src)%2 != 0 {
		err = reason.MalformedEncoding.F("odd length hex string (%d)", len(src))
		return
	}
	norm := make([]byte, len(src))
	for i := range src {
		var ok bool
		if norm[i], ok = lower(src[i]); !ok {
			err = reason.MalformedEncoding.F("invalid hex character at offset %d", i)
			return
		}
	}
	l := len(dst)
	b = append(dst, make([]byte, len(src)/2)...)
	if err = xhex.Decode(b[l:], norm); err != nil {
		err = reason.MalformedEncoding.Wrap(err, "hex")
		return
	}
	return
}

// Dec decodes a hex string of any even length.
func Dec[V string | []byte](s V) (b []byte, err error) { return DecAppend(nil, []byte(s)) }

// DecFixed decodes a hex string that must encode exactly n bytes. field names
// the value in the error, which never contains the input itself.
func DecFixed[V string | []byte](field string, s V, n int) (b []byte, err error) {
	if len(s) != n*2 {
		err = reason.MalformedEncoding.F("%s must be %d hex characters, got %d",
			field, n*2, len(s))
		return
	}
	if b, err = DecAppend(make([]byte, 0, n), []byte(s)); err != nil {
		err = reason.MalformedEncoding.Wrap(err, "%s", field)
		return
	}
	return
}

// Dec32 decodes a 64 character key or id.
func Dec32[V string | []byte](field string, s V) (b []byte, err error) {
	return DecFixed(field, s, 32)
}
