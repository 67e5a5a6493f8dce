// Package bech32 implements the BIP-173 base-32 encoding with a BCH checksum
// used by NIP-19 identifiers.
//
// Every error returned by an exported function matches
// errors.Is(err, reason.MalformedEncoding) and also carries one of the typed
// errors in error.go for callers that want the detail.
package bech32

import (
	"strings"

	"nostrcore.lol/reason"
)

// Charset is the set of characters used in the data part of a bech32 string.
const Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

const (
	// MaxLength is the BIP-173 limit applied by Decode.
	MaxLength = 90
	// MinLength is one hrp character, the separator and the checksum.
	MinLength = 8
	// ChecksumLength is the number of checksum characters.
	ChecksumLength = 6
)

var gen = [5]uint32{0x3b6a57b2, 0x26508e6d, 0x1ea119fa, 0x3d4233dd, 0x2a1462b3}

var charsetRev = func() (rev [128]int8) {
	for i := range rev {
		rev[i] = -1
	}
	for i := 0; i < len(Charset); i++ {
		rev[Charset[i]] = int8(i)
	}
	return
}()

func malformed(err error) error { return reason.MalformedEncoding.Wrap(err, "bech32") }

// polymod computes the BCH checksum state over the expanded hrp followed by
// values.
func polymod(hrp string, values []byte) (chk uint32) {
	chk = 1
	step := func(v byte) {
		top := chk >> 25
		chk = (chk&0x1ffffff)<<5 ^ uint32(v)
		for i := 0; i < 5; i++ {
			if (top>>uint(i))&1 == 1 {
				chk ^= gen[i]
			}
		}
	}
	for i := 0; i < len(hrp); i++ {
		step(hrp[i] >> 5)
	}
	step(0)
	for i := 0; i < len(hrp); i++ {
		step(hrp[i] & 31)
	}
	for _, v := range values {
		step(v)
	}
	return
}

func checksum(hrp string, data []byte) (sum []byte) {
	values := make([]byte, len(data)+ChecksumLength)
	copy(values, data)
	mod := polymod(hrp, values) ^ 1
	sum = make([]byte, ChecksumLength)
	for i := range sum {
		sum[i] = byte((mod >> uint(5*(5-i))) & 31)
	}
	return
}

func validHRP(hrp string) (err error) {
	if len(hrp) == 0 {
		return ErrEmptyHRP{}
	}
	for _, c := range []byte(hrp) {
		if c < 33 || c > 126 {
			return ErrInvalidCharacter(c)
		}
	}
	return
}

// Encode encodes 5-bit values with the human-readable part hrp. The output is
// always lowercase.
func Encode(hrp string, data []byte) (s string, err error) {
	if err = validHRP(hrp); err != nil {
		err = malformed(err)
		return
	}
	for _, v := range data {
		if v >= 32 {
			err = malformed(ErrInvalidDataByte(v))
			return
		}
	}
	hrp = strings.ToLower(hrp)
	var b strings.Builder
	b.Grow(len(hrp) + 1 + len(data) + ChecksumLength)
	b.WriteString(hrp)
	b.WriteByte('1')
	for _, v := range data {
		b.WriteByte(Charset[v])
	}
	for _, v := range checksum(hrp, data) {
		b.WriteByte(Charset[v])
	}
	return b.String(), nil
}

// EncodeFromBase256 regroups bytes into 5-bit values, padding the final group
// with zeros, and encodes them.
func EncodeFromBase256(hrp string, data []byte) (s string, err error) {
	var b5 []byte
	if b5, err = ConvertBits(data, 8, 5, true); err != nil {
		return
	}
	return Encode(hrp, b5)
}

// Decode decodes a bech32 string of at most MaxLength characters, returning
// the lowercase hrp and the 5-bit data values without the checksum.
func Decode(s string) (hrp string, data []byte, err error) {
	if len(s) > MaxLength {
		err = malformed(ErrInvalidLength(len(s)))
		return
	}
	return DecodeNoLimit(s)
}

// DecodeNoLimit is Decode without the upper length limit, which NIP-19 entities
// carrying TLV records routinely exceed.
func DecodeNoLimit(s string) (hrp string, data []byte, err error) {
	if hrp, data, err = decode(s); err != nil {
		err = malformed(err)
	}
	return
}

func decode(s string) (hrp string, data []byte, err error) {
	if len(s) < MinLength {
		err = ErrInvalidLength(len(s))
		return
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 33 || s[i] > 126 {
			err = ErrInvalidCharacter(s[i])
			return
		}
	}
	lower := strings.ToLower(s)
	if s != lower && s != strings.ToUpper(s) {
		err = ErrMixedCase{}
		return
	}
	s = lower
	one := strings.LastIndexByte(s, '1')
	if one < 1 || one+ChecksumLength+1 > len(s) {
		err = ErrInvalidSeparatorIndex(one)
		return
	}
	hrp = s[:one]
	chars := s[one+1:]
	values := make([]byte, len(chars))
	for i := 0; i < len(chars); i++ {
		v := charsetRev[chars[i]]
		if v < 0 {
			err = ErrNonCharsetChar(chars[i])
			return
		}
		values[i] = byte(v)
	}
	if polymod(hrp, values) != 1 {
		payload := values[:len(values)-ChecksumLength]
		expected := make([]byte, ChecksumLength)
		for i, v := range checksum(hrp, payload) {
			expected[i] = Charset[v]
		}
		err = ErrInvalidChecksum{
			Expected: string(expected),
			Actual:   chars[len(chars)-ChecksumLength:],
		}
		hrp = ""
		return
	}
	data = values[:len(values)-ChecksumLength]
	return
}

// DecodeToBase256 decodes a bech32 string of any length and regroups its data
// back into bytes, rejecting a final group that is not zero padding.
func DecodeToBase256(s string) (hrp string, data []byte, err error) {
	var b5 []byte
	if hrp, b5, err = DecodeNoLimit(s); err != nil {
		return
	}
	if data, err = ConvertBits(b5, 5, 8, false); err != nil {
		hrp = ""
	}
	return
}

// ConvertBits regroups values of fromBits bits into values of toBits bits.
//
// With pad set, a final partial group is filled with zero bits. Without it, the
// leftover must be shorter than fromBits and entirely zero.
func ConvertBits(data []byte, fromBits, toBits uint8, pad bool) (out []byte, err error) {
	if fromBits < 1 || fromBits > 8 || toBits < 1 || toBits > 8 {
		err = malformed(ErrInvalidBitGroups{})
		return
	}
	out = make([]byte, 0, len(data)*int(fromBits)/int(toBits)+1)
	var acc uint32
	var bits uint8
	maxv := uint32(1)<<toBits - 1
	for _, v := range data {
		if uint32(v)>>fromBits != 0 {
			out, err = nil, malformed(ErrInvalidDataByte(v))
			return
		}
		acc = acc<<fromBits | uint32(v)
		bits += fromBits
		for bits >= toBits {
			bits -= toBits
			out = append(out, byte(acc>>bits&maxv))
		}
		acc &= uint32(1)<<bits - 1
	}
	switch {
	case pad:
		if bits > 0 {
			out = append(out, byte(acc<<(toBits-bits)&maxv))
		}
	case bits >= fromBits:
		out, err = nil, malformed(ErrInvalidIncompleteGroup{})
	case acc != 0:
		out, err = nil, malformed(ErrNonZeroPadding{})
	}
	return
}
