// Package subscription is a set of helpers for nostr subscription Ids, which
// tie an EVENT result frame to the REQ that asked for it.
package subscription

import (
	"github.com/goccy/go-json"

	"nostrcore.lol/chk"
	"nostrcore.lol/ec/bech32"
	"nostrcore.lol/entropy"
	"nostrcore.lol/reason"
	"nostrcore.lol/text"
)

// MaxLen is the longest subscription Id, counted in escaped bytes.
const MaxLen = 64

// Id is a subscription Id.
type Id struct {
	T []byte
}

func (si *Id) String() string { return string(si.T) }

// IsValid returns true if the escaped subscription Id is between 1 and 64
// characters.
func (si *Id) IsValid() bool {
	l := len(text.NostrEscape(nil, si.T))
	return l > 0 && l <= MaxLen
}

// NewId checks the length of s and converts it to an Id.
func NewId[V string | []byte](s V) (si *Id, err error) {
	si = &Id{T: []byte(s)}
	if !si.IsValid() {
		err = reason.SizeViolation.F("subscription Id must be 1 to %d characters, got %d",
			MaxLen, len(si.T))
		si = nil
	}
	return
}

const (
	// StdLen is the number of random bytes in a standard Id.
	StdLen = 14
	// StdHRP prefixes the bech32 form of a standard Id.
	StdHRP = "su"
)

// NewStd creates a standard subscription Id, 14 random bytes from src
// encoded with bech32. A nil src uses entropy.Default.
func NewStd(src entropy.Source) (si *Id, err error) {
	var b []byte
	if b, err = entropy.Bytes(src, StdLen); chk.E(err) {
		return
	}
	var s string
	if s, err = bech32.EncodeFromBase256(StdHRP, b); chk.E(err) {
		return
	}
	return &Id{T: []byte(s)}, nil
}

// Marshal appends the subscription Id as a JSON string.
func (si *Id) Marshal(dst []byte) (b []byte) {
	return text.AppendQuote(dst, si.T, text.NostrEscape)
}

// Unmarshal decodes a subscription Id from a JSON string.
func (si *Id) Unmarshal(b []byte) (err error) {
	var s string
	if err = json.Unmarshal(b, &s); chk.D(err) {
		return reason.MalformedEncoding.Wrap(err, "subscription Id")
	}
	var n *Id
	if n, err = NewId(s); err != nil {
		return
	}
	*si = *n
	return
}
