// Package addresstag converts between the value of an `a` tag,
// "<kind>:<pubkey hex>:<identifier>", and the naddr entity that points at the
// same parameterized replaceable event.
package addresstag

import (
	"strconv"
	"strings"

	"nostrcore.lol/bech32encoding"
	"nostrcore.lol/chk"
	"nostrcore.lol/hex"
	"nostrcore.lol/kind"
	"nostrcore.lol/reason"
)

// Decode unpacks the contents of an `a` tag. The identifier is everything
// after the second colon and may be empty.
func Decode(value string) (a *bech32encoding.NAddr, err error) {
	split := strings.SplitN(value, ":", 3)
	if len(split) != 3 {
		err = reason.MalformedEncoding.F("address tag needs kind, pubkey and identifier")
		return
	}
	var k uint64
	if k, err = strconv.ParseUint(split[0], 10, 16); chk.D(err) {
		err = reason.MalformedEncoding.Wrap(err, "address tag kind")
		return
	}
	var pk []byte
	if pk, err = hex.Dec32("address tag pubkey", split[1]); chk.D(err) {
		return
	}
	a = &bech32encoding.NAddr{
		Identifier: split[2],
		PubKey:     pk,
		Kind:       kind.New(uint16(k)),
	}
	return
}

// Encode renders the `a` tag value for an naddr. Relay hints are not part of
// the value.
func Encode(a *bech32encoding.NAddr) (value string, err error) {
	if a == nil || a.Kind == nil {
		err = reason.MissingRequiredField.F("address tag kind")
		return
	}
	if len(a.PubKey) != 32 {
		err = reason.MalformedEncoding.F("address tag pubkey must be 32 bytes, got %d",
			len(a.PubKey))
		return
	}
	b := strconv.AppendUint(nil, uint64(a.Kind.ToU16()), 10)
	b = append(b, ':')
	b = hex.EncAppend(b, a.PubKey)
	b = append(b, ':')
	b = append(b, a.Identifier...)
	return string(b), nil
}
