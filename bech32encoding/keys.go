package bech32encoding

import (
	"nostrcore.lol/eventid"
	"nostrcore.lol/hex"
	"nostrcore.lol/reason"
)

// HexToNpub encodes a 64 character hex public key as an npub.
func HexToNpub[V string | []byte](pkHex V) (npub string, err error) {
	var b []byte
	if b, err = hex.Dec32("public key", pkHex); chk.D(err) {
		return
	}
	return Encode(Npub{PubKey: b})
}

// HexToNsec encodes a 64 character hex secret key as an nsec.
func HexToNsec[V string | []byte](skHex V) (nsec string, err error) {
	var b []byte
	if b, err = hex.Dec32("secret key", skHex); chk.D(err) {
		return
	}
	return Encode(Nsec{SecKey: b})
}

// HexToNote encodes a 64 character hex event id as a note.
func HexToNote[V string | []byte](idHex V) (note string, err error) {
	var id *eventid.T
	if id, err = eventid.NewFromString(string(idHex)); chk.D(err) {
		return
	}
	return Encode(Note{ID: id})
}

func decodeAs[T Entity](s string) (v T, err error) {
	var e Entity
	if e, err = Decode(s); err != nil {
		return
	}
	var ok bool
	if v, ok = e.(T); !ok {
		err = reason.MalformedEncoding.F("expected %s, got %s", v.HRP(), e.HRP())
	}
	return
}

// NpubToBytes decodes an npub to the raw public key.
func NpubToBytes(npub string) (pk []byte, err error) {
	var v Npub
	if v, err = decodeAs[Npub](npub); err != nil {
		return
	}
	return v.PubKey, nil
}

// NsecToBytes decodes an nsec to the raw secret key.
func NsecToBytes(nsec string) (sk []byte, err error) {
	var v Nsec
	if v, err = decodeAs[Nsec](nsec); err != nil {
		return
	}
	return v.SecKey, nil
}

// NpubToHex decodes an npub to a lowercase hex public key.
func NpubToHex(npub string) (pkHex string, err error) {
	var b []byte
	if b, err = NpubToBytes(npub); err != nil {
		return
	}
	return hex.Enc(b), nil
}

// NsecToHex decodes an nsec to a lowercase hex secret key.
func NsecToHex(nsec string) (skHex string, err error) {
	var b []byte
	if b, err = NsecToBytes(nsec); err != nil {
		return
	}
	return hex.Enc(b), nil
}

// NoteToHex decodes a note to a lowercase hex event id.
func NoteToHex(note string) (idHex string, err error) {
	var v Note
	if v, err = decodeAs[Note](note); err != nil {
		return
	}
	return v.ID.String(), nil
}
