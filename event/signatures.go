package event

import (
	"bytes"

	"nostrcore.lol/p256k"
	"nostrcore.lol/reason"
	"nostrcore.lol/signer"
)

// Sign computes the id of the event and signs it with keys. An empty PubKey is
// filled with the signer's public key; any other PubKey must be that key.
//
// The caller must set the CreatedAt timestamp as intended. The Unsigned is not
// modified, the returned event holds its own copy of the fields.
func (u *Unsigned) Sign(keys signer.I) (ev *T, err error) {
	c := u.clone()
	switch {
	case len(c.PubKey) == 0:
		c.PubKey = bytes.Clone(keys.Pub())
	case !bytes.Equal(c.PubKey, keys.Pub()):
		err = reason.IdentityMismatch.F("event pubkey does not belong to the signing key")
		return
	}
	ev = &T{u: c, id: c.GetIDBytes()}
	if ev.sig, err = keys.Sign(ev.id); chk.E(err) {
		ev = nil
		return
	}
	return
}

// Verify checks that the stored id is the hash of the event and that the
// signature on it was made by the event's pubkey.
//
// A wrong id fails with reason.IdentityMismatch before any signature check. A
// signature that does not verify returns false and a reason.SignatureInvalid
// error.
func (ev *T) Verify() (valid bool, err error) {
	if !bytes.Equal(ev.GetIDBytes(), ev.id) {
		err = reason.IdentityMismatch.F("event id is not the hash of the event")
		return
	}
	keys := &p256k.Signer{}
	if err = keys.InitPub(ev.u.PubKey); chk.D(err) {
		err = reason.SignatureInvalid.F("event pubkey is not a valid x-only key")
		return
	}
	if valid, err = keys.Verify(ev.id, ev.sig); chk.D(err) {
		return
	}
	if !valid {
		err = reason.SignatureInvalid.F("event signature does not verify")
	}
	return
}
