package event

import (
	"nostrcore.lol/eventid"
	"nostrcore.lol/hex"
	"nostrcore.lol/sha256"
	"nostrcore.lol/text"
)

// ToCanonical appends the canonical encoding used to derive the event id:
//
//	[0,"<pubkey>",<created_at>,<kind>,<tags>,"<content>"]
//
// with no whitespace and only the escapes text.NostrEscape makes.
func (u *Unsigned) ToCanonical(dst []byte) (b []byte) {
	b = dst
	b = append(b, "[0,\""...)
	b = hex.EncAppend(b, u.PubKey)
	b = append(b, "\","...)
	b = u.CreatedAt.Marshal(b)
	b = append(b, ',')
	b = u.Kind.Marshal(b)
	b = append(b, ',')
	b = u.Tags.Marshal(b)
	b = append(b, ',')
	b = text.AppendQuote(b, u.Content, text.NostrEscape)
	b = append(b, ']')
	return
}

// GetIDBytes returns the raw SHA256 hash of the canonical form.
func (u *Unsigned) GetIDBytes() []byte { return Hash(u.ToCanonical(nil)) }

// ID returns the event id the fields hash to.
func (u *Unsigned) ID() (id *eventid.T) {
	id, _ = eventid.NewFromBytes(u.GetIDBytes())
	return
}

// ToCanonical appends the canonical encoding of the signed fields.
func (ev *T) ToCanonical(dst []byte) (b []byte) { return ev.u.ToCanonical(dst) }

// GetIDBytes recomputes the id from the signed fields, ignoring the stored id.
func (ev *T) GetIDBytes() []byte { return ev.u.GetIDBytes() }

// Hash is SHA-256.
func Hash(in []byte) (out []byte) {
	h := sha256.Sum256(in)
	return h[:]
}
