// Package event is the primary datatype of nostr: a signed statement by a
// public key, identified by the hash of its canonical form.
package event

import (
	"bytes"
	"encoding/base64"

	"lukechampine.com/frand"

	"nostrcore.lol/eventid"
	"nostrcore.lol/hex"
	"nostrcore.lol/kind"
	"nostrcore.lol/lol"
	"nostrcore.lol/signer"
	"nostrcore.lol/tag"
	"nostrcore.lol/tags"
	"nostrcore.lol/timestamp"
)

var log, chk, errorf = lol.Main.Log, lol.Main.Check, lol.Main.Errorf

// Unsigned is an event under construction. Nil fields take their zero value in
// the canonical form.
type Unsigned struct {
	// PubKey is the x-only public key of the event creator. Sign fills it in
	// when it is empty.
	PubKey []byte
	// CreatedAt is the UNIX timestamp of the event according to the event
	// creator (never trust a timestamp!)
	CreatedAt *timestamp.T
	// Kind is the nostr protocol code for the type of event. See kind.T
	Kind *kind.T
	// Tags are a list of tags, which are a list of strings usually structured
	// as a 3 layer scheme indicating specific features of an event.
	Tags *tags.T
	// Content is an arbitrary string that can contain anything, but usually
	// conforming to a specification relating to the Kind and the Tags.
	Content []byte
}

func (u *Unsigned) clone() (c Unsigned) {
	c = Unsigned{
		PubKey:  bytes.Clone(u.PubKey),
		Tags:    tags.New().Append(tagList(u.Tags)...),
		Content: bytes.Clone(u.Content),
	}
	if u.CreatedAt != nil {
		c.CreatedAt = timestamp.FromUnix(u.CreatedAt.I64())
	}
	if u.Kind != nil {
		c.Kind = kind.New(u.Kind.ToU16())
	}
	return
}

func tagList(t *tags.T) (l []*tag.T) {
	for i := 0; i < t.Len(); i++ {
		l = append(l, t.N(i))
	}
	return
}

// T is a signed event. It cannot be modified; the id and signature are only
// set by Unsigned.Sign, by decoding a received event, which must then be
// checked with Verify, or by NewTrusted.
type T struct {
	u   Unsigned
	id  []byte
	sig []byte
}

// NewTrusted builds an event with an arbitrary id and signature, neither of
// which is checked. It exists for test fixtures that need ids chosen by hand.
func NewTrusted(u *Unsigned, id, sig []byte) (ev *T) {
	return &T{u: u.clone(), id: bytes.Clone(id), sig: bytes.Clone(sig)}
}

// Unsigned returns a copy of the signed fields, for example to build a revised
// event.
func (ev *T) Unsigned() (u *Unsigned) {
	c := ev.u.clone()
	return &c
}

// ID returns the event id.
func (ev *T) ID() (id *eventid.T) {
	id, _ = eventid.NewFromBytes(ev.id)
	return
}

func (ev *T) IDBytes() []byte          { return ev.id }
func (ev *T) PubKey() []byte           { return ev.u.PubKey }
func (ev *T) CreatedAt() *timestamp.T  { return ev.u.CreatedAt }
func (ev *T) Kind() *kind.T            { return ev.u.Kind }
func (ev *T) Tags() *tags.T            { return ev.u.Tags }
func (ev *T) Content() []byte          { return ev.u.Content }
func (ev *T) Sig() []byte              { return ev.sig }
func (ev *T) IDString() (s string)     { return hex.Enc(ev.id) }
func (ev *T) PubKeyString() (s string) { return hex.Enc(ev.u.PubKey) }
func (ev *T) SigString() (s string)    { return hex.Enc(ev.sig) }

// GenerateRandomTextNoteEvent creates a text note with up to maxSize bytes of
// random base64 content, signed by sign.
func GenerateRandomTextNoteEvent(sign signer.I, maxSize int) (ev *T, err error) {
	// account for base64 expansion
	l := frand.Intn(maxSize*6/8 + 1)
	u := &Unsigned{
		Kind:      kind.TextNote,
		CreatedAt: timestamp.Now(),
		Content:   []byte(base64.StdEncoding.EncodeToString(frand.Bytes(l))),
	}
	if ev, err = u.Sign(sign); chk.E(err) {
		return
	}
	return
}
