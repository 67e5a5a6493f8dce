package event

import (
	"math"

	"github.com/goccy/go-json"

	"nostrcore.lol/hex"
	"nostrcore.lol/kind"
	"nostrcore.lol/p256k"
	"nostrcore.lol/reason"
	"nostrcore.lol/tags"
	"nostrcore.lol/text"
	"nostrcore.lol/timestamp"
)

var (
	jID        = []byte("id")
	jPubkey    = []byte("pubkey")
	jCreatedAt = []byte("created_at")
	jKind      = []byte("kind")
	jTags      = []byte("tags")
	jContent   = []byte("content")
	jSig       = []byte("sig")
)

// Marshal appends the transport JSON object form of the event to dst.
func (ev *T) Marshal(dst []byte) (b []byte) { return ev.marshalWithWhitespace(dst, false) }

// Serialize returns the transport JSON object form of the event.
func (ev *T) Serialize() (b []byte) { return ev.Marshal(nil) }

// SerializeIndented is Serialize with a field per line, for humans.
func (ev *T) SerializeIndented() (b []byte) { return ev.marshalWithWhitespace(nil, true) }

// marshalWithWhitespace adds tabs and newlines to make the JSON more readable
// for humans, if the on flag is set to true.
func (ev *T) marshalWithWhitespace(dst []byte, on bool) (b []byte) {
	b = append(dst, '{')
	field := func(key []byte, first bool) {
		if !first {
			b = append(b, ',')
		}
		if on {
			b = append(b, '\n', '\t')
		}
		b = text.JSONKey(b, key)
	}
	field(jID, true)
	b = text.AppendQuote(b, ev.id, hex.EncAppend)
	field(jPubkey, false)
	b = text.AppendQuote(b, ev.u.PubKey, hex.EncAppend)
	field(jCreatedAt, false)
	b = ev.u.CreatedAt.Marshal(b)
	field(jKind, false)
	b = ev.u.Kind.Marshal(b)
	field(jTags, false)
	b = ev.u.Tags.Marshal(b)
	field(jContent, false)
	b = text.AppendQuote(b, ev.u.Content, text.NostrEscape)
	field(jSig, false)
	b = text.AppendQuote(b, ev.sig, hex.EncAppend)
	if on {
		b = append(b, '\n')
	}
	return append(b, '}')
}

// MarshalJSON implements json.Marshaler.
func (ev *T) MarshalJSON() (b []byte, err error) { return ev.Marshal(nil), nil }

// UnmarshalJSON decodes a received event. The id and signature are taken as
// given; call Verify before trusting the result.
func (ev *T) UnmarshalJSON(b []byte) (err error) {
	var j J
	if err = json.Unmarshal(b, &j); chk.D(err) {
		err = reason.MalformedEncoding.Wrap(err, "event json")
		return
	}
	var e *T
	if e, err = j.ToEvent(); chk.D(err) {
		return
	}
	*ev = *e
	return
}

// J is the transport form of an event with plain Go types.
type J struct {
	ID        string     `json:"id"`
	Pubkey    string     `json:"pubkey"`
	CreatedAt int64      `json:"created_at"`
	Kind      int64      `json:"kind"`
	Tags      [][]string `json:"tags"`
	Content   string     `json:"content"`
	Sig       string     `json:"sig"`
}

// ToEventJ converts the event to its plain Go transport form.
func (ev *T) ToEventJ() (j *J) {
	return &J{
		ID:        ev.IDString(),
		Pubkey:    ev.PubKeyString(),
		CreatedAt: ev.u.CreatedAt.I64(),
		Kind:      int64(ev.u.Kind.ToU16()),
		Tags:      ev.u.Tags.ToStringSlice(),
		Content:   string(ev.u.Content),
		Sig:       ev.SigString(),
	}
}

// ToEvent checks the field formats of a transport event and converts it. Only
// lengths and encodings are checked; Verify checks the id and signature.
func (j *J) ToEvent() (ev *T, err error) {
	if j.Kind < 0 || j.Kind > math.MaxUint16 {
		err = reason.MalformedEncoding.F("event kind %d out of range", j.Kind)
		return
	}
	ev = &T{u: Unsigned{
		CreatedAt: timestamp.FromUnix(j.CreatedAt),
		Kind:      kind.New(uint16(j.Kind)),
		Tags:      tags.FromStrings(j.Tags...),
		Content:   []byte(j.Content),
	}}
	if ev.id, err = hex.Dec32("event id", j.ID); chk.D(err) {
		return nil, err
	}
	if ev.u.PubKey, err = hex.Dec32("event pubkey", j.Pubkey); chk.D(err) {
		return nil, err
	}
	if ev.sig, err = hex.DecFixed("event signature", j.Sig, p256k.SignatureSize); chk.D(err) {
		return nil, err
	}
	return
}
