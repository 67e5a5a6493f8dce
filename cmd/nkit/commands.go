package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"nostrcore.lol/addresstag"
	"nostrcore.lol/bech32encoding"
	"nostrcore.lol/chk"
	"nostrcore.lol/config"
	"nostrcore.lol/encryption"
	"nostrcore.lol/envelopes"
	"nostrcore.lol/envelopes/eventenvelope"
	"nostrcore.lol/envelopes/okenvelope"
	"nostrcore.lol/event"
	"nostrcore.lol/eventid"
	"nostrcore.lol/hex"
	"nostrcore.lol/keys"
	"nostrcore.lol/kind"
	"nostrcore.lol/normalize"
	"nostrcore.lol/p256k"
	"nostrcore.lol/reason"
	"nostrcore.lol/tags"
	"nostrcore.lol/timestamp"
)

type KeygenCmd struct{}

func (c *KeygenCmd) Run(_ *config.C, _ io.Reader, w io.Writer) (err error) {
	s := &p256k.Signer{}
	if err = s.Generate(); chk.E(err) {
		return
	}
	defer s.Zero()
	var nsec, npub string
	if nsec, err = bech32encoding.Encode(bech32encoding.Nsec{SecKey: s.Sec()}); chk.E(err) {
		return
	}
	if npub, err = bech32encoding.Encode(bech32encoding.Npub{PubKey: s.Pub()}); chk.E(err) {
		return
	}
	_, err = fmt.Fprintf(w, "NSEC=%s\nNPUB=%s\nPUBKEY=%s\n", nsec, npub, hex.Enc(s.Pub()))
	return
}

type PubCmd struct{}

func (c *PubCmd) Run(cfg *config.C, _ io.Reader, w io.Writer) (err error) {
	var s *p256k.Signer
	if s, err = cfg.Signer(); err != nil {
		return
	}
	defer s.Zero()
	var npub string
	if npub, err = bech32encoding.HexToNpub(hex.Enc(s.Pub())); chk.E(err) {
		return
	}
	_, err = fmt.Fprintf(w, "%s\n%s\n", hex.Enc(s.Pub()), npub)
	return
}

type EncodeCmd struct {
	Type   string   `arg:"positional,required" help:"npub, nsec, note, nprofile, nevent, naddr or nrelay"`
	Value  string   `arg:"positional" help:"hex pubkey or event id, naddr identifier or a tag value, or relay URL; nsec uses NOSTR_SECRET_KEY"`
	Relays []string `arg:"-r,--relay,separate" help:"relay hint, may be repeated"`
	Author string   `arg:"-a,--author" help:"hex author pubkey for nevent and naddr"`
	Kind   int      `arg:"-k,--kind" default:"-1" help:"event kind for nevent and naddr"`
}

func (c *EncodeCmd) kind() (k *kind.T, err error) {
	if c.Kind < 0 {
		return
	}
	var ok bool
	if k, ok = kind.FromU32(uint32(c.Kind)); !ok {
		err = reason.SizeViolation.F("kind %d does not fit in 16 bits", c.Kind)
	}
	return
}

func (c *EncodeCmd) Run(cfg *config.C, _ io.Reader, w io.Writer) (err error) {
	var e bech32encoding.Entity
	var k *kind.T
	if k, err = c.kind(); err != nil {
		return
	}
	var relays []string
	if relays, err = normalize.URLs(c.Relays); err != nil {
		return
	}
	var author []byte
	if c.Author != "" {
		if author, err = keys.HexPubkeyToBytes(c.Author); chk.D(err) {
			return
		}
	}
	switch c.Type {
	case bech32encoding.NpubHRP:
		var pk []byte
		if pk, err = hex.Dec32("public key", c.Value); chk.D(err) {
			return
		}
		e = bech32encoding.Npub{PubKey: pk}
	case bech32encoding.NsecHRP:
		var s *p256k.Signer
		if s, err = cfg.Signer(); err != nil {
			return
		}
		defer s.Zero()
		e = bech32encoding.Nsec{SecKey: s.Sec()}
	case bech32encoding.NoteHRP:
		var id *eventid.T
		if id, err = eventid.NewFromString(c.Value); chk.D(err) {
			return
		}
		e = bech32encoding.Note{ID: id}
	case bech32encoding.NprofileHRP:
		var pk []byte
		if pk, err = hex.Dec32("public key", c.Value); chk.D(err) {
			return
		}
		e = bech32encoding.NProfile{PubKey: pk, Relays: relays}
	case bech32encoding.NeventHRP:
		var id *eventid.T
		if id, err = eventid.NewFromString(c.Value); chk.D(err) {
			return
		}
		e = bech32encoding.NEvent{ID: id, Relays: relays, Author: author, Kind: k}
	case bech32encoding.NaddrHRP:
		if author != nil || k != nil || !strings.Contains(c.Value, ":") {
			e = bech32encoding.NAddr{Identifier: c.Value, PubKey: author, Kind: k, Relays: relays}
			break
		}
		var a *bech32encoding.NAddr
		if a, err = addresstag.Decode(c.Value); err != nil {
			return
		}
		a.Relays = relays
		e = a
	case bech32encoding.NrelayHRP:
		var u string
		if u, err = normalize.URL(c.Value); err != nil {
			return
		}
		e = bech32encoding.NRelay{URL: u}
	default:
		err = reason.MalformedEncoding.F("unknown entity type %q", c.Type)
		return
	}
	var s string
	if s, err = bech32encoding.Encode(e); chk.D(err) {
		return
	}
	_, err = fmt.Fprintln(w, s)
	return
}

type DecodeCmd struct {
	Entity string `arg:"positional,required" help:"bech32 entity"`
}

// decoded is the printed form of an entity.
type decoded struct {
	Type       string   `json:"type"`
	PubKey     string   `json:"pubkey,omitempty"`
	SecKey     string   `json:"seckey,omitempty"`
	ID         string   `json:"id,omitempty"`
	Identifier *string  `json:"identifier,omitempty"`
	Address    string   `json:"address,omitempty"`
	URL        string   `json:"url,omitempty"`
	Author     string   `json:"author,omitempty"`
	Kind       *uint16  `json:"kind,omitempty"`
	Relays     []string `json:"relays,omitempty"`
}

func kindOf(k *kind.T) *uint16 {
	if k == nil {
		return nil
	}
	v := k.ToU16()
	return &v
}

func (c *DecodeCmd) Run(_ *config.C, _ io.Reader, w io.Writer) (err error) {
	var e bech32encoding.Entity
	if e, err = bech32encoding.Decode(strings.TrimSpace(c.Entity)); chk.D(err) {
		return
	}
	d := decoded{Type: e.HRP()}
	switch v := e.(type) {
	case bech32encoding.Npub:
		d.PubKey = hex.Enc(v.PubKey)
	case bech32encoding.Nsec:
		d.SecKey = hex.Enc(v.SecKey)
	case bech32encoding.Note:
		d.ID = v.ID.String()
	case bech32encoding.NProfile:
		d.PubKey, d.Relays = hex.Enc(v.PubKey), v.Relays
	case bech32encoding.NEvent:
		d.ID, d.Relays, d.Kind = v.ID.String(), v.Relays, kindOf(v.Kind)
		if len(v.Author) > 0 {
			d.Author = hex.Enc(v.Author)
		}
	case bech32encoding.NAddr:
		d.Identifier, d.PubKey, d.Kind, d.Relays = &v.Identifier, hex.Enc(v.PubKey), kindOf(v.Kind), v.Relays
		if d.Address, err = addresstag.Encode(&v); chk.E(err) {
			return
		}
	case bech32encoding.NRelay:
		d.URL = v.URL
	}
	var b []byte
	if b, err = json.MarshalIndent(d, "", "\t"); chk.E(err) {
		return
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return
}

type SignCmd struct {
	Content   string   `arg:"positional" help:"event content, read from stdin if empty"`
	Kind      uint16   `arg:"-k,--kind" default:"1" help:"event kind"`
	Tags      []string `arg:"-t,--tag,separate" help:"tag as comma separated values, may be repeated"`
	CreatedAt int64    `arg:"-c,--created-at" help:"unix timestamp, now if zero"`
	Envelope  bool     `arg:"-e,--envelope" help:"wrap the event in an EVENT frame"`
}

func (c *SignCmd) Run(cfg *config.C, stdin io.Reader, w io.Writer) (err error) {
	var s *p256k.Signer
	if s, err = cfg.Signer(); err != nil {
		return
	}
	defer s.Zero()
	content := []byte(c.Content)
	if len(content) == 0 {
		if content, err = io.ReadAll(stdin); chk.E(err) {
			return
		}
	}
	fields := make([][]string, len(c.Tags))
	for i, tg := range c.Tags {
		fields[i] = strings.Split(tg, ",")
	}
	ts := timestamp.Now()
	if c.CreatedAt != 0 {
		ts = timestamp.FromUnix(c.CreatedAt)
	}
	u := &event.Unsigned{CreatedAt: ts, Kind: kind.New(c.Kind), Tags: tags.FromStrings(fields...), Content: content}
	var ev *event.T
	if ev, err = u.Sign(s); chk.E(err) {
		return
	}
	if c.Envelope {
		err = eventenvelope.NewSubmissionWith(ev).Write(w)
	} else {
		_, err = w.Write(ev.Serialize())
	}
	if err != nil {
		return
	}
	_, err = fmt.Fprintln(w)
	return
}

type VerifyCmd struct {
	Event string `arg:"positional" help:"event JSON or EVENT frame, read from stdin if empty"`
}

// readEvent decodes a bare event, a client EVENT frame or a relay EVENT frame.
func readEvent(b []byte) (ev *event.T, err error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '[' {
		ev = &event.T{}
		if err = ev.UnmarshalJSON(b); chk.D(err) {
			ev = nil
		}
		return
	}
	var label string
	if label, err = envelopes.Identify(b); chk.D(err) {
		return
	}
	if label != eventenvelope.L {
		err = reason.MalformedEncoding.F("expected %s frame, got %q", eventenvelope.L, label)
		return
	}
	sub := &eventenvelope.Submission{}
	if err = sub.Unmarshal(b); err == nil {
		return sub.T, nil
	}
	res := &eventenvelope.Result{}
	if err = res.Unmarshal(b); chk.D(err) {
		return
	}
	return res.Event, nil
}

// Run prints the OK frame a relay would answer the event with.
func (c *VerifyCmd) Run(_ *config.C, stdin io.Reader, w io.Writer) (err error) {
	b := []byte(c.Event)
	if len(b) == 0 {
		if b, err = io.ReadAll(stdin); chk.E(err) {
			return
		}
	}
	var ev *event.T
	if ev, err = readEvent(b); err != nil {
		return
	}
	var ok *okenvelope.T
	if _, err = ev.Verify(); err != nil {
		ok = okenvelope.NewRejection(ev.ID(), err)
	} else {
		ok = okenvelope.NewFrom(ev.ID(), true)
	}
	if werr := ok.Write(w); chk.E(werr) {
		return werr
	}
	_, _ = fmt.Fprintln(w)
	return
}

// peerKey reads a public key in hex or npub form.
func peerKey(s string) (pk string, err error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, bech32encoding.NpubHRP+"1") {
		return bech32encoding.NpubToHex(s)
	}
	if !keys.IsValidPublicKey(s) {
		err = reason.MalformedEncoding.F("peer is not a valid public key")
		return
	}
	return strings.ToLower(s), nil
}

type EncryptCmd struct {
	Peer      string `arg:"positional,required" help:"recipient public key, hex or npub"`
	Plaintext string `arg:"positional" help:"message, read from stdin if empty"`
}

func (c *EncryptCmd) Run(cfg *config.C, stdin io.Reader, w io.Writer) (err error) {
	var pk string
	if pk, err = peerKey(c.Peer); err != nil {
		return
	}
	var s *p256k.Signer
	if s, err = cfg.Signer(); err != nil {
		return
	}
	defer s.Zero()
	msg := c.Plaintext
	if msg == "" {
		var b []byte
		if b, err = io.ReadAll(stdin); chk.E(err) {
			return
		}
		msg = string(b)
	}
	var payload string
	if payload, err = encryption.EncryptHex(msg, hex.Enc(s.Sec()), pk); chk.D(err) {
		return
	}
	_, err = fmt.Fprintln(w, payload)
	return
}

type DecryptCmd struct {
	Peer    string `arg:"positional,required" help:"sender public key, hex or npub"`
	Payload string `arg:"positional" help:"base64 payload, read from stdin if empty"`
}

func (c *DecryptCmd) Run(cfg *config.C, stdin io.Reader, w io.Writer) (err error) {
	var pk string
	if pk, err = peerKey(c.Peer); err != nil {
		return
	}
	var s *p256k.Signer
	if s, err = cfg.Signer(); err != nil {
		return
	}
	defer s.Zero()
	payload := c.Payload
	if payload == "" {
		var b []byte
		if b, err = io.ReadAll(stdin); chk.E(err) {
			return
		}
		payload = string(bytes.TrimSpace(b))
	}
	var msg string
	if msg, err = encryption.DecryptHex(payload, hex.Enc(s.Sec()), pk); chk.D(err) {
		return
	}
	_, err = fmt.Fprintln(w, msg)
	return
}

type EnvCmd struct{}

func (c *EnvCmd) Run(cfg *config.C, _ io.Reader, w io.Writer) (err error) {
	cfg.PrintEnv(w)
	return
}
