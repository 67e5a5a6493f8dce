package bech32encoding

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"nostrcore.lol/bech32encoding/tlv"
	"nostrcore.lol/ec/bech32"
	"nostrcore.lol/eventid"
	"nostrcore.lol/kind"
	"nostrcore.lol/reason"
)

// ValueLen is the size of keys and ids carried by entities.
const ValueLen = 32

// Encode renders an entity as a bech32 string. Pointers to the entity types
// are accepted as well as values.
func Encode(e Entity) (s string, err error) {
	var data []byte
	if e, err = deref(e); err != nil {
		return
	}
	switch v := e.(type) {
	case Npub:
		data, err = direct("public key", v.PubKey)
	case Nsec:
		data, err = direct("secret key", v.SecKey)
	case Note:
		data, err = direct("event id", v.ID.Bytes())
	case NProfile:
		data, err = encodeProfile(v)
	case NEvent:
		data, err = encodeEvent(v)
	case NAddr:
		data, err = encodeAddr(v)
	case NRelay:
		data, err = encodeRelay(v)
	default:
		err = reason.MalformedEncoding.F("unknown entity type %T", e)
	}
	if err != nil {
		return
	}
	return bech32.EncodeFromBase256(e.HRP(), data)
}

func deref(e Entity) (Entity, error) {
	switch v := e.(type) {
	case *Npub:
		return value(v)
	case *Nsec:
		return value(v)
	case *Note:
		return value(v)
	case *NProfile:
		return value(v)
	case *NEvent:
		return value(v)
	case *NAddr:
		return value(v)
	case *NRelay:
		return value(v)
	}
	return e, nil
}

func value[V Entity](p *V) (Entity, error) {
	if p == nil {
		return nil, reason.MissingRequiredField.F("nil %T", p)
	}
	return *p, nil
}

func direct(field string, b []byte) (data []byte, err error) {
	if err = need32(field, b); err != nil {
		return
	}
	return b, nil
}

func need32(field string, b []byte) (err error) {
	switch len(b) {
	case ValueLen:
	case 0:
		err = reason.MissingRequiredField.F("%s absent", field)
	default:
		err = reason.MalformedEncoding.F("%s must be %d bytes, got %d", field, ValueLen, len(b))
	}
	return
}

// records accumulates TLV records, keeping the first failure.
type records struct {
	bytes.Buffer
	err error
}

func (r *records) add(typ byte, value []byte) {
	if r.err == nil {
		r.err = tlv.WriteEntry(&r.Buffer, typ, value)
	}
}

func (r *records) relays(urls []string) {
	for _, u := range urls {
		r.add(tlv.Relay, []byte(u))
	}
}

func (r *records) kind(k *kind.T) {
	kb := make([]byte, 4)
	binary.BigEndian.PutUint32(kb, k.ToU32())
	r.add(tlv.Kind, kb)
}

func (r *records) result() ([]byte, error) { return r.Bytes(), r.err }

func encodeProfile(v NProfile) (data []byte, err error) {
	if err = need32("public key", v.PubKey); err != nil {
		return
	}
	var r records
	r.add(tlv.Special, v.PubKey)
	r.relays(v.Relays)
	return r.result()
}

func encodeEvent(v NEvent) (data []byte, err error) {
	if err = need32("event id", v.ID.Bytes()); err != nil {
		return
	}
	if v.Author != nil {
		if err = need32("author", v.Author); err != nil {
			return
		}
	}
	var r records
	r.add(tlv.Special, v.ID.Bytes())
	r.relays(v.Relays)
	if v.Author != nil {
		r.add(tlv.Author, v.Author)
	}
	if v.Kind != nil {
		r.kind(v.Kind)
	}
	return r.result()
}

func encodeAddr(v NAddr) (data []byte, err error) {
	if err = need32("author", v.PubKey); err != nil {
		return
	}
	if v.Kind == nil {
		err = reason.MissingRequiredField.F("naddr kind absent")
		return
	}
	var r records
	r.add(tlv.Special, []byte(v.Identifier))
	r.relays(v.Relays)
	r.add(tlv.Author, v.PubKey)
	r.kind(v.Kind)
	return r.result()
}

func encodeRelay(v NRelay) (data []byte, err error) {
	if v.URL == "" {
		err = reason.MissingRequiredField.F("relay url absent")
		return
	}
	var r records
	r.add(tlv.Special, []byte(v.URL))
	return r.result()
}

// Decode parses a bech32 entity string of any length into its typed form.
func Decode[V string | []byte](s V) (e Entity, err error) {
	var hrp string
	var data []byte
	if hrp, data, err = bech32.DecodeToBase256(string(s)); chk.D(err) {
		return
	}
	switch hrp {
	case NpubHRP, NsecHRP, NoteHRP:
		if len(data) != ValueLen {
			err = reason.MalformedEncoding.F("%s must carry %d bytes, got %d",
				hrp, ValueLen, len(data))
			return
		}
		switch hrp {
		case NpubHRP:
			e = Npub{PubKey: data}
		case NsecHRP:
			e = Nsec{SecKey: data}
		default:
			var id *eventid.T
			if id, err = eventid.NewFromBytes(data); chk.E(err) {
				return
			}
			e = Note{ID: id}
		}
	case NprofileHRP, NeventHRP, NaddrHRP, NrelayHRP:
		var f *fields
		if f, err = readFields(hrp, data); chk.D(err) {
			return
		}
		e, err = f.entity(hrp)
	default:
		err = reason.MalformedEncoding.F("unknown entity prefix %q", hrp)
	}
	return
}

// fields gathers the records of a TLV entity before it is validated.
type fields struct {
	special    []byte
	hasSpecial bool
	relays     []string
	author     []byte
	kind       *kind.T
}

func readFields(hrp string, data []byte) (f *fields, err error) {
	// author and kind records are only defined for nevent and naddr.
	typed := hrp == NeventHRP || hrp == NaddrHRP
	f = &fields{}
	r := bytes.NewReader(data)
	for {
		var typ byte
		var value []byte
		if typ, value, err = tlv.ReadEntry(r); err != nil {
			if errors.Is(err, io.EOF) {
				err = nil
			}
			return
		}
		switch {
		case typ == tlv.Special:
			f.special, f.hasSpecial = value, true
		case typ == tlv.Relay:
			f.relays = append(f.relays, string(value))
		case typ == tlv.Author && typed:
			if len(value) != ValueLen {
				err = reason.MalformedEncoding.F("author record must be %d bytes, got %d",
					ValueLen, len(value))
				return
			}
			f.author = value
		case typ == tlv.Kind && typed:
			if len(value) != 4 {
				err = reason.MalformedEncoding.F("kind record must be 4 bytes, got %d", len(value))
				return
			}
			var ok bool
			if f.kind, ok = kind.FromU32(binary.BigEndian.Uint32(value)); !ok {
				err = reason.MalformedEncoding.F("kind %d out of range",
					binary.BigEndian.Uint32(value))
				return
			}
		default:
			log.T.F("ignoring tlv record type %d in %s", typ, hrp)
		}
	}
}

func (f *fields) entity(hrp string) (e Entity, err error) {
	switch hrp {
	case NprofileHRP:
		if err = f.special32("public key"); err != nil {
			return
		}
		e = NProfile{PubKey: f.special, Relays: f.relays}
	case NeventHRP:
		if err = f.special32("event id"); err != nil {
			return
		}
		var id *eventid.T
		if id, err = eventid.NewFromBytes(f.special); chk.E(err) {
			return
		}
		e = NEvent{ID: id, Relays: f.relays, Author: f.author, Kind: f.kind}
	case NaddrHRP:
		switch {
		case !f.hasSpecial:
			err = reason.MissingRequiredField.F("naddr has no identifier record")
		case f.author == nil:
			err = reason.MissingRequiredField.F("naddr has no author record")
		case f.kind == nil:
			err = reason.MissingRequiredField.F("naddr has no kind record")
		}
		if err != nil {
			return
		}
		e = NAddr{Identifier: string(f.special), PubKey: f.author, Kind: f.kind, Relays: f.relays}
	case NrelayHRP:
		if !f.hasSpecial {
			err = reason.MissingRequiredField.F("nrelay has no url record")
			return
		}
		e = NRelay{URL: string(f.special)}
	}
	return
}

func (f *fields) special32(field string) (err error) {
	if !f.hasSpecial {
		return reason.MissingRequiredField.F("%s record absent", field)
	}
	if len(f.special) != ValueLen {
		return reason.MalformedEncoding.F("%s must be %d bytes, got %d",
			field, ValueLen, len(f.special))
	}
	return
}
