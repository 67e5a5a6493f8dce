package bech32encoding

import (
	"nostrcore.lol/eventid"
	"nostrcore.lol/kind"
)

// Human-readable parts.
const (
	NpubHRP     = "npub"
	NsecHRP     = "nsec"
	NoteHRP     = "note"
	NprofileHRP = "nprofile"
	NeventHRP   = "nevent"
	NaddrHRP    = "naddr"
	NrelayHRP   = "nrelay"
)

// Entity is one of Npub, Nsec, Note, NProfile, NEvent, NAddr or NRelay.
type Entity interface {
	// HRP is the human-readable part the entity encodes with.
	HRP() string
	entity()
}

// Npub is a bare x-only public key.
type Npub struct {
	PubKey []byte
}

// Nsec is a bare secret key.
type Nsec struct {
	SecKey []byte
}

// Note is a bare event id.
type Note struct {
	ID *eventid.T
}

// NProfile is a public key with hints of relays where the user publishes.
//
// In all entities an empty Relays list encodes to no records, and decodes as
// nil.
type NProfile struct {
	PubKey []byte
	Relays []string
}

// NEvent is an event id with optional relay hints, author and kind.
type NEvent struct {
	ID     *eventid.T
	Relays []string
	Author []byte
	Kind   *kind.T
}

// NAddr points at a parameterized replaceable event by author, kind and d
// tag identifier. The identifier may be empty.
type NAddr struct {
	Identifier string
	PubKey     []byte
	Kind       *kind.T
	Relays     []string
}

// NRelay is a relay URL.
type NRelay struct {
	URL string
}

func (Npub) HRP() string     { return NpubHRP }
func (Nsec) HRP() string     { return NsecHRP }
func (Note) HRP() string     { return NoteHRP }
func (NProfile) HRP() string { return NprofileHRP }
func (NEvent) HRP() string   { return NeventHRP }
func (NAddr) HRP() string    { return NaddrHRP }
func (NRelay) HRP() string   { return NrelayHRP }

func (Npub) entity()     {}
func (Nsec) entity()     {}
func (Note) entity()     {}
func (NProfile) entity() {}
func (NEvent) entity()   {}
func (NAddr) entity()    {}
func (NRelay) entity()   {}
