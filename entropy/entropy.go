// Package entropy provides the randomness sources used for key generation,
// signature auxiliary data and encryption nonces.
//
// Default is a cryptographically strong generator safe for concurrent use.
// The other constructors exist so that fixed cross-implementation test vectors
// can be reproduced without reaching into the packages that consume them.
package entropy

import (
	"io"
	"sync"

	"lukechampine.com/frand"

	"nostrcore.lol/chk"
	"nostrcore.lol/reason"
)

// Source is anything that can fill a buffer with random bytes. Every
// implementation must be safe for concurrent use.
type Source interface {
	Read(p []byte) (n int, err error)
}

// Default is the process wide CSPRNG.
var Default Source = frand.Reader

// Or returns src, or Default if src is nil.
func Or(src Source) Source {
	if src == nil {
		return Default
	}
	return src
}

// Fill reads exactly len(b) bytes from src into b.
func Fill(src Source, b []byte) (err error) {
	if _, err = io.ReadFull(Or(src), b); chk.E(err) {
		return
	}
	return
}

// Bytes returns n bytes read from src.
func Bytes(src Source, n int) (b []byte, err error) {
	b = make([]byte, n)
	err = Fill(src, b)
	return
}

type seeded struct {
	sync.Mutex
	rng *frand.RNG
}

func (s *seeded) Read(p []byte) (n int, err error) {
	s.Lock()
	defer s.Unlock()
	return s.rng.Read(p)
}

// NewSeeded returns a deterministic ChaCha based stream from a 32 byte seed.
// The same seed always produces the same stream.
func NewSeeded(seed []byte) (src Source, err error) {
	if len(seed) != 32 {
		err = reason.SizeViolation.F("seed must be 32 bytes, got %d", len(seed))
		return
	}
	src = &seeded{rng: frand.NewCustom(seed, 32, 12)}
	return
}

type fixed struct {
	sync.Mutex
	b   []byte
	pos int
}

func (f *fixed) Read(p []byte) (n int, err error) {
	f.Lock()
	defer f.Unlock()
	for n < len(p) {
		c := copy(p[n:], f.b[f.pos:])
		n += c
		f.pos = (f.pos + c) % len(f.b)
	}
	return
}

// NewFixed returns a source that yields b over and over. It is only useful for
// reproducing published vectors that specify the nonce or auxiliary data.
func NewFixed(b []byte) (src Source, err error) {
	if len(b) == 0 {
		err = reason.SizeViolation.F("fixed entropy must not be empty")
		return
	}
	src = &fixed{b: append([]byte(nil), b...)}
	return
}
