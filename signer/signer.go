// Package signer defines what the rest of the module needs from a key pair:
// BIP-340 signing and verification over x-only keys, and ECDH.
package signer

// I is a nostr key pair, or just a public key for verification.
type I interface {
	// Generate creates a fresh key pair from the signer's entropy source.
	Generate() (err error)
	// InitSec initialises the secret key from 32 raw bytes, and derives the
	// public key because it can.
	InitSec(sec []byte) (err error)
	// InitPub initializes the x-only public key from 32 raw bytes.
	InitPub(pub []byte) (err error)
	// Sec returns the secret key bytes.
	Sec() []byte
	// Pub returns the x-only public key bytes.
	Pub() []byte
	// Sign creates a signature over a 32 byte message hash.
	Sign(msg []byte) (sig []byte, err error)
	// Verify checks a message hash and signature against the public key.
	Verify(msg, sig []byte) (valid bool, err error)
	// Zero wipes the secret key.
	Zero()
	// ECDH returns the X coordinate of the point shared between the secret key
	// and the provided x-only public key.
	ECDH(pub []byte) (secret []byte, err error)
}
