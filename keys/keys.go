// Package keys provides hex level helpers over the p256k key pair, for callers
// that hold keys as the 64 character strings used throughout nostr.
package keys

import (
	"nostrcore.lol/chk"
	"nostrcore.lol/hex"
	"nostrcore.lol/p256k"
)

// GenerateSecretKeyHex returns a new random secret key as lowercase hex.
func GenerateSecretKeyHex() (sks string, err error) {
	s := &p256k.Signer{}
	if err = s.Generate(); chk.E(err) {
		return
	}
	sks = hex.Enc(s.Sec())
	s.Zero()
	return
}

// SignerFromSecretHex decodes a 64 character secret key and initialises a
// Signer from it.
func SignerFromSecretHex[V string | []byte](sk V) (s *p256k.Signer, err error) {
	var skb []byte
	if skb, err = hex.Dec32("secret key", sk); chk.D(err) {
		return
	}
	s = &p256k.Signer{}
	if err = s.InitSec(skb); chk.D(err) {
		s = nil
	}
	for i := range skb {
		skb[i] = 0
	}
	return
}

// GetPublicKeyHex derives the x-only public key of a hex secret key.
func GetPublicKeyHex[V string | []byte](sk V) (pk string, err error) {
	var s *p256k.Signer
	if s, err = SignerFromSecretHex(sk); err != nil {
		return
	}
	pk = hex.Enc(s.Pub())
	s.Zero()
	return
}

// SecretBytesToPubKeyHex derives the hex x-only public key of a raw secret key.
func SecretBytesToPubKeyHex(skb []byte) (pk string, err error) {
	var pkb []byte
	if pkb, err = SecretToPubKeyBytes(skb); err != nil {
		return
	}
	pk = hex.Enc(pkb)
	return
}

// SecretToPubKeyBytes derives the raw x-only public key of a raw secret key.
func SecretToPubKeyBytes(skb []byte) (pk []byte, err error) {
	s := &p256k.Signer{}
	if err = s.InitSec(skb); chk.D(err) {
		return
	}
	pk = s.Pub()
	s.Zero()
	return
}

// IsValid32ByteHex reports whether s is exactly 64 hex characters.
func IsValid32ByteHex[V string | []byte](s V) bool {
	_, err := hex.Dec32("value", s)
	return err == nil
}

// IsValidPublicKey reports whether pk is hex for a point on the curve.
func IsValidPublicKey[V string | []byte](pk V) bool {
	pkb, err := HexPubkeyToBytes(pk)
	if err != nil {
		return false
	}
	return (&p256k.Signer{}).InitPub(pkb) == nil
}

// HexPubkeyToBytes decodes a 64 character hex public key.
func HexPubkeyToBytes[V string | []byte](hpk V) (pkb []byte, err error) {
	return hex.Dec32("public key", hpk)
}
