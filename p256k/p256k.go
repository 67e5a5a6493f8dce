package p256k

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"

	"nostrcore.lol/chk"
	"nostrcore.lol/entropy"
	"nostrcore.lol/reason"
	"nostrcore.lol/signer"
)

const (
	// SecKeyBytesLen is the length of a raw secret key.
	SecKeyBytesLen = 32
	// PubKeyBytesLen is the length of an x-only public key.
	PubKeyBytesLen = schnorr.PubKeyBytesLen
	// SignatureSize is the length of a BIP-340 signature.
	SignatureSize = schnorr.SignatureSize
	// maxGenerateAttempts bounds the rejection sampling in GenerateFrom. A
	// uniform source fails a single draw with probability below 2^-127.
	maxGenerateAttempts = 64
)

// Signer is a key pair. A Signer initialised with InitPub can only verify.
type Signer struct {
	SecretKey *btcec.PrivateKey
	PublicKey *btcec.PublicKey
	// Source supplies key material and signature auxiliary data. Nil means
	// entropy.Default.
	Source   entropy.Source
	skb, pkb []byte
}

var _ signer.I = &Signer{}

// New returns a Signer drawing randomness from src.
func New(src entropy.Source) *Signer { return &Signer{Source: src} }

// Generate creates a new key pair from the Signer's source.
func (s *Signer) Generate() (err error) { return s.GenerateFrom(s.Source) }

// GenerateFrom draws 32 byte candidates from src until one is a nonzero scalar
// below the group order, then derives its even-Y x-only public key.
func (s *Signer) GenerateFrom(src entropy.Source) (err error) {
	sec := make([]byte, SecKeyBytesLen)
	defer zero(sec)
	for i := 0; i < maxGenerateAttempts; i++ {
		if err = entropy.Fill(src, sec); chk.E(err) {
			return
		}
		if !validScalar(sec) {
			continue
		}
		return s.InitSec(sec)
	}
	return reason.MalformedEncoding.F("entropy source produced no valid secret key in %d attempts",
		maxGenerateAttempts)
}

func validScalar(sec []byte) bool {
	var k btcec.ModNScalar
	overflow := k.SetByteSlice(sec)
	valid := !overflow && !k.IsZero()
	k.Zero()
	return valid
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// InitSec initialises a Signer from raw secret key bytes, rejecting zero and
// values not below the group order.
func (s *Signer) InitSec(sec []byte) (err error) {
	if len(sec) != SecKeyBytesLen {
		err = reason.MalformedEncoding.F("secret key must be %d bytes, got %d",
			SecKeyBytesLen, len(sec))
		return
	}
	if !validScalar(sec) {
		err = reason.MalformedEncoding.F("secret key is zero or not below the curve order")
		return
	}
	s.SecretKey, s.PublicKey = btcec.PrivKeyFromBytes(sec)
	s.skb = append(make([]byte, 0, SecKeyBytesLen), sec...)
	s.pkb = schnorr.SerializePubKey(s.PublicKey)
	return
}

// InitPub initializes a verify-only Signer from an x-only public key.
func (s *Signer) InitPub(pub []byte) (err error) {
	if s.PublicKey, err = schnorr.ParsePubKey(pub); err != nil {
		err = reason.MalformedEncoding.Wrap(err, "public key")
		return
	}
	s.SecretKey, s.skb = nil, nil
	s.pkb = append(make([]byte, 0, PubKeyBytesLen), pub...)
	return
}

// Sec returns the raw secret key bytes.
func (s *Signer) Sec() (b []byte) { return s.skb }

// Pub returns the raw x-only public key bytes.
func (s *Signer) Pub() (b []byte) { return s.pkb }

// Sign signs a 32 byte message hash, mixing 32 bytes of auxiliary randomness
// from the Signer's source into the nonce.
func (s *Signer) Sign(msg []byte) (sig []byte, err error) {
	if s.SecretKey == nil {
		err = reason.MissingRequiredField.F("signer has no secret key")
		return
	}
	if len(msg) != 32 {
		err = reason.SizeViolation.F("message hash must be 32 bytes, got %d", len(msg))
		return
	}
	var aux [32]byte
	if err = entropy.Fill(s.Source, aux[:]); chk.E(err) {
		return
	}
	var si *schnorr.Signature
	if si, err = schnorr.Sign(s.SecretKey, msg, schnorr.CustomNonce(aux)); chk.E(err) {
		return
	}
	sig = si.Serialize()
	return
}

// Verify checks a signature on a message hash against the public key. A
// signature that cannot be parsed is reported as invalid.
func (s *Signer) Verify(msg, sig []byte) (valid bool, err error) {
	if s.PublicKey == nil {
		err = reason.MissingRequiredField.F("signer has no public key")
		return
	}
	var si *schnorr.Signature
	if si, err = schnorr.ParseSignature(sig); err != nil {
		err = reason.SignatureInvalid.F("signature of %d bytes does not parse", len(sig))
		return
	}
	valid = si.Verify(msg, s.PublicKey)
	return
}

// Zero wipes the secret key.
func (s *Signer) Zero() {
	if s.SecretKey != nil {
		s.SecretKey.Zero()
	}
	zero(s.skb)
	s.SecretKey, s.skb = nil, nil
}

// ECDH returns the X coordinate of the secret key multiplied by the point
// whose x-only encoding is pub, taking the even-Y point as BIP-340 does.
func (s *Signer) ECDH(pub []byte) (secret []byte, err error) {
	if s.SecretKey == nil {
		err = reason.MissingRequiredField.F("signer has no secret key")
		return
	}
	if len(pub) != PubKeyBytesLen {
		err = reason.MalformedEncoding.F("public key must be %d bytes, got %d",
			PubKeyBytesLen, len(pub))
		return
	}
	var pk *btcec.PublicKey
	if pk, err = btcec.ParsePubKey(append([]byte{0x02}, pub...)); err != nil {
		err = reason.MalformedEncoding.Wrap(err, "public key")
		return
	}
	secret = btcec.GenerateSharedSecret(s.SecretKey, pk)
	return
}
