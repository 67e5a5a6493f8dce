// Package encryption implements version 2 of the nostr encrypted payload
// format (NIP-44): ECDH and HKDF derived keys, length hiding padding, ChaCha20
// and an HMAC-SHA256 tag, all base64 encoded.
package encryption

import (
	"crypto/hmac"
	"encoding/base64"
	"encoding/binary"
	"io"
	"math/bits"
	"unicode/utf8"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/hkdf"

	"nostrcore.lol/chk"
	"nostrcore.lol/entropy"
	"nostrcore.lol/hex"
	"nostrcore.lol/p256k"
	"nostrcore.lol/reason"
	"nostrcore.lol/sha256"
)

const (
	// Version is the only payload version produced and accepted.
	Version byte = 2

	MinPlaintextSize = 0x0001 // 1b msg => padded to 32b
	MaxPlaintextSize = 0xffff // 65535 (64kb-1) => padded to 64kb

	// NonceSize is the size of the per message nonce.
	NonceSize = 32
	// MACSize is the size of the authentication tag.
	MACSize = sha256.Size
	// KeySize is the size of a conversation key.
	KeySize = 32

	minPayloadSize = 132
	maxPayloadSize = 87472
	minDecodedSize = 99
	maxDecodedSize = 65603
)

var salt = []byte("nip44-v2")

// Opts are the settings of one Encrypt call.
type Opts struct {
	err    error
	nonce  []byte
	source entropy.Source
}

// Option changes the settings of an Encrypt call.
type Option func(opts *Opts)

// WithCustomNonce uses the given 32 byte nonce instead of a random one. A nonce
// must never be used twice with the same conversation key; this exists for
// reproducing test vectors.
func WithCustomNonce(nonce []byte) Option {
	return func(opts *Opts) {
		if len(nonce) != NonceSize {
			opts.err = reason.SizeViolation.F("nonce must be %d bytes, got %d",
				NonceSize, len(nonce))
		}
		opts.nonce = nonce
	}
}

// WithSource draws the nonce from src instead of entropy.Default.
func WithSource(src entropy.Source) Option {
	return func(opts *Opts) { opts.source = src }
}

// CalcPaddedLen is the length a plaintext of n bytes is padded to: 32 for up
// to 32 bytes, then the next multiple of an eighth of the enclosing power of
// two, but at least of 32.
func CalcPaddedLen(n int) (l int) {
	if n <= 32 {
		return 32
	}
	nextPower := 1 << bits.Len(uint(n-1))
	chunk := 32
	if nextPower > 256 {
		chunk = nextPower / 8
	}
	return chunk * ((n-1)/chunk + 1)
}

// GenerateConversationKey derives the key shared by the holder of sec and the
// holder of the secret key for pub. Swapping the roles gives the same key.
func GenerateConversationKey(pub, sec []byte) (ck []byte, err error) {
	s := &p256k.Signer{}
	if err = s.InitSec(sec); chk.D(err) {
		return
	}
	defer s.Zero()
	var shared []byte
	if shared, err = s.ECDH(pub); chk.D(err) {
		return
	}
	ck = hkdf.Extract(sha256.New, shared, salt)
	for i := range shared {
		shared[i] = 0
	}
	return
}

// ConversationKeyFromHex is GenerateConversationKey with 64 character hex
// keys.
func ConversationKeyFromHex(pubHex, secHex string) (ck []byte, err error) {
	var pub, sec []byte
	if pub, err = hex.Dec32("public key", pubHex); chk.D(err) {
		return
	}
	if sec, err = hex.Dec32("secret key", secHex); chk.D(err) {
		return
	}
	ck, err = GenerateConversationKey(pub, sec)
	for i := range sec {
		sec[i] = 0
	}
	return
}

// Encrypt seals a UTF-8 plaintext of 1 to 65535 bytes under a conversation key
// and returns the base64 payload.
func Encrypt(plaintext string, conversationKey []byte, options ...Option) (payload string, err error) {
	size := len(plaintext)
	if size < MinPlaintextSize || size > MaxPlaintextSize {
		err = reason.SizeViolation.F("plaintext is %d bytes, must be %d to %d",
			size, MinPlaintextSize, MaxPlaintextSize)
		return
	}
	if !utf8.ValidString(plaintext) {
		err = reason.MalformedEncoding.F("plaintext is not valid UTF-8")
		return
	}
	var o Opts
	for _, apply := range options {
		apply(&o)
	}
	if err = o.err; chk.D(err) {
		return
	}
	if o.nonce == nil {
		if o.nonce, err = entropy.Bytes(o.source, NonceSize); chk.E(err) {
			return
		}
	}
	var enc, cc20nonce, auth []byte
	if enc, cc20nonce, auth, err = messageKeys(conversationKey, o.nonce); chk.D(err) {
		return
	}
	padded := make([]byte, 2+CalcPaddedLen(size))
	binary.BigEndian.PutUint16(padded, uint16(size))
	copy(padded[2:], plaintext)
	var cipher []byte
	if cipher, err = xor(enc, cc20nonce, padded); chk.E(err) {
		return
	}
	ct := make([]byte, 0, 1+NonceSize+len(cipher)+MACSize)
	ct = append(ct, Version)
	ct = append(ct, o.nonce...)
	ct = append(ct, cipher...)
	ct = append(ct, mac(auth, o.nonce, cipher)...)
	payload = base64.StdEncoding.EncodeToString(ct)
	return
}

// Decrypt opens a payload made by Encrypt. The tag is checked before anything
// is decrypted.
func Decrypt(payload string, conversationKey []byte) (plaintext string, err error) {
	pLen := len(payload)
	if pLen > 0 && payload[0] == '#' {
		err = reason.UnsupportedVersion.F("payload version marker '#'")
		return
	}
	if pLen < minPayloadSize || pLen > maxPayloadSize {
		err = reason.SizeViolation.F("payload is %d characters, must be %d to %d",
			pLen, minPayloadSize, maxPayloadSize)
		return
	}
	var decoded []byte
	if decoded, err = base64.StdEncoding.DecodeString(payload); chk.D(err) {
		err = reason.MalformedEncoding.Wrap(err, "payload base64")
		return
	}
	if decoded[0] != Version {
		err = reason.UnsupportedVersion.F("payload version %d", decoded[0])
		return
	}
	dLen := len(decoded)
	if dLen < minDecodedSize || dLen > maxDecodedSize {
		err = reason.SizeViolation.F("payload is %d bytes, must be %d to %d",
			dLen, minDecodedSize, maxDecodedSize)
		return
	}
	nonce := decoded[1 : 1+NonceSize]
	ciphertext := decoded[1+NonceSize : dLen-MACSize]
	givenMAC := decoded[dLen-MACSize:]
	var enc, cc20nonce, auth []byte
	if enc, cc20nonce, auth, err = messageKeys(conversationKey, nonce); chk.D(err) {
		return
	}
	if !hmac.Equal(givenMAC, mac(auth, nonce, ciphertext)) {
		err = reason.AuthenticationFailure.F("payload tag does not match")
		return
	}
	var padded []byte
	if padded, err = xor(enc, cc20nonce, ciphertext); chk.E(err) {
		return
	}
	unpaddedLen := int(binary.BigEndian.Uint16(padded))
	if unpaddedLen < MinPlaintextSize || len(padded) != 2+CalcPaddedLen(unpaddedLen) {
		err = reason.MalformedEncoding.F("invalid padding")
		return
	}
	unpadded := padded[2 : 2+unpaddedLen]
	if !utf8.Valid(unpadded) {
		err = reason.MalformedEncoding.F("plaintext is not valid UTF-8")
		return
	}
	plaintext = string(unpadded)
	return
}

// EncryptHex encrypts from the secret key of the sender to the public key of the
// recipient, both given as 64 character hex.
func EncryptHex(plaintext, secHex, pubHex string, options ...Option) (payload string, err error) {
	if len(plaintext) < MinPlaintextSize || len(plaintext) > MaxPlaintextSize {
		err = reason.SizeViolation.F("plaintext is %d bytes, must be %d to %d",
			len(plaintext), MinPlaintextSize, MaxPlaintextSize)
		return
	}
	var ck []byte
	if ck, err = ConversationKeyFromHex(pubHex, secHex); err != nil {
		return
	}
	return Encrypt(plaintext, ck, options...)
}

// DecryptHex decrypts with the secret key of the recipient and the public key of
// the sender, both given as 64 character hex.
func DecryptHex(payload, secHex, pubHex string) (plaintext string, err error) {
	var ck []byte
	if ck, err = ConversationKeyFromHex(pubHex, secHex); err != nil {
		return
	}
	return Decrypt(payload, ck)
}

func xor(key, nonce, message []byte) (dst []byte, err error) {
	var cipher *chacha20.Cipher
	if cipher, err = chacha20.NewUnauthenticatedCipher(key, nonce); chk.E(err) {
		return
	}
	dst = make([]byte, len(message))
	cipher.XORKeyStream(dst, message)
	return
}

func mac(key, nonce, ciphertext []byte) []byte {
	hm := hmac.New(sha256.New, key)
	hm.Write(nonce)
	hm.Write(ciphertext)
	return hm.Sum(nil)
}

// messageKeys expands the conversation key and nonce into the ChaCha20 key,
// the ChaCha20 nonce and the HMAC key.
func messageKeys(conversationKey, nonce []byte) (enc, cc20nonce, auth []byte, err error) {
	if len(conversationKey) != KeySize {
		err = reason.SizeViolation.F("conversation key must be %d bytes, got %d",
			KeySize, len(conversationKey))
		return
	}
	if len(nonce) != NonceSize {
		err = reason.SizeViolation.F("nonce must be %d bytes, got %d", NonceSize, len(nonce))
		return
	}
	r := hkdf.Expand(sha256.New, conversationKey, nonce)
	keys := make([]byte, chacha20.KeySize+chacha20.NonceSize+32)
	if _, err = io.ReadFull(r, keys); chk.E(err) {
		return
	}
	enc = keys[:chacha20.KeySize]
	cc20nonce = keys[chacha20.KeySize : chacha20.KeySize+chacha20.NonceSize]
	auth = keys[chacha20.KeySize+chacha20.NonceSize:]
	return
}
