// Package p256k implements signer.I on secp256k1 with the btcec library:
// BIP-340 Schnorr signatures over x-only public keys, and ECDH returning the
// shared X coordinate as NIP-44 requires.
package p256k
