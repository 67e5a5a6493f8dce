// Package bech32encoding implements NIP-19 entities, which are bech32 encoded
// data that describes nostr data types.
//
// npub, nsec and note carry a bare 32 byte value. nprofile, nevent, naddr and
// nrelay carry a sequence of TLV records, which besides the key or id include
// things like relay hints where to find events.
package bech32encoding
