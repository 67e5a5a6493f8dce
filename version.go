// Package nostrcore is the event model and cryptographic envelope formats of
// nostr: keys and signatures, bech32 entities, event ids and encrypted
// payloads.
package nostrcore

// Version is reported by the command line tools.
const Version = "v0.1.0"
