// Package config loads the settings of the command line tools from the
// environment.
package config

import (
	"io"
	"strings"

	"go-simpler.org/env"

	"nostrcore.lol/bech32encoding"
	"nostrcore.lol/chk"
	"nostrcore.lol/config/keyvalue"
	"nostrcore.lol/keys"
	"nostrcore.lol/lol"
	"nostrcore.lol/p256k"
	"nostrcore.lol/reason"
)

// C is the configuration of nkit. Keys are never given on the command line, so
// they do not end up in shell history.
type C struct {
	AppName   string `env:"APP_NAME" default:"nkit"`
	SecretKey string `env:"NOSTR_SECRET_KEY" secret:"true" usage:"secret key as 64 character hex or nsec, used to sign and encrypt"`
	LogLevel  string `env:"LOG_LEVEL" default:"info" usage:"off, fatal, error, warn, info, debug or trace"`
}

// New reads the configuration from the environment and applies the log level.
func New() (c *C, err error) {
	c = &C{}
	if err = env.Load(c, &env.Options{SliceSep: ","}); chk.E(err) {
		return
	}
	lol.SetLogLevel(strings.ToLower(c.LogLevel))
	return
}

// Signer initialises a key pair from the configured secret key.
func (c *C) Signer() (s *p256k.Signer, err error) {
	return SignerFrom(c.SecretKey)
}

// SignerFrom initialises a key pair from a secret key in hex or nsec form.
func SignerFrom(sec string) (s *p256k.Signer, err error) {
	sec = strings.TrimSpace(sec)
	if sec == "" {
		err = reason.MissingRequiredField.F("no secret key, set NOSTR_SECRET_KEY")
		return
	}
	if !strings.HasPrefix(sec, bech32encoding.NsecHRP+"1") {
		return keys.SignerFromSecretHex(sec)
	}
	var skb []byte
	if skb, err = bech32encoding.NsecToBytes(sec); chk.D(err) {
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

// Usage writes the environment variables and their descriptions.
func (c *C) Usage(w io.Writer) { env.Usage(c, w, nil) }

// PrintEnv writes the configuration as a shell script that sets it. Secret
// values are left blank.
func (c *C) PrintEnv(w io.Writer) { keyvalue.PrintEnv(*c, w) }
