// Command nkit is a command line front end to the nostr core: key generation,
// bech32 entities, event signing and verification, and encrypted payloads.
//
// Secret keys are read from NOSTR_SECRET_KEY, never from arguments.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alexflint/go-arg"

	"nostrcore.lol"
	"nostrcore.lol/chk"
	"nostrcore.lol/config"
	"nostrcore.lol/log"
)

type runner interface {
	Run(cfg *config.C, stdin io.Reader, stdout io.Writer) (err error)
}

type args struct {
	Keygen  *KeygenCmd  `arg:"subcommand:keygen" help:"generate a new key pair"`
	Pub     *PubCmd     `arg:"subcommand:pub" help:"print the public key of NOSTR_SECRET_KEY"`
	Encode  *EncodeCmd  `arg:"subcommand:encode" help:"encode a bech32 entity"`
	Decode  *DecodeCmd  `arg:"subcommand:decode" help:"decode a bech32 entity"`
	Sign    *SignCmd    `arg:"subcommand:sign" help:"sign an event with NOSTR_SECRET_KEY"`
	Verify  *VerifyCmd  `arg:"subcommand:verify" help:"verify an event or EVENT frame"`
	Encrypt *EncryptCmd `arg:"subcommand:encrypt" help:"encrypt a message to a public key"`
	Decrypt *DecryptCmd `arg:"subcommand:decrypt" help:"decrypt a message from a public key"`
	Env     *EnvCmd     `arg:"subcommand:env" help:"print the configuration as a shell script"`
}

func (args) Version() string { return "nkit " + nostrcore.Version }

func main() {
	var a args
	p := arg.MustParse(&a)
	if p.Subcommand() == nil {
		p.WriteHelp(os.Stdout)
		os.Exit(0)
	}
	cfg, err := config.New()
	if chk.E(err) {
		os.Exit(1)
	}
	if err = p.Subcommand().(runner).Run(cfg, os.Stdin, os.Stdout); err != nil {
		log.D.S(err)
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
