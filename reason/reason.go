// Package reason names the kinds of failure the codecs and engines in this
// module report. A kind is itself an error, so callers select on it with
// errors.Is, and its text doubles as the machine-readable prefix a relay puts
// in front of an OK or CLOSED message.
package reason

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// R is a failure kind.
type R string

const (
	// MalformedEncoding is bad hex, a bad bech32 charset, checksum or
	// separator, a truncated TLV record, or an unparseable payload.
	MalformedEncoding = R("malformed-encoding")
	// MissingRequiredField is a TLV entity lacking its special record.
	MissingRequiredField = R("missing-required-field")
	// UnsupportedVersion is an encrypted payload with an unknown version.
	UnsupportedVersion = R("unsupported-version")
	// AuthenticationFailure is a MAC mismatch.
	AuthenticationFailure = R("authentication-failure")
	// SizeViolation is a plaintext, payload or record length out of bounds.
	SizeViolation = R("size-violation")
	// IdentityMismatch is a stored event id that is not the hash of the
	// event, or a pubkey that does not belong to the signing key.
	IdentityMismatch = R("identity-mismatch")
	// SignatureInvalid is a signature that does not verify.
	SignatureInvalid = R("signature-invalid")
)

// Kinds lists every R in this package.
var Kinds = []R{
	MalformedEncoding,
	MissingRequiredField,
	UnsupportedVersion,
	AuthenticationFailure,
	SizeViolation,
	IdentityMismatch,
	SignatureInvalid,
}

func (r R) Error() string { return string(r) }

// S returns the R as a string.
func (r R) S() string { return string(r) }

// B returns the R as a byte slice.
func (r R) B() []byte { return []byte(r) }

// IsPrefix returns whether a message starts with this R.
func (r R) IsPrefix(msg []byte) bool { return bytes.HasPrefix(msg, r.B()) }

// F creates an error of this kind with a printf style context message.
func (r R) F(format string, params ...any) error {
	return errors.WithStack(&Error{
		Kind: r,
		Msg:  fmt.Sprintf(format, params...),
	})
}

// Wrap creates an error of this kind that also carries a cause, which stays
// reachable through errors.Is and errors.As.
func (r R) Wrap(cause error, format string, params ...any) error {
	return errors.WithStack(&Error{
		Kind:  r,
		Msg:   fmt.Sprintf(format, params...),
		Cause: cause,
	})
}

// Msg constructs a message with a machine-readable prefix, as used in OK and
// CLOSED envelopes.
func Msg(prefix R, format string, params ...any) []byte {
	if len(prefix) < 1 {
		prefix = MalformedEncoding
	}
	return []byte(fmt.Sprintf(prefix.S()+": "+format, params...))
}

// Error is a failure of a known kind with context.
type Error struct {
	Kind  R
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.S())
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// Of returns the outermost kind of err, or "" if it has none.
func Of(err error) (r R) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	for _, k := range Kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return
}
