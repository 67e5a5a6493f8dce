package envelopes

import (
	"nostrcore.lol/reason"
)

// Identify reads the label of an envelope without decoding the rest of it. The
// same label is used for several envelopes, so whether the message was sent by
// a client or a relay decides which one it is.
func Identify(b []byte) (label string, err error) {
	var openBracket bool
	for i := 0; i < len(b); i++ {
		switch c := b[i]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
		case !openBracket && c == '[':
			openBracket = true
		case openBracket && c == '"':
			for j := i + 1; j < len(b); j++ {
				switch b[j] {
				case '\\':
					// labels are plain ASCII words
					return "", reason.MalformedEncoding.F("escape in envelope label")
				case '"':
					return string(b[i+1 : j]), nil
				}
			}
			return "", reason.MalformedEncoding.F("unterminated envelope label")
		default:
			return "", reason.MalformedEncoding.F("envelope does not start with a label")
		}
	}
	return "", reason.MalformedEncoding.F("envelope does not start with a label")
}
