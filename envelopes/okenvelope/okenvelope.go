// Package okenvelope is the OK message a relay sends in answer to an EVENT
// submission:
//
//	["OK","<event id>",<true|false>,"<reason>"]
package okenvelope

import (
	"io"
	"strings"

	"github.com/goccy/go-json"

	"nostrcore.lol/chk"
	"nostrcore.lol/envelopes"
	"nostrcore.lol/eventid"
	"nostrcore.lol/hex"
	"nostrcore.lol/reason"
	"nostrcore.lol/text"
)

// L is the label.
const L = "OK"

type T struct {
	EventID *eventid.T
	OK      bool
	Reason  []byte
}

// NewFrom builds an OK message for an event id.
func NewFrom(eid *eventid.T, ok bool, msg ...[]byte) *T {
	var m []byte
	if len(msg) > 0 {
		m = msg[0]
	}
	return &T{EventID: eid, OK: ok, Reason: m}
}

// NewRejection builds a refusal whose reason is prefixed with the kind of err.
// An err of no known kind is reported as a malformed encoding.
func NewRejection(eid *eventid.T, err error) *T {
	k := reason.Of(err)
	msg := strings.TrimPrefix(err.Error(), k.S()+": ")
	return &T{EventID: eid, Reason: reason.Msg(k, "%s", msg)}
}

func (en *T) Label() string        { return L }
func (en *T) ReasonString() string { return string(en.Reason) }

// Kind returns the machine readable prefix of the reason, if it is one of the
// kinds in package reason.
func (en *T) Kind() reason.R {
	for _, k := range reason.Kinds {
		if k.IsPrefix(en.Reason) {
			return k
		}
	}
	return ""
}

func (en *T) Write(w io.Writer) (err error) {
	_, err = w.Write(en.Marshal(nil))
	return
}

func (en *T) Marshal(dst []byte) (b []byte) {
	return envelopes.Marshal(dst, L, func(o []byte) []byte {
		o = text.AppendQuote(o, en.EventID.Bytes(), hex.EncAppend)
		o = append(o, ',')
		if en.OK {
			o = append(o, "true"...)
		} else {
			o = append(o, "false"...)
		}
		o = append(o, ',')
		return text.AppendQuote(o, en.Reason, text.NostrEscape)
	})
}

func (en *T) Unmarshal(b []byte) (err error) {
	var el []json.RawMessage
	if el, err = envelopes.Elements(b, L, 3); chk.D(err) {
		return
	}
	var idHex, msg string
	if err = json.Unmarshal(el[0], &idHex); chk.D(err) {
		return reason.MalformedEncoding.Wrap(err, "OK event id")
	}
	if en.EventID, err = eventid.NewFromString(idHex); chk.D(err) {
		return
	}
	if err = json.Unmarshal(el[1], &en.OK); chk.D(err) {
		return reason.MalformedEncoding.Wrap(err, "OK status")
	}
	if err = json.Unmarshal(el[2], &msg); chk.D(err) {
		return reason.MalformedEncoding.Wrap(err, "OK reason")
	}
	en.Reason = []byte(msg)
	return
}

func Parse(b []byte) (en *T, err error) {
	en = &T{}
	if err = en.Unmarshal(b); chk.D(err) {
		return nil, err
	}
	return
}
