// Package eventenvelope is the EVENT message, which carries an event from a
// client to a relay, or from a relay to a client as a subscription result.
package eventenvelope

import (
	"io"

	"nostrcore.lol/chk"
	"nostrcore.lol/envelopes"
	"nostrcore.lol/event"
	"nostrcore.lol/reason"
	"nostrcore.lol/subscription"
)

// L is the label.
const L = "EVENT"

// Submission is a request from a client for a relay to store an event:
//
//	["EVENT",<event>]
type Submission struct {
	*event.T
}

func NewSubmissionWith(ev *event.T) *Submission { return &Submission{T: ev} }
func (en *Submission) Label() string            { return L }

func (en *Submission) Write(w io.Writer) (err error) {
	_, err = w.Write(en.Marshal(nil))
	return
}

func (en *Submission) Marshal(dst []byte) (b []byte) {
	return envelopes.Marshal(dst, L, en.T.Marshal)
}

// Unmarshal decodes a submission without checking the event.
func (en *Submission) Unmarshal(b []byte) (err error) {
	var el [][]byte
	if el, err = elements(b, 1); err != nil {
		return
	}
	en.T = &event.T{}
	return en.T.UnmarshalJSON(el[0])
}

// ParseSubmission decodes a submission and verifies its event.
func ParseSubmission(b []byte) (en *Submission, err error) {
	en = &Submission{}
	if err = en.Unmarshal(b); chk.D(err) {
		return nil, err
	}
	if _, err = en.T.Verify(); chk.D(err) {
		return nil, err
	}
	return
}

// Result is an event matching the filter of a subscription:
//
//	["EVENT","<subscription id>",<event>]
type Result struct {
	Subscription *subscription.Id
	Event        *event.T
}

// NewResultWith builds a result, checking the subscription Id.
func NewResultWith[V string | []byte](s V, ev *event.T) (res *Result, err error) {
	var si *subscription.Id
	if si, err = subscription.NewId(s); chk.D(err) {
		return
	}
	return &Result{Subscription: si, Event: ev}, nil
}

func (en *Result) Label() string { return L }

func (en *Result) Write(w io.Writer) (err error) {
	_, err = w.Write(en.Marshal(nil))
	return
}

func (en *Result) Marshal(dst []byte) (b []byte) {
	return envelopes.Marshal(dst, L, func(o []byte) []byte {
		o = en.Subscription.Marshal(o)
		o = append(o, ',')
		return en.Event.Marshal(o)
	})
}

// Unmarshal decodes a result without checking the event.
func (en *Result) Unmarshal(b []byte) (err error) {
	var el [][]byte
	if el, err = elements(b, 2); err != nil {
		return
	}
	en.Subscription = &subscription.Id{}
	if err = en.Subscription.Unmarshal(el[0]); chk.D(err) {
		return
	}
	en.Event = &event.T{}
	return en.Event.UnmarshalJSON(el[1])
}

// ParseResult decodes a result and verifies its event, so that nothing a relay
// sends reaches the application unchecked.
func ParseResult(b []byte) (en *Result, err error) {
	en = &Result{}
	if err = en.Unmarshal(b); chk.D(err) {
		return nil, err
	}
	if _, err = en.Event.Verify(); chk.D(err) {
		return nil, err
	}
	return
}

func elements(b []byte, n int) (el [][]byte, err error) {
	raw, err := envelopes.Elements(b, L, n)
	if err != nil {
		return
	}
	for _, r := range raw {
		if len(r) == 0 || string(r) == "null" {
			err = reason.MissingRequiredField.F("null element in %s envelope", L)
			return nil, err
		}
		el = append(el, r)
	}
	return
}
