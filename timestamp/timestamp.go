// Package timestamp is the created_at field of an event.
package timestamp

import (
	"strconv"
	"time"
)

// T is a UNIX timestamp of one second precision.
type T int64

// Now returns the current UNIX timestamp.
func Now() *T {
	tt := T(time.Now().Unix())
	return &tt
}

// FromUnix converts from a standard int64 unix timestamp.
func FromUnix(t int64) *T {
	tt := T(t)
	return &tt
}

// FromTime returns a T from a time.Time.
func FromTime(t time.Time) *T { return FromUnix(t.Unix()) }

// I64 returns the timestamp as an int64, zero for nil.
func (t *T) I64() int64 {
	if t == nil {
		return 0
	}
	return int64(*t)
}

// Time converts to a time.Time.
func (t *T) Time() time.Time { return time.Unix(t.I64(), 0) }

// Marshal appends the decimal form of the timestamp.
func (t *T) Marshal(dst []byte) (b []byte) { return strconv.AppendInt(dst, t.I64(), 10) }
