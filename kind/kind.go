// Package kind is the event type code of nostr.
package kind

import (
	"strconv"
)

// T is the event kind. Kinds are 16 bit in practice; the NIP-19 kind record
// carries them as a 32 bit big-endian integer.
type T struct {
	K uint16
}

func New[V uint16 | uint32 | int32 | int](k V) (ki *T) { return &T{uint16(k)} }

// FromU32 converts the 32 bit kind of a TLV record, reporting whether it fits.
func FromU32(k uint32) (ki *T, ok bool) {
	if k > 0xffff {
		return
	}
	return &T{uint16(k)}, true
}

func (k *T) ToInt() int {
	if k == nil {
		return 0
	}
	return int(k.K)
}

func (k *T) ToU16() uint16 {
	if k == nil {
		return 0
	}
	return k.K
}

func (k *T) ToU32() uint32 {
	if k == nil {
		return 0
	}
	return uint32(k.K)
}

func (k *T) Equal(k2 *T) bool {
	if k == nil || k2 == nil {
		return k == k2
	}
	return k.K == k2.K
}

// Marshal appends the decimal form of the kind.
func (k *T) Marshal(dst []byte) (b []byte) { return strconv.AppendUint(dst, uint64(k.ToU16()), 10) }

// Name returns a human readable name for well known kinds.
func (k *T) Name() string {
	if k == nil {
		return ""
	}
	if n, ok := names[k.ToU16()]; ok {
		return n
	}
	return ""
}

// IsReplaceable reports whether only the newest event of this kind per pubkey
// is kept.
func (k *T) IsReplaceable() bool {
	if k == nil {
		return false
	}
	return k.K == ProfileMetadata.K || k.K == FollowList.K ||
		(k.K >= ReplaceableStart.K && k.K < ReplaceableEnd.K)
}

// IsParameterizedReplaceable reports whether events of this kind are addressed
// by pubkey, kind and "d" tag, which is what an naddr points at.
func (k *T) IsParameterizedReplaceable() bool {
	if k == nil {
		return false
	}
	return k.K >= ParameterizedReplaceableStart.K &&
		k.K < ParameterizedReplaceableEnd.K
}

var (
	ProfileMetadata               = &T{0}
	TextNote                      = &T{1}
	FollowList                    = &T{3}
	EncryptedDirectMessage        = &T{4}
	EventDeletion                 = &T{5}
	Repost                        = &T{6}
	Reaction                      = &T{7}
	Seal                          = &T{13}
	PrivateDirectMessage          = &T{14}
	GiftWrap                      = &T{1059}
	ReplaceableStart              = &T{10000}
	ReplaceableEnd                = &T{20000}
	EphemeralStart                = &T{20000}
	EphemeralEnd                  = &T{30000}
	ParameterizedReplaceableStart = &T{30000}
	LongFormContent               = &T{30023}
	ParameterizedReplaceableEnd   = &T{40000}
)

var names = map[uint16]string{
	ProfileMetadata.K:        "ProfileMetadata",
	TextNote.K:               "TextNote",
	FollowList.K:             "FollowList",
	EncryptedDirectMessage.K: "EncryptedDirectMessage",
	EventDeletion.K:          "EventDeletion",
	Repost.K:                 "Repost",
	Reaction.K:               "Reaction",
	Seal.K:                   "Seal",
	PrivateDirectMessage.K:   "PrivateDirectMessage",
	GiftWrap.K:               "GiftWrap",
	LongFormContent.K:        "LongFormContent",
}
