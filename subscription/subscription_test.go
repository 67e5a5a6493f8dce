package subscription

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"lukechampine.com/frand"

	"nostrcore.lol/ec/bech32"
	"nostrcore.lol/entropy"
	"nostrcore.lol/reason"
)

func TestMarshalUnmarshal(t *testing.T) {
	for i := 0; i < 100; i++ {
		// printable ASCII so the escaped form stays within the limit
		b := make([]byte, frand.Intn(32)+1)
		for i := range b {
			b[i] = byte(0x20 + frand.Intn(0x5f))
		}
		si, err := NewId(b)
		require.NoError(t, err)
		ui := &Id{}
		require.NoError(t, ui.Unmarshal(si.Marshal(nil)))
		require.True(t, bytes.Equal(b, ui.T))
	}
}

func TestLimits(t *testing.T) {
	_, err := NewId("")
	require.True(t, errors.Is(err, reason.SizeViolation))
	_, err = NewId(strings.Repeat("a", MaxLen+1))
	require.True(t, errors.Is(err, reason.SizeViolation))
	// 40 quotes escape to 80 characters
	_, err = NewId(strings.Repeat(`"`, 40))
	require.True(t, errors.Is(err, reason.SizeViolation))
	_, err = NewId(strings.Repeat("a", MaxLen))
	require.NoError(t, err)
	err = (&Id{}).Unmarshal([]byte(`12`))
	require.True(t, errors.Is(err, reason.MalformedEncoding))
}

func TestNewStd(t *testing.T) {
	for i := 0; i < 100; i++ {
		si, err := NewStd(nil)
		require.NoError(t, err)
		require.True(t, si.IsValid())
		hrp, data, err := bech32.DecodeToBase256(si.String())
		require.NoError(t, err)
		require.Equal(t, StdHRP, hrp)
		require.Len(t, data, StdLen)
	}
	seed := bytes.Repeat([]byte{7}, 32)
	a, _ := entropy.NewSeeded(seed)
	b, _ := entropy.NewSeeded(seed)
	sa, err := NewStd(a)
	require.NoError(t, err)
	sb, err := NewStd(b)
	require.NoError(t, err)
	require.Equal(t, sa, sb)
}
