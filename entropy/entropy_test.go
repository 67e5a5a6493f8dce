package entropy

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"nostrcore.lol/reason"
)

func TestSeededIsDeterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a, err := NewSeeded(seed)
	require.NoError(t, err)
	b, err := NewSeeded(seed)
	require.NoError(t, err)
	x, err := Bytes(a, 100)
	require.NoError(t, err)
	y, err := Bytes(b, 100)
	require.NoError(t, err)
	require.Equal(t, x, y)

	_, err = NewSeeded(seed[:31])
	require.True(t, errors.Is(err, reason.SizeViolation))
}

func TestFixedCycles(t *testing.T) {
	src, err := NewFixed([]byte{1, 2, 3})
	require.NoError(t, err)
	b, err := Bytes(src, 7)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 1, 2, 3, 1}, b)
	_, err = NewFixed(nil)
	require.Error(t, err)
}

func TestDefaultConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	out := make([][]byte, 16)
	for i := range out {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out[i], _ = Bytes(nil, 32)
		}(i)
	}
	wg.Wait()
	for i := 1; i < len(out); i++ {
		require.Len(t, out[i], 32)
		require.NotEqual(t, out[0], out[i])
	}
}
