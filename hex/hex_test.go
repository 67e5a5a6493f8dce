package hex

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"lukechampine.com/frand"

	"nostrcore.lol/reason"
)

func TestRoundTrip(t *testing.T) {
	for i := 0; i < 256; i++ {
		b := frand.Bytes(i)
		s := Enc(b)
		require.Equal(t, strings.ToLower(s), s)
		d, err := Dec(s)
		require.NoError(t, err)
		require.Equal(t, string(b), string(d))
		d, err = Dec(strings.ToUpper(s))
		require.NoError(t, err)
		require.Equal(t, string(b), string(d))
	}
}

func TestDecFixed(t *testing.T) {
	key := "79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798"
	b, err := Dec32("pubkey", key)
	require.NoError(t, err)
	require.Equal(t, strings.ToLower(key), Enc(b))

	for _, bad := range []string{
		key[:63],
		key[:62],
		key + "00",
		"g" + key[1:],
		"",
	} {
		_, err = Dec32("secret key", bad)
		require.True(t, errors.Is(err, reason.MalformedEncoding), bad)
		if len(bad) > 8 {
			require.NotContains(t, err.Error(), bad[1:])
		}
	}
}
