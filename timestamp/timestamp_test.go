package timestamp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMarshal(t *testing.T) {
	require.Equal(t, "1671588354", string(FromUnix(1671588354).Marshal(nil)))
	require.Equal(t, "-1", string(FromUnix(-1).Marshal(nil)))
	var nilT *T
	require.Equal(t, "0", string(nilT.Marshal(nil)))
	now := time.Now()
	require.Equal(t, now.Unix(), FromTime(now).I64())
}
