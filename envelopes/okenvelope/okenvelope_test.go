package okenvelope

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"nostrcore.lol/eventid"
	"nostrcore.lol/reason"
)

func TestMarshalUnmarshal(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := eventid.Gen()
		en := NewFrom(id, true, []byte(`duplicate: "quoted" \ reason`))
		b := en.Marshal(nil)
		got, err := Parse(b)
		require.NoError(t, err)
		require.True(t, got.EventID.Equal(id))
		require.True(t, got.OK)
		require.Equal(t, en.ReasonString(), got.ReasonString())
		require.Equal(t, b, got.Marshal(nil))
	}
}

func TestRejection(t *testing.T) {
	id := eventid.Gen()
	en := NewRejection(id, reason.SignatureInvalid.F("event signature does not verify"))
	require.False(t, en.OK)
	require.Equal(t, "signature-invalid: event signature does not verify", en.ReasonString())
	got, err := Parse(en.Marshal(nil))
	require.NoError(t, err)
	require.Equal(t, reason.SignatureInvalid, got.Kind())
	require.Equal(t, `["OK","`+id.String()+`",false,"signature-invalid: event signature does not verify"]`,
		string(en.Marshal(nil)))
}

func TestParseRejects(t *testing.T) {
	for _, in := range []string{
		`["OK","00",true,""]`,
		`["OK","` + eventid.Gen().String() + `","yes",""]`,
		`["OK","` + eventid.Gen().String() + `",true]`,
		`["EVENT","` + eventid.Gen().String() + `",true,""]`,
	} {
		_, err := Parse([]byte(in))
		require.True(t, errors.Is(err, reason.MalformedEncoding), in)
	}
}
