package tags

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"nostrcore.lol/tag"
)

func TestMarshalMatchesDecoder(t *testing.T) {
	in := [][]string{
		{"p", "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"},
		{"t", "café", "tab\there"},
		{},
		{"d", ""},
	}
	tg := FromStrings(in...)
	b := tg.Marshal(nil)
	require.Equal(t,
		`[["p","79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"],["t","café","tab\there"],[],["d",""]]`,
		string(b))
	var back [][]string
	require.NoError(t, json.Unmarshal(b, &back))
	require.Equal(t, in, back)
	require.Equal(t, in, tg.ToStringSlice())
}

func TestEmpty(t *testing.T) {
	var nilTags *T
	require.Equal(t, `[]`, string(nilTags.Marshal(nil)))
	require.Equal(t, `[]`, string(New().Marshal(nil)))
	require.NotNil(t, nilTags.ToStringSlice())
	require.True(t, nilTags.Equal(New()))
}

func TestAppendAndGet(t *testing.T) {
	a := New(tag.New("e", "x"))
	b := a.Append(tag.New("p", "y"), tag.New("e", "z"))
	require.Equal(t, 1, a.Len())
	require.Equal(t, 3, b.Len())
	require.Len(t, b.GetAll("e"), 2)
	require.Equal(t, "y", b.N(1).S(tag.Value))
	require.Nil(t, b.N(3))
}
