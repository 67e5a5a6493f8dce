package event

import (
	"bytes"
	stdsha256 "crypto/sha256"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"lukechampine.com/frand"

	"nostrcore.lol/hex"
	"nostrcore.lol/kind"
	"nostrcore.lol/p256k"
	"nostrcore.lol/reason"
	"nostrcore.lol/tags"
	"nostrcore.lol/timestamp"
)

const (
	gmPubKey = "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	gmID     = "ada98046cd8d2c4bf835f9843c00632972d76ceddb5d965e1c4ab482460f3093"
)

func gm(t *testing.T) *Unsigned {
	pk, err := hex.Dec(gmPubKey)
	require.NoError(t, err)
	return &Unsigned{
		PubKey:    pk,
		CreatedAt: timestamp.FromUnix(1671588354),
		Kind:      kind.TextNote,
		Content:   []byte("GM"),
	}
}

func newSigner(t *testing.T) *p256k.Signer {
	s := &p256k.Signer{}
	require.NoError(t, s.Generate())
	return s
}

func TestCanonicalKnownVector(t *testing.T) {
	u := gm(t)
	require.Equal(t,
		`[0,"`+gmPubKey+`",1671588354,1,[],"GM"]`,
		string(u.ToCanonical(nil)))
	require.Equal(t, gmID, u.ID().String())
	sum := stdsha256.Sum256(u.ToCanonical(nil))
	require.Equal(t, gmID, hex.Enc(sum[:]))
	// the same fields always hash the same
	for i := 0; i < 10; i++ {
		require.Equal(t, gmID, hex.Enc(u.GetIDBytes()))
	}
	// nothing outside the five fields takes part
	ev := NewTrusted(u, frand.Bytes(32), frand.Bytes(64))
	require.Equal(t, gmID, hex.Enc(ev.GetIDBytes()))
}

func TestCanonicalEscaping(t *testing.T) {
	u := &Unsigned{
		PubKey:    bytes.Repeat([]byte{0xab}, 32),
		CreatedAt: timestamp.FromUnix(0),
		Kind:      kind.New(30023),
		Tags: tags.FromStrings(
			[]string{"e", "ab\"cd"},
			[]string{"d", "a/b", "\t"},
			[]string{},
		),
		Content: []byte("say \"hi\"\\ \n\r\t\b\f\x01\x1f / é 🤙"),
	}
	want := `[0,"` + strings.Repeat("ab", 32) + `",0,30023,` +
		`[["e","ab\"cd"],["d","a/b","\t"],[]],` +
		`"say \"hi\"\\ \n\r\t\b\f\u0001\u001f / é 🤙"]`
	require.Equal(t, want, string(u.ToCanonical(nil)))
	// the canonical form is valid JSON that decodes to the same values
	var arr []any
	require.NoError(t, json.Unmarshal(u.ToCanonical(nil), &arr))
	require.Equal(t, string(u.Content), arr[5])
}

func TestZeroFieldsCanonical(t *testing.T) {
	u := &Unsigned{}
	require.Equal(t, `[0,"",0,0,[],""]`, string(u.ToCanonical(nil)))
}

func TestSignVerify(t *testing.T) {
	s := newSigner(t)
	for i := 0; i < 200; i++ {
		ev, err := GenerateRandomTextNoteEvent(s, 1000)
		require.NoError(t, err)
		require.Equal(t, s.Pub(), ev.PubKey())
		valid, err := ev.Verify()
		require.NoError(t, err)
		require.True(t, valid)
		require.Equal(t, ev.GetIDBytes(), ev.IDBytes())
	}
}

func TestSignKeepsUnsignedIntact(t *testing.T) {
	s := newSigner(t)
	u := gm(t)
	u.PubKey = nil
	ev, err := u.Sign(s)
	require.NoError(t, err)
	require.Nil(t, u.PubKey)
	// mutating the source does not reach the signed event
	u.Content[0] = 'X'
	valid, err := ev.Verify()
	require.NoError(t, err)
	require.True(t, valid)
	require.Equal(t, "GM", string(ev.Content()))

	c := ev.Unsigned()
	c.Content = []byte("revised")
	ev2, err := c.Sign(s)
	require.NoError(t, err)
	require.NotEqual(t, ev.IDString(), ev2.IDString())
	require.Equal(t, "GM", string(ev.Content()))
}

func TestSignRejectsForeignPubKey(t *testing.T) {
	s := newSigner(t)
	ev, err := gm(t).Sign(s)
	require.Nil(t, ev)
	require.True(t, errors.Is(err, reason.IdentityMismatch))
}

func TestVerifyFailures(t *testing.T) {
	s := newSigner(t)
	u := gm(t)
	u.PubKey = s.Pub()
	ev, err := u.Sign(s)
	require.NoError(t, err)

	// content changed after signing
	changed := ev.Unsigned()
	changed.Content = []byte("GN")
	forged := NewTrusted(changed, ev.IDBytes(), ev.Sig())
	valid, err := forged.Verify()
	require.False(t, valid)
	require.True(t, errors.Is(err, reason.IdentityMismatch))
	require.Equal(t, reason.IdentityMismatch, reason.Of(err))

	// signature changed
	sig := bytes.Clone(ev.Sig())
	sig[63] ^= 0x01
	forged = NewTrusted(ev.Unsigned(), ev.IDBytes(), sig)
	valid, err = forged.Verify()
	require.False(t, valid)
	require.True(t, errors.Is(err, reason.SignatureInvalid))
	require.NotContains(t, err.Error(), ev.IDString())
	require.NotContains(t, err.Error(), hex.Enc(sig))

	// another key signed it
	other := newSigner(t)
	osig, err := other.Sign(ev.IDBytes())
	require.NoError(t, err)
	valid, err = NewTrusted(ev.Unsigned(), ev.IDBytes(), osig).Verify()
	require.False(t, valid)
	require.True(t, errors.Is(err, reason.SignatureInvalid))

	// pubkey that is not on the curve
	bad := ev.Unsigned()
	bad.PubKey, _ = hex.Dec("eefdea4cdb677750a420fee807eacf21eb9898ae79b9768766e4faa04a2d4a34")
	valid, err = NewTrusted(bad, bad.GetIDBytes(), ev.Sig()).Verify()
	require.False(t, valid)
	require.True(t, errors.Is(err, reason.SignatureInvalid))
}

func TestJSONRoundTrip(t *testing.T) {
	s := newSigner(t)
	u := &Unsigned{
		CreatedAt: timestamp.Now(),
		Kind:      kind.LongFormContent,
		Tags: tags.FromStrings(
			[]string{"d", "slug"},
			[]string{"p", strings.Repeat("0", 64), "wss://relay.example.com/"},
		),
		Content: []byte("# title\n\n\"quoted\" <b>&</b> \\ é"),
	}
	ev, err := u.Sign(s)
	require.NoError(t, err)
	b, err := ev.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, ev.Serialize(), b)

	got := &T{}
	require.NoError(t, json.Unmarshal(b, got))
	valid, err := got.Verify()
	require.NoError(t, err)
	require.True(t, valid)
	require.Equal(t, b, got.Marshal(nil))
	require.True(t, ev.Tags().Equal(got.Tags()))

	// encoding/json escapes the HTML characters, which decode to the same event
	std, err := json.Marshal(ev)
	require.NoError(t, err)
	require.NotEqual(t, b, std)
	got = &T{}
	require.NoError(t, json.Unmarshal(std, got))
	valid, err = got.Verify()
	require.NoError(t, err)
	require.True(t, valid)

	var j J
	require.NoError(t, json.Unmarshal(ev.SerializeIndented(), &j))
	require.Equal(t, ev.ToEventJ(), &j)
	require.Equal(t, "slug", j.Tags[0][1])
}

func TestUnmarshalRejects(t *testing.T) {
	s := newSigner(t)
	signed, err := (&Unsigned{Content: []byte("x")}).Sign(s)
	require.NoError(t, err)
	good := signed.ToEventJ()
	for name, mutate := range map[string]func(j *J){
		"short id":      func(j *J) { j.ID = j.ID[:62] },
		"bad pubkey":    func(j *J) { j.Pubkey = "zz" + j.Pubkey[2:] },
		"short sig":     func(j *J) { j.Sig = j.Sig[:126] },
		"negative kind": func(j *J) { j.Kind = -1 },
		"wide kind":     func(j *J) { j.Kind = 65536 },
	} {
		t.Run(name, func(t *testing.T) {
			j := *good
			mutate(&j)
			b, err := json.Marshal(j)
			require.NoError(t, err)
			err = (&T{}).UnmarshalJSON(b)
			require.True(t, errors.Is(err, reason.MalformedEncoding), err)
		})
	}
	err = (&T{}).UnmarshalJSON([]byte(`{"id":`))
	require.True(t, errors.Is(err, reason.MalformedEncoding))
}
