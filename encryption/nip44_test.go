package encryption

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"lukechampine.com/frand"

	"nostrcore.lol/entropy"
	"nostrcore.lol/hex"
	"nostrcore.lol/p256k"
	"nostrcore.lol/reason"
)

const (
	sec1 = "0000000000000000000000000000000000000000000000000000000000000001"
	sec2 = "0000000000000000000000000000000000000000000000000000000000000002"
	pub1 = "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	pub2 = "c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5"
	ck12 = "c41c775356fd92eadc63ff5a0dc1da211b268cbea22316767095b2871ea1412d"

	nonce1  = "0000000000000000000000000000000000000000000000000000000000000001"
	payload = "AgAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAABee0G5VSK0/9YypIObAtDKfYEAjD35uVkHyB0F4DwrcNaCXlCWZKaArsGrY6M9wnuTMxWfp1RTN9Xga8no+kF5Vsb"
)

func mustHex(t *testing.T, s string) []byte {
	b, err := hex.Dec(s)
	require.NoError(t, err)
	return b
}

func randomKey(t *testing.T) []byte {
	s := &p256k.Signer{}
	require.NoError(t, s.Generate())
	ck, err := GenerateConversationKey(s.Pub(), s.Sec())
	require.NoError(t, err)
	return ck
}

func TestCalcPaddedLen(t *testing.T) {
	for _, c := range [][2]int{
		{1, 32}, {16, 32}, {32, 32}, {33, 64}, {37, 64}, {64, 64}, {65, 96},
		{100, 128}, {111, 128}, {200, 224}, {250, 256}, {256, 256}, {257, 320},
		{320, 320}, {383, 384}, {384, 384}, {400, 448}, {500, 512}, {512, 512},
		{515, 640}, {700, 768}, {800, 896}, {900, 1024}, {1020, 1024},
		{65536, 65536},
	} {
		require.Equal(t, c[1], CalcPaddedLen(c[0]), "length %d", c[0])
	}
	prev := 0
	for n := 1; n <= MaxPlaintextSize; n++ {
		l := CalcPaddedLen(n)
		require.GreaterOrEqual(t, l, n)
		require.GreaterOrEqual(t, l, prev)
		require.Equal(t, l, CalcPaddedLen(l))
		prev = l
	}
}

func TestConversationKey(t *testing.T) {
	ck, err := ConversationKeyFromHex(pub2, sec1)
	require.NoError(t, err)
	require.Equal(t, ck12, hex.Enc(ck))
	// swapping the roles gives the same key
	ck, err = ConversationKeyFromHex(pub1, sec2)
	require.NoError(t, err)
	require.Equal(t, ck12, hex.Enc(ck))

	ck, err = ConversationKeyFromHex(
		"c2f9d9948dc8c7c38321e4b85c8558872eafa0641cd269db76848a6073e69133",
		"315e59ff51cb9209768cf7da80791ddcaae56ac9775eb25b6dee1234bc5d2268")
	require.NoError(t, err)
	require.Equal(t, "3dfef0ce2a4d80a25e7a328accf73448ef67096f65f79588e358d9a0eb9013f1",
		hex.Enc(ck))
}

func TestConversationKeySymmetric(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, b := &p256k.Signer{}, &p256k.Signer{}
			require.NoError(t, a.Generate())
			require.NoError(t, b.Generate())
			ab, err := GenerateConversationKey(b.Pub(), a.Sec())
			require.NoError(t, err)
			ba, err := GenerateConversationKey(a.Pub(), b.Sec())
			require.NoError(t, err)
			require.Equal(t, ab, ba)
			require.Len(t, ab, KeySize)
		}()
	}
	wg.Wait()
}

func TestConversationKeyRejects(t *testing.T) {
	_, err := ConversationKeyFromHex(pub2, strings.Repeat("0", 64))
	require.Error(t, err)
	_, err = ConversationKeyFromHex(pub2, "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")
	require.Error(t, err)
	_, err = ConversationKeyFromHex(
		"eefdea4cdb677750a420fee807eacf21eb9898ae79b9768766e4faa04a2d4a34", sec1)
	require.Error(t, err)
	_, err = ConversationKeyFromHex(pub2[:62], sec1)
	require.True(t, errors.Is(err, reason.MalformedEncoding))
	_, err = ConversationKeyFromHex(pub2, "zz"+sec1[2:])
	require.True(t, errors.Is(err, reason.MalformedEncoding))
	require.NotContains(t, err.Error(), sec1[2:])
}

func TestEncryptKnownVector(t *testing.T) {
	ck := mustHex(t, ck12)
	got, err := Encrypt("a", ck, WithCustomNonce(mustHex(t, nonce1)))
	require.NoError(t, err)
	require.Equal(t, payload, got)
	pt, err := Decrypt(payload, ck)
	require.NoError(t, err)
	require.Equal(t, "a", pt)

	got, err = EncryptHex("a", sec1, pub2, WithCustomNonce(mustHex(t, nonce1)))
	require.NoError(t, err)
	require.Equal(t, payload, got)
	pt, err = DecryptHex(payload, sec2, pub1)
	require.NoError(t, err)
	require.Equal(t, "a", pt)
}

// a 400 byte plaintext padded to 448 with 64 byte steps
var longPayload = "AgABAgMEBQYHCAkKCwwNDg8QERITFBUWFxgZGhscHR4fWIW8Bouw+hEMj9RlOQRF2LExDPJe" +
		"k2h0dwKWpe+QPkrPRsdrXYjR6SrkueKNv0khnuYi3dYF29Pn3LwUbRvZymgwwKzDGoJK9b47" +
		"dXhMtYb3CxIOVra0XcSv5SGDN24VSrgEPcthGuqjoBYiMTja6kMVSH9wDvwMHo7o0jdb3t1w" +
		"5m4EfVg5uzCKdiXaYgkvasZDL+mJs6bnciMTT24QwyXbXQrsndzZO2RmHis3MV9M92aDEDcl" +
		"3ZCYJUijOoppREFnLZgW4PZ5omwuUBsbp2LxFpFNnlYHaaWtOob7O6+yBDzhW/DiqDy5h0Cy" +
		"ArMZhyPSumE1bZjm108nUh+Byw2okB4AJJrNdjM0RhW9409PICWg//7gGp/3GKw/xhb0dMyP" +
		"yA45G/e88HvgYzoTzYRsfoAoUzE4IBRaaflXHbXl1lhd/0AOj4fChIP83aD8z6wFL1BFcIME" +
		"KWYEcrMNn58QxNH9hYo6m5xw8UJa41v7yN0HlcdYfsq0AzD6zUdPo7HVv7zLbRzfOnV/tTp1" +
		"1imUXwCoCbkusTNTM6yReJMoXM3zEMWuA5nSTOPB5PiZo2V+2xmvgFe60jvdfprlQxHQlxBP" +
		"3how3CuV9K/nN+3iRuAccwdxR97aoQp9m8HGovQ="

func TestEncryptLongKnownVector(t *testing.T) {
	ck := mustHex(t, ck12)
	nonce := make([]byte, NonceSize)
	for i := range nonce {
		nonce[i] = byte(i)
	}
	pt := strings.Repeat("nostr ", 70)[:400]
	require.Equal(t, 448, CalcPaddedLen(len(pt)))
	got, err := Encrypt(pt, ck, WithCustomNonce(nonce))
	require.NoError(t, err)
	require.Len(t, got, 688)
	require.Equal(t, longPayload, got)
	back, err := Decrypt(longPayload, ck)
	require.NoError(t, err)
	require.Equal(t, pt, back)
}

func TestEncryptFromSource(t *testing.T) {
	ck := randomKey(t)
	mk := func() string {
		src, err := entropy.NewSeeded(bytes.Repeat([]byte{7}, 32))
		require.NoError(t, err)
		p, err := Encrypt("seeded", ck, WithSource(src))
		require.NoError(t, err)
		return p
	}
	require.Equal(t, mk(), mk())
	// without a source every payload gets a fresh nonce
	a, err := Encrypt("seeded", ck)
	require.NoError(t, err)
	b, err := Encrypt("seeded", ck)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestRoundTrip(t *testing.T) {
	ck := randomKey(t)
	for _, n := range []int{1, 2, 31, 32, 33, 255, 256, 257, 1000, 4097, 65535} {
		pt := strings.Repeat("x", n)
		p, err := Encrypt(pt, ck)
		require.NoError(t, err)
		d, err := base64.StdEncoding.DecodeString(p)
		require.NoError(t, err)
		require.Len(t, d, 1+NonceSize+2+CalcPaddedLen(n)+MACSize)
		got, err := Decrypt(p, ck)
		require.NoError(t, err)
		require.Equal(t, pt, got)
	}
	pt := "ñ 🤙 \x00 \"quoted\""
	p, err := Encrypt(pt, ck)
	require.NoError(t, err)
	got, err := Decrypt(p, ck)
	require.NoError(t, err)
	require.Equal(t, pt, got)
}

func TestPlaintextBounds(t *testing.T) {
	ck := randomKey(t)
	_, err := Encrypt("", ck)
	require.True(t, errors.Is(err, reason.SizeViolation))
	_, err = Encrypt(strings.Repeat("a", MaxPlaintextSize+1), ck)
	require.True(t, errors.Is(err, reason.SizeViolation))
	_, err = EncryptHex("", sec1, pub2)
	require.True(t, errors.Is(err, reason.SizeViolation))
	_, err = Encrypt("\xff\xfe", ck)
	require.True(t, errors.Is(err, reason.MalformedEncoding))
	_, err = Encrypt("a", ck, WithCustomNonce([]byte{1, 2, 3}))
	require.True(t, errors.Is(err, reason.SizeViolation))
	_, err = Encrypt("a", ck[:16])
	require.True(t, errors.Is(err, reason.SizeViolation))
}

func TestTamper(t *testing.T) {
	ck := randomKey(t)
	p, err := Encrypt("attack at dawn", ck)
	require.NoError(t, err)
	d, err := base64.StdEncoding.DecodeString(p)
	require.NoError(t, err)
	for name, i := range map[string]int{
		"nonce":      1 + frand.Intn(NonceSize),
		"ciphertext": 1 + NonceSize + frand.Intn(len(d)-1-NonceSize-MACSize),
		"mac":        len(d) - 1 - frand.Intn(MACSize),
	} {
		t.Run(name, func(t *testing.T) {
			c := bytes.Clone(d)
			c[i] ^= 1 << frand.Intn(8)
			pt, err := Decrypt(base64.StdEncoding.EncodeToString(c), ck)
			require.Empty(t, pt)
			require.True(t, errors.Is(err, reason.AuthenticationFailure), err)
			require.NotContains(t, err.Error(), "attack")
		})
	}
	// a different conversation key
	_, err = Decrypt(p, randomKey(t))
	require.True(t, errors.Is(err, reason.AuthenticationFailure))
}

func TestDecryptRejects(t *testing.T) {
	ck := mustHex(t, ck12)
	d, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)

	_, err = Decrypt("#"+payload[1:], ck)
	require.True(t, errors.Is(err, reason.UnsupportedVersion))
	_, err = Decrypt("#", ck)
	require.True(t, errors.Is(err, reason.UnsupportedVersion))

	v1 := bytes.Clone(d)
	v1[0] = 1
	_, err = Decrypt(base64.StdEncoding.EncodeToString(v1), ck)
	require.True(t, errors.Is(err, reason.UnsupportedVersion))

	_, err = Decrypt("", ck)
	require.True(t, errors.Is(err, reason.SizeViolation))
	_, err = Decrypt(payload[:131], ck)
	require.True(t, errors.Is(err, reason.SizeViolation))
	_, err = Decrypt(strings.Repeat("A", maxPayloadSize+4), ck)
	require.True(t, errors.Is(err, reason.SizeViolation))

	_, err = Decrypt("*"+payload[1:], ck)
	require.True(t, errors.Is(err, reason.MalformedEncoding))
}

func TestDecryptRejectsBadPadding(t *testing.T) {
	ck := randomKey(t)
	nonce := frand.Bytes(NonceSize)
	enc, cc20nonce, auth, err := messageKeys(ck, nonce)
	require.NoError(t, err)
	seal := func(padded []byte) string {
		cipher, err := xor(enc, cc20nonce, padded)
		require.NoError(t, err)
		b := append([]byte{Version}, nonce...)
		b = append(b, cipher...)
		b = append(b, mac(auth, nonce, cipher)...)
		return base64.StdEncoding.EncodeToString(b)
	}
	for name, padded := range map[string][]byte{
		// zero length prefix
		"empty": make([]byte, 34),
		// prefix says 33 bytes but only 32 are padded
		"short": append([]byte{0, 33}, make([]byte, 32)...),
		// prefix says 1 byte but 64 are padded
		"long": append([]byte{0, 1}, make([]byte, 64)...),
		// bytes that are not UTF-8
		"utf8": append([]byte{0, 2, 0xff, 0xfe}, make([]byte, 30)...),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decrypt(seal(padded), ck)
			require.True(t, errors.Is(err, reason.MalformedEncoding), err)
		})
	}
	// the same construction with a correct prefix opens
	pt, err := Decrypt(seal(append([]byte{0, 2, 'o', 'k'}, make([]byte, 30)...)), ck)
	require.NoError(t, err)
	require.Equal(t, "ok", pt)
}
