package basen_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benchlab/cryptocore/basen"
	"github.com/benchlab/cryptocore/basen/filter"
	"github.com/benchlab/cryptocore/config"
)

// capture is a filter.Sink that simply appends everything it is handed,
// never applying backpressure.
type capture struct {
	buf []byte
}

func (c *capture) Put2(buf []byte, messageEnd int, blocking bool) int {
	c.buf = append(c.buf, buf...)
	return 0
}

func encodeAll(t *testing.T, enc *basen.Encoder, chunks ...[]byte) string {
	t.Helper()
	sink := &capture{}
	enc.Attach(sink)
	for i, c := range chunks {
		end := filter.NoMessageEnd
		if i == len(chunks)-1 {
			end = filter.MessageEnd
		}
		residual := enc.Put2(c, end, true)
		require.Equal(t, 0, residual)
	}
	return string(sink.buf)
}

func decodeAll(t *testing.T, dec *basen.Decoder, input string) []byte {
	t.Helper()
	sink := &capture{}
	dec.Attach(sink)
	residual := dec.Put2([]byte(input), filter.MessageEnd, true)
	require.Equal(t, 0, residual)
	return sink.buf
}

// spec.md §8 scenario 4.
func TestBase64EncodeMan(t *testing.T) {
	enc, _ := basen.Base64Std()
	require.Equal(t, "TWFu", encodeAll(t, enc, []byte("Man")))
}

// spec.md §8 scenario 5.
func TestBase64EncodeSingleByteWithAndWithoutPadding(t *testing.T) {
	encPadded, err := basen.NewEncoder([]byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"), 6, '=')
	require.NoError(t, err)
	require.Equal(t, "TQ==", encodeAll(t, encPadded, []byte("M")))

	encUnpadded, err := basen.NewEncoder([]byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"), 6, -1)
	require.NoError(t, err)
	require.Equal(t, "TQ", encodeAll(t, encUnpadded, []byte("M")))
}

// spec.md §8 scenario 6: whitespace-tolerant decode.
func TestBase64DecodeToleratesWhitespace(t *testing.T) {
	_, dec := basen.Base64Std()
	require.Equal(t, []byte("Man"), decodeAll(t, dec, "TW Fu\n"))
}

// spec.md §8 scenario 7.
func TestBase32EncodeFoo(t *testing.T) {
	enc, _ := basen.Base32Std()
	require.Equal(t, "MZXW6===", encodeAll(t, enc, []byte("foo")))
}

func TestBase16RoundTrip(t *testing.T) {
	enc, dec := basen.Base16()
	encoded := encodeAll(t, enc, []byte{0xDE, 0xAD, 0xBE, 0xEF})
	require.Equal(t, "DEADBEEF", encoded)
	require.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, decodeAll(t, dec, encoded))
}

func TestBase16DecodeCaseInsensitive(t *testing.T) {
	_, dec := basen.Base16()
	require.Equal(t, []byte{0xDE, 0xAD}, decodeAll(t, dec, "dead"))
}

// Universal property (spec.md §8): decode(encode(s)) == s, for every
// codec, across a handful of representative byte sequences.
func TestRoundTripAllCodecs(t *testing.T) {
	samples := [][]byte{
		nil,
		[]byte("a"),
		[]byte("ab"),
		[]byte("abc"),
		[]byte("abcd"),
		[]byte{0x00, 0xFF, 0x10, 0x7F, 0x80},
		[]byte("The quick brown fox jumps over the lazy dog"),
	}

	codecs := map[string]func() (*basen.Encoder, *basen.Decoder){
		"base64":    basen.Base64Std,
		"base64url": basen.Base64URL,
		"base32":    basen.Base32Std,
		"base16":    basen.Base16,
	}

	for name, ctor := range codecs {
		t.Run(name, func(t *testing.T) {
			for _, s := range samples {
				enc, dec := ctor()
				encoded := encodeAll(t, enc, s)
				got := decodeAll(t, dec, encoded)
				if len(s) == 0 {
					require.Empty(t, got)
				} else {
					require.Equal(t, s, got)
				}
			}
		})
	}
}

// Streaming idempotence (spec.md §8): splitting input across multiple
// Put2 calls must not change the output.
func TestStreamingIdempotence(t *testing.T) {
	enc, _ := basen.Base64Std()
	whole := encodeAll(t, enc, []byte("streaming idempotence across chunk boundaries"))

	enc2, _ := basen.Base64Std()
	input := []byte("streaming idempotence across chunk boundaries")
	split := encodeAll(t, enc2, input[:3], input[3:10], input[10:])

	require.Equal(t, whole, split)
}

// IsolatedInitialize wraps its configuration errors with
// github.com/pkg/errors.Wrapf (spec.md §9's "Parameter plumbing" note);
// require.ErrorAs must still unwind to the typed config.ArgumentError
// underneath, the same way aes.SetKey's wrapped KeySizeError does.
func TestEncoderIsolatedInitializeWrapsArgumentError(t *testing.T) {
	enc := &basen.Encoder{}
	err := enc.IsolatedInitialize("not a params struct")
	require.Error(t, err)
	var argErr *config.ArgumentError
	require.ErrorAs(t, err, &argErr)
	require.Equal(t, "params", argErr.Param)
}

// Padding law (spec.md §8): when padding is configured, encoded length
// is a multiple of the output block size.
func TestPaddingLaw(t *testing.T) {
	enc, _ := basen.Base64Std()
	for n := 0; n < 12; n++ {
		input := make([]byte, n)
		encoded := encodeAll(t, enc, input)
		require.Equal(t, 0, len(encoded)%4, "len(%q) = %d not a multiple of 4", encoded, len(encoded))
	}
}
