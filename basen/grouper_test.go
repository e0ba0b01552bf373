package basen_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benchlab/cryptocore/basen"
	"github.com/benchlab/cryptocore/basen/filter"
)

// spec.md §8 scenario 8.
func TestGrouperExample(t *testing.T) {
	g, err := basen.NewGrouper(4, []byte("-"), nil)
	require.NoError(t, err)

	sink := &capture{}
	g.Attach(sink)

	residual := g.Put2([]byte("ABCDEFGHI"), filter.MessageEnd, true)
	require.Equal(t, 0, residual)
	require.Equal(t, "ABCD-EFGH-I", string(sink.buf))
}

func TestGrouperPreservesByteSequenceStrippedOfSeparators(t *testing.T) {
	g, err := basen.NewGrouper(3, []byte("::"), []byte("!"))
	require.NoError(t, err)

	sink := &capture{}
	g.Attach(sink)

	input := "abcdefghijklm"
	residual := g.Put2([]byte(input), filter.MessageEnd, true)
	require.Equal(t, 0, residual)

	// Strip every "::" back out; what remains must equal the original
	// input followed by the terminator "!".
	got := string(sink.buf)
	require.Equal(t, input+"!", stripSeparators(got, "::", "!"))
}

func stripSeparators(s, sep, term string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		if sep != "" && i+len(sep) <= len(s) && s[i:i+len(sep)] == sep {
			i += len(sep)
			continue
		}
		out = append(out, s[i])
		i++
	}
	return string(out)
}

func TestGrouperDisabledForwardsVerbatim(t *testing.T) {
	g, err := basen.NewGrouper(0, nil, nil)
	require.NoError(t, err)

	sink := &capture{}
	g.Attach(sink)

	residual := g.Put2([]byte("no grouping here"), filter.MessageEnd, true)
	require.Equal(t, 0, residual)
	require.Equal(t, "no grouping here", string(sink.buf))
}

func TestGrouperRequiresSeparatorWhenGroupSizePositive(t *testing.T) {
	_, err := basen.NewGrouper(4, nil, nil)
	require.Error(t, err)
}

func TestGrouperEmptyTerminatorStillSignalsMessageEnd(t *testing.T) {
	g, err := basen.NewGrouper(0, nil, nil)
	require.NoError(t, err)

	var sawMessageEnd bool
	sink := filter.SinkFunc(func(buf []byte, messageEnd int, blocking bool) int {
		if messageEnd != filter.NoMessageEnd {
			sawMessageEnd = true
		}
		return 0
	})
	g.Attach(sink)

	g.Put2([]byte("x"), filter.MessageEnd, true)
	require.True(t, sawMessageEnd, "terminator call must still propagate messageEnd even when empty")
}
