package gf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSboxesAreInverses(t *testing.T) {
	for x := 0; x < 256; x++ {
		require.Equal(t, byte(x), Sd[Se[x]], "Sd(Se(%d)) must equal %d", x, x)
	}
}

func TestSboxKnownValues(t *testing.T) {
	// FIPS-197 Figure 7 (the standard S-box table): Se[0x00] = 0x63.
	require.Equal(t, byte(0x63), Se[0x00])
	require.Equal(t, byte(0x7c), Se[0x01])
	require.Equal(t, byte(0x00), Sd[0x63])
}

func TestRconSequence(t *testing.T) {
	expected := []byte{0x00, 0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1b, 0x36}
	for i, v := range expected {
		require.Equal(t, v, Rcon[i], "Rcon[%d]", i)
	}
}

func TestXtime(t *testing.T) {
	require.Equal(t, byte(0x02), Xtime(0x01))
	require.Equal(t, byte(0x1b), Xtime(0x80))
}

func TestMulIdentity(t *testing.T) {
	for a := 0; a < 256; a++ {
		require.Equal(t, byte(a), Mul(byte(a), 1))
	}
}

func TestBuildTeTdConsistentWithSbox(t *testing.T) {
	te := BuildTe()
	td := BuildTd()

	// Te[i]'s low byte is F3(Se[i]) and Td[i]'s low byte is Fb(Sd[i])
	// by construction (the unrotated y word's low byte).
	for i := 0; i < 256; i++ {
		require.Equal(t, F3(Se[i]), byte(te[i]))
		require.Equal(t, Fb(Sd[i]), byte(td[i]))
	}
}
