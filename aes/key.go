package aes

import (
	"encoding/binary"
	"strconv"

	"github.com/pkg/errors"

	"github.com/benchlab/cryptocore/internal/gf"
)

// KeySizeError is returned by SetKey/NewCipher for any key length other
// than 16, 24 or 32 bytes — spec.md §7's InvalidKeyLength, named and
// shaped after the teacher's aes.KeySizeError (cipher.go).
type KeySizeError int

func (k KeySizeError) Error() string {
	return "github.com/benchlab/cryptocore/aes: invalid key size " + strconv.Itoa(int(k))
}

// Direction selects which key schedule SetKey produces. A KeySchedule
// built for one direction only ever drives the matching Encrypt1 or
// Decrypt1 block operation, per spec.md §3 ("direction: encryption or
// decryption").
type Direction int

const (
	// Forward produces the straight encryption key schedule.
	Forward Direction = iota
	// Reverse produces the reversed, InvMixColumn-adjusted decryption
	// key schedule (spec.md §4.B).
	Reverse
)

// KeySchedule holds the expanded round-key words for one AES key and
// direction (spec.md §3, "AES key state").
type KeySchedule struct {
	rk     []uint32 // length 4*(rounds+1); each word is big-endian: byte0 is the MSB.
	rounds int
	dir    Direction
}

// Rounds reports Nr — 10, 12 or 14.
func (ks *KeySchedule) Rounds() int { return ks.rounds }

// Zero overwrites the round-key material with zeros. Round keys are
// sensitive; spec.md §5 recommends zeroing on destruction.
func (ks *KeySchedule) Zero() {
	for i := range ks.rk {
		ks.rk[i] = 0
	}
}

// SetKey expands a 16/24/32-byte user key into a round-key schedule for
// the given direction, per spec.md §4.B.
func SetKey(key []byte, dir Direction) (*KeySchedule, error) {
	nk := len(key) / 4
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, errors.Wrapf(KeySizeError(len(key)), "aes: SetKey")
	}

	nr := nk + 6
	rk := make([]uint32, 4*(nr+1))

	for i := 0; i < nk; i++ {
		rk[i] = binary.BigEndian.Uint32(key[4*i : 4*i+4])
	}

	rconIdx := 1
	total := 4 * (nr + 1)
	for i := nk; i < total; i++ {
		temp := rk[i-1]
		switch {
		case i%nk == 0:
			temp = subWord(rotWord(temp)) ^ uint32(gf.Rcon[rconIdx])<<24
			rconIdx++
		case nk > 6 && i%nk == 4:
			temp = subWord(temp)
		}
		rk[i] = rk[i-nk] ^ temp
	}

	ks := &KeySchedule{rk: rk, rounds: nr, dir: dir}

	if dir == Reverse {
		ensureTd()

		// Reverse the round-key groups four words at a time so round 0
		// holds what was originally round Nr.
		for i, j := 0, 4*nr; i < j; i, j = i+4, j-4 {
			for k := 0; k < 4; k++ {
				rk[i+k], rk[j+k] = rk[j+k], rk[i+k]
			}
		}

		// Apply InvMixColumn to every interior round (1..Nr-1) via the
		// Td-table trick: Td[Se[x]] == InvMixColumn(x) in the
		// corresponding byte position, because Td was built from Sd and
		// Sd(Se(x)) == x.
		for r := 1; r < nr; r++ {
			base := r * 4
			for k := 0; k < 4; k++ {
				rk[base+k] = invMixColumnWord(rk[base+k])
			}
		}
	} else {
		ensureTe()
	}

	logger.Debugw("expanded key schedule", "rounds", nr, "direction", dir)
	return ks, nil
}

func rotWord(w uint32) uint32 {
	return w<<8 | w>>24
}

func subWord(w uint32) uint32 {
	return uint32(gf.Se[byte(w>>24)])<<24 |
		uint32(gf.Se[byte(w>>16)])<<16 |
		uint32(gf.Se[byte(w>>8)])<<8 |
		uint32(gf.Se[byte(w)])
}

func invMixColumnWord(w uint32) uint32 {
	b0 := gf.Se[byte(w>>24)]
	b1 := gf.Se[byte(w>>16)]
	b2 := gf.Se[byte(w>>8)]
	b3 := gf.Se[byte(w)]
	return td[0*256+int(b0)] ^ td[1*256+int(b1)] ^ td[2*256+int(b2)] ^ td[3*256+int(b3)]
}
