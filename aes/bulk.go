package aes

// Flags controls ProcessChunks' bulk-processing behavior (spec.md §4.D).
type Flags uint8

const (
	// XorInput XORs xorIn into the plaintext before encryption. When
	// unset and xorIn is non-nil, xorIn is XORed into the ciphertext
	// after encryption instead.
	XorInput Flags = 1 << iota
	// DontIncrementPointers reuses the same input/output/xorIn offsets
	// for every block processed (the caller manages chaining, e.g. CBC).
	DontIncrementPointers
	// InIsCounter treats src as a fixed 16-byte big-endian counter,
	// incremented in place once per block, rather than as nBytes of
	// sequential plaintext.
	InIsCounter
)

func incrementCounterBE(counter []byte) {
	for i := len(counter) - 1; i >= 0; i-- {
		counter[i]++
		if counter[i] != 0 {
			break
		}
	}
}

// ProcessChunks processes as many whole 16-byte blocks as fit in nBytes
// of src (or, under InIsCounter, as many blocks as fit in nBytes of
// dst, each driven by the same evolving counter), returning the
// unprocessed remainder. If nBytes < BlockSize it returns nBytes
// unchanged, per spec.md §4.D.
//
// xorIn may be nil, meaning "no xor". Under InIsCounter, src must be
// exactly BlockSize bytes (the counter) and the caller's counter buffer
// reflects post-call state on return.
func (c *Cipher) ProcessChunks(dst, src, xorIn []byte, nBytes int, flags Flags) (residual int) {
	if nBytes < BlockSize {
		return nBytes
	}

	var counter []byte
	if flags&InIsCounter != 0 {
		counter = src[:BlockSize]
	}

	srcOff, dstOff, xorOff := 0, 0, 0
	var tmp [BlockSize]byte

	n := nBytes
	for n >= BlockSize {
		var inBlock []byte
		if flags&InIsCounter != 0 {
			inBlock = counter
		} else {
			inBlock = src[srcOff : srcOff+BlockSize]
		}

		var xorBlock []byte
		if xorIn != nil {
			xorBlock = xorIn[xorOff : xorOff+BlockSize]
		}

		outBlock := dst[dstOff : dstOff+BlockSize]

		if flags&XorInput != 0 {
			if xorBlock != nil {
				for i := 0; i < BlockSize; i++ {
					tmp[i] = inBlock[i] ^ xorBlock[i]
				}
			} else {
				copy(tmp[:], inBlock)
			}
			c.enc.Encrypt1(outBlock, tmp[:], nil)
		} else {
			c.enc.Encrypt1(outBlock, inBlock, xorBlock)
		}

		if flags&InIsCounter != 0 {
			incrementCounterBE(counter)
		}

		if flags&DontIncrementPointers == 0 {
			dstOff += BlockSize
			if flags&InIsCounter == 0 {
				srcOff += BlockSize
			}
			if xorIn != nil {
				xorOff += BlockSize
			}
		}

		n -= BlockSize
	}

	return n
}
