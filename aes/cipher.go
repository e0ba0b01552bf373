// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aes

import (
	"github.com/benchlab/cryptocore/cipher"
)

// Cipher is an instance of AES bound to a particular key, holding both
// the forward and reversed key schedules so Encrypt and Decrypt are both
// available without re-expanding the key — adapted from the teacher's
// aesCipher{enc, dec []uint32}, generalized to hold full KeySchedule
// values (component B/C state, spec.md §3) instead of raw word slices.
type Cipher struct {
	enc *KeySchedule
	dec *KeySchedule
}

// NewCipher creates an AES Cipher from a 16/24/32-byte key.
func NewCipher(key []byte) (*Cipher, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, KeySizeError(len(key))
	}
	enc, err := SetKey(key, Forward)
	if err != nil {
		return nil, err
	}
	dec, err := SetKey(key, Reverse)
	if err != nil {
		return nil, err
	}
	return &Cipher{enc: enc, dec: dec}, nil
}

// ChunkSize implements cipher.Chunk.
func (c *Cipher) ChunkSize() int { return BlockSize }

// Encrypt implements cipher.Chunk.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("github.com/benchlab/cryptocore/aes: input not full block")
	}
	if len(dst) < BlockSize {
		panic("github.com/benchlab/cryptocore/aes: output not full block")
	}
	c.enc.Encrypt1(dst, src, nil)
}

// Decrypt implements cipher.Chunk.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("github.com/benchlab/cryptocore/aes: input not full block")
	}
	if len(dst) < BlockSize {
		panic("github.com/benchlab/cryptocore/aes: output not full block")
	}
	c.dec.Decrypt1(dst, src, nil)
}

// Zero overwrites both round-key schedules with zeros (spec.md §5).
func (c *Cipher) Zero() {
	c.enc.Zero()
	c.dec.Zero()
}

// NewCTR returns a counter-mode cipher.Stream over c, driven through
// ProcessChunks with InIsCounter — the bulk engine's counter-mode fast
// path (spec.md §4.D) rather than a portable per-block loop.
func (c *Cipher) NewCTR(iv []byte) cipher.Stream {
	return newCTRStream(c, iv)
}
