// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aes

import (
	"github.com/benchlab/cryptocore/cipher"
)

// cbcEncAble is implemented by cipher.Chunks that can provide an optimized
// implementation of CBC encryption through the cipher.ChunkMode interface.
// See github.com/benchlab/cryptocore/cipher/cbc.go.
type cbcEncAble interface {
	NewCBCEncrypter(iv []byte) cipher.ChunkMode
}

// cbcDecAble is implemented by cipher.Chunks that can provide an optimized
// implementation of CBC decryption through the cipher.ChunkMode interface.
// See github.com/benchlab/cryptocore/cipher/cbc.go.
type cbcDecAble interface {
	NewCBCDecrypter(iv []byte) cipher.ChunkMode
}
