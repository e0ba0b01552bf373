package aes

import (
	"sync"

	"golang.org/x/sys/cpu"

	"github.com/benchlab/cryptocore/internal/gf"
)

// te and td are the process-wide T-tables (spec.md §3, "AES T-tables").
// They are populated lazily on first use and are read-only afterwards;
// sync.Once gives the single-initialization barrier the data model
// requires ("publication must be observable to all threads once a
// set_key returns").
var (
	teOnce sync.Once
	tdOnce sync.Once
	te     [1024]uint32
	td     [1024]uint32
)

func ensureTe() {
	teOnce.Do(func() {
		te = gf.BuildTe()
		logger.Debugw("populated forward T-table", "entries", len(te))
	})
}

func ensureTd() {
	tdOnce.Do(func() {
		td = gf.BuildTd()
		logger.Debugw("populated inverse T-table", "entries", len(td))
	})
}

// cacheLineSize is the stride used by the timing-mitigation preload in
// block.go. Crypto++ reads this from the OS at runtime; we approximate it
// from CPU feature bits the way benchlab-bench-crypto's argon2/blake2
// packages pick an implementation variant from golang.org/x/sys/cpu —
// wider vector units generally imply a wider cache line, and either
// choice only changes how many preload iterations run, never the
// result (the preloaded mask is provably zero either way).
var cacheLineSize = 32

func init() {
	if cpu.X86.HasAVX2 || cpu.ARM64.HasAES {
		cacheLineSize = 64
	}
}
