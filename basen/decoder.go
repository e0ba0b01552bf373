package basen

import (
	"github.com/pkg/errors"

	"github.com/benchlab/cryptocore/basen/filter"
	"github.com/benchlab/cryptocore/config"
)

type decoderStage int

const (
	decoderIdle decoderStage = iota
	decoderResumeBlock
	decoderResumeFinal
)

// Decoder is the streaming inverse of Encoder — spec.md §4.F:
// unmapped input bytes (lookup value >= DecodeLookupSkip) are skipped
// entirely, enabling whitespace-tolerant decoding.
type Decoder struct {
	lookup      [256]int
	bitsPerChar int

	outputBlockSize int
	outBuf          []byte
	bytePos         int
	bitPos          int

	sink filter.Sink

	stage             decoderStage
	pending           []byte
	pendingMessageEnd int

	needMessageEnd      bool
	needMessageEndLevel int
}

// NewDecoder builds a Decoder from a precomputed lookup table (see
// NewDecodeLookup) and bitsPerChar, which must be in [1,7].
func NewDecoder(lookup [256]int, bitsPerChar int) (*Decoder, error) {
	if bitsPerChar <= 0 || bitsPerChar >= 8 {
		return nil, config.NewArgumentError("bits_per_char", "must be between 1 and 7 inclusive")
	}

	i := bitsPerChar
	for i%8 != 0 {
		i += bitsPerChar
	}
	outputBlockSize := i / 8

	return &Decoder{
		lookup:          lookup,
		bitsPerChar:     bitsPerChar,
		outputBlockSize: outputBlockSize,
		outBuf:          make([]byte, outputBlockSize),
	}, nil
}

// IsolatedInitialize implements filter.Filter.
func (d *Decoder) IsolatedInitialize(params interface{}) error {
	p, ok := params.(*config.DecoderParams)
	if !ok {
		return errors.Wrapf(config.NewArgumentError("params", "expected *config.DecoderParams"), "basen: Decoder.IsolatedInitialize")
	}
	lookup := NewDecodeLookup(p.Alphabet, 1<<uint(p.BitsPerChar), p.CaseInsensitive)
	nd, err := NewDecoder(lookup, p.BitsPerChar)
	if err != nil {
		return errors.Wrapf(err, "basen: Decoder.IsolatedInitialize")
	}
	*d = *nd
	logger.Debugw("configured decoder", "bits_per_char", p.BitsPerChar, "case_insensitive", p.CaseInsensitive)
	return nil
}

// Attach implements filter.Filter.
func (d *Decoder) Attach(sink filter.Sink) { d.sink = sink }

// Put2 implements filter.Filter, per spec.md §4.F's straddling
// bit-accumulation algorithm.
func (d *Decoder) Put2(buf []byte, messageEnd int, blocking bool) int {
	if d.stage != decoderIdle {
		if !d.resume(blocking) {
			return len(d.pending)
		}
	}
	if d.needMessageEnd {
		if r := d.finalize(d.needMessageEndLevel, blocking); r > 0 {
			return r
		}
	}

	pos := 0
	for pos < len(buf) {
		value := d.lookup[buf[pos]]
		pos++
		if value >= DecodeLookupSkip {
			continue
		}

		if d.bytePos == 0 && d.bitPos == 0 {
			for i := range d.outBuf {
				d.outBuf[i] = 0
			}
		}

		newBitPos := d.bitPos + d.bitsPerChar
		if newBitPos <= 8 {
			d.outBuf[d.bytePos] |= byte(value << uint(8-newBitPos))
		} else {
			d.outBuf[d.bytePos] |= byte(value >> uint(newBitPos-8))
			d.outBuf[d.bytePos+1] |= byte(value << uint(16-newBitPos))
		}
		d.bitPos = newBitPos
		for d.bitPos >= 8 {
			d.bitPos -= 8
			d.bytePos++
		}

		if d.bytePos == d.outputBlockSize {
			residual := d.sink.Put2(d.outBuf, filter.NoMessageEnd, blocking)
			d.bytePos, d.bitPos = 0, 0
			if residual > 0 {
				d.stage = decoderResumeBlock
				d.pending = dup(d.outBuf[d.outputBlockSize-residual:])
				if messageEnd != filter.NoMessageEnd && pos == len(buf) {
					d.needMessageEnd = true
					d.needMessageEndLevel = messageEnd
				}
				return residual
			}
		}
	}

	if messageEnd != filter.NoMessageEnd {
		return d.finalize(messageEnd, blocking)
	}
	return 0
}

// finalize flushes the complete bytes accumulated in outBuf and
// propagates messageEnd downstream. Trailing bits that do not make up a
// whole byte are discarded, not emitted.
func (d *Decoder) finalize(messageEnd int, blocking bool) int {
	n := d.bytePos
	residual := d.sink.Put2(d.outBuf[:n], messageEnd, blocking)
	d.bytePos, d.bitPos = 0, 0
	d.needMessageEnd = false
	if residual > 0 {
		d.stage = decoderResumeFinal
		d.pending = dup(d.outBuf[n-residual : n])
		d.pendingMessageEnd = messageEnd
		return residual
	}
	return 0
}

func (d *Decoder) resume(blocking bool) bool {
	messageEnd := filter.NoMessageEnd
	if d.stage == decoderResumeFinal {
		messageEnd = d.pendingMessageEnd
	}
	residual := d.sink.Put2(d.pending, messageEnd, blocking)
	if residual > 0 {
		d.pending = d.pending[len(d.pending)-residual:]
		return false
	}
	d.stage = decoderIdle
	d.pending = nil
	return true
}
