// Package basen implements the streaming Base-N codec of spec.md
// §4.E–G: a bit-packing encoder, its inverse decoder, and a Grouper
// formatter, all driven as filter.Filter nodes (basen/filter) so they
// compose the way the host pipeline framework spec.md §1 treats as an
// external collaborator would attach them. Grounded on
// original_source/c5/basecode.cpp (Crypto++, public domain).
package basen

import (
	"github.com/pkg/errors"

	"github.com/benchlab/cryptocore/basen/filter"
	"github.com/benchlab/cryptocore/config"
)

// noPadding is the encoder's sentinel for "no padding configured",
// matching basecode.cpp's m_padding = -1.
const noPadding = -1

type encoderStage int

const (
	encoderIdle encoderStage = iota
	encoderResumeBlock
	encoderResumeFinal
)

// Encoder is the streaming bit-packer of spec.md §4.E: it accumulates
// input bytes into bitsPerChar-wide groups, MSB-first, translates each
// group through alphabet, and emits output in outputBlockSize chunks.
type Encoder struct {
	alphabet        []byte
	bitsPerChar     int
	padding         int // noPadding, or a byte value 0..255
	outputBlockSize int

	outBuf  []byte
	bytePos int
	bitPos  int

	sink filter.Sink

	stage             encoderStage
	pending           []byte
	pendingMessageEnd int

	// needMessageEnd records that a caller's messageEnd could not yet
	// be acted on because an earlier block emit (triggered by that
	// same call, with its input already fully consumed) stalled on
	// downstream backpressure first. It is resolved as soon as stage
	// drains, without waiting for more input — the fsm discriminant
	// for the one finalization site this encoder has.
	needMessageEnd      bool
	needMessageEndLevel int
}

// NewEncoder builds an Encoder for the given alphabet (length
// 2^bitsPerChar) and padding ("no padding" is expressed by noPadding,
// -1). bitsPerChar must be in [1,7], per spec.md §4.E.
func NewEncoder(alphabet []byte, bitsPerChar int, padding int) (*Encoder, error) {
	if bitsPerChar <= 0 || bitsPerChar >= 8 {
		return nil, config.NewArgumentError("bits_per_char", "must be between 1 and 7 inclusive")
	}

	i := 8
	for i%bitsPerChar != 0 {
		i += 8
	}
	outputBlockSize := i / bitsPerChar

	return &Encoder{
		alphabet:        alphabet,
		bitsPerChar:     bitsPerChar,
		padding:         padding,
		outputBlockSize: outputBlockSize,
		outBuf:          make([]byte, outputBlockSize),
	}, nil
}

// IsolatedInitialize implements filter.Filter, reconfiguring the
// encoder from a typed parameter record.
func (e *Encoder) IsolatedInitialize(params interface{}) error {
	p, ok := params.(*config.EncoderParams)
	if !ok {
		return errors.Wrapf(config.NewArgumentError("params", "expected *config.EncoderParams"), "basen: Encoder.IsolatedInitialize")
	}
	padding := noPadding
	if p.Pad {
		padding = int(p.PaddingByte)
	}
	ne, err := NewEncoder(p.Alphabet, p.BitsPerChar, padding)
	if err != nil {
		return errors.Wrapf(err, "basen: Encoder.IsolatedInitialize")
	}
	*e = *ne
	logger.Debugw("configured encoder", "bits_per_char", p.BitsPerChar, "padded", p.Pad)
	return nil
}

// Attach implements filter.Filter.
func (e *Encoder) Attach(sink filter.Sink) { e.sink = sink }

// Put2 implements filter.Filter, per spec.md §4.E's bit-packing
// algorithm and end-of-message framing.
func (e *Encoder) Put2(buf []byte, messageEnd int, blocking bool) int {
	if e.stage != encoderIdle {
		if !e.resume(blocking) {
			return len(e.pending)
		}
	}
	if e.needMessageEnd {
		if r := e.finalize(e.needMessageEndLevel, blocking); r > 0 {
			return r
		}
	}

	pos := 0
	for pos < len(buf) {
		if e.bytePos == 0 {
			for i := range e.outBuf {
				e.outBuf[i] = 0
			}
		}

		b := uint(buf[pos])
		pos++
		bitsLeftInSource := 8
		for {
			bitsLeftInTarget := e.bitsPerChar - e.bitPos
			e.outBuf[e.bytePos] |= byte(b >> uint(8-bitsLeftInTarget))
			if bitsLeftInSource >= bitsLeftInTarget {
				e.bitPos = 0
				e.bytePos++
				bitsLeftInSource -= bitsLeftInTarget
				if bitsLeftInSource == 0 {
					break
				}
				b = (b << uint(bitsLeftInTarget)) & 0xff
			} else {
				e.bitPos += bitsLeftInSource
				break
			}
		}

		if e.bytePos == e.outputBlockSize {
			for i := 0; i < e.bytePos; i++ {
				e.outBuf[i] = e.alphabet[e.outBuf[i]]
			}
			residual := e.sink.Put2(e.outBuf, filter.NoMessageEnd, blocking)
			e.bytePos, e.bitPos = 0, 0
			if residual > 0 {
				e.stage = encoderResumeBlock
				e.pending = dup(e.outBuf[e.outputBlockSize-residual:])
				if messageEnd != filter.NoMessageEnd && pos == len(buf) {
					e.needMessageEnd = true
					e.needMessageEndLevel = messageEnd
				}
				return residual
			}
		}
	}

	if messageEnd != filter.NoMessageEnd {
		return e.finalize(messageEnd, blocking)
	}
	return 0
}

// finalize performs spec.md §4.E's end-of-message framing: flush the
// partial symbol, apply padding if configured, emit, and reset.
func (e *Encoder) finalize(messageEnd int, blocking bool) int {
	if e.bitPos > 0 {
		e.bytePos++
	}
	for i := 0; i < e.bytePos; i++ {
		e.outBuf[i] = e.alphabet[e.outBuf[i]]
	}

	n := e.bytePos
	if e.padding != noPadding && e.bytePos > 0 {
		for i := e.bytePos; i < e.outputBlockSize; i++ {
			e.outBuf[i] = byte(e.padding)
		}
		n = e.outputBlockSize
	}

	residual := e.sink.Put2(e.outBuf[:n], messageEnd, blocking)
	e.bytePos, e.bitPos = 0, 0
	e.needMessageEnd = false
	if residual > 0 {
		e.stage = encoderResumeFinal
		e.pending = dup(e.outBuf[n-residual : n])
		e.pendingMessageEnd = messageEnd
		return residual
	}
	return 0
}

// resume retries the output call a prior Put2 stalled on. It returns
// false if the sink is still applying backpressure (no new input may
// be processed yet).
func (e *Encoder) resume(blocking bool) bool {
	messageEnd := filter.NoMessageEnd
	if e.stage == encoderResumeFinal {
		messageEnd = e.pendingMessageEnd
	}
	residual := e.sink.Put2(e.pending, messageEnd, blocking)
	if residual > 0 {
		e.pending = e.pending[len(e.pending)-residual:]
		return false
	}
	e.stage = encoderIdle
	e.pending = nil
	return true
}

func dup(p []byte) []byte {
	q := make([]byte, len(p))
	copy(q, p)
	return q
}
