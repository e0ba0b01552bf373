package basen

import (
	"github.com/pkg/errors"

	"github.com/benchlab/cryptocore/basen/filter"
	"github.com/benchlab/cryptocore/config"
)

type grouperStage int

const (
	grouperIdle grouperStage = iota
	grouperResumeSeparator
	grouperResumeForward
	grouperResumeVerbatim
	grouperResumeTerminator
)

// Grouper is the streaming formatter of spec.md §4.G: it inserts
// separator every groupSize output bytes, and terminator once at
// end-of-message.
type Grouper struct {
	groupSize  int
	separator  []byte
	terminator []byte
	counter    int

	sink filter.Sink

	stage             grouperStage
	pending           []byte
	pendingMessageEnd int

	needMessageEnd      bool
	needMessageEndLevel int
}

// NewGrouper builds a Grouper. separator may be empty only if
// groupSize is zero (grouping disabled); terminator may always be
// empty.
func NewGrouper(groupSize int, separator, terminator []byte) (*Grouper, error) {
	if groupSize > 0 && len(separator) == 0 {
		return nil, config.NewArgumentError("separator", "required when group_size > 0")
	}
	return &Grouper{
		groupSize:  groupSize,
		separator:  separator,
		terminator: terminator,
	}, nil
}

// IsolatedInitialize implements filter.Filter.
func (g *Grouper) IsolatedInitialize(params interface{}) error {
	p, ok := params.(*config.GrouperParams)
	if !ok {
		return errors.Wrapf(config.NewArgumentError("params", "expected *config.GrouperParams"), "basen: Grouper.IsolatedInitialize")
	}
	ng, err := NewGrouper(p.GroupSize, p.Separator, p.Terminator)
	if err != nil {
		return errors.Wrapf(err, "basen: Grouper.IsolatedInitialize")
	}
	*g = *ng
	logger.Debugw("configured grouper", "group_size", p.GroupSize)
	return nil
}

// Attach implements filter.Filter.
func (g *Grouper) Attach(sink filter.Sink) { g.sink = sink }

// Put2 implements filter.Filter, per spec.md §4.G.
func (g *Grouper) Put2(buf []byte, messageEnd int, blocking bool) int {
	if g.stage != grouperIdle {
		if !g.resume(blocking) {
			return len(g.pending)
		}
	}
	if g.needMessageEnd {
		if r := g.finalize(g.needMessageEndLevel, blocking); r > 0 {
			return r
		}
	}

	pos := 0
	if g.groupSize > 0 {
		for pos < len(buf) {
			if g.counter == g.groupSize {
				residual := g.sink.Put2(g.separator, filter.NoMessageEnd, blocking)
				if residual > 0 {
					g.stage = grouperResumeSeparator
					g.pending = dup(g.separator[len(g.separator)-residual:])
					if messageEnd != filter.NoMessageEnd && pos == len(buf) {
						g.needMessageEnd = true
						g.needMessageEndLevel = messageEnd
					}
					return residual
				}
				g.counter = 0
			}

			n := g.groupSize - g.counter
			if rem := len(buf) - pos; rem < n {
				n = rem
			}
			chunk := buf[pos : pos+n]
			residual := g.sink.Put2(chunk, filter.NoMessageEnd, blocking)
			accepted := n - residual
			pos += accepted
			g.counter += accepted
			if residual > 0 {
				g.stage = grouperResumeForward
				g.pending = dup(chunk[accepted:])
				if messageEnd != filter.NoMessageEnd && pos == len(buf) {
					g.needMessageEnd = true
					g.needMessageEndLevel = messageEnd
				}
				return residual
			}
		}
	} else {
		residual := g.sink.Put2(buf, filter.NoMessageEnd, blocking)
		if residual > 0 {
			g.stage = grouperResumeVerbatim
			g.pending = dup(buf[len(buf)-residual:])
			if messageEnd != filter.NoMessageEnd {
				g.needMessageEnd = true
				g.needMessageEndLevel = messageEnd
			}
			return residual
		}
		pos = len(buf)
	}

	if messageEnd != filter.NoMessageEnd {
		return g.finalize(messageEnd, blocking)
	}
	return 0
}

// finalize emits the terminator and propagates messageEnd downstream.
func (g *Grouper) finalize(messageEnd int, blocking bool) int {
	residual := g.sink.Put2(g.terminator, messageEnd, blocking)
	g.counter = 0
	g.needMessageEnd = false
	if residual > 0 {
		g.stage = grouperResumeTerminator
		g.pending = dup(g.terminator[len(g.terminator)-residual:])
		g.pendingMessageEnd = messageEnd
		return residual
	}
	return 0
}

func (g *Grouper) resume(blocking bool) bool {
	switch g.stage {
	case grouperResumeSeparator:
		residual := g.sink.Put2(g.pending, filter.NoMessageEnd, blocking)
		if residual > 0 {
			g.pending = g.pending[len(g.pending)-residual:]
			return false
		}
		g.counter = 0
		g.stage = grouperIdle
		g.pending = nil
		return true
	case grouperResumeForward, grouperResumeVerbatim:
		residual := g.sink.Put2(g.pending, filter.NoMessageEnd, blocking)
		accepted := len(g.pending) - residual
		if g.stage == grouperResumeForward {
			g.counter += accepted
		}
		if residual > 0 {
			g.pending = g.pending[accepted:]
			return false
		}
		g.stage = grouperIdle
		g.pending = nil
		return true
	case grouperResumeTerminator:
		residual := g.sink.Put2(g.pending, g.pendingMessageEnd, blocking)
		if residual > 0 {
			g.pending = g.pending[len(g.pending)-residual:]
			return false
		}
		g.stage = grouperIdle
		g.pending = nil
		return true
	}
	return true
}
