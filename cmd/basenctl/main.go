// Command basenctl exercises the basen encoder/decoder/grouper filters
// against stdin/stdout — the "I/O adapter" spec.md §1 treats as an
// out-of-scope concern the filter core must not depend on. It lives
// under cmd/ as a thin consumer of the basen package.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/benchlab/cryptocore/basen"
	"github.com/benchlab/cryptocore/basen/filter"
)

type options struct {
	Codec     string `short:"c" long:"codec" choice:"base64" choice:"base64url" choice:"base32" choice:"base16" default:"base64" description:"which preconfigured BaseN codec to use"`
	Decode    bool   `short:"d" long:"decode" description:"decode instead of encode"`
	Group     int    `short:"g" long:"group" default:"0" description:"insert a separator every N output bytes (encode only)"`
	Separator string `long:"separator" default:"-" description:"separator string used when --group > 0"`
	Verbose   bool   `short:"v" long:"verbose" description:"log lifecycle events to stderr"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		os.Exit(1)
	}

	if opts.Verbose {
		l, _ := zap.NewDevelopment()
		basen.SetLogger(l.Sugar())
	}

	if err := run(opts, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "basenctl:", err)
		os.Exit(1)
	}
}

// stdoutSink writes accepted bytes straight through — an io.Writer-backed
// filter.Sink. It reports backpressure only when a write fails, and then
// for the whole buffer.
type stdoutSink struct {
	w io.Writer
}

func (s stdoutSink) Put2(buf []byte, messageEnd int, blocking bool) int {
	if len(buf) > 0 {
		if _, err := s.w.Write(buf); err != nil {
			return len(buf)
		}
	}
	return 0
}

func run(opts options, in io.Reader, out io.Writer) error {
	enc, dec := codecFor(opts.Codec)

	var chain filter.Filter
	sink := filter.Sink(stdoutSink{w: out})

	if opts.Decode {
		dec.Attach(sink)
		chain = dec
	} else if opts.Group > 0 {
		grouper, err := basen.NewGrouper(opts.Group, []byte(opts.Separator), nil)
		if err != nil {
			return err
		}
		grouper.Attach(sink)
		enc.Attach(grouper)
		chain = enc
	} else {
		enc.Attach(sink)
		chain = enc
	}

	// Put2 takes ownership of whatever it's handed: a nonzero return
	// means bytes are still queued internally waiting on the sink, not
	// that chunk itself needs resending. Draining means retrying with
	// an empty buffer, per spec.md §5.
	drain := func() error {
		for tries := 0; ; tries++ {
			residual := chain.Put2(nil, filter.NoMessageEnd, true)
			if residual == 0 {
				return nil
			}
			if tries > 1<<20 {
				return fmt.Errorf("downstream stalled")
			}
		}
	}

	r := bufio.NewReader(in)
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if residual := chain.Put2(buf[:n], filter.NoMessageEnd, true); residual > 0 {
				if derr := drain(); derr != nil {
					return derr
				}
			}
		}
		if err == io.EOF {
			if residual := chain.Put2(nil, filter.MessageEnd, true); residual > 0 {
				return drain()
			}
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func codecFor(name string) (*basen.Encoder, *basen.Decoder) {
	switch name {
	case "base64url":
		return basen.Base64URL()
	case "base32":
		return basen.Base32Std()
	case "base16":
		return basen.Base16()
	default:
		return basen.Base64Std()
	}
}
