// Package console is a byte-oriented text output layer for the SMP test
// harness. It plays the role the UART/HTIF console plays on real hardware: a
// dumb ordered byte sink plus small integer formatting helpers that never
// allocate.
//
// A Console is not safe for concurrent use. Callers that share one across
// harts serialize access themselves (the coordinator wraps every multi-step
// print in its print lock).
package console

import "io"

// Sink is the byte-string output primitive the console writes through.
// Implementations need not be thread-safe.
type Sink interface {
	WriteString(s string)
	WriteByte(c byte)
}

// WriterSink adapts an io.Writer into a Sink. Write errors are dropped;
// there is nowhere to report a broken console to.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) WriteString(str string) {
	io.WriteString(s.W, str)
}

func (s WriterSink) WriteByte(c byte) {
	s.W.Write([]byte{c})
}

// Console formats text onto a Sink.
type Console struct {
	sink Sink
}

// New creates a console over the given sink.
func New(sink Sink) *Console {
	return &Console{sink: sink}
}

// Puts writes s.
func (c *Console) Puts(s string) {
	c.sink.WriteString(s)
}

// Putc writes a single byte.
func (c *Console) Putc(b byte) {
	c.sink.WriteByte(b)
}

// PutDec writes v in decimal.
func (c *Console) PutDec(v uint64) {
	if v == 0 {
		c.sink.WriteByte('0')
		return
	}
	var buf [20]byte
	i := 0
	for v > 0 {
		buf[i] = byte(v%10) + '0'
		i++
		v /= 10
	}
	for i--; i >= 0; i-- {
		c.sink.WriteByte(buf[i])
	}
}

const hexDigits = "0123456789ABCDEF"

// PutHex writes v in hex with a 0x prefix and no leading zeros.
func (c *Console) PutHex(v uint64) {
	c.sink.WriteString("0x")
	if v == 0 {
		c.sink.WriteByte('0')
		return
	}
	started := false
	for i := 15; i >= 0; i-- {
		d := byte(v>>(uint(i)*4)) & 0xF
		if d == 0 && !started {
			continue
		}
		started = true
		c.sink.WriteByte(hexDigits[d])
	}
}

// Printf writes a minimal formatted string. Supported verbs: %d (int,
// uint32, uint64), %s, %c (byte, rune), %x (same widths as %d). Anything
// else is echoed verbatim. This is deliberately tiny: the harness only ever
// prints counters, hart IDs and short labels.
func (c *Console) Printf(format string, args ...any) {
	argIdx := 0
	next := func() any {
		if argIdx >= len(args) {
			return nil
		}
		a := args[argIdx]
		argIdx++
		return a
	}
	for i := 0; i < len(format); i++ {
		if format[i] != '%' || i+1 >= len(format) {
			c.sink.WriteByte(format[i])
			continue
		}
		i++
		switch format[i] {
		case 'd':
			c.PutDec(toUint64(next()))
		case 'x':
			c.PutHex(toUint64(next()))
		case 's':
			if s, ok := next().(string); ok {
				c.sink.WriteString(s)
			} else {
				c.sink.WriteByte('?')
			}
		case 'c':
			switch v := next().(type) {
			case byte:
				c.sink.WriteByte(v)
			case rune:
				c.sink.WriteByte(byte(v))
			default:
				c.sink.WriteByte('?')
			}
		case '%':
			c.sink.WriteByte('%')
		default:
			c.sink.WriteByte('%')
			c.sink.WriteByte(format[i])
		}
	}
}

func toUint64(a any) uint64 {
	switch v := a.(type) {
	case int:
		return uint64(v)
	case uint32:
		return uint64(v)
	case uint64:
		return v
	case int64:
		return uint64(v)
	case uint:
		return uint64(v)
	default:
		return 0
	}
}
