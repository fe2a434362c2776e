package console

import (
	"bytes"
	"testing"
)

func newTestConsole() (*Console, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(WriterSink{W: &buf}), &buf
}

func TestPutDec(t *testing.T) {
	cases := []struct {
		in   uint64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{10, "10"},
		{4294967295, "4294967295"},
		{18446744073709551615, "18446744073709551615"},
	}
	for _, c := range cases {
		con, buf := newTestConsole()
		con.PutDec(c.in)
		if got := buf.String(); got != c.want {
			t.Errorf("PutDec(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPutHex(t *testing.T) {
	cases := []struct {
		in   uint64
		want string
	}{
		{0, "0x0"},
		{0xF, "0xF"},
		{0xDEADBEEF, "0xDEADBEEF"},
		{0x100, "0x100"},
	}
	for _, c := range cases {
		con, buf := newTestConsole()
		con.PutHex(c.in)
		if got := buf.String(); got != c.want {
			t.Errorf("PutHex(%#x) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPutsPutc(t *testing.T) {
	con, buf := newTestConsole()
	con.Puts("PAS")
	con.Putc('S')
	if got := buf.String(); got != "PASS" {
		t.Errorf("output = %q, want %q", got, "PASS")
	}
}

func TestPrintf(t *testing.T) {
	cases := []struct {
		format string
		args   []any
		want   string
	}{
		{"plain", nil, "plain"},
		{"[SMP] Hart %d online\n", []any{uint32(3)}, "[SMP] Hart 3 online\n"},
		{"%d/%d", []any{4, 4}, "4/4"},
		{"name=%s", []any{"virt"}, "name=virt"},
		{"%c%c", []any{byte('O'), 'K'}, "OK"},
		{"addr=%x", []any{uint64(0xBEEF)}, "addr=0xBEEF"},
		{"100%%", nil, "100%"},
		{"%q", nil, "%q"},
	}
	for _, c := range cases {
		con, buf := newTestConsole()
		con.Printf(c.format, c.args...)
		if got := buf.String(); got != c.want {
			t.Errorf("Printf(%q, %v) = %q, want %q", c.format, c.args, got, c.want)
		}
	}
}
