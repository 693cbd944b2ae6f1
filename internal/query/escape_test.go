package query

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

type stringer struct{}

func (stringer) String() string { return "custom" }

func TestLiteral(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"plain string", "瓦楞纸箱", "'瓦楞纸箱'"},
		{"single quote", "O'Brien", `'O\'Brien'`},
		{"backslash", `a\b`, `'a\b'`},
		{"windows path", `C:\dir`, `'C:\dir'`},
		{"backslash before quote", `x\'`, `'x\\\''`},
		{"trailing backslash", `trailing\`, `'trailing\\'`},
		{"backslash run before quote", `a\\'`, `'a\\\\\''`},
		{"empty string", "", "''"},
		{"true", true, "true"},
		{"false", false, "false"},
		{"int", 42, "42"},
		{"negative int64", int64(-7), "-7"},
		{"uint", uint(9), "9"},
		{"float", 12.5, "12.5"},
		{"large float", 1757376000000.0, "1757376000000"},
		{"json integer", json.Number("1757462399999"), "1757462399999"},
		{"json float", json.Number("0.25"), "0.25"},
		{"stringer", stringer{}, "custom"},
		{"duration", time.Second, "1s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Literal(tt.in); got != tt.want {
				t.Errorf("Literal(%#v) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

// readQuoted lexes a single-quoted literal the way the engine does: a
// backslash consumes the next character and only \' is unescaped.
// It returns the value and whatever follows the closing quote.
func readQuoted(t *testing.T, lit string) (string, string) {
	t.Helper()
	if !strings.HasPrefix(lit, "'") {
		t.Fatalf("%s does not start with a quote", lit)
	}
	body := lit[1:]
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\'':
			return strings.ReplaceAll(body[:i], `\'`, "'"), body[i+1:]
		case '\\':
			if i+1 == len(body) {
				t.Fatalf("%s: dangling backslash", lit)
			}
			i++
		}
	}
	t.Fatalf("%s: unterminated literal", lit)
	return "", ""
}

func TestLiteral_CannotCloseEarly(t *testing.T) {
	tests := []struct {
		in    string
		exact bool
	}{
		{"O'Brien", true},
		{`C:\dir\file`, true},
		{`a\\b`, true},
		{`\n`, true},
		{`x\' OR 1 = 1 OR y = '`, false},
		{`ends with \`, false},
		{`\\\'`, false},
		{`'`, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			lit := Literal(tt.in)
			val, rest := readQuoted(t, lit)
			if rest != "" {
				t.Fatalf("Literal(%q) = %s closes early, trailing %q", tt.in, lit, rest)
			}
			if tt.exact && val != tt.in {
				t.Errorf("Literal(%q) = %s reads back as %q", tt.in, lit, val)
			}
		})
	}
}
