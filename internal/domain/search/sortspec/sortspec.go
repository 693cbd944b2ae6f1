package sortspec

import "strings"

// Direction is an optional sort direction suffix.
type Direction string

// Sort directions. An empty direction leaves the engine default in place.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Token is one `field[:direction]` sort directive.
type Token struct {
	Field     string
	Direction Direction
	hasSuffix bool
}

// Parse splits a token at the first colon.
// Anything after the colon is kept verbatim as the direction.
func Parse(s string) Token {
	field, dir, found := strings.Cut(s, ":")
	return Token{Field: field, Direction: Direction(dir), hasSuffix: found}
}

// WithField returns a copy of the token targeting another field.
func (t Token) WithField(field string) Token {
	t.Field = field
	return t
}

// String renders the token back to `field[:direction]`.
func (t Token) String() string {
	if !t.hasSuffix {
		return t.Field
	}
	return t.Field + ":" + string(t.Direction)
}

// Spec is an ordered list of sort tokens.
type Spec []Token

// ParseAll parses every token, preserving order and length.
func ParseAll(tokens []string) Spec {
	if len(tokens) == 0 {
		return nil
	}
	out := make(Spec, len(tokens))
	for i, s := range tokens {
		out[i] = Parse(s)
	}
	return out
}

// Strings renders the spec back to raw tokens.
func (s Spec) Strings() []string {
	if len(s) == 0 {
		return nil
	}
	out := make([]string, len(s))
	for i, t := range s {
		out[i] = t.String()
	}
	return out
}
