package query

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Literal renders a filter value as a token of the filter grammar.
// Booleans are checked first so they never fall into the numeric or string branches.
func Literal(v any) string {
	switch t := v.(type) {
	case bool:
		return strconv.FormatBool(t)
	case string:
		return quote(t)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int8:
		return strconv.FormatInt(int64(t), 10)
	case int16:
		return strconv.FormatInt(int64(t), 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint8:
		return strconv.FormatUint(uint64(t), 10)
	case uint16:
		return strconv.FormatUint(uint64(t), 10)
	case uint32:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// quote wraps s in single quotes for the filter grammar. The engine's lexer
// lets a backslash consume the next character but unescapes only \', so
// backslashes stay verbatim unless their run ends the string or precedes a
// quote. Such runs are doubled to keep the run from pairing with the quote.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for i := 0; i < len(s); {
		switch s[i] {
		case '\\':
			j := i
			for j < len(s) && s[j] == '\\' {
				j++
			}
			b.WriteString(s[i:j])
			if j == len(s) || s[j] == '\'' {
				b.WriteString(s[i:j])
			}
			i = j
		case '\'':
			b.WriteString(`\'`)
			i++
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	b.WriteByte('\'')
	return b.String()
}
