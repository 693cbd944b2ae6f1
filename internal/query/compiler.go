// Package query compiles structured search requests into the engine's
// filter and sort grammar.
package query

import (
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/searchtools/internal/domain/index"
	"github.com/kailas-cloud/searchtools/internal/domain/search/filter"
	"github.com/kailas-cloud/searchtools/internal/domain/search/sortspec"
	"github.com/kailas-cloud/searchtools/internal/domain/search/timefield"
)

// Compiler translates filter conditions and sort specs for one index profile.
// It holds no mutable state and is safe for concurrent use.
type Compiler struct {
	mode    timefield.Mode
	profile index.Profile
}

// NewCompiler creates a compiler for the given time mode and index profile.
func NewCompiler(mode timefield.Mode, profile index.Profile) *Compiler {
	return &Compiler{mode: mode, profile: profile}
}

// Mode returns the time mode.
func (c *Compiler) Mode() timefield.Mode { return c.mode }

// Profile returns the index profile.
func (c *Compiler) Profile() index.Profile { return c.profile }

// Field resolves the effective field name and whether it is a time field.
// In timestamp mode time fields are rewritten to their shadow fields.
func (c *Compiler) Field(name string) (string, bool) {
	if !c.profile.IsTimeField(name) {
		return name, false
	}
	if c.mode == timefield.Timestamp {
		if shadow, ok := timefield.Shadow(name); ok {
			return shadow, true
		}
	}
	return name, true
}

// Escape normalizes a time-field value for the active mode, then renders it as a literal.
func (c *Compiler) Escape(v any, isTimeField bool) string {
	if isTimeField {
		v = c.mode.Normalize(v)
	}
	return Literal(v)
}

// Compile turns conditions into AND-ed clauses in entry order.
// Null values, empty lists and unknown operators produce no clause.
func (c *Compiler) Compile(conds filter.Conditions) []string {
	var clauses []string
	for _, e := range conds {
		clauses = append(clauses, c.compileEntry(e)...)
	}
	return clauses
}

func (c *Compiler) compileEntry(e filter.Entry) []string {
	field, isTime := c.Field(e.Field)

	switch e.Value.Kind() {
	case filter.KindList:
		return c.compileList(field, isTime, e.Value.List())
	case filter.KindOps:
		return c.compileOps(field, isTime, e.Value.Ops())
	case filter.KindScalar:
		return []string{field + " = " + c.Escape(e.Value.Scalar(), isTime)}
	default:
		return nil
	}
}

func (c *Compiler) compileList(field string, isTime bool, values []any) []string {
	if len(values) == 0 {
		return nil
	}
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = c.Escape(v, isTime)
	}
	return []string{field + " IN [" + strings.Join(escaped, ", ") + "]"}
}

func (c *Compiler) compileOps(field string, isTime bool, ops []filter.Operand) []string {
	var clauses []string
	for _, o := range ops {
		symbol, ok := o.Op.Symbol()
		if !ok {
			continue
		}
		clauses = append(clauses, field+" "+symbol+" "+c.Escape(o.Value, isTime))
	}
	return clauses
}

// Sort maps sort tokens to their shadow fields in timestamp mode.
// Output has the same length and order as the input.
func (c *Compiler) Sort(spec sortspec.Spec) []string {
	if len(spec) == 0 {
		return nil
	}
	out := make([]string, len(spec))
	for i, tok := range spec {
		if field, isTime := c.Field(tok.Field); isTime {
			tok = tok.WithField(field)
		}
		out[i] = tok.String()
	}
	return out
}

// Visibility returns the clause hiding expired records, or false when the
// profile has no expiry policy or the caller already filters on expiry.
// The clause always targets the epoch-millisecond shadow field.
func (c *Compiler) Visibility(conds filter.Conditions, now time.Time) (string, bool) {
	if !c.profile.HidesExpired() {
		return "", false
	}
	logical := c.profile.ExpiryField()
	shadow, ok := timefield.Shadow(logical)
	if !ok {
		return "", false
	}
	if conds.References(logical, shadow) {
		return "", false
	}
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	return "(" + shadow + " > " + ms + " OR " + shadow + " IS NULL)", true
}

// Join renders clauses in the single-string form.
func Join(clauses []string) string {
	return strings.Join(clauses, " AND ")
}
