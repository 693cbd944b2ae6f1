package query

import (
	"time"

	"github.com/kailas-cloud/searchtools/internal/db"
	"github.com/kailas-cloud/searchtools/internal/domain/index"
	"github.com/kailas-cloud/searchtools/internal/domain/search/request"
	"github.com/kailas-cloud/searchtools/internal/domain/search/timefield"
)

// Builder assembles engine queries from validated requests.
type Builder struct {
	mode timefield.Mode
	now  func() time.Time
}

// NewBuilder creates a Builder for the given time mode.
func NewBuilder(mode timefield.Mode) *Builder {
	return &Builder{mode: mode, now: time.Now}
}

// WithClock overrides the clock used for the visibility cutoff.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// Mode returns the time mode.
func (b *Builder) Mode() timefield.Mode { return b.mode }

// Compiler returns the compiler for a profile.
func (b *Builder) Compiler(p index.Profile) *Compiler {
	return NewCompiler(b.mode, p)
}

// Build compiles req against profile p. The visibility cutoff is captured once per call.
func (b *Builder) Build(p index.Profile, req *request.Request) (*db.SearchQuery, error) {
	c := b.Compiler(p)

	clauses := c.Compile(req.Filters())
	if vis, ok := c.Visibility(req.Filters(), b.now()); ok {
		clauses = append(clauses, vis)
	}

	q, err := db.NewSearch(p.Name()).
		Keyword(req.Keyword()).
		Page(req.Limit(), req.Offset()).
		Attributes(req.Attributes()...).
		Filter(clauses...).
		Sort(c.Sort(req.Sort())...).
		Build()
	if err != nil {
		return nil, err //nolint:wrapcheck // db validation errors are already descriptive
	}
	return q, nil
}
