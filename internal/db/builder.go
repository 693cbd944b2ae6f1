package db

import (
	"fmt"
	"strconv"
	"strings"
)

// SearchBuilder is a fluent builder for search queries.
type SearchBuilder struct {
	q SearchQuery
}

// NewSearch starts building a query against index.
func NewSearch(index string) *SearchBuilder {
	return &SearchBuilder{q: SearchQuery{Index: index}}
}

// Keyword sets the full-text query.
func (b *SearchBuilder) Keyword(k string) *SearchBuilder {
	b.q.Keyword = k
	return b
}

// Page sets the page size and offset.
func (b *SearchBuilder) Page(limit, offset int) *SearchBuilder {
	b.q.Limit = limit
	b.q.Offset = offset
	return b
}

// Attributes restricts the returned fields.
func (b *SearchBuilder) Attributes(fields ...string) *SearchBuilder {
	b.q.Attributes = append(b.q.Attributes, fields...)
	return b
}

// Filter appends AND-ed filter clauses.
func (b *SearchBuilder) Filter(clauses ...string) *SearchBuilder {
	b.q.Filter = append(b.q.Filter, clauses...)
	return b
}

// Sort appends sort tokens.
func (b *SearchBuilder) Sort(tokens ...string) *SearchBuilder {
	b.q.Sort = append(b.q.Sort, tokens...)
	return b
}

// Facets requests facet distributions for the given fields.
func (b *SearchBuilder) Facets(fields ...string) *SearchBuilder {
	b.q.Facets = append(b.q.Facets, fields...)
	return b
}

// Build validates and returns the query.
func (b *SearchBuilder) Build() (*SearchQuery, error) {
	if err := b.q.Validate(); err != nil {
		return nil, err
	}
	q := b.q
	return &q, nil
}

// MustBuild calls Build and panics on error.
func (b *SearchBuilder) MustBuild() *SearchQuery {
	q, err := b.Build()
	if err != nil {
		panic(err)
	}
	return q
}

// Validate checks the query for structural errors.
func (q *SearchQuery) Validate() error {
	if q.Index == "" {
		return ErrIndexRequired
	}
	if q.Limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", q.Limit)
	}
	if q.Offset < 0 {
		return fmt.Errorf("offset must not be negative, got %d", q.Offset)
	}
	return nil
}

// FilterString joins the filter clauses into the single-string form.
func (q *SearchQuery) FilterString() string {
	return strings.Join(q.Filter, " AND ")
}

// String returns a debug representation of the query.
func (q *SearchQuery) String() string {
	parts := []string{"SEARCH", q.Index, strconv.Quote(q.Keyword),
		"LIMIT", strconv.Itoa(q.Limit), "OFFSET", strconv.Itoa(q.Offset)}
	if len(q.Filter) > 0 {
		parts = append(parts, "FILTER", q.FilterString())
	}
	if len(q.Sort) > 0 {
		parts = append(parts, "SORT", strings.Join(q.Sort, ","))
	}
	if len(q.Facets) > 0 {
		parts = append(parts, "FACETS", strings.Join(q.Facets, ","))
	}
	if len(q.Attributes) > 0 {
		parts = append(parts, "RETURN", strings.Join(q.Attributes, ","))
	}
	return strings.Join(parts, " ")
}
