package request

import (
	"fmt"
	"unicode/utf8"

	"github.com/kailas-cloud/searchtools/internal/domain/search/filter"
	"github.com/kailas-cloud/searchtools/internal/domain/search/sortspec"
)

// Search parameter limits.
const (
	// MaxKeywordLength is the maximum allowed keyword length in characters.
	MaxKeywordLength = 512
	DefaultLimit     = 20
	MaxLimit         = 1000
)

// Request is a validated search over one index.
type Request struct {
	keyword    string
	filters    filter.Conditions
	limit      int
	offset     int
	attributes []string
	sort       sortspec.Spec
}

// New validates search parameters. An empty keyword matches every document.
// Limit and offset are normalized with the package defaults; see Normalize.
func New(
	keyword string,
	filters filter.Conditions,
	limit, offset int,
	attributes []string,
	sort []string,
) (Request, error) {
	if utf8.RuneCountInString(keyword) > MaxKeywordLength {
		return Request{}, fmt.Errorf("keyword too long (max %d chars)", MaxKeywordLength)
	}
	r := Request{
		keyword:    keyword,
		filters:    filters,
		limit:      limit,
		offset:     offset,
		attributes: attributes,
		sort:       sortspec.ParseAll(sort),
	}
	return r.Normalize(DefaultLimit, MaxLimit), nil
}

// Normalize clamps pagination: limit<=0 becomes defaultLimit, limit>maxLimit becomes maxLimit,
// negative offsets become 0.
func (r Request) Normalize(defaultLimit, maxLimit int) Request {
	if r.limit <= 0 {
		r.limit = defaultLimit
	}
	if maxLimit > 0 && r.limit > maxLimit {
		r.limit = maxLimit
	}
	if r.offset < 0 {
		r.offset = 0
	}
	return r
}

// Keyword returns the full-text query.
func (r *Request) Keyword() string { return r.keyword }

// Filters returns the caller's filter conditions.
func (r *Request) Filters() filter.Conditions { return r.filters }

// Limit returns the page size.
func (r *Request) Limit() int { return r.limit }

// Offset returns the number of hits to skip.
func (r *Request) Offset() int { return r.offset }

// Attributes returns the field projection (nil means all fields).
func (r *Request) Attributes() []string { return r.attributes }

// Sort returns the requested sort spec.
func (r *Request) Sort() sortspec.Spec { return r.sort }
