package searchtools

import "encoding/json"

// TimeMode selects how time-field values are represented in filters.
type TimeMode string

// Time mode constants.
const (
	// TimeModeISO compares ISO-8601 strings on the logical fields.
	TimeModeISO TimeMode = "iso"
	// TimeModeTimestamp compares epoch milliseconds on the *Timestamp shadow fields.
	TimeModeTimestamp TimeMode = "timestamp"
)

// ResponseMode selects the success result shape.
type ResponseMode string

// Response mode constants.
const (
	ResponseBasic    ResponseMode = "basic"
	ResponseDetailed ResponseMode = "detailed"
)

// IndexProfile describes how filters on one index are compiled.
// Indexes without a profile treat createdAt and updatedAt as time fields.
type IndexProfile struct {
	Name        string
	Label       string
	TimeFields  []string
	ExpiryField string
	// HideExpired adds a visibility clause unless the filter references ExpiryField.
	HideExpired bool
}

// Areas configures area-name discovery.
type Areas struct {
	FacetField   string
	FacetIndexes []string
	ScanIndex    string
	ScanField    string
	MaxScanHits  int
}

// SearchParams is one search over an index.
type SearchParams struct {
	Keyword string
	// Filter is compiled in lexical key order. Use FilterJSON to keep the caller's order.
	Filter map[string]any
	// FilterJSON takes precedence over Filter when set.
	FilterJSON json.RawMessage
	Limit      int
	Offset     int
	Attributes []string
	// Sort tokens are field[:asc|desc].
	Sort []string
}

// Result is the uniform outcome of every operation.
type Result struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   int    `json:"count"`
	Message string `json:"message,omitempty"`

	EstimatedTotalHits *int64 `json:"estimated_total_hits,omitempty"`
	Limit              *int64 `json:"limit,omitempty"`
	Offset             *int64 `json:"offset,omitempty"`
	ProcessingTimeMs   *int64 `json:"processing_time_ms,omitempty"`

	Error     string `json:"error,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
	ErrorType string `json:"error_type,omitempty"`
}

// Hits returns Data as a hit list, or nil when Data holds something else.
func (r Result) Hits() []map[string]any {
	hits, _ := r.Data.([]map[string]any)
	return hits
}

// Compiled is the engine query produced for a search, without running it.
type Compiled struct {
	Index   string
	Clauses []string
	// Filter is Clauses joined with AND.
	Filter string
	Sort   []string
	Limit  int
	Offset int
}
