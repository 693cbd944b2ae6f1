// Package timefield normalizes date/time filter values and maps logical time
// fields to their epoch-millisecond shadow fields.
package timefield

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Mode is the time representation used by the index schema.
type Mode string

// Time modes.
const (
	// ISO stores times as ISO-8601 strings with a Z suffix.
	ISO Mode = "iso"
	// Timestamp filters and sorts on numeric *Timestamp shadow fields.
	Timestamp Mode = "timestamp"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == ISO || m == Timestamp
}

// shadows maps every known logical time field to its shadow field.
var shadows = map[string]string{
	"createdAt":     "createdAtTimestamp",
	"updatedAt":     "updatedAtTimestamp",
	"expiresAt":     "expiresAtTimestamp",
	"publishDate":   "publishDateTimestamp",
	"effectDate":    "effectDateTimestamp",
	"expireDate":    "expireDateTimestamp",
	"establishDate": "establishDateTimestamp",
}

// Shadow returns the shadow field for a logical time field.
func Shadow(field string) (string, bool) {
	s, ok := shadows[field]
	return s, ok
}

// Known reports whether field is a logical time field with a shadow.
func Known(field string) bool {
	_, ok := shadows[field]
	return ok
}

// Fields returns the logical time fields in no particular order.
func Fields() []string {
	out := make([]string, 0, len(shadows))
	for f := range shadows {
		out = append(out, f)
	}
	return out
}

// isoMillis is the output layout when the instant has sub-second precision.
const isoMillis = "2006-01-02T15:04:05.000Z"

// isoSeconds is the output layout for whole-second instants.
const isoSeconds = "2006-01-02T15:04:05Z"

// FormatISO renders t in UTC with a Z suffix, keeping milliseconds when present.
func FormatISO(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()/int(time.Millisecond) != 0 {
		return t.Format(isoMillis)
	}
	return t.Format(isoSeconds)
}

// FromEpochMillis renders an epoch-millisecond value as an ISO-8601 string.
func FromEpochMillis(ms int64) string {
	return FormatISO(time.UnixMilli(ms))
}

// ToEpochMillis parses an ISO-8601 string (with or without a trailing Z) into epoch milliseconds.
func ToEpochMillis(s string) (int64, bool) {
	t, ok := parseTime(s)
	if !ok {
		return 0, false
	}
	return t.UnixMilli(), true
}

// isoLayouts are tried before falling back to dateparse. Zone-less layouts are read as UTC.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	// dateparse reads bare digit runs as epochs; those are not ISO-8601 and stay untouched.
	if isDigits(s) {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil || !hasYear(s, t) {
		return time.Time{}, false
	}
	return t, true
}

// hasYear accepts a lenient parse only when the input spells out the year it
// produced. Times of day and short numeric runs such as "10:30", "12.5" or "3/4"
// otherwise come back as instants in year 1 or the current year.
func hasYear(s string, t time.Time) bool {
	y := t.Year()
	if y <= 1 || y > 9999 {
		return false
	}
	return strings.Contains(s, strconv.Itoa(y)) || strings.Contains(s, fmt.Sprintf("/%02d", y%100))
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Normalize coerces a time-field value into the representation required by the mode.
// Values that cannot be converted are returned unchanged.
func (m Mode) Normalize(v any) any {
	switch m {
	case ISO:
		return toISO(v)
	case Timestamp:
		return toEpochMillis(v)
	default:
		return v
	}
}

func toISO(v any) any {
	switch t := v.(type) {
	case bool:
		return v
	case time.Time:
		return FormatISO(t)
	case *time.Time:
		if t == nil {
			return v
		}
		return FormatISO(*t)
	}
	secs, ok := number(v)
	if !ok {
		return v
	}
	s, ok := fromEpochSeconds(secs)
	if !ok {
		return v
	}
	return s
}

// maxEpochSeconds is 9999-12-31T23:59:59Z, the last instant an ISO-8601 year can hold.
const maxEpochSeconds = 253402300799

// minEpochSeconds is 0001-01-01T00:00:00Z.
const minEpochSeconds = -62135596800

func fromEpochSeconds(secs float64) (string, bool) {
	if math.IsNaN(secs) || math.IsInf(secs, 0) {
		return "", false
	}
	if secs > maxEpochSeconds || secs < minEpochSeconds {
		return "", false
	}
	whole, frac := math.Modf(secs)
	ms := math.Round(frac * 1000)
	t := time.Unix(int64(whole), 0).Add(time.Duration(ms) * time.Millisecond)
	return FormatISO(t), true
}

func toEpochMillis(v any) any {
	switch t := v.(type) {
	case string:
		if ms, ok := ToEpochMillis(t); ok {
			return ms
		}
		return v
	case time.Time:
		return t.UnixMilli()
	case *time.Time:
		if t == nil {
			return v
		}
		return t.UnixMilli()
	default:
		return v
	}
}

// number extracts a float from numeric values, excluding booleans.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
