package timefield

import (
	"encoding/json"
	"testing"
	"time"
)

func TestMode_IsValid(t *testing.T) {
	tests := []struct {
		mode Mode
		want bool
	}{
		{ISO, true},
		{Timestamp, true},
		{"", false},
		{"epoch", false},
	}
	for _, tt := range tests {
		if got := tt.mode.IsValid(); got != tt.want {
			t.Errorf("Mode(%q).IsValid() = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestShadow(t *testing.T) {
	s, ok := Shadow("createdAt")
	if !ok || s != "createdAtTimestamp" {
		t.Errorf("Shadow(createdAt) = %q, %v", s, ok)
	}
	if _, ok := Shadow("createdAtTimestamp"); ok {
		t.Error("shadow names must not map again")
	}
	if _, ok := Shadow("category"); ok {
		t.Error("category is not a time field")
	}
	for _, f := range Fields() {
		s, _ := Shadow(f)
		if Known(s) {
			t.Errorf("shadow %q of %q is itself a time field", s, f)
		}
	}
}

func TestToEpochMillis(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"2025-09-09T00:00:00.000Z", 1757376000000, true},
		{"2025-09-09T00:00:00Z", 1757376000000, true},
		{"2025-09-09T00:00:00", 1757376000000, true},
		{"2025-09-09T07:43:16.910Z", 1757403796910, true},
		{"2025-09-09T08:00:00+08:00", 1757376000000, true},
		{"2025-09-09", 1757376000000, true},
		{"unknown", 0, false},
		{"1757376000", 0, false},
		{"12.5", 0, false},
		{"3/4", 0, false},
		{"10:30", 0, false},
		{"1.2.3", 0, false},
		{"2025-13-45", 0, false},
		{"Sep 9, 2025", 1757376000000, true},
		{"9/9/2025", 1757376000000, true},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ToEpochMillis(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ToEpochMillis(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestEpochMillis_RoundTrip(t *testing.T) {
	inputs := []string{
		"2025-09-09T07:43:16.910Z",
		"2025-09-09T00:00:00.001Z",
		"1999-12-31T23:59:59.999Z",
		"2025-09-09T23:59:59Z",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			ms, ok := ToEpochMillis(in)
			if !ok {
				t.Fatalf("parse %q failed", in)
			}
			back := FromEpochMillis(ms)
			again, ok := ToEpochMillis(back)
			if !ok || again != ms {
				t.Fatalf("round trip %q -> %d -> %q -> %d", in, ms, back, again)
			}
			if back != in {
				t.Errorf("FromEpochMillis(%d) = %q, want %q", ms, back, in)
			}
		})
	}
}

func TestNormalize_ISO(t *testing.T) {
	ts := time.Date(2025, 9, 9, 7, 43, 16, 910_000_000, time.UTC)
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"time value", ts, "2025-09-09T07:43:16.910Z"},
		{"time in other zone", ts.In(time.FixedZone("CST", 8*3600)), "2025-09-09T07:43:16.910Z"},
		{"int seconds", int64(1757376000), "2025-09-09T00:00:00Z"},
		{"json seconds", json.Number("1757376000"), "2025-09-09T00:00:00Z"},
		{"float seconds", 1757403796.91, "2025-09-09T07:43:16.910Z"},
		{"string unchanged", "2025-09-09T00:00:00.000Z", "2025-09-09T00:00:00.000Z"},
		{"bool unchanged", true, true},
		{"out of range unchanged", 1e300, 1e300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ISO.Normalize(tt.in)
			if got != tt.want {
				t.Errorf("Normalize(%#v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Timestamp(t *testing.T) {
	ts := time.Date(2025, 9, 9, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"iso with Z", "2025-09-09T00:00:00.000Z", int64(1757376000000)},
		{"iso without Z", "2025-09-09T00:00:00", int64(1757376000000)},
		{"time value", ts, int64(1757376000000)},
		{"number passthrough", json.Number("1757376000000"), json.Number("1757376000000")},
		{"int passthrough", 42, 42},
		{"garbage unchanged", "unknown", "unknown"},
		{"decimal string unchanged", "12.5", "12.5"},
		{"day-month unchanged", "3/4", "3/4"},
		{"time of day unchanged", "10:30", "10:30"},
		{"dotted triple unchanged", "1.2.3", "1.2.3"},
		{"bool unchanged", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Timestamp.Normalize(tt.in)
			if got != tt.want {
				t.Errorf("Normalize(%#v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}
