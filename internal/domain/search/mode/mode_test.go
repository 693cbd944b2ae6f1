package mode

import "testing"

func TestIsValid(t *testing.T) {
	valid := []Mode{Basic, Detailed}
	for _, m := range valid {
		if !m.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", m)
		}
	}

	invalid := []Mode{"", "full", "BASIC", "verbose"}
	for _, m := range invalid {
		if m.IsValid() {
			t.Errorf("%q.IsValid() = true, want false", m)
		}
	}
}

func TestConstants(t *testing.T) {
	if Basic != "basic" {
		t.Errorf("Basic = %q", Basic)
	}
	if Detailed != "detailed" {
		t.Errorf("Detailed = %q", Detailed)
	}
}
