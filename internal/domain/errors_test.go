package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestArgumentError(t *testing.T) {
	err := NewArgumentError("limit", "must be an integer")

	if !errors.Is(err, ErrInvalidArguments) {
		t.Error("ArgumentError should unwrap to ErrInvalidArguments")
	}
	want := "invalid arguments: limit: must be an integer"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	wrapped := fmt.Errorf("tool search_index: %w", err)
	var ae *ArgumentError
	if !errors.As(wrapped, &ae) || ae.Name != "limit" {
		t.Errorf("errors.As = %+v", ae)
	}
}

func TestSentinels_Distinct(t *testing.T) {
	all := []error{ErrAlreadyRegistered, ErrUnknownTool, ErrInvalidArguments, ErrIndexRequired, ErrAreasDisabled}
	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Errorf("%v matches %v", a, b)
			}
		}
	}
}
