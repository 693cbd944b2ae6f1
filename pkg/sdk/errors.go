package searchtools

import (
	"fmt"

	"github.com/kailas-cloud/searchtools/internal/db"
	"github.com/kailas-cloud/searchtools/internal/domain"
)

// Sentinel errors re-exported from the internal layers.
// Use errors.Is() to check.
var (
	ErrIndexRequired    = db.ErrIndexRequired
	ErrInvalidArguments = domain.ErrInvalidArguments
)

// ResultError is the error form of a failure Result.
type ResultError struct {
	Message string
	// Code is the engine error code of a rejected request.
	Code string
	// Type is communication_error, unknown_error or invalid_arguments.
	Type string
}

func (e *ResultError) Error() string {
	switch {
	case e.Code != "":
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	case e.Type != "":
		return fmt.Sprintf("%s (%s)", e.Message, e.Type)
	default:
		return e.Message
	}
}

// Err returns nil for a success Result and a *ResultError otherwise.
func (r Result) Err() error {
	if r.Success {
		return nil
	}
	return &ResultError{Message: r.Error, Code: r.ErrorCode, Type: r.ErrorType}
}
