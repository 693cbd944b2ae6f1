// Package envelope defines the uniform {success, data|error} result shape.
package envelope

// Failure classifications reported in error_type.
const (
	TypeCommunication    = "communication_error"
	TypeUnknown          = "unknown_error"
	TypeInvalidArguments = "invalid_arguments"
)

// CodeUnknown is reported in error_code when the engine gave no code.
const CodeUnknown = "unknown"

// Envelope is returned by every operation. Exactly one of the success or
// failure field groups is populated.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`

	// Detailed success fields, passed through from the engine.
	EstimatedTotalHits *int64 `json:"estimated_total_hits,omitempty"`
	Limit              *int64 `json:"limit,omitempty"`
	Offset             *int64 `json:"offset,omitempty"`
	ProcessingTimeMs   *int64 `json:"processing_time_ms,omitempty"`

	Error     string `json:"error,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
	ErrorType string `json:"error_type,omitempty"`
}

// Page holds the engine pagination metadata of the detailed shape.
type Page struct {
	EstimatedTotalHits int64
	Limit              int64
	Offset             int64
	ProcessingTimeMs   int64
}

// OK builds a success envelope with data, count and message.
func OK(data any, count int, message string) Envelope {
	return Envelope{Success: true, Data: data, Count: &count, Message: message}
}

// WithPage attaches the detailed pagination fields.
func (e Envelope) WithPage(p Page) Envelope {
	e.EstimatedTotalHits = &p.EstimatedTotalHits
	e.Limit = &p.Limit
	e.Offset = &p.Offset
	e.ProcessingTimeMs = &p.ProcessingTimeMs
	return e
}

// RequestFailure reports an engine-side request or validation error.
func RequestFailure(message, code string) Envelope {
	if code == "" {
		code = CodeUnknown
	}
	return Envelope{Error: message, ErrorCode: code}
}

// CommunicationFailure reports that the engine could not be reached.
func CommunicationFailure(message string) Envelope {
	return Envelope{Error: message, ErrorType: TypeCommunication}
}

// UnknownFailure reports an unclassified failure.
func UnknownFailure(message string) Envelope {
	return Envelope{Error: message, ErrorType: TypeUnknown}
}

// InvalidArguments reports tool arguments that could not be decoded.
func InvalidArguments(message string) Envelope {
	return Envelope{Error: message, ErrorType: TypeInvalidArguments}
}
