package mode

// Mode is the success envelope shape returned by search operations.
type Mode string

// Response mode constants.
const (
	// Basic returns data, count and message only.
	Basic Mode = "basic"
	// Detailed also passes through engine totals, pagination and timing.
	Detailed Mode = "detailed"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Basic || m == Detailed
}
