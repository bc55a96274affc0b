package layout

import "fmt"

// LayoutError wraps a failure reported by the measurement primitive
type LayoutError struct {
	Line    int // input line being laid out, -1 for the header
	Message string
	Cause   error
}

func (e *LayoutError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("layout error at line %d: %s: %v", e.Line, e.Message, e.Cause)
	}
	return fmt.Sprintf("layout error at line %d: %s", e.Line, e.Message)
}

func (e *LayoutError) Unwrap() error {
	return e.Cause
}
