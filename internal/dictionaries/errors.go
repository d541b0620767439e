package dictionaries

import "fmt"

// LoadError represents a failure to read, validate, or parse a dictionary resource.
type LoadError struct {
	Resource string
	Message  string
	Cause    error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("dictionary %s: %s: %v", e.Resource, e.Message, e.Cause)
	}
	return fmt.Sprintf("dictionary %s: %s", e.Resource, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
