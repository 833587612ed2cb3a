package model

import "fmt"

// ValidationError is a 400-class error for requests that reference data in an
// impossible state, like a trade naming a player who is not on the roster.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
