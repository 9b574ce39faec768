package logs

import "fmt"

// StoreError reports a failed record store operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("log store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// SkipReason explains why Setup did not write a record.
type SkipReason string

const (
	SkipNone     SkipReason = ""
	SkipDisabled SkipReason = "disabled"
	SkipStatus   SkipReason = "status"
	SkipTrigger  SkipReason = "trigger"
)
