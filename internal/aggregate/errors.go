package aggregate

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	ErrMissingToken      = errors.New("missing required token")
	ErrNumericConversion = errors.New("not a number")
	ErrEmptyBucket       = errors.New("scenario has no measurements")
	ErrLengthMismatch    = errors.New("scenarios have different measurement counts")
	ErrUnknownScenario   = errors.New("scenario not present in log")
	ErrNoScenarios       = errors.New("no scenarios requested")
	ErrUnknownFormat     = errors.New("unknown log format")
)

// ParseError reports a log line that could not be decoded. Err wraps either
// ErrMissingToken or ErrNumericConversion.
type ParseError struct {
	Line int // 1-based
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EmptyBucketError is returned when a mean is requested for a scenario
// without measurements
type EmptyBucketError struct {
	Scenario string
}

func (e *EmptyBucketError) Error() string {
	return fmt.Sprintf("%s: %v", e.Scenario, ErrEmptyBucket)
}

func (e *EmptyBucketError) Is(target error) bool {
	return target == ErrEmptyBucket
}

// LengthMismatchError lists the bucket sizes that prevented a columnar export
type LengthMismatchError struct {
	Scenarios []string
	Lengths   []int
}

func (e *LengthMismatchError) Error() string {
	parts := make([]string, len(e.Scenarios))
	for i, s := range e.Scenarios {
		parts[i] = fmt.Sprintf("%s=%d", s, e.Lengths[i])
	}
	return fmt.Sprintf("%v (%s)", ErrLengthMismatch, strings.Join(parts, ", "))
}

func (e *LengthMismatchError) Is(target error) bool {
	return target == ErrLengthMismatch
}
