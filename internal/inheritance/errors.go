package inheritance

import (
	"errors"
	"fmt"

	"github.com/inodb/inhmode/internal/genotype"
)

var (
	// ErrInvalidRecord is wrapped by every ValidationError.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrInvalidState is wrapped by every InvalidStateError.
	ErrInvalidState = errors.New("invalid state")
)

// ValidationError reports a record that cannot be classified.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid record: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRecord
}

// InvalidStateError reports a combination of inputs the rule cascade
// considers impossible, such as a sex-chromosome de novo call with a
// novoPP that is neither 0 nor absent.
type InvalidStateError struct {
	Rule   string
	NovoPP float64
	Chrom  genotype.ChromClass
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("rule %s: novoPP %g on %s must be 0 or absent", e.Rule, e.NovoPP, e.Chrom)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}
