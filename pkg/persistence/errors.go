// Package persistence provides standardized error types shared by all
// storage adapters.
package persistence

import (
	"errors"
	"fmt"
)

var (
	// ErrWorkflowNotFound indicates a workflow was not found by the given identifier.
	ErrWorkflowNotFound = errors.New("workflow not found")

	// ErrCandidateNotFound indicates a candidate was not found by the given identifier.
	ErrCandidateNotFound = errors.New("candidate not found")

	// ErrJobNotFound indicates a job was not found by the given identifier.
	ErrJobNotFound = errors.New("job not found")

	// ErrEEORecordNotFound indicates the candidate has no voluntary self-report.
	ErrEEORecordNotFound = errors.New("eeo record not found")

	// ErrDecisionNotFound indicates an AI decision was not found by the given identifier.
	ErrDecisionNotFound = errors.New("decision not found")

	// ErrAuditNotFound indicates no bias audit exists for the requested scope.
	ErrAuditNotFound = errors.New("bias audit not found")

	// ErrReviewAlreadyExists indicates the decision already carries its one
	// allowed human review.
	ErrReviewAlreadyExists = errors.New("decision already reviewed")
)

// StoreError wraps storage errors with operation context.
type StoreError struct {
	Op    string // Operation being performed (e.g., "GetByID", "Save")
	Table string // Logical table name
	ID    string // Document ID if applicable
	Err   error  // Underlying error
}

func (e *StoreError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s on %s %s: %v", e.Op, e.Table, e.ID, e.Err)
	}

	return fmt.Sprintf("%s on %s: %v", e.Op, e.Table, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewStoreError creates a new store error with context.
func NewStoreError(op, table, id string, err error) *StoreError {
	return &StoreError{Op: op, Table: table, ID: id, Err: err}
}

// IsWorkflowNotFound checks if an error indicates a workflow was not found.
func IsWorkflowNotFound(err error) bool {
	return errors.Is(err, ErrWorkflowNotFound)
}

// IsCandidateNotFound checks if an error indicates a candidate was not found.
func IsCandidateNotFound(err error) bool {
	return errors.Is(err, ErrCandidateNotFound)
}

// IsNotFound checks if an error indicates any entity was not found.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrWorkflowNotFound) ||
		errors.Is(err, ErrCandidateNotFound) ||
		errors.Is(err, ErrJobNotFound) ||
		errors.Is(err, ErrEEORecordNotFound) ||
		errors.Is(err, ErrDecisionNotFound) ||
		errors.Is(err, ErrAuditNotFound)
}
