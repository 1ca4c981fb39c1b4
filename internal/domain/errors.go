package domain

import (
	"fmt"
	"time"
)

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// ValidationError represents a missing required field or a referenced
// id that does not exist. Reference names the first failing field.
type ValidationError struct {
	Reference string
	Reason    string
}

func (e ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s: %s", e.Reference, e.Reason)
	}
	return fmt.Sprintf("invalid reference: %s", e.Reference)
}

func (e ValidationError) Is(target error) bool {
	_, ok := target.(ValidationError)
	if ok {
		return true
	}
	_, ok = target.(*ValidationError)
	return ok
}

var ErrValidation = ValidationError{}

// ConflictError represents a duplicate unique value.
type ConflictError struct {
	Resource string
}

func (e ConflictError) Error() string {
	if e.Resource == "" {
		return "conflict"
	}
	return fmt.Sprintf("%s already exists", e.Resource)
}

func (e ConflictError) Is(target error) bool {
	_, ok := target.(ConflictError)
	if ok {
		return true
	}
	_, ok = target.(*ConflictError)
	return ok
}

var ErrConflict = ConflictError{}

// ValidityExceededError is raised when a create or update would push a
// chain's cumulative validity window past the 24-month legal cap. The
// whole operation is aborted; nothing is persisted.
type ValidityExceededError struct {
	ChainStart     time.Time `json:"chainStart"`
	ChainEnd       time.Time `json:"chainEnd"`
	LegalLimitDate time.Time `json:"legalLimitDate"`
	TotalMonths    int       `json:"totalMonths"`
	TotalDays      int       `json:"totalDays"`
}

func (e ValidityExceededError) Error() string {
	return fmt.Sprintf(
		"chain validity of %d months and %d days exceeds the %d-month legal cap (limit %s)",
		e.TotalMonths, e.TotalDays, MaxValidityMonths, e.LegalLimitDate.Format("2006-01-02"),
	)
}

func (e ValidityExceededError) Is(target error) bool {
	_, ok := target.(ValidityExceededError)
	if ok {
		return true
	}
	_, ok = target.(*ValidityExceededError)
	return ok
}

var ErrValidityExceeded = ValidityExceededError{}

// NewValidityExceeded builds the error payload for a rejected window.
func NewValidityExceeded(w ValidityWindow) ValidityExceededError {
	return ValidityExceededError{
		ChainStart:     w.Start,
		ChainEnd:       w.End,
		LegalLimitDate: w.LegalLimit(),
		TotalMonths:    w.Months(),
		TotalDays:      w.Days(),
	}
}

// RenderError represents a failure of the external rendering service.
// It is fatal to the single request only and never affects contract
// data; callers must be able to tell it apart from validation errors.
type RenderError struct {
	Cause error
}

func (e RenderError) Error() string {
	if e.Cause == nil {
		return "rendering failed"
	}
	return fmt.Sprintf("rendering failed: %v", e.Cause)
}

func (e RenderError) Unwrap() error { return e.Cause }

func (e RenderError) Is(target error) bool {
	_, ok := target.(RenderError)
	if ok {
		return true
	}
	_, ok = target.(*RenderError)
	return ok
}

var ErrRender = RenderError{}
