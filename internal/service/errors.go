package service

import "errors"

// Error categories. Every error returned by this package either matches one
// of these via errors.Is or is an unexpected storage failure.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

var (
	ErrEmailRequired      = kindError(ErrInvalidInput, "email is required")
	ErrPasswordRequired   = kindError(ErrInvalidInput, "password is required")
	ErrInvalidInfo        = kindError(ErrInvalidInput, "info must be a JSON object")
	ErrEmailTaken         = kindError(ErrConflict, "email already registered")
	ErrInvalidCredentials = kindError(ErrUnauthorized, "invalid email or password")
	ErrForbidden          = kindError(ErrUnauthorized, "token does not grant access to this patient")
	ErrPatientNotFound    = kindError(ErrNotFound, "patient not found")
	ErrSideEffectNotFound = kindError(ErrNotFound, "adverse side effect not found")
	ErrNoHealthConditions = kindError(ErrNotFound, "no health conditions found")
	ErrNoMedications      = kindError(ErrNotFound, "no medications found")
	ErrNoSideEffects      = kindError(ErrNotFound, "no adverse side effects found")
	ErrNoSideEffectDetail = kindError(ErrNotFound, "no adverse side effect details found")
	ErrNoProviders        = kindError(ErrNotFound, "no providers found")
)

// categorized is an error that belongs to a category while keeping its own
// message and, optionally, an underlying cause.
type categorized struct {
	kind  error
	msg   string
	cause error
}

func kindError(kind error, msg string) error {
	return &categorized{kind: kind, msg: msg}
}

// withKind puts cause into a category without changing its message.
func withKind(kind, cause error) error {
	return &categorized{kind: kind, msg: cause.Error(), cause: cause}
}

func (e *categorized) Error() string { return e.msg }

func (e *categorized) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}
