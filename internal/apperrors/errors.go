package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicateEmail indicates a registration attempt with an email that is
// already taken.
var ErrDuplicateEmail = errors.New("a user is already registered with this email")

// ErrUserNotFound indicates that no user exists for the supplied email.
var ErrUserNotFound = errors.New("no user found for the given email")

// ErrInvalidCredentials indicates that the supplied password did not match
// the stored hash.
var ErrInvalidCredentials = errors.New("invalid password")

// ErrTokenExpired indicates that a credential's embedded expiry has passed.
var ErrTokenExpired = errors.New("credential has expired")

// ErrUnauthorized indicates a request without a valid credential.
var ErrUnauthorized = errors.New("unauthorized")

// ErrMissingEntryID indicates an update or delete on an entry that was never
// persisted. This is a caller contract violation, not a business failure.
var ErrMissingEntryID = errors.New("entry has no identifier")

// Entry validation failures, one per rule. Each wraps ErrValidation so the
// whole family can be matched with errors.Is(err, ErrValidation).
var (
	ErrInvalidDescription = fmt.Errorf("%w: a non-empty description is required", ErrValidation)
	ErrInvalidMonth       = fmt.Errorf("%w: month must be between 1 and 12", ErrValidation)
	ErrInvalidYear        = fmt.Errorf("%w: year must have exactly 4 digits", ErrValidation)
	ErrMissingOwner       = fmt.Errorf("%w: entry must belong to a saved user", ErrValidation)
	ErrInvalidValue       = fmt.Errorf("%w: value must be greater than zero", ErrValidation)
	ErrMissingType        = fmt.Errorf("%w: entry type is required", ErrValidation)
	ErrInvalidStatus      = fmt.Errorf("%w: unknown entry status", ErrValidation)
)
