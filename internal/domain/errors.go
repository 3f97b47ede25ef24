package domain

import "errors"

// ErrNotFound is returned when the requested resource does not exist or the
// caller has no access to it. The two cases are deliberately indistinguishable.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. title too short, unknown category mode).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write would break a uniqueness rule:
// duplicate email, duplicate category name, or an item already claimed
// by someone else. Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrForbidden is returned when the caller is authenticated and can see the
// resource but a precondition for the write is unmet.
// Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthenticated is returned for missing or bad credentials.
// Handlers should map this to HTTP 401.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrInvalidOperation is returned when an operation does not apply to the
// target, such as claiming an item in a PER_USER category.
// Handlers should map this to HTTP 400.
var ErrInvalidOperation = errors.New("invalid operation")
