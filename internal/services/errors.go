package services

import "errors"

// Service-level error taxonomy. Handlers translate these to HTTP statuses;
// nothing below this layer fabricates data on failure.
var (
	// ErrNoTenant: the operation needs a resolved tenant membership and
	// none exists for the caller.
	ErrNoTenant = errors.New("no tenant membership resolved")

	// ErrNotFound: the entity does not exist within the caller's tenant.
	// Cross-tenant IDs are indistinguishable from absent ones.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized: the caller's role does not permit the operation.
	ErrUnauthorized = errors.New("operation not permitted for role")

	// ErrConflict: a uniqueness constraint was violated.
	ErrConflict = errors.New("conflict")

	// ErrBackendUnavailable: a transient database failure. Retryable.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrInvalidInput: the request payload failed domain validation.
	ErrInvalidInput = errors.New("invalid input")
)
