package domain

import (
	"fmt"
	"strings"
)

// Error types for consistent error handling across the API.

// ErrValidation indicates a malformed inbound request (bad input).
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrAuthentication indicates the OAuth refresh-token exchange failed.
// Detail carries the upstream status/body verbatim; credentials are never
// part of it.
type ErrAuthentication struct {
	Status int
	Detail string
}

func (e *ErrAuthentication) Error() string {
	return fmt.Sprintf("token refresh failed (status %d): %s", e.Status, e.Detail)
}

// ErrNoReachableDomain indicates every regional API domain failed the probe.
type ErrNoReachableDomain struct {
	Tried []string
}

func (e *ErrNoReachableDomain) Error() string {
	return fmt.Sprintf("no reachable CRM API domain, tried: %s", strings.Join(e.Tried, ", "))
}

// ErrLeadSubmission indicates the CRM rejected a record for a reason other
// than authorization. Status and Body are kept verbatim for support
// diagnostics.
type ErrLeadSubmission struct {
	Module string
	Status int
	Body   string
}

func (e *ErrLeadSubmission) Error() string {
	return fmt.Sprintf("%s submission rejected (status %d): %s", e.Module, e.Status, e.Body)
}

// ErrExternalService indicates a transport-level failure calling an external
// service.
type ErrExternalService struct {
	Service string
	Err     error
}

func (e *ErrExternalService) Error() string {
	return fmt.Sprintf("external service error [%s]: %v", e.Service, e.Err)
}

func (e *ErrExternalService) Unwrap() error {
	return e.Err
}
