package common

import (
	"errors"
	"net/http"
)

// Kind enumerates the closed set of failures a request can end with.
type Kind int

const (
	AuthKeyMissing Kind = iota + 1
	AuthKeyInvalid
	EmailMissing
	EmailInvalid
	VaultMissing
	VaultInvalid
	UserExists
	DatabaseRead
	DatabaseWrite
	InternalError
	UserNoExists
)

var kindNames = map[Kind]string{
	AuthKeyMissing: "AuthKeyMissing",
	AuthKeyInvalid: "AuthKeyInvalid",
	EmailMissing:   "EmailMissing",
	EmailInvalid:   "EmailInvalid",
	VaultMissing:   "VaultMissing",
	VaultInvalid:   "VaultInvalid",
	UserExists:     "UserExists",
	DatabaseRead:   "DatabaseRead",
	DatabaseWrite:  "DatabaseWrite",
	InternalError:  "InternalError",
	UserNoExists:   "UserNoExists",
}

var kindMessages = map[Kind]string{
	AuthKeyMissing: "Authentication key missing",
	AuthKeyInvalid: "Authentication key invalid",
	EmailMissing:   "Email missing",
	EmailInvalid:   "Email invalid",
	VaultMissing:   "Vault missing",
	VaultInvalid:   "Vault invalid",
	UserExists:     "User already exists in database",
	DatabaseRead:   "Failed to read database",
	DatabaseWrite:  "Failed to write to database",
	InternalError:  "Internal server error",
	UserNoExists:   "User does not exist in database",
}

// String returns the identifier of the kind, e.g. "VaultInvalid".
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Message returns the text sent to the client for this kind.
func (k Kind) Message() string {
	if s, ok := kindMessages[k]; ok {
		return s
	}
	return kindMessages[InternalError]
}

// Status is the HTTP status reported for the kind. Every failure collapses
// to 400 so that clients learn nothing about server internals.
func (k Kind) Status() int {
	return http.StatusBadRequest
}

// APIError is the error value returned by guards and service operations.
// Err optionally carries the underlying cause for logging; it is never sent
// to the client.
type APIError struct {
	Kind Kind
	Err  error
}

// Sentinels for errors.Is matching. Two APIErrors match when their kinds are
// equal, regardless of the wrapped cause.
var (
	ErrAuthKeyMissing = &APIError{Kind: AuthKeyMissing}
	ErrAuthKeyInvalid = &APIError{Kind: AuthKeyInvalid}
	ErrEmailMissing   = &APIError{Kind: EmailMissing}
	ErrEmailInvalid   = &APIError{Kind: EmailInvalid}
	ErrVaultMissing   = &APIError{Kind: VaultMissing}
	ErrVaultInvalid   = &APIError{Kind: VaultInvalid}
	ErrUserExists     = &APIError{Kind: UserExists}
	ErrDatabaseRead   = &APIError{Kind: DatabaseRead}
	ErrDatabaseWrite  = &APIError{Kind: DatabaseWrite}
	ErrInternal       = &APIError{Kind: InternalError}
	ErrUserNoExists   = &APIError{Kind: UserNoExists}
)

// NewAPIError builds an APIError of the given kind wrapping cause.
func NewAPIError(kind Kind, cause error) *APIError {
	return &APIError{Kind: kind, Err: cause}
}

// Wrap returns a copy of e carrying cause.
func (e *APIError) Wrap(cause error) *APIError {
	return &APIError{Kind: e.Kind, Err: cause}
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Kind.Message() + ": " + e.Err.Error()
	}
	return e.Kind.Message()
}

func (e *APIError) Unwrap() error { return e.Err }

// Is reports whether target is an APIError of the same kind.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Kind == e.Kind
}

// Message is the client-facing text; it never includes the cause.
func (e *APIError) Message() string { return e.Kind.Message() }

// Status is the HTTP status for the error.
func (e *APIError) Status() int { return e.Kind.Status() }

// AsAPIError extracts an APIError from err. Errors outside the taxonomy are
// reported as InternalError.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewAPIError(InternalError, err)
}
