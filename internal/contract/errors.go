package contract

import (
	"errors"
	"fmt"
)

// Kind tags an error with its place in the failure taxonomy. Dispatch happens
// on the tag, not on concrete types.
type Kind string

// Failure taxonomy.
const (
	KindRepositoryAccess Kind = "repository_access" // Not found, inaccessible, or private
	KindEmptyRepository  Kind = "empty_repository"  // Valid repository, zero commits
	KindNetworkTransient Kind = "network_transient" // Clone/network interruption, retriable
	KindAggregation      Kind = "aggregation"       // Failure during the reduction passes
	KindFileNotFound     Kind = "file_not_found"    // Path has no history or does not exist
	KindCache            Kind = "cache"             // Must never escape the cache layer
	KindNarrator         Kind = "narrator"          // Must never escape orchestration
)

// StatusClass is the boundary-level classification of a Kind.
type StatusClass string

// Boundary status classes. The transport layer maps these onto its own
// status codes.
const (
	StatusBadInput  StatusClass = "bad_input"
	StatusNotFound  StatusClass = "not_found"
	StatusRetriable StatusClass = "retriable"
	StatusInternal  StatusClass = "internal"
)

// statusByKind is the explicit kind-to-boundary mapping.
var statusByKind = map[Kind]StatusClass{
	KindRepositoryAccess: StatusBadInput,
	KindEmptyRepository:  StatusBadInput,
	KindNetworkTransient: StatusRetriable,
	KindAggregation:      StatusInternal,
	KindFileNotFound:     StatusNotFound,
	KindCache:            StatusInternal,
	KindNarrator:         StatusInternal,
}

// Status returns the boundary status class for the kind.
func (k Kind) Status() StatusClass {
	if s, ok := statusByKind[k]; ok {
		return s
	}
	return StatusInternal
}

// Error is a tagged failure. It wraps an optional underlying error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

// Unwrap exposes the underlying error for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a tagged error without an underlying cause.
func NewError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// WrapError tags an underlying error with a kind and context message.
func WrapError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the taxonomy tag from an error chain. Untagged errors
// classify as aggregation failures, the internal-processing class.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindAggregation
}

// IsRetriable reports whether the caller may retry the failed operation.
func IsRetriable(err error) bool {
	return KindOf(err).Status() == StatusRetriable
}
