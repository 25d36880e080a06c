package contentapi

import (
	"errors"
	"fmt"
	"strings"
)

// BackendRejection is a 2xx response whose body encodes a semantic failure,
// e.g. "already belongs to" or "duplicate". The transport alone cannot tell
// it apart from success; the body detail has to be inspected.
type BackendRejection struct {
	Operation string
	Detail    string
}

func (e *BackendRejection) Error() string {
	return fmt.Sprintf("%s rejected by backend: %s", e.Operation, e.Detail)
}

// NetworkError is a transport-level failure: connection refused, timeout, or
// a non-2xx status.
type NetworkError struct {
	Operation string
	Status    int
	Err       error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s failed with status %d", e.Operation, e.Status)
	}
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsRejection reports whether err is a backend rejection rather than a
// transport failure.
func IsRejection(err error) bool {
	var rej *BackendRejection
	return errors.As(err, &rej)
}

// rejectionDetail recognizes the semantic-failure phrasings the backend hides
// inside 2xx bodies. Anything else in a detail field is a warning.
func rejectionDetail(detail string) bool {
	d := strings.ToLower(detail)
	return strings.Contains(d, "duplicate") || strings.Contains(d, "already belongs")
}
