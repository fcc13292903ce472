package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownFacet indicates a facet name that is not recognised.
	ErrUnknownFacet = errors.New("unknown facet")

	// ErrYearOutOfRange indicates a year outside the range for the selected make.
	// The year facet is cleared when this is returned.
	ErrYearOutOfRange = errors.New("year out of range")

	// ErrModelNotAvailable indicates a model that is not in the model option
	// list for the selected make (and year).
	ErrModelNotAvailable = errors.New("model not available for selected make")

	// Catalog Errors.

	// ErrNetworkFailure indicates a transport failure or timeout talking to the catalog.
	ErrNetworkFailure = errors.New("catalog unreachable")

	// ErrServiceError indicates the catalog answered with a non-2xx status.
	ErrServiceError = errors.New("catalog service error")
)

// SearchFailedMessage is the only search failure text shown to users.
const SearchFailedMessage = "failed to fetch data, try again later"

// ServiceError carries the status of a non-2xx catalog response.
// It matches ErrServiceError, and ErrNotFound for 404 responses.
type ServiceError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *ServiceError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("catalog %s returned status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("catalog %s returned status %d: %s", e.Endpoint, e.Status, e.Body)
}

// Is reports whether target is one of the sentinels this error stands for.
func (e *ServiceError) Is(target error) bool {
	switch target {
	case ErrServiceError:
		return true
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	default:
		return false
	}
}
