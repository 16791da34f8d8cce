package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across layers.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrTransport  = errors.New("transport failure")
	ErrService    = errors.New("service failure")
)

// ServiceError is returned when the Recipe Service answers with a non-2xx
// status. It matches ErrService under errors.Is.
type ServiceError struct {
	Op         string // "list recipes", "create recipe"
	StatusCode int
	Status     string
	Body       string
}

func (e *ServiceError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Status, e.Body)
}

// Is reports whether target is ErrService.
func (e *ServiceError) Is(target error) bool {
	return target == ErrService
}
