package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ErrAlreadyRegistered is returned when an instrument with the same name
	// and label set is already registered. Re-creating the HTTP middleware on
	// the same Registry without clearing it surfaces this error.
	ErrAlreadyRegistered = errors.New("metric already registered")

	// ErrInvalidMetric is returned when the registry rejects an instrument
	// definition (invalid name, inconsistent labels, ...).
	ErrInvalidMetric = errors.New("invalid metric definition")
)

// translateRegisterError maps a Prometheus registration error onto the
// package's sentinel errors while keeping the underlying error as context.
func translateRegisterError(name string, err error) error {
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, name)
	}
	return fmt.Errorf("%w: %s: %v", ErrInvalidMetric, name, err)
}
