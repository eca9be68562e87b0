package httpmetrics

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration matches every configuration error returned by
	// Validate and New.
	ErrInvalidConfiguration = errors.New("invalid httpmetrics configuration")

	ErrInvalidRoute            = errors.New("invalid route option")
	ErrInvalidDefaults         = errors.New("invalid defaults option")
	ErrInvalidExclude          = errors.New("invalid exclude option")
	ErrInvalidPromDefaultDelay = errors.New("invalid promDefaultDelay option")
	ErrInvalidMaxPathsToCount  = errors.New("invalid maxPathsToCount option")

	// ErrRouteNotFound is returned by routers when no declared route matches.
	ErrRouteNotFound = errors.New("route not found")
)

// InvalidConfigurationError names the option that failed validation.
type InvalidConfigurationError struct {
	// Field is the option name: route, defaults, exclude,
	// promDefaultDelay or maxPathsToCount.
	Field  string
	Reason string

	sentinel error
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("`%s` option for httpmetrics: %s", e.Field, e.Reason)
}

// Is matches ErrInvalidConfiguration and the field's own sentinel.
func (e *InvalidConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration || target == e.sentinel
}

func invalidField(sentinel error, field, reason string) error {
	return &InvalidConfigurationError{Field: field, Reason: reason, sentinel: sentinel}
}
