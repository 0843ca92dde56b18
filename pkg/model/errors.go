package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFitted matches any NotFittedError.
	ErrNotFitted = errors.New("estimator is not fitted")
	// ErrInvalidConfig matches any ConfigError.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// NotFittedError is returned when a fitted-only operation runs before Fit succeeded.
type NotFittedError struct {
	Estimator string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("%s is not fitted yet, call Fit first", e.Estimator)
}

func (e *NotFittedError) Is(target error) bool { return target == ErrNotFitted }

// NotFitted builds a NotFittedError for est.
func NotFitted(est fmt.Stringer) error {
	return &NotFittedError{Estimator: est.String()}
}

// ConfigError reports a hyperparameter that is invalid for the data passed to Fit.
type ConfigError struct {
	Estimator string
	Param     string
	Value     any
	Reason    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: invalid %s=%v: %s", e.Estimator, e.Param, e.Value, e.Reason)
}

func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }
