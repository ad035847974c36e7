package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrDatasetNotFound = fmt.Errorf("%w: dataset", ErrNotFound)
	ErrColumnNotFound  = fmt.Errorf("%w: column", ErrNotFound)

	// Configuration errors - caller misuse, not data quality
	ErrKeyColumnNotFound = errors.New("key column not present in dataset")
	ErrInvalidThresholds = errors.New("invalid watermark thresholds")

	// Registry errors
	ErrNameConflict = errors.New("dataset name already registered")
)

// NewDatasetNotFoundError reports a registry lookup for an unregistered name.
func NewDatasetNotFoundError(name string) error {
	return fmt.Errorf("%w: %s", ErrDatasetNotFound, name)
}

// NewKeySpecError reports a KeySpec column that the dataset does not carry.
func NewKeySpecError(column string) error {
	return fmt.Errorf("%w: %s", ErrKeyColumnNotFound, column)
}

// NewNameConflictError reports a duplicate registry name.
func NewNameConflictError(name string) error {
	return fmt.Errorf("%w: %s", ErrNameConflict, name)
}

// IsConfigurationError checks whether err indicates caller misuse
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrKeyColumnNotFound) ||
		errors.Is(err, ErrInvalidThresholds)
}
