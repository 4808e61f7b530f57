package types

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrEquipmentNotFound     = errors.New("equipment not found")
	ErrEquipmentTypeNotFound = errors.New("equipment type not found")
	ErrPersonnelNotFound     = errors.New("personnel not found")
	ErrPersonnelAmbiguous    = errors.New("several personnel share this name")
	ErrVerificationNotFound  = errors.New("verification not found")
	ErrInvalidDate           = errors.New("invalid date")

	// ErrStoreUnavailable marks a failed read from the data store, as opposed
	// to a validation problem with the caller's input.
	ErrStoreUnavailable = errors.New("data store unavailable")
)

// ValidationError collects per-field messages for a rejected form.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) Add(field, msg string) {
	if _, ok := e.Fields[field]; ok {
		return
	}
	e.Fields[field] = msg
}

func (e *ValidationError) Has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

// OrNil returns nil when no field was rejected.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}

	return "validation failed: " + strings.Join(parts, "; ")
}
