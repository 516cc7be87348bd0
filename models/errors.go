package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrArtworkNotFound       = errors.New("artwork not found")
	ErrSessionNotFound       = errors.New("session not found")
	ErrNoArtworkLoaded       = errors.New("no artwork loaded in session")
	ErrCartItemNotFound      = errors.New("cart item not found")
	ErrCustomizationNotFound = errors.New("customization not found")
)

// InvalidOptionValueError is returned when a value is outside a field's domain
type InvalidOptionValueError struct {
	Category Category
	Field    string
	Value    interface{}
	Reason   string
}

func (e *InvalidOptionValueError) Error() string {
	return fmt.Sprintf("invalid value %v for %s.%s: %s", e.Value, e.Category, e.Field, e.Reason)
}

// UnresolvedCatalogKeyError is returned by the strict pricing path
type UnresolvedCatalogKeyError struct {
	Diagnostics []Diagnostic
}

func (e *UnresolvedCatalogKeyError) Error() string {
	keys := make([]string, 0, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		keys = append(keys, fmt.Sprintf("%s=%q", d.Dimension, d.Key))
	}
	return "unresolved catalog keys: " + strings.Join(keys, ", ")
}

// Commit stages
const (
	CommitStageSnapshot = "snapshot"
	CommitStageSave     = "save"
	CommitStageCart     = "cart"
)

// CommitError reports a failed save or add-to-cart. Session state is kept as is.
type CommitError struct {
	Stage string
	Err   error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit failed at %s: %v", e.Stage, e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}
