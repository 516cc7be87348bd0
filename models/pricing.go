package models

import "github.com/shopspring/decimal"

// DiagnosticKind classifies a recoverable problem found while pricing or composing
type DiagnosticKind string

const (
	DiagnosticUnresolvedKey DiagnosticKind = "unresolved_catalog_key"
)

// Diagnostic records a lookup that fell back to a default value
type Diagnostic struct {
	Kind      DiagnosticKind `json:"kind"`
	Dimension string         `json:"dimension"`
	Key       string         `json:"key"`
	Fallback  string         `json:"fallback"`
}

// PriceLine is one entry of the price breakdown
type PriceLine struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// PricedConfiguration represents the complete pricing calculation result.
// The breakdown amounts always add up to FinalPrice.
type PricedConfiguration struct {
	Currency     string          `json:"currency"`
	FinalPrice   decimal.Decimal `json:"finalPrice"`
	SizeCategory string          `json:"sizeCategory"`
	Breakdown    []PriceLine     `json:"breakdown"`
	Diagnostics  []Diagnostic    `json:"diagnostics,omitempty"`
}
