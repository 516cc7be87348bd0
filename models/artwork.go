package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Artwork represents a catalog artwork that can be customized
type Artwork struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Artist      string          `json:"artist"`
	Image       string          `json:"image"`
	BasePrice   decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Medium      string          `json:"medium"`
	Dimensions  string          `json:"dimensions"`
	Year        int             `json:"year"`
	Category    string          `json:"category"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Validate checks the fields the pricing and preview code relies on
func (a *Artwork) Validate() error {
	if a == nil {
		return fmt.Errorf("artwork is nil")
	}
	if a.ID <= 0 {
		return fmt.Errorf("artwork id must be greater than 0")
	}
	if strings.TrimSpace(a.Image) == "" {
		return fmt.Errorf("artwork %d has no image", a.ID)
	}
	if a.BasePrice.IsNegative() {
		return fmt.Errorf("artwork %d has negative base price %s", a.ID, a.BasePrice.String())
	}
	if !a.BasePrice.Equal(a.BasePrice.Round(2)) {
		return fmt.Errorf("artwork %d base price %s has more than 2 decimal places", a.ID, a.BasePrice.String())
	}
	return nil
}

// ArtworkFilter holds optional gallery filters; empty fields are ignored
type ArtworkFilter struct {
	Category string
	Medium   string
	Artist   string
}

// ArtworkPage is one page of gallery results
type ArtworkPage struct {
	Items    []Artwork `json:"items"`
	Page     int       `json:"page"`
	PageSize int       `json:"pageSize"`
}
