package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomizationSnapshot is an immutable copy of a session's options and the
// price computed for them, captured at commit time
type CustomizationSnapshot struct {
	ID         uuid.UUID            `json:"id"`
	ArtworkID  int64                `json:"artworkId"`
	Options    CustomizationOptions `json:"options"`
	Price      PricedConfiguration  `json:"price"`
	CapturedAt time.Time            `json:"capturedAt"`
}

// FinalPrice returns the committed price
func (s CustomizationSnapshot) FinalPrice() decimal.Decimal {
	return s.Price.FinalPrice
}

// CustomizationRecord is a persisted snapshot
type CustomizationRecord struct {
	ID           int64                `json:"id"`
	SnapshotID   uuid.UUID            `json:"snapshotId"`
	Name         string               `json:"name"`
	ArtworkID    int64                `json:"artworkId"`
	SizeCategory string               `json:"size"`
	Options      CustomizationOptions `json:"options"`
	FinalPrice   decimal.Decimal      `json:"finalPrice"`
	CreatedAt    time.Time            `json:"createdAt"`
}

// CartItem represents a line in a user's cart
type CartItem struct {
	ID              int64           `json:"id"`
	UserID          string          `json:"userId"`
	ArtworkID       int64           `json:"artworkId"`
	CustomizationID int64           `json:"customizationId"`
	Quantity        int             `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	AddedAt         time.Time       `json:"addedAt"`
}

// CartLine is a cart item with the artwork and customization it refers to
type CartLine struct {
	CartItem
	ArtworkTitle      string          `json:"artworkTitle"`
	ArtworkArtist     string          `json:"artworkArtist"`
	ArtworkImage      string          `json:"artworkImage"`
	CustomizationName string          `json:"customizationName"`
	LineTotal         decimal.Decimal `json:"lineTotal"`
}

// CartView is a user's cart with its totals
type CartView struct {
	Items     []CartLine      `json:"items"`
	ItemCount int             `json:"itemCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// NewCartView prices every line at unit price x quantity and sums the subtotal
func NewCartView(lines []CartLine) CartView {
	view := CartView{Items: make([]CartLine, 0, len(lines)), Subtotal: decimal.Zero}
	for _, line := range lines {
		line.LineTotal = line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		view.Subtotal = view.Subtotal.Add(line.LineTotal)
		view.ItemCount += line.Quantity
		view.Items = append(view.Items, line)
	}
	return view
}

// SavedArtwork marks an artwork as saved by a user
type SavedArtwork struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	ArtworkID int64     `json:"artworkId"`
	SavedAt   time.Time `json:"savedAt"`
}

// AddToCartRequest represents the request body for committing a session to the cart
type AddToCartRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartQuantityRequest represents the request body for changing a cart line quantity
type UpdateCartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CreateSessionRequest represents the request body for starting a customization session
type CreateSessionRequest struct {
	ArtworkID int64 `json:"artworkId"`
}

// CommitResponse is returned after a successful save or add-to-cart
type CommitResponse struct {
	Customization *CustomizationRecord `json:"customization"`
	CartItem      *CartItem            `json:"cartItem,omitempty"`
}
