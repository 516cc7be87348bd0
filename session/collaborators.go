package session

import (
	"context"

	"github.com/shopspring/decimal"

	"art-customizer/models"
)

// ArtworkProvider fetches artworks. It returns models.ErrArtworkNotFound for unknown ids.
type ArtworkProvider interface {
	GetArtworkByID(ctx context.Context, id int64) (*models.Artwork, error)
}

// CustomizationStore persists committed snapshots
type CustomizationStore interface {
	SaveCustomization(ctx context.Context, snapshot models.CustomizationSnapshot) (*models.CustomizationRecord, error)
}

// Cart adds committed customizations to a user's cart
type Cart interface {
	AddToCart(ctx context.Context, userID string, artworkID, customizationID int64, quantity int, finalPrice decimal.Decimal) (*models.CartItem, error)
}

// PriceCalculator prices a configuration
type PriceCalculator interface {
	Calculate(basePrice decimal.Decimal, opts models.CustomizationOptions) *models.PricedConfiguration
	CalculateStrict(basePrice decimal.Decimal, opts models.CustomizationOptions) (*models.PricedConfiguration, error)
}

// PreviewComposer builds the preview layout for a configuration
type PreviewComposer interface {
	Compose(artworkImage string, opts models.CustomizationOptions) models.PreviewLayout
}
