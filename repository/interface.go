package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"art-customizer/models"
)

// ArtworkRepositoryInterface defines the contract for artwork repository operations
type ArtworkRepositoryInterface interface {
	GetArtworkByID(ctx context.Context, id int64) (*models.Artwork, error)
	ListArtworks(ctx context.Context, filter models.ArtworkFilter, page, pageSize int) (*models.ArtworkPage, error)
}

// CustomizationRepositoryInterface defines the contract for customization repository operations
type CustomizationRepositoryInterface interface {
	SaveCustomization(ctx context.Context, snapshot models.CustomizationSnapshot) (*models.CustomizationRecord, error)
	GetByID(ctx context.Context, id int64) (*models.CustomizationRecord, error)
	ListByArtwork(ctx context.Context, artworkID int64) ([]models.CustomizationRecord, error)
}

// CartRepositoryInterface defines the contract for cart repository operations
type CartRepositoryInterface interface {
	AddToCart(ctx context.Context, userID string, artworkID, customizationID int64, quantity int, price decimal.Decimal) (*models.CartItem, error)
	ListByUser(ctx context.Context, userID string) ([]models.CartLine, error)
	UpdateQuantity(ctx context.Context, userID string, itemID int64, quantity int) (*models.CartItem, error)
	Remove(ctx context.Context, userID string, itemID int64) error
	Clear(ctx context.Context, userID string) error
}

// SavedArtworkRepositoryInterface defines the contract for saved artwork repository operations
type SavedArtworkRepositoryInterface interface {
	Save(ctx context.Context, userID string, artworkID int64) (*models.SavedArtwork, error)
	Unsave(ctx context.Context, userID string, artworkID int64) error
	IsSaved(ctx context.Context, userID string, artworkID int64) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]models.Artwork, error)
}
