package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"art-customizer/models"
)

// CartRepository handles database operations for cart items
type CartRepository struct {
	db *sql.DB
}

// NewCartRepository creates a new CartRepository
func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db: db}
}

// Ensure CartRepository implements CartRepositoryInterface
var _ CartRepositoryInterface = (*CartRepository)(nil)

const cartColumns = `id, user_id, artwork_id, COALESCE(customization_id, 0), quantity, price, added_at`

func scanCartItem(row rowScanner, item *models.CartItem) error {
	return row.Scan(
		&item.ID,
		&item.UserID,
		&item.ArtworkID,
		&item.CustomizationID,
		&item.Quantity,
		&item.Price,
		&item.AddedAt,
	)
}

// AddToCart inserts a cart line, or adds quantity to the existing line for
// the same artwork and customization. The unit price is the committed one.
func (r *CartRepository) AddToCart(ctx context.Context, userID string, artworkID, customizationID int64, quantity int, price decimal.Decimal) (*models.CartItem, error) {
	log.Printf("🛒 AddToCart: user=%s artwork_id=%d customization_id=%d qty=%d", userID, artworkID, customizationID, quantity)

	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("user_id cannot be empty")
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be greater than 0")
	}

	query := `
		INSERT INTO cart_items (user_id, artwork_id, customization_id, quantity, price)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, artwork_id, customization_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity,
		              added_at = NOW()
		RETURNING ` + cartColumns

	var item models.CartItem
	err := scanCartItem(r.db.QueryRowContext(ctx, query, userID, artworkID, customizationID, quantity, price), &item)
	if err != nil {
		log.Printf("❌ AddToCart: Error adding to cart: %v", err)
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	log.Printf("✓ AddToCart: cart item id=%d now has qty=%d", item.ID, item.Quantity)
	return &item, nil
}

// ListByUser returns the user's cart lines with their artwork and
// customization details, most recently added first
func (r *CartRepository) ListByUser(ctx context.Context, userID string) ([]models.CartLine, error) {
	query := `
		SELECT c.id, c.user_id, c.artwork_id, COALESCE(c.customization_id, 0), c.quantity, c.price, c.added_at,
		       a.title, a.artist, a.image, COALESCE(co.name, '')
		FROM cart_items c
		JOIN artworks a ON a.id = c.artwork_id
		LEFT JOIN customization_options co ON co.id = c.customization_id
		WHERE c.user_id = $1
		ORDER BY c.added_at DESC, c.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Printf("❌ ListByUser: Error listing cart for user=%s: %v", userID, err)
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}
	defer rows.Close()

	lines := []models.CartLine{}
	for rows.Next() {
		var line models.CartLine
		if err := rows.Scan(
			&line.ID,
			&line.UserID,
			&line.ArtworkID,
			&line.CustomizationID,
			&line.Quantity,
			&line.Price,
			&line.AddedAt,
			&line.ArtworkTitle,
			&line.ArtworkArtist,
			&line.ArtworkImage,
			&line.CustomizationName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart: %w", err)
	}
	return lines, nil
}

// UpdateQuantity sets the quantity of one of the user's cart lines
func (r *CartRepository) UpdateQuantity(ctx context.Context, userID string, itemID int64, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}

	query := `UPDATE cart_items SET quantity = $1 WHERE id = $2 AND user_id = $3 RETURNING ` + cartColumns

	var item models.CartItem
	err := scanCartItem(r.db.QueryRowContext(ctx, query, quantity, itemID, userID), &item)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrCartItemNotFound
		}
		log.Printf("❌ UpdateQuantity: Error updating cart item id=%d: %v", itemID, err)
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	return &item, nil
}

// Remove deletes one of the user's cart lines
func (r *CartRepository) Remove(ctx context.Context, userID string, itemID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		log.Printf("❌ Remove: Error removing cart item id=%d: %v", itemID, err)
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check removed rows: %w", err)
	}
	if affected == 0 {
		return models.ErrCartItemNotFound
	}
	return nil
}

// Clear empties the user's cart
func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		log.Printf("❌ Clear: Error clearing cart for user=%s: %v", userID, err)
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	affected, _ := result.RowsAffected()
	log.Printf("✓ Clear: removed %d cart items for user=%s", affected, userID)
	return nil
}
