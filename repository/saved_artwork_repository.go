package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"art-customizer/models"
)

// SavedArtworkRepository handles a user's saved (favourite) artworks
type SavedArtworkRepository struct {
	db *sql.DB
}

// NewSavedArtworkRepository creates a new SavedArtworkRepository
func NewSavedArtworkRepository(db *sql.DB) *SavedArtworkRepository {
	return &SavedArtworkRepository{db: db}
}

// Ensure SavedArtworkRepository implements SavedArtworkRepositoryInterface
var _ SavedArtworkRepositoryInterface = (*SavedArtworkRepository)(nil)

// Save marks an artwork as saved. Saving twice keeps the first row.
func (r *SavedArtworkRepository) Save(ctx context.Context, userID string, artworkID int64) (*models.SavedArtwork, error) {
	query := `
		INSERT INTO user_saved_artworks (user_id, artwork_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, artwork_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, user_id, artwork_id, saved_at
	`

	var saved models.SavedArtwork
	err := r.db.QueryRowContext(ctx, query, userID, artworkID).Scan(&saved.ID, &saved.UserID, &saved.ArtworkID, &saved.SavedAt)
	if err != nil {
		log.Printf("❌ SaveArtwork: Error saving artwork %d for user=%s: %v", artworkID, userID, err)
		return nil, fmt.Errorf("failed to save artwork: %w", err)
	}
	return &saved, nil
}

// Unsave removes the saved mark. Unsaving an artwork that is not saved is not an error.
func (r *SavedArtworkRepository) Unsave(ctx context.Context, userID string, artworkID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_saved_artworks WHERE user_id = $1 AND artwork_id = $2`, userID, artworkID); err != nil {
		log.Printf("❌ UnsaveArtwork: Error unsaving artwork %d for user=%s: %v", artworkID, userID, err)
		return fmt.Errorf("failed to unsave artwork: %w", err)
	}
	return nil
}

// IsSaved reports whether the user saved the artwork
func (r *SavedArtworkRepository) IsSaved(ctx context.Context, userID string, artworkID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_saved_artworks WHERE user_id = $1 AND artwork_id = $2)`,
		userID, artworkID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check saved artwork: %w", err)
	}
	return exists, nil
}

// ListByUser returns the artworks the user saved, most recent first
func (r *SavedArtworkRepository) ListByUser(ctx context.Context, userID string) ([]models.Artwork, error) {
	query := `
		SELECT a.id, a.title, a.artist, a.image, a.price,
		       COALESCE(a.description, ''), COALESCE(a.medium, ''), COALESCE(a.dimensions, ''),
		       COALESCE(a.year, 0), COALESCE(a.category, ''), a.created_at
		FROM user_saved_artworks s
		INNER JOIN artworks a ON a.id = s.artwork_id
		WHERE s.user_id = $1
		ORDER BY s.saved_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Printf("❌ ListSaved: Error listing saved artworks for user=%s: %v", userID, err)
		return nil, fmt.Errorf("failed to list saved artworks: %w", err)
	}
	defer rows.Close()

	artworks := []models.Artwork{}
	for rows.Next() {
		var a models.Artwork
		if err := scanArtwork(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan saved artwork: %w", err)
		}
		artworks = append(artworks, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate saved artworks: %w", err)
	}
	return artworks, nil
}
