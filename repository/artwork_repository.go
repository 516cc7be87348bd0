package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"art-customizer/models"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	// maxPage keeps the OFFSET well inside int range
	maxPage = 10000
)

const artworkColumns = `
	id, title, artist, image, price,
	COALESCE(description, ''), COALESCE(medium, ''), COALESCE(dimensions, ''),
	COALESCE(year, 0), COALESCE(category, ''), created_at
`

// ArtworkRepository handles database operations for artworks
type ArtworkRepository struct {
	db *sql.DB
}

// NewArtworkRepository creates a new ArtworkRepository
func NewArtworkRepository(db *sql.DB) *ArtworkRepository {
	return &ArtworkRepository{db: db}
}

// Ensure ArtworkRepository implements ArtworkRepositoryInterface
var _ ArtworkRepositoryInterface = (*ArtworkRepository)(nil)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArtwork(row rowScanner, a *models.Artwork) error {
	return row.Scan(
		&a.ID,
		&a.Title,
		&a.Artist,
		&a.Image,
		&a.BasePrice,
		&a.Description,
		&a.Medium,
		&a.Dimensions,
		&a.Year,
		&a.Category,
		&a.CreatedAt,
	)
}

// GetArtworkByID returns models.ErrArtworkNotFound when no row matches
func (r *ArtworkRepository) GetArtworkByID(ctx context.Context, id int64) (*models.Artwork, error) {
	query := `SELECT ` + artworkColumns + ` FROM artworks WHERE id = $1`

	var artwork models.Artwork
	err := scanArtwork(r.db.QueryRowContext(ctx, query, id), &artwork)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrArtworkNotFound
		}
		log.Printf("❌ GetArtworkByID: Error fetching artwork id=%d: %v", id, err)
		return nil, fmt.Errorf("failed to fetch artwork: %w", err)
	}

	return &artwork, nil
}

// ListArtworks returns one page of artworks matching filter, newest first
func (r *ArtworkRepository) ListArtworks(ctx context.Context, filter models.ArtworkFilter, page, pageSize int) (*models.ArtworkPage, error) {
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	query := `SELECT ` + artworkColumns + ` FROM artworks`

	// Build WHERE conditions dynamically
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIndex))
		args = append(args, filter.Category)
		argIndex++
	}

	if filter.Medium != "" {
		conditions = append(conditions, fmt.Sprintf("medium = $%d", argIndex))
		args = append(args, filter.Medium)
		argIndex++
	}

	if filter.Artist != "" {
		conditions = append(conditions, fmt.Sprintf("artist ILIKE $%d", argIndex))
		args = append(args, "%"+filter.Artist+"%")
		argIndex++
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ ListArtworks: Error listing artworks: %v", err)
		return nil, fmt.Errorf("failed to list artworks: %w", err)
	}
	defer rows.Close()

	items := []models.Artwork{}
	for rows.Next() {
		var a models.Artwork
		if err := scanArtwork(rows, &a); err != nil {
			log.Printf("❌ ListArtworks: Error scanning artwork: %v", err)
			return nil, fmt.Errorf("failed to scan artwork: %w", err)
		}
		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate artworks: %w", err)
	}

	log.Printf("✓ ListArtworks: %d artworks on page %d", len(items), page)
	return &models.ArtworkPage{Items: items, Page: page, PageSize: pageSize}, nil
}
