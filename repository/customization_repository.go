package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"art-customizer/catalog"
	"art-customizer/models"
	"art-customizer/utils"
)

// CustomizationRepository persists committed customization snapshots
type CustomizationRepository struct {
	db      *sql.DB
	catalog *catalog.Catalog
}

// NewCustomizationRepository creates a new CustomizationRepository
func NewCustomizationRepository(db *sql.DB, cat *catalog.Catalog) *CustomizationRepository {
	return &CustomizationRepository{db: db, catalog: cat}
}

// Ensure CustomizationRepository implements CustomizationRepositoryInterface
var _ CustomizationRepositoryInterface = (*CustomizationRepository)(nil)

// SaveCustomization stores the snapshot's options and final price
func (r *CustomizationRepository) SaveCustomization(ctx context.Context, snapshot models.CustomizationSnapshot) (*models.CustomizationRecord, error) {
	options, err := json.Marshal(snapshot.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to encode options: %w", err)
	}

	record := models.CustomizationRecord{
		SnapshotID:   snapshot.ID,
		Name:         r.catalog.DisplayName(snapshot.Price.SizeCategory, snapshot.Options),
		ArtworkID:    snapshot.ArtworkID,
		SizeCategory: snapshot.Price.SizeCategory,
		Options:      snapshot.Options,
		FinalPrice:   snapshot.FinalPrice(),
	}

	query := `
		INSERT INTO customization_options (snapshot_id, name, artwork_id, size_category, options, final_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err = r.db.QueryRowContext(ctx, query,
		record.SnapshotID,
		record.Name,
		record.ArtworkID,
		record.SizeCategory,
		options,
		record.FinalPrice,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		log.Printf("❌ SaveCustomization: Error saving customization for artwork %d: %v", snapshot.ArtworkID, err)
		return nil, fmt.Errorf("failed to save customization: %w", err)
	}

	log.Printf("✓ SaveCustomization: saved id=%d %q at %s", record.ID, record.Name, record.FinalPrice.StringFixed(2))
	return &record, nil
}

const customizationColumns = `id, snapshot_id, name, artwork_id, size_category, options, final_price, created_at`

func scanCustomization(row rowScanner, c *models.CustomizationRecord) error {
	var options []byte
	if err := row.Scan(
		&c.ID,
		&c.SnapshotID,
		&c.Name,
		&c.ArtworkID,
		&c.SizeCategory,
		&options,
		&c.FinalPrice,
		&c.CreatedAt,
	); err != nil {
		return err
	}
	if err := json.Unmarshal(options, &c.Options); err != nil {
		return fmt.Errorf("failed to decode options of customization %d: %w", c.ID, err)
	}
	c.SizeCategory = utils.NormalizeSizeCategory(c.SizeCategory)
	return nil
}

// scan reads a record and rejects stored options the catalog no longer accepts
func (r *CustomizationRepository) scan(row rowScanner, c *models.CustomizationRecord) error {
	if err := scanCustomization(row, c); err != nil {
		return err
	}
	if err := r.catalog.Validate(c.Options); err != nil {
		log.Printf("⚠️  Customization %d: stored options rejected by catalog: %v", c.ID, err)
		return fmt.Errorf("customization %d has invalid stored options: %s", c.ID, err)
	}
	return nil
}

// GetByID returns models.ErrCustomizationNotFound when no row matches
func (r *CustomizationRepository) GetByID(ctx context.Context, id int64) (*models.CustomizationRecord, error) {
	query := `SELECT ` + customizationColumns + ` FROM customization_options WHERE id = $1`

	var record models.CustomizationRecord
	if err := r.scan(r.db.QueryRowContext(ctx, query, id), &record); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrCustomizationNotFound
		}
		log.Printf("❌ GetByID: Error fetching customization id=%d: %v", id, err)
		return nil, fmt.Errorf("failed to fetch customization: %w", err)
	}
	return &record, nil
}

// ListByArtwork returns the saved customizations of an artwork, newest first
func (r *CustomizationRepository) ListByArtwork(ctx context.Context, artworkID int64) ([]models.CustomizationRecord, error) {
	query := `SELECT ` + customizationColumns + ` FROM customization_options WHERE artwork_id = $1 ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, artworkID)
	if err != nil {
		log.Printf("❌ ListByArtwork: Error listing customizations for artwork %d: %v", artworkID, err)
		return nil, fmt.Errorf("failed to list customizations: %w", err)
	}
	defer rows.Close()

	records := []models.CustomizationRecord{}
	for rows.Next() {
		var record models.CustomizationRecord
		if err := r.scan(rows, &record); err != nil {
			return nil, fmt.Errorf("failed to scan customization: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate customizations: %w", err)
	}
	return records, nil
}
