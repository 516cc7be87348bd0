package controller_test

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/shopspring/decimal"

	"art-customizer/models"
)

type fakeArtworks struct {
	artworks map[int64]*models.Artwork
}

func (f *fakeArtworks) GetArtworkByID(ctx context.Context, id int64) (*models.Artwork, error) {
	a, ok := f.artworks[id]
	if !ok {
		return nil, models.ErrArtworkNotFound
	}
	return a, nil
}

func (f *fakeArtworks) ListArtworks(ctx context.Context, filter models.ArtworkFilter, page, pageSize int) (*models.ArtworkPage, error) {
	items := []models.Artwork{}
	for _, id := range []int64{1, 2} {
		a := f.artworks[id]
		if filter.Category != "" && a.Category != filter.Category {
			continue
		}
		items = append(items, *a)
	}
	return &models.ArtworkPage{Items: items, Page: page, PageSize: pageSize}, nil
}

type fakeSaved struct {
	mu    sync.Mutex
	saved map[string][]int64
}

func (f *fakeSaved) Save(ctx context.Context, userID string, artworkID int64) (*models.SavedArtwork, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved[userID] = append(f.saved[userID], artworkID)
	return &models.SavedArtwork{ID: int64(len(f.saved[userID])), UserID: userID, ArtworkID: artworkID}, nil
}

func (f *fakeSaved) Unsave(ctx context.Context, userID string, artworkID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.saved[userID][:0]
	for _, id := range f.saved[userID] {
		if id != artworkID {
			kept = append(kept, id)
		}
	}
	f.saved[userID] = kept
	return nil
}

func (f *fakeSaved) IsSaved(ctx context.Context, userID string, artworkID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range f.saved[userID] {
		if id == artworkID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSaved) ListByUser(ctx context.Context, userID string) ([]models.Artwork, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Artwork{}
	for _, id := range f.saved[userID] {
		out = append(out, models.Artwork{ID: id})
	}
	return out, nil
}

type fakeStore struct {
	mu      sync.Mutex
	records []models.CustomizationRecord
	err     error
}

func (f *fakeStore) SaveCustomization(ctx context.Context, snapshot models.CustomizationSnapshot) (*models.CustomizationRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	record := models.CustomizationRecord{
		ID:           int64(len(f.records) + 1),
		SnapshotID:   snapshot.ID,
		ArtworkID:    snapshot.ArtworkID,
		SizeCategory: snapshot.Price.SizeCategory,
		Options:      snapshot.Options,
		FinalPrice:   snapshot.FinalPrice(),
		CreatedAt:    time.Now(),
	}
	f.records = append(f.records, record)
	return &record, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id int64) (*models.CustomizationRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id < 1 || int(id) > len(f.records) {
		return nil, models.ErrCustomizationNotFound
	}
	record := f.records[id-1]
	return &record, nil
}

func (f *fakeStore) ListByArtwork(ctx context.Context, artworkID int64) ([]models.CustomizationRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.CustomizationRecord{}
	for _, r := range f.records {
		if r.ArtworkID == artworkID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeCart struct {
	mu    sync.Mutex
	items []models.CartItem
}

func (f *fakeCart) AddToCart(ctx context.Context, userID string, artworkID, customizationID int64, quantity int, price decimal.Decimal) (*models.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item := models.CartItem{
		ID:              int64(len(f.items) + 1),
		UserID:          userID,
		ArtworkID:       artworkID,
		CustomizationID: customizationID,
		Quantity:        quantity,
		Price:           price,
	}
	for i := range f.items {
		if f.items[i].UserID == userID && f.items[i].ArtworkID == artworkID && f.items[i].CustomizationID == customizationID {
			f.items[i].Quantity += quantity
			merged := f.items[i]
			return &merged, nil
		}
	}
	f.items = append(f.items, item)
	return &item, nil
}

func (f *fakeCart) ListByUser(ctx context.Context, userID string) ([]models.CartLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.CartLine{}
	for _, it := range f.items {
		if it.UserID == userID {
			out = append(out, models.CartLine{CartItem: it, CustomizationName: fmt.Sprintf("customization %d", it.CustomizationID)})
		}
	}
	return out, nil
}

func (f *fakeCart) UpdateQuantity(ctx context.Context, userID string, itemID int64, quantity int) (*models.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == itemID && f.items[i].UserID == userID {
			f.items[i].Quantity = quantity
			item := f.items[i]
			return &item, nil
		}
	}
	return nil, models.ErrCartItemNotFound
}

func (f *fakeCart) Remove(ctx context.Context, userID string, itemID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == itemID && f.items[i].UserID == userID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return models.ErrCartItemNotFound
}

func (f *fakeCart) Clear(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.items[:0]
	for _, it := range f.items {
		if it.UserID != userID {
			kept = append(kept, it)
		}
	}
	f.items = kept
	return nil
}

type fakeImages struct {
	err error
}

func (f *fakeImages) Optimized(ctx context.Context, artwork *models.Artwork, size string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("jpeg-" + size), nil
}

func (f *fakeImages) LoadImage(ctx context.Context, ref string) (image.Image, error) {
	if f.err != nil {
		return nil, f.err
	}
	return imaging.New(120, 80, color.NRGBA{R: 10, G: 120, B: 200, A: 255}), nil
}

type fakeQuotes struct {
	lastPreview []byte
}

func (f *fakeQuotes) RenderQuoteHTML(artwork models.Artwork, opts models.CustomizationOptions, priced models.PricedConfiguration, previewJPEG []byte) (string, error) {
	f.lastPreview = previewJPEG
	return "<html>" + artwork.Title + " " + priced.FinalPrice.StringFixed(2) + "</html>", nil
}

func (f *fakeQuotes) GeneratePDF(ctx context.Context, htmlContent string) ([]byte, error) {
	if htmlContent == "" {
		return nil, errors.New("empty document")
	}
	return []byte("%PDF-1.4 " + htmlContent), nil
}
