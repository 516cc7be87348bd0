package session

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"art-customizer/catalog"
	"art-customizer/models"
	"art-customizer/preview"
	"art-customizer/pricing"
)

type fakeArtworks struct {
	artworks map[int64]*models.Artwork
	err      error
	entered  chan struct{}
	release  chan struct{}
}

func (f *fakeArtworks) GetArtworkByID(ctx context.Context, id int64) (*models.Artwork, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.artworks[id]
	if !ok {
		return nil, models.ErrArtworkNotFound
	}
	return a, nil
}

type fakeStore struct {
	mu      sync.Mutex
	saved   []models.CustomizationSnapshot
	err     error
	release chan struct{}
	entered chan struct{}
}

func (f *fakeStore) SaveCustomization(ctx context.Context, snapshot models.CustomizationSnapshot) (*models.CustomizationRecord, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.saved = append(f.saved, snapshot)
	return &models.CustomizationRecord{
		ID:           int64(len(f.saved)),
		SnapshotID:   snapshot.ID,
		ArtworkID:    snapshot.ArtworkID,
		SizeCategory: snapshot.Price.SizeCategory,
		Options:      snapshot.Options,
		FinalPrice:   snapshot.FinalPrice(),
	}, nil
}

type fakeCart struct {
	mu    sync.Mutex
	items []models.CartItem
	err   error
}

func (f *fakeCart) AddToCart(ctx context.Context, userID string, artworkID, customizationID int64, quantity int, finalPrice decimal.Decimal) (*models.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	item := models.CartItem{
		ID:              int64(len(f.items) + 1),
		UserID:          userID,
		ArtworkID:       artworkID,
		CustomizationID: customizationID,
		Quantity:        quantity,
		Price:           finalPrice,
	}
	for i, existing := range f.items {
		if existing.UserID == userID && existing.ArtworkID == artworkID && existing.CustomizationID == customizationID {
			f.items[i].Quantity += quantity
			f.items[i].Price = finalPrice
			merged := f.items[i]
			return &merged, nil
		}
	}
	f.items = append(f.items, item)
	return &item, nil
}

type fixture struct {
	deps     Dependencies
	artworks *fakeArtworks
	store    *fakeStore
	cart     *fakeCart
	clock    *fakeClock
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newFixture() *fixture {
	cat := catalog.Default()
	store := &fakeStore{}
	cart := &fakeCart{}
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	pricer, err := pricing.NewEngine(cat, "")
	if err != nil {
		panic(err)
	}
	artworks := &fakeArtworks{artworks: map[int64]*models.Artwork{
		1: {ID: 1, Title: "Starry Night", Artist: "Vincent van Gogh", Image: "/images/starry.jpg", BasePrice: decimal.RequireFromString("450.00")},
		2: {ID: 2, Title: "Water Lilies", Artist: "Claude Monet", Image: "/images/lilies.jpg", BasePrice: decimal.RequireFromString("100.00")},
	}}
	return &fixture{
		deps: Dependencies{
			Catalog:  cat,
			Pricer:   pricer,
			Composer: preview.NewCompositor(cat),
			Artworks: artworks,
			Store:    store,
			Cart:     cart,
			Now:      clock.Now,
		},
		artworks: artworks,
		store:    store,
		cart:     cart,
		clock:    clock,
	}
}
