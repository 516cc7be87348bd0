package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"art-customizer/catalog"
	"art-customizer/metrics"
	"art-customizer/models"
)

// Dependencies are the collaborators a session works with
type Dependencies struct {
	Catalog  *catalog.Catalog
	Pricer   PriceCalculator
	Composer PreviewComposer
	Artworks ArtworkProvider
	Store    CustomizationStore
	Cart     Cart
	Now      func() time.Time
}

// Session is one user's in-progress customization of one artwork.
// Every operation holds the session lock until the derived price and
// preview have been recomputed, so mutations never interleave.
type Session struct {
	id   uuid.UUID
	deps Dependencies

	// lastActive is unix nanoseconds; it is read without mu so the
	// manager's sweep never waits on a busy session
	lastActive atomic.Int64

	mu        sync.Mutex
	artwork   *models.Artwork
	options   models.CustomizationOptions
	price     *models.PricedConfiguration
	preview   *models.PreviewLayout
	version   int64
	lastSaved *models.CustomizationRecord
}

// New creates an empty session with default options and no artwork
func New(deps Dependencies) *Session {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	s := &Session{
		id:      uuid.New(),
		deps:    deps,
		options: deps.Catalog.Defaults(),
	}
	s.touch()
	return s
}

// ID returns the session identifier
func (s *Session) ID() uuid.UUID {
	return s.id
}

// LoadArtwork fetches the artwork and makes it the session's artwork,
// resetting options to the catalog defaults. On error the session is unchanged.
func (s *Session) LoadArtwork(ctx context.Context, artworkID int64) (models.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	artwork, err := s.deps.Artworks.GetArtworkByID(ctx, artworkID)
	if err == nil {
		err = artwork.Validate()
	}
	metrics.RecordSessionOp("load_artwork", err)
	if err != nil {
		log.Printf("❌ Session %s: failed to load artwork %d: %v", s.id, artworkID, err)
		return s.viewLocked(), fmt.Errorf("failed to load artwork %d: %w", artworkID, err)
	}

	s.setArtworkLocked(artwork)
	log.Printf("✓ Session %s: loaded artwork %d (%s)", s.id, artwork.ID, artwork.Title)
	return s.viewLocked(), nil
}

// SetArtwork is LoadArtwork for an artwork the caller already holds
func (s *Session) SetArtwork(artwork *models.Artwork) (models.SessionView, error) {
	if err := artwork.Validate(); err != nil {
		return s.View(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.setArtworkLocked(artwork)
	metrics.RecordSessionOp("load_artwork", nil)
	return s.viewLocked(), nil
}

func (s *Session) setArtworkLocked(artwork *models.Artwork) {
	a := *artwork
	s.artwork = &a
	s.options = s.deps.Catalog.Defaults()
	s.recomputeLocked()
}

// SetOption changes one field and returns the resulting state. Invalid values
// return an *models.InvalidOptionValueError and leave the session untouched.
func (s *Session) SetOption(category models.Category, field string, value interface{}) (models.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.deps.Catalog.Apply(s.options, category, field, value)
	metrics.RecordSessionOp("set_option", err)
	if err != nil {
		log.Printf("⚠️  Session %s: rejected %s.%s=%v: %v", s.id, category, field, value, err)
		return s.viewLocked(), err
	}

	s.options = next
	s.recomputeLocked()
	return s.viewLocked(), nil
}

// Reset restores the catalog defaults. It is a no-op when no artwork is loaded.
func (s *Session) Reset() models.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.artwork != nil {
		s.options = s.deps.Catalog.Defaults()
		s.recomputeLocked()
	}
	metrics.RecordSessionOp("reset", nil)
	return s.viewLocked()
}

// Options returns a copy of the current options
func (s *Session) Options() models.CustomizationOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.options
}

// View returns the current state with its derived price and preview
func (s *Session) View() models.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Snapshot captures the options and authoritative price for commit
func (s *Session) Snapshot() (models.CustomizationSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.artwork == nil {
		return models.CustomizationSnapshot{}, models.ErrNoArtworkLoaded
	}
	if err := s.deps.Catalog.Validate(s.options); err != nil {
		return models.CustomizationSnapshot{}, err
	}
	priced, err := s.deps.Pricer.CalculateStrict(s.artwork.BasePrice, s.options)
	if err != nil {
		return models.CustomizationSnapshot{}, err
	}
	return models.CustomizationSnapshot{
		ID:         uuid.New(),
		ArtworkID:  s.artwork.ID,
		Options:    s.options,
		Price:      copyPriced(priced),
		CapturedAt: s.deps.Now(),
	}, nil
}

// recomputeLocked refreshes price and preview; callers hold s.mu
func (s *Session) recomputeLocked() {
	s.version++
	s.touch()
	if s.artwork == nil {
		s.price = nil
		s.preview = nil
		return
	}
	s.price = s.deps.Pricer.Calculate(s.artwork.BasePrice, s.options)
	layout := s.deps.Composer.Compose(s.artwork.Image, s.options)
	s.preview = &layout
}

func (s *Session) viewLocked() models.SessionView {
	view := models.SessionView{
		SessionID: s.id,
		Version:   s.version,
		Options:   s.options,
	}
	if s.artwork != nil {
		a := *s.artwork
		view.Artwork = &a
	}
	if s.price != nil {
		p := copyPriced(s.price)
		view.Price = &p
	}
	if s.preview != nil {
		p := *s.preview
		p.Layers = append([]models.PreviewLayer(nil), s.preview.Layers...)
		p.Diagnostics = append([]models.Diagnostic(nil), s.preview.Diagnostics...)
		view.Preview = &p
	}
	return view
}

// idleSince reports when the session was last used
func (s *Session) idleSince() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

func (s *Session) touch() {
	s.lastActive.Store(s.deps.Now().UnixNano())
}

func copyPriced(p *models.PricedConfiguration) models.PricedConfiguration {
	out := *p
	out.Breakdown = append([]models.PriceLine(nil), p.Breakdown...)
	out.Diagnostics = append([]models.Diagnostic(nil), p.Diagnostics...)
	return out
}
