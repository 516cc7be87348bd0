package session

import (
	"context"
	"errors"
	"log"

	"art-customizer/metrics"
	"art-customizer/models"
)

// CommitResult is delivered by CommitAsync
type CommitResult struct {
	Response *models.CommitResponse
	Err      error
}

// Save persists a snapshot of the current configuration. The snapshot is
// captured under the lock and the store is called outside it, so edits made
// while the save is in flight do not change what is saved. Failures leave
// the session untouched and are not retried.
func (s *Session) Save(ctx context.Context) (*models.CustomizationRecord, error) {
	snapshot, err := s.snapshotForCommit()
	if err != nil {
		return nil, err
	}
	return s.save(ctx, snapshot)
}

// AddToCart saves a snapshot and adds it to the user's cart at the
// snapshot's final price
func (s *Session) AddToCart(ctx context.Context, userID string, quantity int) (*models.CommitResponse, error) {
	if quantity <= 0 {
		quantity = 1
	}

	snapshot, err := s.snapshotForCommit()
	if err != nil {
		return nil, err
	}

	record, err := s.save(ctx, snapshot)
	if err != nil {
		return nil, err
	}

	item, err := s.deps.Cart.AddToCart(ctx, userID, snapshot.ArtworkID, record.ID, quantity, snapshot.FinalPrice())
	metrics.RecordCommit(models.CommitStageCart, err)
	if err != nil {
		log.Printf("❌ Session %s: failed to add customization %d to cart: %v", s.id, record.ID, err)
		return nil, &models.CommitError{Stage: models.CommitStageCart, Err: err}
	}

	log.Printf("🛒 Session %s: added customization %d to cart of %s (qty %d, %s)",
		s.id, record.ID, userID, quantity, snapshot.FinalPrice().StringFixed(2))
	return &models.CommitResponse{Customization: record, CartItem: item}, nil
}

// CommitAsync runs AddToCart in the background. The snapshot is taken before
// CommitAsync returns; the channel receives exactly one result.
func (s *Session) CommitAsync(ctx context.Context, userID string, quantity int) <-chan CommitResult {
	out := make(chan CommitResult, 1)

	snapshot, err := s.snapshotForCommit()
	if err != nil {
		out <- CommitResult{Err: err}
		close(out)
		return out
	}

	go func() {
		defer close(out)
		record, err := s.save(ctx, snapshot)
		if err != nil {
			out <- CommitResult{Err: err}
			return
		}
		if quantity <= 0 {
			quantity = 1
		}
		item, err := s.deps.Cart.AddToCart(ctx, userID, snapshot.ArtworkID, record.ID, quantity, snapshot.FinalPrice())
		metrics.RecordCommit(models.CommitStageCart, err)
		if err != nil {
			out <- CommitResult{Err: &models.CommitError{Stage: models.CommitStageCart, Err: err}}
			return
		}
		out <- CommitResult{Response: &models.CommitResponse{Customization: record, CartItem: item}}
	}()
	return out
}

func (s *Session) snapshotForCommit() (models.CustomizationSnapshot, error) {
	snapshot, err := s.Snapshot()
	if err != nil {
		metrics.RecordCommit(models.CommitStageSnapshot, err)
		if errors.Is(err, models.ErrNoArtworkLoaded) {
			return snapshot, err
		}
		return snapshot, &models.CommitError{Stage: models.CommitStageSnapshot, Err: err}
	}
	s.touch()
	return snapshot, nil
}

// save stores snapshot, reusing the session's last saved record when it
// holds the same artwork, options and price, so repeated commits of one
// configuration land on the same cart line
func (s *Session) save(ctx context.Context, snapshot models.CustomizationSnapshot) (*models.CustomizationRecord, error) {
	if record := s.savedMatching(snapshot); record != nil {
		log.Printf("♻️  Session %s: reusing customization %d for artwork %d", s.id, record.ID, snapshot.ArtworkID)
		return record, nil
	}

	record, err := s.deps.Store.SaveCustomization(ctx, snapshot)
	metrics.RecordCommit(models.CommitStageSave, err)
	if err != nil {
		log.Printf("❌ Session %s: failed to save customization: %v", s.id, err)
		return nil, &models.CommitError{Stage: models.CommitStageSave, Err: err}
	}
	log.Printf("💾 Session %s: saved customization %d for artwork %d", s.id, record.ID, snapshot.ArtworkID)

	saved := *record
	s.mu.Lock()
	s.lastSaved = &saved
	s.mu.Unlock()
	return record, nil
}

func (s *Session) savedMatching(snapshot models.CustomizationSnapshot) *models.CustomizationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	last := s.lastSaved
	if last == nil ||
		last.ArtworkID != snapshot.ArtworkID ||
		last.Options != snapshot.Options ||
		!last.FinalPrice.Equal(snapshot.FinalPrice()) {
		return nil
	}
	record := *last
	return &record
}
