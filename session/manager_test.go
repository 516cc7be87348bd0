package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"art-customizer/models"
)

func TestManagerCreateAndGet(t *testing.T) {
	m := NewManager(newFixture().deps)

	s, err := m.Create(context.Background(), 1)
	require.NoError(t, err)

	got, err := m.Get(s.ID().String())
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, m.Len())
}

func TestManagerCreateUnknownArtwork(t *testing.T) {
	m := NewManager(newFixture().deps)

	_, err := m.Create(context.Background(), 42)
	assert.ErrorIs(t, err, models.ErrArtworkNotFound)
	assert.Equal(t, 0, m.Len())
}

func TestManagerGetUnknown(t *testing.T) {
	m := NewManager(newFixture().deps)

	_, err := m.Get("not-a-uuid")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)

	_, err = m.Get("6f1c2a52-3b9e-4c1d-9a0b-4a2e7d9c8f10")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestManagerDelete(t *testing.T) {
	m := NewManager(newFixture().deps)
	s, err := m.Create(context.Background(), 1)
	require.NoError(t, err)

	require.NoError(t, m.Delete(s.ID().String()))
	assert.ErrorIs(t, m.Delete(s.ID().String()), models.ErrSessionNotFound)
	assert.Equal(t, 0, m.Len())
}

func TestManagerSweep(t *testing.T) {
	f := newFixture()
	m := NewManager(f.deps)

	idle, err := m.Create(context.Background(), 1)
	require.NoError(t, err)
	f.clock.Advance(20 * time.Minute)

	active, err := m.Create(context.Background(), 2)
	require.NoError(t, err)
	f.clock.Advance(15 * time.Minute)
	_, err = active.SetOption(models.CategoryFrame, "style", "modern")
	require.NoError(t, err)

	removed := m.Sweep(30 * time.Minute)
	assert.Equal(t, 1, removed)

	_, err = m.Get(idle.ID().String())
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
	_, err = m.Get(active.ID().String())
	assert.NoError(t, err)
}

func TestManagerConcurrentSessions(t *testing.T) {
	m := NewManager(newFixture().deps)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := m.Create(context.Background(), 1)
			if !assert.NoError(t, err) {
				return
			}
			_, err = s.SetOption(models.CategorySize, "scale", 150)
			assert.NoError(t, err)
			_, err = s.AddToCart(context.Background(), "user-1", 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, m.Len())
}

func TestSweepDoesNotWaitOnBusySession(t *testing.T) {
	f := newFixture()
	m := NewManager(f.deps)
	busy, err := m.Create(context.Background(), 1)
	require.NoError(t, err)
	other, err := m.Create(context.Background(), 2)
	require.NoError(t, err)

	f.artworks.entered = make(chan struct{})
	f.artworks.release = make(chan struct{})
	loadDone := make(chan struct{})
	go func() {
		defer close(loadDone)
		_, _ = busy.LoadArtwork(context.Background(), 2)
	}()
	<-f.artworks.entered

	swept := make(chan int, 1)
	go func() { swept <- m.Sweep(30 * time.Minute) }()

	select {
	case n := <-swept:
		assert.Equal(t, 0, n)
	case <-time.After(time.Second):
		t.Fatal("Sweep waited on a session that is loading its artwork")
	}

	got, err := m.Get(other.ID().String())
	require.NoError(t, err)
	assert.Same(t, other, got)

	close(f.artworks.release)
	<-loadDone
}

func TestGetKeepsSessionAlive(t *testing.T) {
	f := newFixture()
	m := NewManager(f.deps)
	s, err := m.Create(context.Background(), 1)
	require.NoError(t, err)

	f.clock.Advance(25 * time.Minute)
	_, err = m.Get(s.ID().String())
	require.NoError(t, err)

	f.clock.Advance(25 * time.Minute)
	assert.Equal(t, 0, m.Sweep(30*time.Minute))

	f.clock.Advance(6 * time.Minute)
	assert.Equal(t, 1, m.Sweep(30*time.Minute))
}
