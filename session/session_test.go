package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"art-customizer/catalog"
	"art-customizer/models"
)

func loaded(t *testing.T, f *fixture, artworkID int64) *Session {
	t.Helper()
	s := New(f.deps)
	_, err := s.LoadArtwork(context.Background(), artworkID)
	require.NoError(t, err)
	return s
}

func TestNewSessionHasDefaultsAndNoPrice(t *testing.T) {
	s := New(newFixture().deps)
	view := s.View()

	assert.Nil(t, view.Artwork)
	assert.Nil(t, view.Price)
	assert.Nil(t, view.Preview)
	assert.Equal(t, catalog.Default().Defaults(), view.Options)
}

func TestLoadArtworkComputesPriceAndPreview(t *testing.T) {
	f := newFixture()
	s := loaded(t, f, 2)
	view := s.View()

	require.NotNil(t, view.Price)
	require.NotNil(t, view.Preview)
	assert.Equal(t, "175.00", view.Price.FinalPrice.StringFixed(2))
	assert.Equal(t, "/images/lilies.jpg", view.Preview.ArtworkImage)
	assert.Equal(t, 20, view.Preview.FrameWidthPx)
}

func TestLoadArtworkNotFound(t *testing.T) {
	s := New(newFixture().deps)
	_, err := s.LoadArtwork(context.Background(), 99)

	assert.ErrorIs(t, err, models.ErrArtworkNotFound)
	assert.Nil(t, s.View().Artwork)
}

func TestLoadArtworkResetsOptions(t *testing.T) {
	f := newFixture()
	s := loaded(t, f, 1)
	_, err := s.SetOption(models.CategoryFrame, "style", "ornate")
	require.NoError(t, err)

	_, err = s.LoadArtwork(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "classic", s.Options().Frame.Style)
}

func TestEndToEndCustomization(t *testing.T) {
	f := newFixture()
	s := loaded(t, f, 1)

	steps := []struct {
		category models.Category
		field    string
		value    interface{}
	}{
		{models.CategoryFrame, "style", "modern"},
		{models.CategoryMat, "color", "black"},
		{models.CategoryGlass, "type", "nonGlare"},
		{models.CategorySize, "scale", 125},
	}
	for _, step := range steps {
		_, err := s.SetOption(step.category, step.field, step.value)
		require.NoError(t, err)
	}

	view := s.View()
	assert.Equal(t, "790.00", view.Price.FinalPrice.StringFixed(2))
	assert.Equal(t, "large", view.Price.SizeCategory)
	assert.Equal(t, 1.25, view.Preview.ScaleFactor)
}

func TestSetOptionIsIdempotent(t *testing.T) {
	f := newFixture()
	s := loaded(t, f, 1)

	_, err := s.SetOption(models.CategoryFrame, "color", "gold")
	require.NoError(t, err)
	first := s.View()

	_, err = s.SetOption(models.CategoryFrame, "color", "gold")
	require.NoError(t, err)
	second := s.View()

	assert.Equal(t, first.Options, second.Options)
	assert.True(t, first.Price.FinalPrice.Equal(second.Price.FinalPrice))
	assert.Equal(t, first.Preview.FrameColorHex, second.Preview.FrameColorHex)
}

func TestSetOptionInvalidLeavesStateUnchanged(t *testing.T) {
	f := newFixture()
	s := loaded(t, f, 1)
	before := s.View()

	cases := []struct {
		category models.Category
		field    string
		value    interface{}
	}{
		{models.CategorySize, "scale", 250},
		{models.CategorySize, "scale", 49},
		{models.CategoryFrame, "style", "baroque"},
		{models.CategoryFrame, "width", "huge"},
		{models.CategoryGlass, "glareReduction", "yes"},
		{models.Category("lighting"), "type", "spot"},
	}
	for _, tc := range cases {
		_, err := s.SetOption(tc.category, tc.field, tc.value)
		var invalid *models.InvalidOptionValueError
		require.ErrorAs(t, err, &invalid, "%s.%s=%v", tc.category, tc.field, tc.value)
	}

	after := s.View()
	assert.Equal(t, before.Options, after.Options)
	assert.Equal(t, before.Version, after.Version)
	assert.True(t, before.Price.FinalPrice.Equal(after.Price.FinalPrice))
}

func TestSetOptionWithoutArtwork(t *testing.T) {
	s := New(newFixture().deps)

	view, err := s.SetOption(models.CategoryFrame, "style", "modern")
	require.NoError(t, err)
	assert.Equal(t, "modern", view.Options.Frame.Style)
	assert.Nil(t, view.Price)
}

func TestSetOptionReturnsResultingView(t *testing.T) {
	f := newFixture()
	s := loaded(t, f, 1)
	before := s.View()

	view, err := s.SetOption(models.CategoryGlass, "type", "museumGlass")
	require.NoError(t, err)
	assert.Equal(t, before.Version+1, view.Version)
	assert.Equal(t, "museumGlass", view.Options.Glass.Type)
	assert.Equal(t, "600.00", view.Price.FinalPrice.StringFixed(2))

	rejected, err := s.SetOption(models.CategoryGlass, "type", "sapphire")
	require.Error(t, err)
	assert.Equal(t, view.Version, rejected.Version)
	assert.Equal(t, "museumGlass", rejected.Options.Glass.Type)
}

func TestResetRestoresDefaults(t *testing.T) {
	f := newFixture()
	s := loaded(t, f, 1)
	initial := s.View()

	_, _ = s.SetOption(models.CategoryFrame, "style", "ornate")
	_, _ = s.SetOption(models.CategoryMat, "enabled", false)
	_, _ = s.SetOption(models.CategoryMaterial, "type", "metal")
	_, _ = s.SetOption(models.CategorySize, "scale", 200)

	view := s.Reset()
	assert.Equal(t, initial.Options, view.Options)
	assert.True(t, initial.Price.FinalPrice.Equal(view.Price.FinalPrice))
	assert.Equal(t, initial.Preview.Layers, view.Preview.Layers)
}

func TestResetWithoutArtworkIsNoop(t *testing.T) {
	s := New(newFixture().deps)
	_, _ = s.SetOption(models.CategoryFrame, "style", "modern")

	view := s.Reset()
	assert.Equal(t, "modern", view.Options.Frame.Style)
	assert.Nil(t, view.Price)
}

func TestViewIsACopy(t *testing.T) {
	f := newFixture()
	s := loaded(t, f, 1)

	view := s.View()
	view.Price.Breakdown[0].Label = "tampered"
	view.Preview.Layers[0].BorderPx = 999

	again := s.View()
	assert.Equal(t, "Base price", again.Price.Breakdown[0].Label)
	assert.NotEqual(t, 999, again.Preview.Layers[0].BorderPx)
}

func TestSnapshotRequiresArtwork(t *testing.T) {
	s := New(newFixture().deps)
	_, err := s.Snapshot()
	assert.ErrorIs(t, err, models.ErrNoArtworkLoaded)
}

func TestSnapshotIsolatedFromLaterEdits(t *testing.T) {
	f := newFixture()
	s := loaded(t, f, 1)

	snapshot, err := s.Snapshot()
	require.NoError(t, err)

	_, err = s.SetOption(models.CategoryFrame, "style", "ornate")
	require.NoError(t, err)

	assert.Equal(t, "classic", snapshot.Options.Frame.Style)
	assert.Equal(t, "525.00", snapshot.FinalPrice().StringFixed(2))
	assert.Equal(t, "550.00", s.View().Price.FinalPrice.StringFixed(2))
}

func TestConcurrentSetOption(t *testing.T) {
	f := newFixture()
	s := loaded(t, f, 1)

	styles := []string{"classic", "modern", "ornate", "floating", "noFrame"}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := s.SetOption(models.CategoryFrame, "style", styles[i%len(styles)])
			assert.NoError(t, err)
		}(i)
		go func() {
			defer wg.Done()
			view := s.View()
			assert.NotNil(t, view.Price)
		}()
	}
	wg.Wait()

	view := s.View()
	assert.Equal(t, int64(51), view.Version)
	expected := f.deps.Pricer.Calculate(view.Artwork.BasePrice, view.Options)
	assert.True(t, expected.FinalPrice.Equal(view.Price.FinalPrice))
}

func TestSnapshotStrictPricingError(t *testing.T) {
	f := newFixture()
	f.deps.Pricer = strictFailPricer{f.deps.Pricer}
	s := loaded(t, f, 1)

	_, err := s.Save(context.Background())
	var commitErr *models.CommitError
	require.ErrorAs(t, err, &commitErr)
	assert.Equal(t, models.CommitStageSnapshot, commitErr.Stage)
	assert.Empty(t, f.store.saved)
}

type strictFailPricer struct {
	PriceCalculator
}

func (p strictFailPricer) CalculateStrict(base decimal.Decimal, opts models.CustomizationOptions) (*models.PricedConfiguration, error) {
	return nil, errors.New("pricebook unavailable")
}
