package catalog

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"art-customizer/models"
)

func TestDefaultsAreValid(t *testing.T) {
	c := New()
	require.NoError(t, c.Validate(c.Defaults()))

	d := c.Defaults()
	assert.Equal(t, "classic", d.Frame.Style)
	assert.Equal(t, "black", d.Frame.Color)
	assert.Equal(t, models.FrameWidthMedium, d.Frame.Width)
	assert.True(t, d.Mat.Enabled)
	assert.Equal(t, "white", d.Mat.Color)
	assert.Equal(t, models.MatWidthStandard, d.Mat.Width)
	assert.Equal(t, "clear", d.Glass.Type)
	assert.False(t, d.Glass.GlareReduction)
	assert.Equal(t, 100, d.Size.Scale)
	assert.Equal(t, "original", d.Size.AspectRatio)
	assert.Equal(t, "wall", d.Mounting.Type)
	assert.Equal(t, models.HardwareStandard, d.Mounting.Hardware)
	assert.Equal(t, "canvas", d.Material.Type)
}

func TestDefaultsReturnsCopy(t *testing.T) {
	c := New()
	d := c.Defaults()
	d.Frame.Color = "gold"
	assert.Equal(t, "black", c.Defaults().Frame.Color)
}

func TestResolveFallbacks(t *testing.T) {
	c := Default()

	o, ok := c.Resolve(DimensionFrameColor, "gold")
	assert.True(t, ok)
	assert.Equal(t, "#D4AF37", o.Hex)

	o, ok = c.Resolve(DimensionFrameColor, "chartreuse")
	assert.False(t, ok)
	assert.Equal(t, FallbackFrameHex, o.Hex)

	o, ok = c.Resolve(DimensionMatColor, "chartreuse")
	assert.False(t, ok)
	assert.Equal(t, FallbackMatHex, o.Hex)

	o, ok = c.Resolve(DimensionMaterial, "wood")
	assert.False(t, ok)
	assert.Equal(t, "canvas", o.Key)
}

func TestOptionsKeepDisplayOrder(t *testing.T) {
	keys := Default().Keys(DimensionFrameStyle)
	assert.Equal(t, []string{"classic", "modern", "ornate", "floating", "noFrame"}, keys)
	assert.True(t, Default().Has(DimensionGlassType, NoGlass))
}

func TestApply(t *testing.T) {
	c := New()
	base := c.Defaults()

	t.Run("catalog key", func(t *testing.T) {
		next, err := c.Apply(base, models.CategoryFrame, "color", "gold")
		require.NoError(t, err)
		assert.Equal(t, "gold", next.Frame.Color)
		assert.Equal(t, "black", base.Frame.Color)
	})

	t.Run("enum", func(t *testing.T) {
		next, err := c.Apply(base, models.CategoryMat, "width", "wide")
		require.NoError(t, err)
		assert.Equal(t, models.MatWidthWide, next.Mat.Width)
	})

	t.Run("bool", func(t *testing.T) {
		next, err := c.Apply(base, models.CategoryMat, "enabled", false)
		require.NoError(t, err)
		assert.False(t, next.Mat.Enabled)
	})

	t.Run("scale from json number forms", func(t *testing.T) {
		for _, v := range []interface{}{125, int64(125), float64(125), json.Number("125")} {
			next, err := c.Apply(base, models.CategorySize, "scale", v)
			require.NoError(t, err)
			assert.Equal(t, 125, next.Size.Scale)
		}
	})

	t.Run("scale bounds", func(t *testing.T) {
		_, err := c.Apply(base, models.CategorySize, "scale", 50)
		assert.NoError(t, err)
		_, err = c.Apply(base, models.CategorySize, "scale", 200)
		assert.NoError(t, err)
		_, err = c.Apply(base, models.CategorySize, "scale", 49)
		assert.Error(t, err)
		_, err = c.Apply(base, models.CategorySize, "scale", 201)
		assert.Error(t, err)
		_, err = c.Apply(base, models.CategorySize, "scale", 100.5)
		assert.Error(t, err)
	})

	t.Run("material", func(t *testing.T) {
		next, err := c.Apply(base, models.CategoryMaterial, "type", "acrylic")
		require.NoError(t, err)
		assert.Equal(t, "acrylic", next.Material.Type)
	})

	t.Run("invalid values leave options unchanged", func(t *testing.T) {
		cases := []struct {
			cat   models.Category
			field string
			value interface{}
		}{
			{models.CategoryFrame, "style", "baroque"},
			{models.CategoryFrame, "width", "huge"},
			{models.CategoryFrame, "color", 7},
			{models.CategoryMat, "enabled", "yes"},
			{models.CategoryGlass, "type", "sapphire"},
			{models.CategoryMounting, "hardware", "magnetic"},
			{models.CategorySize, "scale", "100"},
			{models.CategorySize, "depth", 3},
			{models.Category("lighting"), "type", "led"},
		}
		for _, tc := range cases {
			next, err := c.Apply(base, tc.cat, tc.field, tc.value)
			var invalid *models.InvalidOptionValueError
			require.True(t, errors.As(err, &invalid), "%s.%s=%v", tc.cat, tc.field, tc.value)
			assert.Equal(t, tc.cat, invalid.Category)
			assert.Equal(t, base, next)
		}
	})
}

func TestValidateRejectsUnknownKey(t *testing.T) {
	c := New()
	opts := c.Defaults()
	opts.Glass.Type = "sapphire"
	err := c.Validate(opts)
	var invalid *models.InvalidOptionValueError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "type", invalid.Field)
}

func TestSnapshotListsAllDimensions(t *testing.T) {
	s := Default().Snapshot()
	assert.Len(t, s.Tables, 8)
	assert.Len(t, s.Tables[DimensionFrameColor], 7)
	assert.Equal(t, models.Categories, s.Categories)
	assert.Equal(t, 50, s.MinScale)
	assert.Equal(t, 200, s.MaxScale)
}

func TestDisplayName(t *testing.T) {
	c := Default()
	opts := c.Defaults()
	assert.Equal(t, "Medium Canvas - Classic", c.DisplayName("medium", opts))

	opts.Material.Type = "metal"
	opts.Frame.Style = "noFrame"
	assert.Equal(t, "Extra Large Metal - No Frame", c.DisplayName("xlarge", opts))
}
