package preview

import (
	"log"

	"art-customizer/catalog"
	"art-customizer/metrics"
	"art-customizer/models"
)

// Frame and mat border widths in pixels
var (
	frameWidthPx = map[models.FrameWidth]int{
		models.FrameWidthThin:   10,
		models.FrameWidthMedium: 20,
		models.FrameWidthThick:  30,
	}
	matWidthPx = map[models.MatWidth]int{
		models.MatWidthNarrow:   20,
		models.MatWidthStandard: 40,
		models.MatWidthWide:     60,
	}
)

const (
	defaultFrameWidthPx = 20
	defaultMatWidthPx   = 40

	glassOpacityGlareReduced = 0.3
	glassOpacity             = 0.6
)

// Compositor turns options into a layered layout. It is stateless.
type Compositor struct {
	catalog *catalog.Catalog
}

// NewCompositor creates a Compositor resolving colours through cat
func NewCompositor(cat *catalog.Catalog) *Compositor {
	return &Compositor{catalog: cat}
}

// Compose returns the layout for artworkImage framed with opts. It never
// fails: unknown keys resolve to documented defaults and are reported in
// the layout's diagnostics.
func (c *Compositor) Compose(artworkImage string, opts models.CustomizationOptions) models.PreviewLayout {
	layout := models.PreviewLayout{
		ArtworkImage: artworkImage,
		ScaleFactor:  float64(opts.Size.Scale) / 100,
	}

	fw, ok := frameWidthPx[opts.Frame.Width]
	if !ok {
		fw = defaultFrameWidthPx
		c.unresolved(&layout, "frameWidth", string(opts.Frame.Width), "20px")
	}
	layout.FrameWidthPx = fw

	frameColor, ok := c.catalog.Resolve(catalog.DimensionFrameColor, opts.Frame.Color)
	if !ok {
		c.unresolved(&layout, string(catalog.DimensionFrameColor), opts.Frame.Color, catalog.FallbackFrameHex)
	}
	layout.FrameColorHex = frameColor.Hex

	matColor, ok := c.catalog.Resolve(catalog.DimensionMatColor, opts.Mat.Color)
	if !ok {
		c.unresolved(&layout, string(catalog.DimensionMatColor), opts.Mat.Color, catalog.FallbackMatHex)
	}
	layout.MatColorHex = matColor.Hex

	if opts.Mat.Enabled {
		mw, ok := matWidthPx[opts.Mat.Width]
		if !ok {
			mw = defaultMatWidthPx
			c.unresolved(&layout, "matWidth", string(opts.Mat.Width), "40px")
		}
		layout.MatWidthPx = mw
	}

	if opts.Glass.Type != catalog.NoGlass {
		if !c.catalog.Has(catalog.DimensionGlassType, opts.Glass.Type) {
			c.unresolved(&layout, string(catalog.DimensionGlassType), opts.Glass.Type, "glass overlay")
		}
		layout.GlassOverlayOpacity = glassOpacity
		if opts.Glass.GlareReduction {
			layout.GlassOverlayOpacity = glassOpacityGlareReduced
		}
	}

	layout.Layers = layers(layout)
	return layout
}

// layers lists the composition outermost first: frame, mat, artwork, glass
func layers(l models.PreviewLayout) []models.PreviewLayer {
	out := []models.PreviewLayer{
		{Kind: models.LayerFrame, InsetPx: 0, BorderPx: l.FrameWidthPx, ColorHex: l.FrameColorHex, Opacity: 1},
	}
	if l.MatWidthPx > 0 {
		out = append(out, models.PreviewLayer{
			Kind: models.LayerMat, InsetPx: l.FrameWidthPx, BorderPx: l.MatWidthPx, ColorHex: l.MatColorHex, Opacity: 1,
		})
	}
	out = append(out, models.PreviewLayer{
		Kind: models.LayerArtwork, InsetPx: 0, PaddingPx: l.FrameWidthPx + l.MatWidthPx, Opacity: 1, Interactive: true,
	})
	if l.GlassOverlayOpacity > 0 {
		out = append(out, models.PreviewLayer{
			Kind: models.LayerGlass, InsetPx: l.FrameWidthPx, Opacity: l.GlassOverlayOpacity,
		})
	}
	return out
}

func (c *Compositor) unresolved(l *models.PreviewLayout, dimension, key, fallback string) {
	log.Printf("⚠️  Compositor: unresolved %s key %q, using %s", dimension, key, fallback)
	metrics.RecordUnresolvedKey("preview", dimension)
	l.Diagnostics = append(l.Diagnostics, models.Diagnostic{
		Kind:      models.DiagnosticUnresolvedKey,
		Dimension: dimension,
		Key:       key,
		Fallback:  fallback,
	})
}
