package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"art-customizer/models"
	"art-customizer/utils"
)

const (
	// Larger artwork is scaled down to fit this box before framing
	maxArtWidth  = 600
	maxArtHeight = 400

	// Glass is drawn as a white sheen; the layout opacity scales this alpha
	glassSheenAlpha = 0.2

	jpegQuality = 85
)

// Render draws the layout around src: frame colour fills the outer border,
// the mat sits inside it, the artwork is pasted at frame+mat padding, and the
// glass sheen covers everything inside the frame. The result is scaled by
// the layout's scale factor.
func Render(src image.Image, layout models.PreviewLayout) (*image.NRGBA, error) {
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("artwork image is empty")
	}

	art := imaging.Fit(src, maxArtWidth, maxArtHeight, imaging.Lanczos)
	fw := layout.FrameWidthPx
	pad := fw + layout.MatWidthPx
	w := art.Bounds().Dx() + 2*pad
	h := art.Bounds().Dy() + 2*pad

	canvas := imaging.New(w, h, hexOr(layout.FrameColorHex, color.NRGBA{A: 0xff}))

	if layout.MatWidthPx > 0 {
		mat := imaging.New(w-2*fw, h-2*fw, hexOr(layout.MatColorHex, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}))
		canvas = imaging.Paste(canvas, mat, image.Pt(fw, fw))
	}

	canvas = imaging.Paste(canvas, art, image.Pt(pad, pad))

	if layout.GlassOverlayOpacity > 0 {
		sheen := imaging.New(w-2*fw, h-2*fw, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
		canvas = imaging.Overlay(canvas, sheen, image.Pt(fw, fw), layout.GlassOverlayOpacity*glassSheenAlpha)
	}

	if layout.ScaleFactor > 0 && layout.ScaleFactor != 1 {
		sw := int(math.Round(float64(w) * layout.ScaleFactor))
		sh := int(math.Round(float64(h) * layout.ScaleFactor))
		canvas = imaging.Resize(canvas, sw, sh, imaging.Lanczos)
	}
	return canvas, nil
}

// RenderJPEG renders the layout and encodes it as JPEG
func RenderJPEG(src image.Image, layout models.PreviewLayout) ([]byte, error) {
	img, err := Render(src, layout)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}
	return buf.Bytes(), nil
}

func hexOr(hex string, fallback color.NRGBA) color.NRGBA {
	c, err := utils.ParseHexColor(hex)
	if err != nil {
		return fallback
	}
	return c
}
