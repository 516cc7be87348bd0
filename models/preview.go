package models

// LayerKind names one layer of the preview composition
type LayerKind string

const (
	LayerFrame   LayerKind = "frame"
	LayerMat     LayerKind = "mat"
	LayerArtwork LayerKind = "artwork"
	LayerGlass   LayerKind = "glass"
)

// PreviewLayer describes one layer, outermost first.
// InsetPx is the distance from the outer edge of the composition.
type PreviewLayer struct {
	Kind        LayerKind `json:"kind"`
	InsetPx     int       `json:"insetPx"`
	BorderPx    int       `json:"borderPx,omitempty"`
	PaddingPx   int       `json:"paddingPx,omitempty"`
	ColorHex    string    `json:"colorHex,omitempty"`
	Opacity     float64   `json:"opacity"`
	Interactive bool      `json:"interactive"`
}

// PreviewLayout is the geometric description of the framed artwork
type PreviewLayout struct {
	ArtworkImage        string         `json:"artworkImage"`
	ScaleFactor         float64        `json:"scaleFactor"`
	FrameWidthPx        int            `json:"frameWidthPx"`
	FrameColorHex       string         `json:"frameColorHex"`
	MatWidthPx          int            `json:"matWidthPx"`
	MatColorHex         string         `json:"matColorHex"`
	GlassOverlayOpacity float64        `json:"glassOverlayOpacity"`
	Layers              []PreviewLayer `json:"layers"`
	Diagnostics         []Diagnostic   `json:"diagnostics,omitempty"`
}
