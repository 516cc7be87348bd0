package models

// Category identifies one customization dimension of a framed artwork
type Category string

const (
	CategoryFrame    Category = "frame"
	CategoryMat      Category = "mat"
	CategoryGlass    Category = "glass"
	CategorySize     Category = "size"
	CategoryMounting Category = "mounting"
	CategoryMaterial Category = "material"
)

// Categories lists every category in display order
var Categories = []Category{
	CategoryFrame,
	CategoryMat,
	CategoryGlass,
	CategorySize,
	CategoryMounting,
	CategoryMaterial,
}

// FrameWidth is the moulding width of the frame
type FrameWidth string

const (
	FrameWidthThin   FrameWidth = "thin"
	FrameWidthMedium FrameWidth = "medium"
	FrameWidthThick  FrameWidth = "thick"
)

// MatWidth is the visible border width of the mat
type MatWidth string

const (
	MatWidthNarrow   MatWidth = "narrow"
	MatWidthStandard MatWidth = "standard"
	MatWidthWide     MatWidth = "wide"
)

// Hardware is the mounting hardware grade
type Hardware string

const (
	HardwareStandard Hardware = "standard"
	HardwarePremium  Hardware = "premium"
	HardwareHidden   Hardware = "hidden"
)

// Scale bounds (percentage of the artwork's native size)
const (
	MinScale = 50
	MaxScale = 200
)

type FrameOptions struct {
	Style string     `json:"style"`
	Color string     `json:"color"`
	Width FrameWidth `json:"width"`
}

type MatOptions struct {
	Enabled bool     `json:"enabled"`
	Color   string   `json:"color"`
	Width   MatWidth `json:"width"`
}

type GlassOptions struct {
	Type           string `json:"type"`
	GlareReduction bool   `json:"glareReduction"`
}

type SizeOptions struct {
	Scale       int    `json:"scale"`
	AspectRatio string `json:"aspectRatio"`
}

type MountingOptions struct {
	Type     string   `json:"type"`
	Hardware Hardware `json:"hardware"`
}

type MaterialOptions struct {
	Type string `json:"type"`
}

// CustomizationOptions holds the selected value of every customization field.
// It contains no references, so assigning it produces an independent copy.
type CustomizationOptions struct {
	Frame    FrameOptions    `json:"frame"`
	Mat      MatOptions      `json:"mat"`
	Glass    GlassOptions    `json:"glass"`
	Size     SizeOptions     `json:"size"`
	Mounting MountingOptions `json:"mounting"`
	Material MaterialOptions `json:"material"`
}

// SetOptionRequest represents the request body for changing a single option
type SetOptionRequest struct {
	Category Category    `json:"category"`
	Field    string      `json:"field"`
	Value    interface{} `json:"value"`
}
