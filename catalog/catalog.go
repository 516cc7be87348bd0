// Package catalog holds the fixed registry of customization options.
// Pricing and preview both resolve keys through it so they always agree on
// what a key means.
package catalog

import (
	"fmt"
	"sort"

	"art-customizer/models"
)

// Dimension names one lookup table of the catalog
type Dimension string

const (
	DimensionFrameStyle  Dimension = "frameStyle"
	DimensionFrameColor  Dimension = "frameColor"
	DimensionMatColor    Dimension = "matColor"
	DimensionGlassType   Dimension = "glassType"
	DimensionSize        Dimension = "size"
	DimensionAspectRatio Dimension = "aspectRatio"
	DimensionMounting    Dimension = "mounting"
	DimensionMaterial    Dimension = "material"
)

// NoGlass is the glass type that disables the glass layer
const NoGlass = "noGlass"

// Fallback colours used when a colour key has no catalog entry
const (
	FallbackFrameHex = "#000000"
	FallbackMatHex   = "#FFFFFF"
)

// Option is the metadata of one catalog entry. Fields that do not apply to
// a dimension are left empty.
type Option struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Hex         string `json:"hex,omitempty"`
	Scale       int    `json:"scale,omitempty"`
	Value       string `json:"value,omitempty"`
}

// Catalog is immutable after New returns
type Catalog struct {
	tables    map[Dimension]map[string]Option
	order     map[Dimension][]string
	fallbacks map[Dimension]Option
	defaults  models.CustomizationOptions
}

type entry struct {
	dim  Dimension
	opts []Option
}

var entries = []entry{
	{DimensionFrameStyle, []Option{
		{Key: "classic", Name: "Classic", Description: "Traditional wooden frame"},
		{Key: "modern", Name: "Modern", Description: "Sleek, minimal design"},
		{Key: "ornate", Name: "Ornate", Description: "Decorative and detailed"},
		{Key: "floating", Name: "Floating", Description: "Creates an illusion that artwork is floating"},
		{Key: "noFrame", Name: "No Frame", Description: "Canvas only, no frame"},
	}},
	{DimensionFrameColor, []Option{
		{Key: "black", Name: "Black", Hex: "#000000"},
		{Key: "white", Name: "White", Hex: "#FFFFFF"},
		{Key: "naturalWood", Name: "Natural Wood", Hex: "#D2B48C"},
		{Key: "walnut", Name: "Walnut", Hex: "#5C4033"},
		{Key: "mahogany", Name: "Mahogany", Hex: "#8B4513"},
		{Key: "gold", Name: "Gold", Hex: "#D4AF37"},
		{Key: "silver", Name: "Silver", Hex: "#C0C0C0"},
	}},
	{DimensionMatColor, []Option{
		{Key: "white", Name: "White", Hex: "#FFFFFF"},
		{Key: "offWhite", Name: "Off-White", Hex: "#F5F5F5"},
		{Key: "black", Name: "Black", Hex: "#000000"},
		{Key: "cream", Name: "Cream", Hex: "#FFFDD0"},
		{Key: "lightGray", Name: "Light Gray", Hex: "#D3D3D3"},
		{Key: "darkGray", Name: "Dark Gray", Hex: "#A9A9A9"},
		{Key: "navy", Name: "Navy", Hex: "#000080"},
	}},
	{DimensionGlassType, []Option{
		{Key: NoGlass, Name: "No Glass", Description: "Artwork is left uncovered"},
		{Key: "clear", Name: "Clear", Description: "Standard clear glass"},
		{Key: "nonGlare", Name: "Non-Glare", Description: "Reduces reflections"},
		{Key: "uvProtection", Name: "UV Protection", Description: "Blocks harmful UV rays"},
		{Key: "museumGlass", Name: "Museum Glass", Description: "Premium clarity with UV protection"},
	}},
	{DimensionSize, []Option{
		{Key: "small", Name: "Small", Scale: 75},
		{Key: "medium", Name: "Medium", Scale: 100},
		{Key: "large", Name: "Large", Scale: 125},
		{Key: "xlarge", Name: "Extra Large", Scale: 150},
	}},
	{DimensionAspectRatio, []Option{
		{Key: "original", Name: "Original", Value: "original"},
		{Key: "square", Name: "Square (1:1)", Value: "1:1"},
		{Key: "standard", Name: "Standard (4:3)", Value: "4:3"},
		{Key: "widescreen", Name: "Widescreen (16:9)", Value: "16:9"},
		{Key: "panoramic", Name: "Panoramic (2:1)", Value: "2:1"},
	}},
	{DimensionMounting, []Option{
		{Key: "wall", Name: "Wall Mount", Description: "Standard wall mounting hardware"},
		{Key: "easel", Name: "Easel", Description: "Display on a tabletop or shelf"},
		{Key: "standoff", Name: "Standoff", Description: "Modern floating look from wall"},
		{Key: "clipFrame", Name: "Clip Frame", Description: "Minimalist glass clip mounting"},
	}},
	{DimensionMaterial, []Option{
		{Key: "canvas", Name: "Canvas", Description: "Gallery-wrapped cotton canvas"},
		{Key: "paper", Name: "Paper", Description: "Archival fine art paper"},
		{Key: "metal", Name: "Metal", Description: "Dye-sublimated aluminium"},
		{Key: "acrylic", Name: "Acrylic", Description: "Face-mounted acrylic"},
	}},
}

// Defaults applied whenever an artwork is loaded or the session is reset
var defaultOptions = models.CustomizationOptions{
	Frame:    models.FrameOptions{Style: "classic", Color: "black", Width: models.FrameWidthMedium},
	Mat:      models.MatOptions{Enabled: true, Color: "white", Width: models.MatWidthStandard},
	Glass:    models.GlassOptions{Type: "clear", GlareReduction: false},
	Size:     models.SizeOptions{Scale: 100, AspectRatio: "original"},
	Mounting: models.MountingOptions{Type: "wall", Hardware: models.HardwareStandard},
	Material: models.MaterialOptions{Type: "canvas"},
}

var defaultCatalog = New()

// Default returns the process-wide catalog
func Default() *Catalog {
	return defaultCatalog
}

// New builds a catalog from the fixed option tables
func New() *Catalog {
	c := &Catalog{
		tables:    make(map[Dimension]map[string]Option, len(entries)),
		order:     make(map[Dimension][]string, len(entries)),
		fallbacks: make(map[Dimension]Option, len(entries)),
		defaults:  defaultOptions,
	}
	for _, e := range entries {
		table := make(map[string]Option, len(e.opts))
		keys := make([]string, 0, len(e.opts))
		for _, o := range e.opts {
			table[o.Key] = o
			keys = append(keys, o.Key)
		}
		c.tables[e.dim] = table
		c.order[e.dim] = keys
	}

	c.fallbacks[DimensionFrameStyle] = c.tables[DimensionFrameStyle][defaultOptions.Frame.Style]
	c.fallbacks[DimensionFrameColor] = Option{Key: "", Name: "Default", Hex: FallbackFrameHex}
	c.fallbacks[DimensionMatColor] = Option{Key: "", Name: "Default", Hex: FallbackMatHex}
	c.fallbacks[DimensionGlassType] = c.tables[DimensionGlassType][defaultOptions.Glass.Type]
	c.fallbacks[DimensionSize] = c.tables[DimensionSize]["medium"]
	c.fallbacks[DimensionAspectRatio] = c.tables[DimensionAspectRatio][defaultOptions.Size.AspectRatio]
	c.fallbacks[DimensionMounting] = c.tables[DimensionMounting][defaultOptions.Mounting.Type]
	c.fallbacks[DimensionMaterial] = c.tables[DimensionMaterial][defaultOptions.Material.Type]
	return c
}

// Resolve returns the entry for key, or the dimension's fallback when the
// key is unknown. The bool reports whether the key was found.
func (c *Catalog) Resolve(dim Dimension, key string) (Option, bool) {
	if o, ok := c.tables[dim][key]; ok {
		return o, true
	}
	return c.fallbacks[dim], false
}

// Has reports whether key exists in dim
func (c *Catalog) Has(dim Dimension, key string) bool {
	_, ok := c.tables[dim][key]
	return ok
}

// Options returns the entries of dim in display order
func (c *Catalog) Options(dim Dimension) []Option {
	keys := c.order[dim]
	out := make([]Option, 0, len(keys))
	for _, k := range keys {
		out = append(out, c.tables[dim][k])
	}
	return out
}

// Keys returns the keys of dim in display order
func (c *Catalog) Keys(dim Dimension) []string {
	return append([]string(nil), c.order[dim]...)
}

// Dimensions returns every dimension, sorted by name
func (c *Catalog) Dimensions() []Dimension {
	dims := make([]Dimension, 0, len(c.tables))
	for d := range c.tables {
		dims = append(dims, d)
	}
	sort.Slice(dims, func(i, j int) bool { return dims[i] < dims[j] })
	return dims
}

// Defaults returns a fresh copy of the default options
func (c *Catalog) Defaults() models.CustomizationOptions {
	return c.defaults
}

// FrameWidths, MatWidths and Hardware list the closed enum domains
var (
	FrameWidths = []models.FrameWidth{models.FrameWidthThin, models.FrameWidthMedium, models.FrameWidthThick}
	MatWidths   = []models.MatWidth{models.MatWidthNarrow, models.MatWidthStandard, models.MatWidthWide}
	Hardware    = []models.Hardware{models.HardwareStandard, models.HardwarePremium, models.HardwareHidden}
)

// Snapshot is the serialisable view of the whole catalog
type Snapshot struct {
	Categories  []models.Category           `json:"categories"`
	Tables      map[Dimension][]Option      `json:"tables"`
	FrameWidths []models.FrameWidth         `json:"frameWidths"`
	MatWidths   []models.MatWidth           `json:"matWidths"`
	Hardware    []models.Hardware           `json:"hardware"`
	MinScale    int                         `json:"minScale"`
	MaxScale    int                         `json:"maxScale"`
	Defaults    models.CustomizationOptions `json:"defaults"`
}

// Snapshot returns a copy of every table for the catalog API
func (c *Catalog) Snapshot() Snapshot {
	tables := make(map[Dimension][]Option, len(c.tables))
	for _, d := range c.Dimensions() {
		tables[d] = c.Options(d)
	}
	return Snapshot{
		Categories:  append([]models.Category(nil), models.Categories...),
		Tables:      tables,
		FrameWidths: append([]models.FrameWidth(nil), FrameWidths...),
		MatWidths:   append([]models.MatWidth(nil), MatWidths...),
		Hardware:    append([]models.Hardware(nil), Hardware...),
		MinScale:    models.MinScale,
		MaxScale:    models.MaxScale,
		Defaults:    c.defaults,
	}
}

// Validate checks every key and enum of opts, returning the first violation
func (c *Catalog) Validate(opts models.CustomizationOptions) error {
	checks := []struct {
		cat   models.Category
		field string
		dim   Dimension
		key   string
	}{
		{models.CategoryFrame, "style", DimensionFrameStyle, opts.Frame.Style},
		{models.CategoryFrame, "color", DimensionFrameColor, opts.Frame.Color},
		{models.CategoryMat, "color", DimensionMatColor, opts.Mat.Color},
		{models.CategoryGlass, "type", DimensionGlassType, opts.Glass.Type},
		{models.CategorySize, "aspectRatio", DimensionAspectRatio, opts.Size.AspectRatio},
		{models.CategoryMounting, "type", DimensionMounting, opts.Mounting.Type},
		{models.CategoryMaterial, "type", DimensionMaterial, opts.Material.Type},
	}
	for _, ch := range checks {
		if !c.Has(ch.dim, ch.key) {
			return &models.InvalidOptionValueError{Category: ch.cat, Field: ch.field, Value: ch.key, Reason: "unknown catalog key"}
		}
	}
	if !containsFrameWidth(opts.Frame.Width) {
		return &models.InvalidOptionValueError{Category: models.CategoryFrame, Field: "width", Value: opts.Frame.Width, Reason: "must be thin, medium or thick"}
	}
	if !containsMatWidth(opts.Mat.Width) {
		return &models.InvalidOptionValueError{Category: models.CategoryMat, Field: "width", Value: opts.Mat.Width, Reason: "must be narrow, standard or wide"}
	}
	if !containsHardware(opts.Mounting.Hardware) {
		return &models.InvalidOptionValueError{Category: models.CategoryMounting, Field: "hardware", Value: opts.Mounting.Hardware, Reason: "must be standard, premium or hidden"}
	}
	if opts.Size.Scale < models.MinScale || opts.Size.Scale > models.MaxScale {
		return &models.InvalidOptionValueError{Category: models.CategorySize, Field: "scale", Value: opts.Size.Scale, Reason: "out of range"}
	}
	return nil
}

func containsFrameWidth(w models.FrameWidth) bool {
	for _, v := range FrameWidths {
		if v == w {
			return true
		}
	}
	return false
}

func containsMatWidth(w models.MatWidth) bool {
	for _, v := range MatWidths {
		if v == w {
			return true
		}
	}
	return false
}

func containsHardware(h models.Hardware) bool {
	for _, v := range Hardware {
		if v == h {
			return true
		}
	}
	return false
}

// DisplayName names a configuration for carts and order history,
// e.g. "Large Canvas - Classic"
func (c *Catalog) DisplayName(sizeCategory string, opts models.CustomizationOptions) string {
	size, _ := c.Resolve(DimensionSize, sizeCategory)
	material, _ := c.Resolve(DimensionMaterial, opts.Material.Type)
	frame, _ := c.Resolve(DimensionFrameStyle, opts.Frame.Style)
	return fmt.Sprintf("%s %s - %s", size.Name, material.Name, frame.Name)
}
