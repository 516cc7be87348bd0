package pricing

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"art-customizer/catalog"
	"art-customizer/metrics"
	"art-customizer/models"
	"art-customizer/utils"
)

//go:embed pricebook.json
var defaultPricebook []byte

// PricingConfig represents the pricing configuration structure
type PricingConfig struct {
	Currency            string                     `json:"currency"`
	SizeMultipliers     map[string]decimal.Decimal `json:"sizeMultipliers"`
	MaterialMultipliers map[string]decimal.Decimal `json:"materialMultipliers"`
	FrameSurcharges     map[string]decimal.Decimal `json:"frameSurcharges"`
	MatSurcharge        decimal.Decimal            `json:"matSurcharge"`
	GlassSurcharges     map[string]decimal.Decimal `json:"glassSurcharges"`
}

// Engine handles pricing calculations based on JSON configuration.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	config *PricingConfig
}

// NewEngine creates a pricing engine. An empty configPath uses the built-in
// pricebook. The pricebook must price every key cat offers.
func NewEngine(cat *catalog.Catalog, configPath string) (*Engine, error) {
	data := defaultPricebook
	source := "embedded pricebook"

	if configPath != "" {
		// Resolve config path
		if !filepath.IsAbs(configPath) {
			wd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get working directory: %w", err)
			}
			configPath = filepath.Join(wd, configPath)
		}

		var err error
		data, err = os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read pricing config: %w", err)
		}
		source = configPath
	}

	var config PricingConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse pricing config: %w", err)
	}

	if err := validateConfig(&config, cat); err != nil {
		return nil, fmt.Errorf("invalid pricing config: %w", err)
	}

	log.Printf("✅ PricingEngine: Successfully loaded pricing config from %s", source)
	return &Engine{config: &config}, nil
}

func validateConfig(config *PricingConfig, cat *catalog.Catalog) error {
	if config.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	required := []struct {
		name  string
		dim   catalog.Dimension
		table map[string]decimal.Decimal
	}{
		{"size multiplier", catalog.DimensionSize, config.SizeMultipliers},
		{"material multiplier", catalog.DimensionMaterial, config.MaterialMultipliers},
		{"frame surcharge", catalog.DimensionFrameStyle, config.FrameSurcharges},
		{"glass surcharge", catalog.DimensionGlassType, config.GlassSurcharges},
	}
	for _, r := range required {
		for _, key := range cat.Keys(r.dim) {
			if _, ok := r.table[key]; !ok {
				return fmt.Errorf("%s for %q is required", r.name, key)
			}
		}
	}
	for name, table := range map[string]map[string]decimal.Decimal{
		"size multiplier":     config.SizeMultipliers,
		"material multiplier": config.MaterialMultipliers,
		"frame surcharge":     config.FrameSurcharges,
		"glass surcharge":     config.GlassSurcharges,
	} {
		for key, v := range table {
			if v.IsNegative() {
				return fmt.Errorf("%s %q is negative", name, key)
			}
		}
	}
	if config.MatSurcharge.IsNegative() {
		return fmt.Errorf("mat surcharge is negative")
	}
	return nil
}

// Config returns a copy of the loaded tables
func (e *Engine) Config() PricingConfig {
	c := *e.config
	c.SizeMultipliers = copyTable(e.config.SizeMultipliers)
	c.MaterialMultipliers = copyTable(e.config.MaterialMultipliers)
	c.FrameSurcharges = copyTable(e.config.FrameSurcharges)
	c.GlassSurcharges = copyTable(e.config.GlassSurcharges)
	return c
}

func copyTable(in map[string]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Calculate prices a configuration. Unknown keys contribute nothing
// (multiplier 1, surcharge 0) and are reported as diagnostics, so a partially
// configured session still gets a price.
//
// price = round2(base * size * material + frame + mat + glass)
func (e *Engine) Calculate(basePrice decimal.Decimal, opts models.CustomizationOptions) *models.PricedConfiguration {
	metrics.RecordPriceCalculation("display")
	return e.calculate(basePrice, opts)
}

// CalculateStrict is the authoritative path used when committing: any
// unresolved key is an error instead of a diagnostic.
func (e *Engine) CalculateStrict(basePrice decimal.Decimal, opts models.CustomizationOptions) (*models.PricedConfiguration, error) {
	metrics.RecordPriceCalculation("strict")
	priced := e.calculate(basePrice, opts)
	if len(priced.Diagnostics) > 0 {
		return nil, &models.UnresolvedCatalogKeyError{Diagnostics: priced.Diagnostics}
	}
	return priced, nil
}

func (e *Engine) calculate(basePrice decimal.Decimal, opts models.CustomizationOptions) *models.PricedConfiguration {
	sizeCategory := utils.SizeCategoryForScale(opts.Size.Scale)
	result := &models.PricedConfiguration{
		Currency:     e.config.Currency,
		SizeCategory: sizeCategory,
		Breakdown:    make([]models.PriceLine, 0, 6),
	}

	// Multipliers compound on the unrounded running price; each breakdown
	// line is the change in the rounded running price, so lines sum to the total.
	running := basePrice
	rounded := utils.RoundPrice(running)
	result.Breakdown = append(result.Breakdown, models.PriceLine{Label: "Base price", Amount: rounded})

	sizeMult := e.multiplier(result, e.config.SizeMultipliers, catalog.DimensionSize, sizeCategory)
	running = running.Mul(sizeMult)
	rounded = e.appendStep(result, fmt.Sprintf("Size: %s (x%s)", sizeCategory, sizeMult.String()), running, rounded)

	materialMult := e.multiplier(result, e.config.MaterialMultipliers, catalog.DimensionMaterial, opts.Material.Type)
	running = running.Mul(materialMult)
	rounded = e.appendStep(result, fmt.Sprintf("Material: %s (x%s)", opts.Material.Type, materialMult.String()), running, rounded)

	frame := e.surcharge(result, e.config.FrameSurcharges, catalog.DimensionFrameStyle, opts.Frame.Style)
	result.Breakdown = append(result.Breakdown, models.PriceLine{Label: "Frame: " + opts.Frame.Style, Amount: frame})

	mat := decimal.Zero
	if opts.Mat.Enabled {
		mat = utils.RoundPrice(e.config.MatSurcharge)
		result.Breakdown = append(result.Breakdown, models.PriceLine{Label: "Mat", Amount: mat})
	}

	glass := e.surcharge(result, e.config.GlassSurcharges, catalog.DimensionGlassType, opts.Glass.Type)
	result.Breakdown = append(result.Breakdown, models.PriceLine{Label: "Glass: " + opts.Glass.Type, Amount: glass})

	result.FinalPrice = utils.RoundPrice(running.Add(frame).Add(mat).Add(glass))

	log.Printf("💰 CalculatePrice: base=%s size=%s material=%s frame=%s mat=%t glass=%s -> %s",
		basePrice.StringFixed(2), sizeCategory, opts.Material.Type, opts.Frame.Style, opts.Mat.Enabled, opts.Glass.Type, result.FinalPrice.StringFixed(2))
	return result
}

func (e *Engine) appendStep(result *models.PricedConfiguration, label string, running, prevRounded decimal.Decimal) decimal.Decimal {
	r := utils.RoundPrice(running)
	result.Breakdown = append(result.Breakdown, models.PriceLine{Label: label, Amount: r.Sub(prevRounded)})
	return r
}

func (e *Engine) multiplier(result *models.PricedConfiguration, table map[string]decimal.Decimal, dim catalog.Dimension, key string) decimal.Decimal {
	if v, ok := table[key]; ok {
		return v
	}
	e.unresolved(result, dim, key, "x1")
	return decimal.NewFromInt(1)
}

func (e *Engine) surcharge(result *models.PricedConfiguration, table map[string]decimal.Decimal, dim catalog.Dimension, key string) decimal.Decimal {
	if v, ok := table[key]; ok {
		return utils.RoundPrice(v)
	}
	e.unresolved(result, dim, key, "+0")
	return decimal.Zero
}

func (e *Engine) unresolved(result *models.PricedConfiguration, dim catalog.Dimension, key, fallback string) {
	log.Printf("⚠️  PricingEngine: unresolved %s key %q, using %s", dim, key, fallback)
	metrics.RecordUnresolvedKey("pricing", string(dim))
	result.Diagnostics = append(result.Diagnostics, models.Diagnostic{
		Kind:      models.DiagnosticUnresolvedKey,
		Dimension: string(dim),
		Key:       key,
		Fallback:  fallback,
	})
}
