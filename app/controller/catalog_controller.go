package controller

import (
	"log"
	"net/http"

	"art-customizer/catalog"
	"art-customizer/pricing"
	"art-customizer/utils"
)

// CatalogController serves the option catalog
type CatalogController struct {
	catalog *catalog.Catalog
	engine  *pricing.Engine
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(cat *catalog.Catalog, engine *pricing.Engine) *CatalogController {
	return &CatalogController{catalog: cat, engine: engine}
}

type catalogResponse struct {
	catalog.Snapshot
	SizeBuckets []utils.SizeBucket    `json:"sizeBuckets"`
	Pricebook   pricing.PricingConfig `json:"pricebook"`
}

// GetCatalog handles GET /api/catalog
// Returns every option table, the defaults, the size mapping and the pricebook
func (c *CatalogController) GetCatalog(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetCatalog: Received %s request to %s", r.Method, r.URL.Path)

	writeJSON(w, http.StatusOK, catalogResponse{
		Snapshot:    c.catalog.Snapshot(),
		SizeBuckets: utils.SizeBuckets(),
		Pricebook:   c.engine.Config(),
	})
}
