package controller

import (
	"net/http"

	"art-customizer/repository"
)

// CustomizationController serves saved customization records
type CustomizationController struct {
	customizations repository.CustomizationRepositoryInterface
}

// NewCustomizationController creates a new CustomizationController
func NewCustomizationController(customizations repository.CustomizationRepositoryInterface) *CustomizationController {
	return &CustomizationController{customizations: customizations}
}

// GetCustomization handles GET /api/customizations/{id}
func (c *CustomizationController) GetCustomization(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	record, err := c.customizations.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, "GetCustomization", err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// ListByArtwork handles GET /api/artworks/{id}/customizations
func (c *CustomizationController) ListByArtwork(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	records, err := c.customizations.ListByArtwork(r.Context(), id)
	if err != nil {
		writeError(w, "ListByArtwork", err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}
