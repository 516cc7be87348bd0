package controller

import (
	"context"
	"log"
	"net/http"
	"strings"

	"art-customizer/models"
	"art-customizer/repository"
)

// ImageOptimizer serves resized artwork images
type ImageOptimizer interface {
	Optimized(ctx context.Context, artwork *models.Artwork, size string) ([]byte, error)
}

// ArtworkController handles HTTP requests for the artwork gallery
type ArtworkController struct {
	artworks repository.ArtworkRepositoryInterface
	saved    repository.SavedArtworkRepositoryInterface
	images   ImageOptimizer
}

// NewArtworkController creates a new ArtworkController
func NewArtworkController(artworks repository.ArtworkRepositoryInterface, saved repository.SavedArtworkRepositoryInterface, images ImageOptimizer) *ArtworkController {
	return &ArtworkController{
		artworks: artworks,
		saved:    saved,
		images:   images,
	}
}

// ListArtworks handles GET /api/artworks?category=&medium=&artist=&page=&pageSize=
func (c *ArtworkController) ListArtworks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ArtworkFilter{
		Category: strings.TrimSpace(q.Get("category")),
		Medium:   strings.TrimSpace(q.Get("medium")),
		Artist:   strings.TrimSpace(q.Get("artist")),
	}

	page, err := c.artworks.ListArtworks(r.Context(), filter, queryInt(r, "page", 1), queryInt(r, "pageSize", 0))
	if err != nil {
		writeError(w, "ListArtworks", err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GetArtwork handles GET /api/artworks/{id}
func (c *ArtworkController) GetArtwork(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	artwork, err := c.artworks.GetArtworkByID(r.Context(), id)
	if err != nil {
		writeError(w, "GetArtwork", err)
		return
	}
	writeJSON(w, http.StatusOK, artwork)
}

// GetArtworkImage handles GET /api/artworks/{id}/image?size=thumb|medium
// Returns an optimised JPEG, cached on disk after the first request
func (c *ArtworkController) GetArtworkImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	size := r.URL.Query().Get("size")
	if size == "" {
		size = "medium"
	}
	if size != "thumb" && size != "medium" {
		http.Error(w, "size must be thumb or medium", http.StatusBadRequest)
		return
	}

	artwork, err := c.artworks.GetArtworkByID(r.Context(), id)
	if err != nil {
		writeError(w, "GetArtworkImage", err)
		return
	}

	data, err := c.images.Optimized(r.Context(), artwork, size)
	if err != nil {
		writeError(w, "GetArtworkImage", err)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// SaveArtwork handles POST /api/artworks/{id}/save
func (c *ArtworkController) SaveArtwork(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if _, err := c.artworks.GetArtworkByID(r.Context(), id); err != nil {
		writeError(w, "SaveArtwork", err)
		return
	}

	saved, err := c.saved.Save(r.Context(), userID, id)
	if err != nil {
		writeError(w, "SaveArtwork", err)
		return
	}

	log.Printf("✅ SaveArtwork: user=%s saved artwork %d", userID, id)
	writeJSON(w, http.StatusOK, saved)
}

// UnsaveArtwork handles DELETE /api/artworks/{id}/save
func (c *ArtworkController) UnsaveArtwork(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := c.saved.Unsave(r.Context(), userID, id); err != nil {
		writeError(w, "UnsaveArtwork", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// IsSaved handles GET /api/artworks/{id}/save
func (c *ArtworkController) IsSaved(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	saved, err := c.saved.IsSaved(r.Context(), userID, id)
	if err != nil {
		writeError(w, "IsSaved", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"saved": saved})
}

// ListSaved handles GET /api/saved
func (c *ArtworkController) ListSaved(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	artworks, err := c.saved.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, "ListSaved", err)
		return
	}
	writeJSON(w, http.StatusOK, artworks)
}
