package controller

import (
	"context"
	"fmt"
	"image"
	"log"
	"net/http"

	"art-customizer/models"
	"art-customizer/preview"
	"art-customizer/session"
)

// ImageLoader decodes artwork images for preview rendering
type ImageLoader interface {
	LoadImage(ctx context.Context, ref string) (image.Image, error)
}

// QuoteRenderer produces printable quotes
type QuoteRenderer interface {
	RenderQuoteHTML(artwork models.Artwork, opts models.CustomizationOptions, priced models.PricedConfiguration, previewJPEG []byte) (string, error)
	GeneratePDF(ctx context.Context, htmlContent string) ([]byte, error)
}

// SessionController handles HTTP requests for customization sessions
type SessionController struct {
	sessions *session.Manager
	images   ImageLoader
	quotes   QuoteRenderer
}

// NewSessionController creates a new SessionController
func NewSessionController(sessions *session.Manager, images ImageLoader, quotes QuoteRenderer) *SessionController {
	return &SessionController{
		sessions: sessions,
		images:   images,
		quotes:   quotes,
	}
}

func (c *SessionController) lookup(w http.ResponseWriter, r *http.Request, op string) (*session.Session, bool) {
	s, err := c.sessions.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, op, err)
		return nil, false
	}
	return s, true
}

// CreateSession handles POST /api/sessions
// Starts a session with the artwork loaded and default options applied
func (c *SessionController) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.ArtworkID <= 0 {
		http.Error(w, "artworkId must be greater than 0", http.StatusBadRequest)
		return
	}

	s, err := c.sessions.Create(r.Context(), req.ArtworkID)
	if err != nil {
		writeError(w, "CreateSession", err)
		return
	}

	writeJSON(w, http.StatusCreated, s.View())
}

// GetSession handles GET /api/sessions/{id}
func (c *SessionController) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := c.lookup(w, r, "GetSession")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.View())
}

// LoadArtwork handles POST /api/sessions/{id}/artwork
func (c *SessionController) LoadArtwork(w http.ResponseWriter, r *http.Request) {
	s, ok := c.lookup(w, r, "LoadArtwork")
	if !ok {
		return
	}

	var req models.CreateSessionRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.ArtworkID <= 0 {
		http.Error(w, "artworkId must be greater than 0", http.StatusBadRequest)
		return
	}

	view, err := s.LoadArtwork(r.Context(), req.ArtworkID)
	if err != nil {
		writeError(w, "LoadArtwork", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SetOption handles POST /api/sessions/{id}/options
// Body: {"category": "frame", "field": "color", "value": "gold"}
func (c *SessionController) SetOption(w http.ResponseWriter, r *http.Request) {
	s, ok := c.lookup(w, r, "SetOption")
	if !ok {
		return
	}

	var req models.SetOptionRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	view, err := s.SetOption(req.Category, req.Field, req.Value)
	if err != nil {
		writeError(w, "SetOption", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ResetSession handles POST /api/sessions/{id}/reset
func (c *SessionController) ResetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := c.lookup(w, r, "ResetSession")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Reset())
}

// SaveCustomization handles POST /api/sessions/{id}/save
func (c *SessionController) SaveCustomization(w http.ResponseWriter, r *http.Request) {
	s, ok := c.lookup(w, r, "SaveCustomization")
	if !ok {
		return
	}

	record, err := s.Save(r.Context())
	if err != nil {
		writeError(w, "SaveCustomization", err)
		return
	}

	log.Printf("✅ SaveCustomization: session %s saved customization %d", s.ID(), record.ID)
	writeJSON(w, http.StatusCreated, models.CommitResponse{Customization: record})
}

// AddToCart handles POST /api/sessions/{id}/cart
// Body (optional): {"quantity": 2}
func (c *SessionController) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	s, ok := c.lookup(w, r, "AddToCart")
	if !ok {
		return
	}

	req := models.AddToCartRequest{Quantity: 1}
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Quantity < 1 {
		http.Error(w, "quantity must be at least 1", http.StatusBadRequest)
		return
	}

	select {
	case res := <-s.CommitAsync(r.Context(), userID, req.Quantity):
		if res.Err != nil {
			writeError(w, "AddToCart", res.Err)
			return
		}
		writeJSON(w, http.StatusCreated, res.Response)
	case <-r.Context().Done():
		log.Printf("⚠️  AddToCart: client went away before commit finished for session %s", s.ID())
	}
}

// GetPreview handles GET /api/sessions/{id}/preview.jpg
func (c *SessionController) GetPreview(w http.ResponseWriter, r *http.Request) {
	s, ok := c.lookup(w, r, "GetPreview")
	if !ok {
		return
	}

	view := s.View()
	if view.Preview == nil {
		writeError(w, "GetPreview", models.ErrNoArtworkLoaded)
		return
	}

	data, err := c.renderPreview(r.Context(), *view.Preview)
	if err != nil {
		writeError(w, "GetPreview", err)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (c *SessionController) renderPreview(ctx context.Context, layout models.PreviewLayout) ([]byte, error) {
	img, err := c.images.LoadImage(ctx, layout.ArtworkImage)
	if err != nil {
		return nil, fmt.Errorf("failed to load artwork image: %w", err)
	}
	return preview.RenderJPEG(img, layout)
}

// GetQuote handles GET /api/sessions/{id}/quote.pdf
// ?format=html returns the quote page instead of the PDF
func (c *SessionController) GetQuote(w http.ResponseWriter, r *http.Request) {
	s, ok := c.lookup(w, r, "GetQuote")
	if !ok {
		return
	}

	snapshot, err := s.Snapshot()
	if err != nil {
		writeError(w, "GetQuote", err)
		return
	}
	view := s.View()

	var previewJPEG []byte
	if view.Preview != nil {
		layout := *view.Preview
		// The preview reflects the live options, which may have moved past the snapshot
		if view.Options == snapshot.Options && view.Artwork.ID == snapshot.ArtworkID {
			if previewJPEG, err = c.renderPreview(r.Context(), layout); err != nil {
				log.Printf("⚠️  GetQuote: rendering quote without preview: %v", err)
			}
		}
	}

	html, err := c.quotes.RenderQuoteHTML(*view.Artwork, snapshot.Options, snapshot.Price, previewJPEG)
	if err != nil {
		writeError(w, "GetQuote", err)
		return
	}

	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(html))
		return
	}

	pdf, err := c.quotes.GeneratePDF(r.Context(), html)
	if err != nil {
		writeError(w, "GetQuote", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="quote-%d.pdf"`, snapshot.ArtworkID))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// DeleteSession handles DELETE /api/sessions/{id}
func (c *SessionController) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := c.sessions.Delete(r.PathValue("id")); err != nil {
		writeError(w, "DeleteSession", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
