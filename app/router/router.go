package router

import (
	"net/http"
	"strconv"
	"time"

	"art-customizer/app/controller"
	"art-customizer/metrics"
)

type Controllers struct {
	Catalog       *controller.CatalogController
	Artwork       *controller.ArtworkController
	Session       *controller.SessionController
	Cart          *controller.CartController
	Customization *controller.CustomizationController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes registers every endpoint on mux. Commits to the cart go through limiter.
func SetupRoutes(mux *http.ServeMux, controllers *Controllers, limiter *RateLimiter) {
	mux.HandleFunc("GET /ping", pingHandler)
	mux.Handle("GET /metrics", metrics.Handler())

	// Catalog
	mux.HandleFunc("GET /api/catalog", controllers.Catalog.GetCatalog)

	// Artworks
	mux.HandleFunc("GET /api/artworks", controllers.Artwork.ListArtworks)
	mux.HandleFunc("GET /api/artworks/{id}", controllers.Artwork.GetArtwork)
	mux.HandleFunc("GET /api/artworks/{id}/image", controllers.Artwork.GetArtworkImage)
	mux.HandleFunc("GET /api/artworks/{id}/save", controllers.Artwork.IsSaved)
	mux.HandleFunc("POST /api/artworks/{id}/save", controllers.Artwork.SaveArtwork)
	mux.HandleFunc("DELETE /api/artworks/{id}/save", controllers.Artwork.UnsaveArtwork)
	mux.HandleFunc("GET /api/saved", controllers.Artwork.ListSaved)

	// Saved customizations
	mux.HandleFunc("GET /api/artworks/{id}/customizations", controllers.Customization.ListByArtwork)
	mux.HandleFunc("GET /api/customizations/{id}", controllers.Customization.GetCustomization)

	// Customization sessions
	mux.HandleFunc("POST /api/sessions", controllers.Session.CreateSession)
	mux.HandleFunc("GET /api/sessions/{id}", controllers.Session.GetSession)
	mux.HandleFunc("DELETE /api/sessions/{id}", controllers.Session.DeleteSession)
	mux.HandleFunc("POST /api/sessions/{id}/artwork", controllers.Session.LoadArtwork)
	mux.HandleFunc("POST /api/sessions/{id}/options", controllers.Session.SetOption)
	mux.HandleFunc("POST /api/sessions/{id}/reset", controllers.Session.ResetSession)
	mux.HandleFunc("GET /api/sessions/{id}/preview.jpg", controllers.Session.GetPreview)
	mux.HandleFunc("GET /api/sessions/{id}/quote.pdf", controllers.Session.GetQuote)
	mux.HandleFunc("POST /api/sessions/{id}/save", limiter.Limit(controllers.Session.SaveCustomization))
	mux.HandleFunc("POST /api/sessions/{id}/cart", limiter.Limit(controllers.Session.AddToCart))

	// Cart
	mux.HandleFunc("GET /api/cart", controllers.Cart.ListCart)
	mux.HandleFunc("DELETE /api/cart", controllers.Cart.ClearCart)
	mux.HandleFunc("PATCH /api/cart/{id}", controllers.Cart.UpdateQuantity)
	mux.HandleFunc("DELETE /api/cart/{id}", controllers.Cart.RemoveItem)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// Instrument records request durations labelled by the matched route pattern
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		pattern := r.Pattern
		if pattern == "" {
			pattern = "unmatched"
		}
		metrics.ObserveHTTPRequest(r.Method, pattern, strconv.Itoa(rec.status), time.Since(start))
	})
}
