package controller

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"art-customizer/models"
)

// UserIDHeader carries the authenticated user id set by the auth proxy
const UserIDHeader = "X-User-ID"

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Error encoding response: %v", err)
	}
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	var invalid *models.InvalidOptionValueError
	var unresolved *models.UnresolvedCatalogKeyError
	var commitErr *models.CommitError

	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrArtworkNotFound),
		errors.Is(err, models.ErrSessionNotFound),
		errors.Is(err, models.ErrCartItemNotFound),
		errors.Is(err, models.ErrCustomizationNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrNoArtworkLoaded), errors.As(err, &unresolved):
		return http.StatusConflict
	case errors.As(err, &commitErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs err under op and replies with the mapped status
func writeError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	log.Printf("❌ %s: %v (status %d)", op, err, status)
	http.Error(w, err.Error(), status)
}

// requireUser returns the caller's user id, replying 401 when it is missing
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
	if userID == "" {
		http.Error(w, "missing "+UserIDHeader+" header", http.StatusUnauthorized)
		return "", false
	}
	return userID, true
}

// pathID parses a positive integer path parameter, replying 400 when invalid
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, name+" must be a positive integer", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// decodeBody decodes an optional JSON body into v; an empty body leaves v untouched
func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func queryInt(r *http.Request, key string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return fallback
	}
	return v
}
