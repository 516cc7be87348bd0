package controller

import (
	"fmt"
	"log"
	"net/http"

	"art-customizer/models"
	"art-customizer/repository"
)

// CartController handles HTTP requests for the user's cart
type CartController struct {
	cart repository.CartRepositoryInterface
}

// NewCartController creates a new CartController
func NewCartController(cart repository.CartRepositoryInterface) *CartController {
	return &CartController{cart: cart}
}

// ListCart handles GET /api/cart
// Returns the lines with artwork and customization details plus the subtotal
func (c *CartController) ListCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	lines, err := c.cart.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, "ListCart", err)
		return
	}

	view := models.NewCartView(lines)
	log.Printf("🛒 ListCart: user=%s lines=%d subtotal=%s", userID, len(view.Items), view.Subtotal.StringFixed(2))
	writeJSON(w, http.StatusOK, view)
}

// UpdateQuantity handles PATCH /api/cart/{id}
func (c *CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateCartQuantityRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Quantity < 1 {
		http.Error(w, "quantity must be at least 1", http.StatusBadRequest)
		return
	}

	item, err := c.cart.UpdateQuantity(r.Context(), userID, id, req.Quantity)
	if err != nil {
		writeError(w, "UpdateQuantity", err)
		return
	}

	log.Printf("✅ UpdateQuantity: cart item %d now has qty=%d", item.ID, item.Quantity)
	writeJSON(w, http.StatusOK, item)
}

// RemoveItem handles DELETE /api/cart/{id}
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := c.cart.Remove(r.Context(), userID, id); err != nil {
		writeError(w, "RemoveItem", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearCart handles DELETE /api/cart
func (c *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := c.cart.Clear(r.Context(), userID); err != nil {
		writeError(w, "ClearCart", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
