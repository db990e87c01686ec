package cart

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Provider resolves the cart for one ordering session. Implemented by
// the session manager.
type Provider interface {
	CartFor(sessionID string) *Cart
}

type Handler struct {
	carts Provider
}

func NewHandler(carts Provider) *Handler {
	return &Handler{carts: carts}
}

func (h *Handler) cart(c *gin.Context) *Cart {
	return h.carts.CartFor(c.GetHeader("X-Session-ID"))
}

// --------------------------------------------------
// GET /cart
// --------------------------------------------------
func (h *Handler) GetCart(c *gin.Context) {
	cart := h.cart(c)
	c.JSON(http.StatusOK, gin.H{
		"items":    cart.Items(),
		"subtotal": cart.Subtotal(),
	})
}

// --------------------------------------------------
// PATCH /cart/items/:id
// --------------------------------------------------
func (h *Handler) UpdateItem(c *gin.Context) {
	var update ItemUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.cart(c).Update(c.Param("id"), update)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrItemNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if item == nil {
		// Quantity hit 0 and the item was removed.
		c.JSON(http.StatusOK, gin.H{"removed": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// --------------------------------------------------
// DELETE /cart/items/:id
// --------------------------------------------------
func (h *Handler) RemoveItem(c *gin.Context) {
	if err := h.cart(c).Remove(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}
