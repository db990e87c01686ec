package session

import (
	"errors"
	"net/http"

	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/customizer"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	manager *Manager
}

func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

// session resolves the ordering session from the X-Session-ID header and
// echoes the id back so a fresh client can keep it.
func (h *Handler) session(c *gin.Context) *Session {
	s := h.manager.Session(c.GetHeader("X-Session-ID"))
	c.Header("X-Session-ID", s.ID)
	return s
}

// --------------------------------------------------
// POST /session/select-item
// --------------------------------------------------
func (h *Handler) SelectItem(c *gin.Context) {
	var req struct {
		ItemID     string `json:"item_id"`
		VariantID  string `json:"variant_id"`
		CartItemID string `json:"cart_item_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ItemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_id is required"})
		return
	}

	result, err := h.session(c).SelectItem(
		c.Request.Context(),
		req.ItemID,
		req.VariantID,
		req.CartItemID,
	)
	if err != nil {
		c.JSON(selectStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func selectStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnknownItem), errors.Is(err, ErrItemNotInCart):
		return http.StatusNotFound
	case errors.Is(err, ErrVariantNeeded):
		return http.StatusBadRequest
	case errors.Is(err, ErrCatalogOffline):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// --------------------------------------------------
// GET /session/customizer
// --------------------------------------------------
func (h *Handler) CustomizerState(c *gin.Context) {
	st, err := h.session(c).CustomizerState()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}

// --------------------------------------------------
// POST /session/customizer/selection
// --------------------------------------------------
func (h *Handler) ApplySelection(c *gin.Context) {
	var sel customizer.Selection
	if err := c.ShouldBindJSON(&sel); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	st, err := h.session(c).ApplySelection(sel)
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, ErrNoCustomizer):
			status = http.StatusNotFound
		case errors.Is(err, customizer.ErrLoading), errors.Is(err, customizer.ErrLoadFailed):
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, st)
}

// --------------------------------------------------
// POST /session/customizer/retry
// --------------------------------------------------
func (h *Handler) RetryLoad(c *gin.Context) {
	st, err := h.session(c).RetryLoad(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}

// --------------------------------------------------
// POST /session/customizer/complete
// --------------------------------------------------
func (h *Handler) Complete(c *gin.Context) {
	s := h.session(c)

	item, err := s.Complete()
	if err != nil {
		if errors.Is(err, customizer.ErrIncomplete) {
			st, stateErr := s.CustomizerState()
			if stateErr == nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"error":    err.Error(),
					"blockers": st.Blockers,
				})
				return
			}
		}
		if errors.Is(err, ErrNoCustomizer) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		// Normalization contract violations land here; nothing reached
		// the cart.
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// --------------------------------------------------
// POST /session/customizer/cancel
// --------------------------------------------------
func (h *Handler) Cancel(c *gin.Context) {
	h.session(c).Cancel()
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}
