package catalog

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func restaurantID(c *gin.Context) string {
	if id := c.Query("restaurant_id"); id != "" {
		return id
	}
	if id := os.Getenv("RESTAURANT_ID"); id != "" {
		return id
	}
	return "default"
}

// --------------------------------------------------
// GET /catalog/items?category=Pizzas
// --------------------------------------------------
func (h *Handler) ListItems(c *gin.Context) {
	snap, err := h.service.LoadSnapshot(c.Request.Context(), restaurantID(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	items := snap.Items()
	if category := c.Query("category"); category != "" {
		items = snap.ItemsByCategory(category)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// --------------------------------------------------
// GET /catalog/toppings?applies_to=pizza
// --------------------------------------------------
func (h *Handler) ListToppings(c *gin.Context) {
	snap, err := h.service.LoadSnapshot(c.Request.Context(), restaurantID(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	tag := c.Query("applies_to")
	c.JSON(http.StatusOK, gin.H{
		"toppings":       snap.ToppingsFor(tag),
		"modifiers":      snap.ModifiersFor(tag),
		"customizations": snap.customizationsFor(tag),
	})
}

func (sn *Snapshot) customizationsFor(tag string) []Customization {
	var out []Customization
	for _, cu := range sn.customizations {
		if tag == "" || hasTag(cu.AppliesTo, tag) {
			out = append(out, cu)
		}
	}
	return out
}
