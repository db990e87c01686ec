package cart

import (
	"errors"
	"strings"

	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/catalog"
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/pricing"
	"github.com/google/uuid"
)

// Contract violations. These never surface to the user and never reach
// the cart; a customizer producing one is a programming error.
var (
	ErrNegativePrice   = errors.New("normalize: negative total price")
	ErrInvalidQuantity = errors.New("normalize: quantity below 1")
	ErrMissingItem     = errors.New("normalize: menu item required")
)

// NormalizeInput is the family-agnostic contract every customizer (and
// the direct-add path) produces on completion.
type NormalizeInput struct {
	// Existing is set in edit mode. Its ID and Quantity are preserved
	// verbatim; everything else is replaced.
	Existing *ConfiguredCartItem

	MenuItem *catalog.MenuItem
	Variant  *catalog.Variant

	Quantity            int
	Toppings            []ToppingSelection
	Modifiers           []ModifierSelection
	SpecialInstructions string

	Breakdown pricing.Breakdown
}

// Normalize produces exactly one canonical cart item. New items get a
// minted uuid; edited items keep their identity.
func Normalize(in NormalizeInput) (*ConfiguredCartItem, error) {
	if in.MenuItem == nil {
		return nil, ErrMissingItem
	}
	if in.Breakdown.Total < 0 {
		return nil, ErrNegativePrice
	}

	id := uuid.New().String()
	quantity := in.Quantity
	if quantity == 0 {
		quantity = 1
	}

	if in.Existing != nil {
		id = in.Existing.ID
		quantity = in.Existing.Quantity
	}

	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	item := &ConfiguredCartItem{
		ID:                  id,
		MenuItemID:          in.MenuItem.ID,
		MenuItemName:        in.MenuItem.Name,
		Quantity:            quantity,
		BasePrice:           in.Breakdown.Base,
		Toppings:            in.Toppings,
		Modifiers:           in.Modifiers,
		SpecialInstructions: in.SpecialInstructions,
		TotalPrice:          pricing.Round2(in.Breakdown.Total),
	}

	if in.Variant != nil {
		item.VariantID = in.Variant.ID
		item.VariantName = in.Variant.Name
	}

	item.DisplayName = displayName(in.MenuItem, in.Variant)

	return item, nil
}

// displayName derives deterministically from variant + item name. The
// string is presentation only; rehydration reads the structured
// selections instead.
func displayName(item *catalog.MenuItem, variant *catalog.Variant) string {
	if variant == nil || variant.Name == "" {
		return item.Name
	}
	if strings.Contains(variant.Name, item.Name) {
		return variant.Name
	}
	return variant.Name + " " + item.Name
}
