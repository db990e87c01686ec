package pricing

import (
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/catalog"
)

// IngredientTier is a sandwich ingredient amount level.
type IngredientTier string

const (
	TierStandard IngredientTier = "standard"
	TierExtra    IngredientTier = "extra"
	TierXXLExtra IngredientTier = "xxl_extra"
	TierOnSide   IngredientTier = "on_the_side"
)

var ingredientMultiplier = map[IngredientTier]float64{
	TierStandard: 1,
	TierExtra:    2,
	TierXXLExtra: 3,
	TierOnSide:   1,
}

// SauceTier is a side-sauce amount level; sauces have no on-the-side tier.
type SauceTier string

const (
	SauceStandard SauceTier = "standard"
	SauceExtra    SauceTier = "extra"
	SauceXXLExtra SauceTier = "xxl_extra"
)

var sauceMultiplier = map[SauceTier]float64{
	SauceStandard: 1,
	SauceExtra:    2,
	SauceXXLExtra: 3,
}

// IngredientTierPrice is the per-line price for one tiered ingredient.
func IngredientTierPrice(ingredient catalog.Topping, tier IngredientTier) float64 {
	return MulRound(ingredient.BasePrice, ingredientMultiplier[tier])
}

// SauceTierPrice is the per-line price for one tiered side sauce.
func SauceTierPrice(sauce catalog.Topping, tier SauceTier) float64 {
	return MulRound(sauce.BasePrice, sauceMultiplier[tier])
}

func ValidIngredientTier(t IngredientTier) bool {
	_, ok := ingredientMultiplier[t]
	return ok
}

func ValidSauceTier(t SauceTier) bool {
	_, ok := sauceMultiplier[t]
	return ok
}

type IngredientChoice struct {
	Ingredient catalog.Topping
	Tier       IngredientTier
}

type SauceChoice struct {
	Sauce catalog.Topping
	Tier  SauceTier
}

type SandwichInput struct {
	Item *catalog.MenuItem

	// Bread is the chosen bread customization; its price counts only
	// when it deviates from the item's default bread.
	Bread        *catalog.Customization
	BreadDefault bool

	Deluxe      bool
	DeluxePrice float64

	Ingredients []IngredientChoice
	Sauces      []SauceChoice
}

// PriceSandwich computes base + bread upcharge + deluxe surcharge +
// tiered ingredient prices + tiered side-sauce prices. Style and
// preparation toggles are free and never appear here.
func PriceSandwich(in SandwichInput) Breakdown {
	b := newBreakdown(in.Item.BasePrice)

	if in.Bread != nil && !in.BreadDefault && in.Bread.Price != 0 {
		b.add(in.Bread.Name, in.Bread.Price)
	}

	if in.Deluxe {
		b.add("Deluxe", in.DeluxePrice)
	}

	for _, ic := range in.Ingredients {
		price := MulRound(ic.Ingredient.BasePrice, ingredientMultiplier[ic.Tier])
		b.add(ic.Ingredient.Name+" ("+string(ic.Tier)+")", price)
	}

	for _, sc := range in.Sauces {
		price := MulRound(sc.Sauce.BasePrice, sauceMultiplier[sc.Tier])
		b.add(sc.Sauce.Name+" ("+string(sc.Tier)+")", price)
	}

	b.finish()
	return b
}

// Sandwiches that must carry a style selection before they can complete.
var styleRequired = map[string]bool{
	"italian beef":             true,
	"italian sausage sandwich": true,
	"meatball sandwich":        true,
	"combo beef & sausage":     true,
}

// Sandwiches that start with garlic bread pre-selected.
var garlicBreadDefault = map[string]bool{
	"meatball sandwich":        true,
	"italian sausage sandwich": true,
}

func StyleRequired(itemName string) bool {
	return styleRequired[normalizeName(itemName)]
}

func GarlicBreadDefault(itemName string) bool {
	return garlicBreadDefault[normalizeName(itemName)]
}
