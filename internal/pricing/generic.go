package pricing

import (
	"strings"

	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/catalog"
)

// PriceAppetizer computes base price + binary modifier adjustments.
// Free preparation toggles price as zero-adjustment modifiers.
func PriceAppetizer(item *catalog.MenuItem, mods []catalog.Modifier) Breakdown {
	b := newBreakdown(item.BasePrice)
	for _, m := range mods {
		b.add(m.Name, m.PriceAdjustment)
	}
	b.finish()
	return b
}

// PriceDirect prices a direct-add item: the variant price when one was
// chosen, otherwise the item base price.
func PriceDirect(item *catalog.MenuItem, variant *catalog.Variant) Breakdown {
	price := item.BasePrice
	if variant != nil {
		price = variant.Price
	}
	b := newBreakdown(price)
	b.finish()
	return b
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
