package pricing

import (
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/catalog"
)

type ChickenInput struct {
	Variant *catalog.Variant

	// WhiteMeat is the selected tier from the pack's white-meat category,
	// nil when the tier is "none".
	WhiteMeat *catalog.Customization

	// Selected customizations: sides (free), preparation (free),
	// condiments (priced).
	Selected []catalog.Customization
}

// PriceChicken computes variant price + white-meat tier + selected
// customization prices. Capability gating (which categories a pack may
// select from) is enforced by the customizer, not here.
func PriceChicken(in ChickenInput) Breakdown {
	b := newBreakdown(in.Variant.Price)

	if in.WhiteMeat != nil {
		b.add(in.WhiteMeat.Name, in.WhiteMeat.Price)
	}

	for _, cu := range in.Selected {
		b.add(cu.Name, cu.Price)
	}

	b.finish()
	return b
}
