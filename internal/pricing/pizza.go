package pricing

import (
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/catalog"
)

// Mode selects the topping pricing rule. ModeFlat is canonical.
// ModeSizeScaled is the legacy size-multiplier table kept for
// compatibility; both produce identical results at medium size.
//
// Deprecated: ModeSizeScaled remains only for menus priced under the old
// table and will be removed once those are migrated.
type Mode int

const (
	ModeFlat Mode = iota
	ModeSizeScaled
)

// Amount multipliers for toppings added beyond an item's defaults.
var amountMultiplier = map[catalog.Amount]float64{
	catalog.AmountNone:   0,
	catalog.AmountLight:  0.75,
	catalog.AmountNormal: 1.0,
	catalog.AmountExtra:  1.5,
	catalog.AmountXXtra:  2.0,
}

// Size multipliers for ModeSizeScaled. Medium is 1.0 so the two modes
// agree there.
var sizeMultiplier = map[string]float64{
	"small":  0.8,
	"medium": 1.0,
	"large":  1.3,
	"xlarge": 1.6,
}

// ToppingChoice is one active topping on a pizza in progress.
type ToppingChoice struct {
	Topping   catalog.Topping
	Amount    catalog.Amount
	IsDefault bool
}

type PizzaInput struct {
	Variant   *catalog.Variant
	Toppings  []ToppingChoice
	Modifiers []catalog.Modifier
	Mode      Mode
}

// PricePizza computes crust/size price + topping prices + modifier
// adjustments, floored at 0.
//
// Specialty defaults are included in the base price: they cost 0 at any
// amount up to normal, and base×0.5 when upgraded past normal. Removed
// defaults (amount none) contribute nothing and drop out of the lines.
func PricePizza(in PizzaInput) Breakdown {
	b := newBreakdown(in.Variant.Price)

	for _, tc := range in.Toppings {
		price := ToppingPrice(tc, in.Mode, in.Variant.SizeCode)
		if tc.Amount == catalog.AmountNone {
			continue
		}
		b.add(tc.Topping.Name+" ("+string(tc.Amount)+")", price)
	}

	for _, m := range in.Modifiers {
		b.add(m.Name, m.PriceAdjustment)
	}

	b.finish()
	return b
}

// ToppingPrice prices one topping selection. Amount none is always 0,
// default or not.
func ToppingPrice(tc ToppingChoice, mode Mode, sizeCode string) float64 {
	if tc.Amount == catalog.AmountNone {
		return 0
	}

	if tc.IsDefault {
		switch tc.Amount {
		case catalog.AmountExtra, catalog.AmountXXtra:
			return MulRound(tc.Topping.BasePrice, 0.5)
		default:
			return 0
		}
	}

	price := MulRound(tc.Topping.BasePrice, amountMultiplier[tc.Amount])

	if mode == ModeSizeScaled {
		if m, ok := sizeMultiplier[sizeCode]; ok {
			price = MulRound(price, m)
		}
	}

	return price
}
