package customizer

import (
	"errors"
	"strings"

	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/cart"
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/catalog"
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/pricing"
)

// Chicken holds the in-progress state for a chicken pack. Changing the
// variant resets the white-meat tier and all customizations because the
// available tier category is keyed by pack size.
type Chicken struct {
	base

	variantID   string
	whiteMeatID string
	selected    map[string]bool
}

func NewChicken(item *catalog.MenuItem, existing *cart.ConfiguredCartItem) *Chicken {
	return &Chicken{
		base:     newBase(item, existing),
		selected: map[string]bool{},
	}
}

func (ch *Chicken) Family() catalog.ItemFamily { return catalog.FamilyChicken }

func (ch *Chicken) SetCatalog(snap *catalog.Snapshot, err error) {
	ch.bind(snap, err)
	if ch.snap == nil {
		return
	}

	if ch.existing != nil {
		ch.rehydrate()
		return
	}

	if len(ch.item.Variants) > 0 {
		ch.variantID = ch.item.Variants[0].ID
		ch.applySideDefaults()
	}
}

func (ch *Chicken) variant() *catalog.Variant {
	return ch.item.FindVariant(ch.variantID)
}

// applySideDefaults seeds the deterministic free sides for the pack:
// family packs get garlic bread + coleslaw (never a potato side), the
// 8-piece regular pack gets broasted potatoes.
func (ch *Chicken) applySideDefaults() {
	variant := ch.variant()
	if variant == nil {
		return
	}

	var names []string
	switch {
	case variant.Pack == catalog.PackFamily:
		names = []string{"garlic bread", "coleslaw"}
	case variant.Pack == catalog.PackRegular && variant.PieceCount == 8:
		names = []string{"broasted potatoes"}
	}

	for _, cu := range ch.snap.CustomizationsByCategory("chicken_side") {
		for _, want := range names {
			if strings.EqualFold(cu.Name, want) {
				ch.selected[cu.ID] = true
			}
		}
	}
}

func (ch *Chicken) rehydrate() {
	ch.variantID = ch.existing.VariantID
	ch.instructions = ch.existing.SpecialInstructions

	whiteMeatCategory := ""
	if v := ch.variant(); v != nil {
		whiteMeatCategory = catalog.WhiteMeatCategory(v)
	}

	for _, sel := range ch.existing.Toppings {
		if sel.Category == whiteMeatCategory && whiteMeatCategory != "" {
			ch.whiteMeatID = sel.ToppingID
			continue
		}
		ch.selected[sel.ToppingID] = true
	}
}

// allowedCategory gates what each pack kind may customize. Bulk packs
// take preparation only, and never "Regular Cooking".
func (ch *Chicken) allowedCategory(category, name string) bool {
	variant := ch.variant()
	if variant == nil {
		return false
	}

	switch variant.Pack {
	case catalog.PackBulk:
		return category == "chicken_preparation" &&
			!strings.EqualFold(name, "Regular Cooking")
	case catalog.PackFamily, catalog.PackRegular:
		switch category {
		case "chicken_side", "chicken_preparation", "chicken_condiment":
			return true
		}
	}
	return false
}

func (ch *Chicken) Apply(sel Selection) error {
	if err := ch.ready(); err != nil {
		return err
	}

	switch sel.Kind {

	case KindVariant:
		variant := ch.item.FindVariant(sel.ID)
		if variant == nil {
			return ErrUnknownSelection
		}
		if variant.Pack == catalog.PackIndividual {
			return errors.New("individual pieces are added directly, not customized")
		}
		if sel.ID == ch.variantID {
			return nil
		}
		// Tier categories are keyed by pack size, so everything resets.
		ch.variantID = sel.ID
		ch.whiteMeatID = ""
		ch.selected = map[string]bool{}
		ch.applySideDefaults()

	case KindWhiteMeat:
		variant := ch.variant()
		if variant == nil {
			return errors.New("choose a pack first")
		}
		if sel.ID == "" {
			ch.whiteMeatID = "" // back to none
			return nil
		}
		category := catalog.WhiteMeatCategory(variant)
		cu, ok := ch.snap.Customization(sel.ID)
		if !ok || category == "" || cu.Category != category {
			return ErrUnknownSelection
		}
		ch.whiteMeatID = sel.ID

	case KindCustomization, KindPreparation:
		cu, ok := ch.snap.Customization(sel.ID)
		if !ok || !ch.allowedCategory(cu.Category, cu.Name) {
			return ErrUnknownSelection
		}
		if sel.On != nil && *sel.On {
			ch.selected[sel.ID] = true
		} else {
			delete(ch.selected, sel.ID)
		}

	case KindInstructions:
		ch.instructions = sel.Text

	default:
		return ErrUnknownSelection
	}

	return nil
}

func (ch *Chicken) breakdown() pricing.Breakdown {
	variant := ch.variant()
	if variant == nil {
		return pricing.Breakdown{}
	}

	in := pricing.ChickenInput{Variant: variant}

	if ch.whiteMeatID != "" {
		if cu, ok := ch.snap.Customization(ch.whiteMeatID); ok {
			in.WhiteMeat = cu
		}
	}

	for _, cu := range ch.orderedSelected() {
		in.Selected = append(in.Selected, cu)
	}

	return pricing.PriceChicken(in)
}

// orderedSelected walks the catalog's category order so breakdown lines
// are deterministic.
func (ch *Chicken) orderedSelected() []catalog.Customization {
	var out []catalog.Customization
	for _, category := range []string{"chicken_side", "chicken_preparation", "chicken_condiment"} {
		for _, cu := range ch.snap.CustomizationsByCategory(category) {
			if ch.selected[cu.ID] {
				out = append(out, cu)
			}
		}
	}
	return out
}

func (ch *Chicken) Blockers() []string {
	if lb := ch.loadBlockers(); lb != nil {
		return lb
	}
	var out []string
	if ch.variantID == "" {
		out = append(out, "choose a pack size")
	} else if ch.variant() == nil {
		out = append(out, "selected pack is no longer offered")
	}
	return out
}

func (ch *Chicken) CanComplete() bool { return len(ch.Blockers()) == 0 }

func (ch *Chicken) State() State {
	st := State{Family: catalog.FamilyChicken, VariantID: ch.variantID}
	ch.fillState(&st)

	st.WhiteMeatID = ch.whiteMeatID
	if ch.snap != nil {
		for _, cu := range ch.orderedSelected() {
			st.Customizations = append(st.Customizations, cu.ID)
		}
		st.Breakdown = ch.breakdown()
	}
	st.PriceSource = "local"
	st.Blockers = ch.Blockers()
	st.CanComplete = len(st.Blockers) == 0
	return st
}

func (ch *Chicken) Build() (cart.NormalizeInput, error) {
	if !ch.CanComplete() {
		return cart.NormalizeInput{}, ErrIncomplete
	}

	variant := ch.variant()

	in := cart.NormalizeInput{
		Existing:            ch.existing,
		MenuItem:            ch.item,
		Variant:             variant,
		SpecialInstructions: ch.instructions,
		Breakdown:           ch.breakdown(),
	}

	if ch.whiteMeatID != "" {
		if cu, ok := ch.snap.Customization(ch.whiteMeatID); ok {
			in.Toppings = append(in.Toppings, customizationSelection(cu))
		}
	}
	for _, cu := range ch.orderedSelected() {
		cu := cu
		in.Toppings = append(in.Toppings, customizationSelection(&cu))
	}

	return in, nil
}

func (ch *Chicken) Close() {}

// customizationSelection records a customization as a structured topping
// selection; the catalog category key makes rehydration lossless.
func customizationSelection(cu *catalog.Customization) cart.ToppingSelection {
	return cart.ToppingSelection{
		ToppingID: cu.ID,
		Name:      cu.Name,
		Amount:    "selected",
		Price:     cu.Price,
		Category:  cu.Category,
	}
}
