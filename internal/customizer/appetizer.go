package customizer

import (
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/cart"
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/catalog"
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/pricing"
)

// Appetizer is the simplest customizer: binary modifiers (priced add-ons
// and free preparation toggles) plus special instructions.
type Appetizer struct {
	base
	modifiers map[string]bool
}

func NewAppetizer(item *catalog.MenuItem, existing *cart.ConfiguredCartItem) *Appetizer {
	return &Appetizer{
		base:      newBase(item, existing),
		modifiers: map[string]bool{},
	}
}

func (a *Appetizer) Family() catalog.ItemFamily { return catalog.FamilyAppetizer }

func (a *Appetizer) SetCatalog(snap *catalog.Snapshot, err error) {
	a.bind(snap, err)
	if a.snap == nil || a.existing == nil {
		return
	}
	a.instructions = a.existing.SpecialInstructions
	for _, sel := range a.existing.Modifiers {
		a.modifiers[sel.ModifierID] = true
	}
}

func (a *Appetizer) Apply(sel Selection) error {
	if err := a.ready(); err != nil {
		return err
	}

	switch sel.Kind {
	case KindModifier, KindPreparation:
		mod, ok := a.snap.Modifier(sel.ID)
		if !ok || !appliesTo(mod.AppliesTo, "appetizer") {
			return ErrUnknownSelection
		}
		if sel.On != nil && *sel.On {
			a.modifiers[sel.ID] = true
		} else {
			delete(a.modifiers, sel.ID)
		}
	case KindInstructions:
		a.instructions = sel.Text
	default:
		return ErrUnknownSelection
	}
	return nil
}

func (a *Appetizer) activeModifiers() []catalog.Modifier {
	var out []catalog.Modifier
	for _, mod := range a.snap.ModifiersFor("appetizer") {
		if a.modifiers[mod.ID] {
			out = append(out, mod)
		}
	}
	return out
}

func (a *Appetizer) breakdown() pricing.Breakdown {
	return pricing.PriceAppetizer(a.item, a.activeModifiers())
}

func (a *Appetizer) Blockers() []string {
	return a.loadBlockers()
}

func (a *Appetizer) CanComplete() bool { return len(a.Blockers()) == 0 }

func (a *Appetizer) State() State {
	st := State{Family: catalog.FamilyAppetizer}
	a.fillState(&st)

	if a.snap != nil {
		for _, mod := range a.activeModifiers() {
			st.Modifiers = append(st.Modifiers, mod.ID)
		}
		st.Breakdown = a.breakdown()
	}
	st.PriceSource = "local"
	st.Blockers = a.Blockers()
	st.CanComplete = len(st.Blockers) == 0
	return st
}

func (a *Appetizer) Build() (cart.NormalizeInput, error) {
	if !a.CanComplete() {
		return cart.NormalizeInput{}, ErrIncomplete
	}

	in := cart.NormalizeInput{
		Existing:            a.existing,
		MenuItem:            a.item,
		SpecialInstructions: a.instructions,
		Breakdown:           a.breakdown(),
	}

	for _, mod := range a.activeModifiers() {
		in.Modifiers = append(in.Modifiers, cart.ModifierSelection{
			ModifierID: mod.ID,
			Name:       mod.Name,
			Price:      mod.PriceAdjustment,
		})
	}

	return in, nil
}

func (a *Appetizer) Close() {}
