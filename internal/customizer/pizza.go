package customizer

import (
	"errors"
	"strings"

	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/cart"
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/catalog"
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/priceapi"
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/pricing"
)

// Quoter dispatches external price-calculation requests. Satisfied by
// priceapi.Debouncer; nil means pricing stays fully local.
type Quoter interface {
	Request(req priceapi.QuoteRequest)
	Close()
}

// Pizza holds the in-progress state for one pizza. Topping state is an
// id→amount map, never a set: portion levels survive edits.
type Pizza struct {
	base

	mode      pricing.Mode
	variantID string
	amounts   map[string]catalog.Amount
	modifiers map[string]bool

	quoter    Quoter
	currentFP string
	failedFP  string

	breakdown   pricing.Breakdown
	priceSource string
	priceErr    string
}

func NewPizza(
	item *catalog.MenuItem,
	existing *cart.ConfiguredCartItem,
	mode pricing.Mode,
) *Pizza {
	return &Pizza{
		base:      newBase(item, existing),
		mode:      mode,
		amounts:   map[string]catalog.Amount{},
		modifiers: map[string]bool{},
	}
}

// SetQuoter enables external price calculation. Only specialty pizzas
// (items with a default topping set) dispatch requests.
func (p *Pizza) SetQuoter(q Quoter) { p.quoter = q }

func (p *Pizza) Family() catalog.ItemFamily { return catalog.FamilyPizza }

func (p *Pizza) specialty() bool { return len(p.item.DefaultToppings) > 0 }

func (p *Pizza) SetCatalog(snap *catalog.Snapshot, err error) {
	p.bind(snap, err)
	if p.snap == nil {
		return
	}

	if p.existing != nil {
		p.rehydrate()
		p.seedFromExisting()
		return
	}

	if len(p.item.Variants) > 0 {
		p.variantID = p.item.Variants[0].ID
	}
	p.amounts = p.seedDefaults()
	p.recompute()
}

// seedFromExisting carries the stored prices over as the last known good
// breakdown. Reopening and completing without changes must not move the
// price, even when the stored total came from the external calculation;
// the first mutation recomputes and re-quotes.
func (p *Pizza) seedFromExisting() {
	b := pricing.Breakdown{Base: p.existing.BasePrice}
	for _, sel := range p.existing.Toppings {
		if sel.Price == 0 {
			continue
		}
		b.Lines = append(b.Lines, pricing.LineItem{Label: sel.Name + " (" + sel.Amount + ")", Price: sel.Price})
	}
	for _, sel := range p.existing.Modifiers {
		b.Lines = append(b.Lines, pricing.LineItem{Label: sel.Name, Price: sel.Price})
	}
	b.Total = p.existing.TotalPrice
	p.breakdown = b
	p.priceSource = "cached"
}

func (p *Pizza) seedDefaults() map[string]catalog.Amount {
	amounts := map[string]catalog.Amount{}
	for _, dt := range p.item.DefaultToppings {
		amounts[dt.ToppingID] = dt.Amount
	}
	return amounts
}

// rehydrate reconstructs state from the cart item's structured
// selections. Defaults removed at amount none were recorded on the cart
// item, so they stay removed here.
func (p *Pizza) rehydrate() {
	p.variantID = p.existing.VariantID
	p.instructions = p.existing.SpecialInstructions
	p.amounts = map[string]catalog.Amount{}
	for _, sel := range p.existing.Toppings {
		p.amounts[sel.ToppingID] = catalog.Amount(sel.Amount)
	}
	for _, sel := range p.existing.Modifiers {
		p.modifiers[sel.ModifierID] = true
	}
}

func (p *Pizza) Apply(sel Selection) error {
	if err := p.ready(); err != nil {
		return err
	}

	switch sel.Kind {

	case KindVariant:
		variant := p.item.FindVariant(sel.ID)
		if variant == nil {
			return ErrUnknownSelection
		}
		if sel.ID == p.variantID {
			return nil
		}
		// Different variants expose different customization categories:
		// all topping/modifier state resets, defaults re-seed.
		p.variantID = sel.ID
		p.amounts = p.seedDefaults()
		p.modifiers = map[string]bool{}

	case KindTopping:
		amount := catalog.Amount(sel.Amount)
		if !catalog.ValidAmount(amount) {
			return errors.New("invalid topping amount")
		}
		topping, ok := p.snap.Topping(sel.ID)
		if !ok || !appliesTo(topping.AppliesTo, "pizza") {
			return ErrUnknownSelection
		}
		isDefault := p.item.IsDefaultTopping(sel.ID)
		if !isDefault && !p.item.AllowsCustomToppings {
			return errors.New("item does not allow extra toppings")
		}
		if amount == catalog.AmountXXtra && !p.supportsXXtra() {
			return errors.New("xxtra amount not available on this crust")
		}
		if amount == catalog.AmountNone && !isDefault {
			delete(p.amounts, sel.ID)
		} else {
			p.amounts[sel.ID] = amount
		}

	case KindModifier:
		mod, ok := p.snap.Modifier(sel.ID)
		if !ok || !appliesTo(mod.AppliesTo, "pizza") {
			return ErrUnknownSelection
		}
		if sel.On != nil && *sel.On {
			p.modifiers[sel.ID] = true
		} else {
			delete(p.modifiers, sel.ID)
		}

	case KindInstructions:
		p.instructions = sel.Text

	default:
		return ErrUnknownSelection
	}

	p.recompute()
	return nil
}

// Thin crust tops out at extra; thicker crusts take an xxtra load.
func (p *Pizza) supportsXXtra() bool {
	variant := p.item.FindVariant(p.variantID)
	return variant != nil && variant.TypeCode != "thin"
}

func (p *Pizza) recompute() {
	variant := p.item.FindVariant(p.variantID)
	if variant == nil {
		return
	}

	in := pricing.PizzaInput{Variant: variant, Mode: p.mode}
	for _, tc := range p.orderedChoices() {
		in.Toppings = append(in.Toppings, tc)
	}
	for id := range p.modifiers {
		if mod, ok := p.snap.Modifier(id); ok {
			in.Modifiers = append(in.Modifiers, *mod)
		}
	}

	if p.quoter != nil && p.specialty() {
		req := p.quoteRequest(variant)
		fp := req.Fingerprint()
		if fp == p.currentFP && p.priceSource == "external" {
			// The applied quote still covers this exact selection.
			return
		}
		p.breakdown = pricing.PricePizza(in)
		p.priceSource = "local"
		if fp != p.currentFP {
			p.currentFP = fp
			p.quoter.Request(req)
		}
		return
	}

	p.breakdown = pricing.PricePizza(in)
	p.priceSource = "local"
}

// ApplyQuote applies an external calculation result. Results for a
// superseded fingerprint are discarded; failures keep the local number
// as a fallback and surface a non-blocking error.
func (p *Pizza) ApplyQuote(fp string, quote *priceapi.Quote, err error) {
	if fp != p.currentFP {
		return
	}
	if err != nil {
		p.failedFP = fp
		p.priceErr = err.Error()
		p.priceSource = "fallback"
		return
	}

	p.failedFP = ""
	p.priceErr = ""
	p.priceSource = "external"

	b := pricing.Breakdown{Base: pricing.Round2(quote.BasePrice)}
	for _, line := range quote.Lines {
		b.Lines = append(b.Lines, pricing.LineItem{Label: line.Name, Price: pricing.Round2(line.Price)})
	}
	total := pricing.Round2(quote.FinalPrice)
	if total < 0 {
		total = 0
	}
	b.Total = total
	p.breakdown = b
}

func (p *Pizza) quoteRequest(variant *catalog.Variant) priceapi.QuoteRequest {
	req := priceapi.QuoteRequest{
		MenuItemID: p.item.ID,
		SizeCode:   variant.SizeCode,
		CrustCode:  variant.TypeCode,
	}
	for _, tc := range p.orderedChoices() {
		req.Selections = append(req.Selections, priceapi.Selection{
			CustomizationID: tc.Topping.ID,
			Amount:          string(tc.Amount),
		})
	}
	return req
}

// orderedChoices lists active toppings deterministically: defaults in
// menu order first, then added toppings in catalog order.
func (p *Pizza) orderedChoices() []pricing.ToppingChoice {
	var out []pricing.ToppingChoice
	seen := map[string]bool{}

	for _, dt := range p.item.DefaultToppings {
		amount, ok := p.amounts[dt.ToppingID]
		if !ok {
			continue
		}
		if topping, found := p.snap.Topping(dt.ToppingID); found {
			out = append(out, pricing.ToppingChoice{Topping: *topping, Amount: amount, IsDefault: true})
			seen[dt.ToppingID] = true
		}
	}

	for _, topping := range p.snap.ToppingsFor("pizza") {
		amount, ok := p.amounts[topping.ID]
		if !ok || seen[topping.ID] {
			continue
		}
		out = append(out, pricing.ToppingChoice{Topping: topping, Amount: amount, IsDefault: false})
	}

	return out
}

func (p *Pizza) Blockers() []string {
	if lb := p.loadBlockers(); lb != nil {
		return lb
	}
	var out []string
	if p.variantID == "" {
		out = append(out, "choose a size and crust")
	} else if p.item.FindVariant(p.variantID) == nil {
		out = append(out, "selected size is no longer offered")
	}
	if p.currentFP != "" && p.currentFP == p.failedFP {
		out = append(out, "price calculation is failing for the current selection")
	}
	return out
}

func (p *Pizza) CanComplete() bool { return len(p.Blockers()) == 0 }

func (p *Pizza) State() State {
	st := State{Family: catalog.FamilyPizza, VariantID: p.variantID}
	p.fillState(&st)

	st.Toppings = map[string]string{}
	for id, amount := range p.amounts {
		st.Toppings[id] = string(amount)
	}
	for id := range p.modifiers {
		st.Modifiers = append(st.Modifiers, id)
	}

	st.Breakdown = p.breakdown
	st.PriceSource = p.priceSource
	st.PriceError = p.priceErr
	st.Blockers = p.Blockers()
	st.CanComplete = len(st.Blockers) == 0
	return st
}

func (p *Pizza) Build() (cart.NormalizeInput, error) {
	if !p.CanComplete() {
		return cart.NormalizeInput{}, ErrIncomplete
	}

	variant := p.item.FindVariant(p.variantID)

	in := cart.NormalizeInput{
		Existing:            p.existing,
		MenuItem:            p.item,
		Variant:             variant,
		SpecialInstructions: p.instructions,
		Breakdown:           p.breakdown,
	}

	extPrices := p.externalLinePrices()
	storedPrices, storedMods := p.storedSelections()

	for _, tc := range p.orderedChoices() {
		// Non-default toppings at none are simply absent; defaults at
		// none are recorded so an edit keeps them removed.
		price := pricing.ToppingPrice(tc, p.mode, variant.SizeCode)
		switch {
		case extPrices != nil:
			price = extPrices[tc.Topping.ID]
		case storedPrices != nil:
			price = storedPrices[tc.Topping.ID]
		}
		in.Toppings = append(in.Toppings, cart.ToppingSelection{
			ToppingID: tc.Topping.ID,
			Name:      tc.Topping.Name,
			Amount:    string(tc.Amount),
			Price:     price,
			IsDefault: tc.IsDefault,
			Category:  tc.Topping.Category,
		})
	}

	for id := range p.modifiers {
		if mod, ok := p.snap.Modifier(id); ok {
			in.Modifiers = append(in.Modifiers, cart.ModifierSelection{
				ModifierID: mod.ID,
				Name:       mod.Name,
				Price:      mod.PriceAdjustment,
			})
		} else if sel, ok := storedMods[id]; ok {
			in.Modifiers = append(in.Modifiers, sel)
		}
	}

	// The stored item always satisfies total == base + Σ line prices.
	// Whatever the external calculation priced that the lines above do
	// not carry lands on an explicit adjustment line.
	values := []float64{in.Breakdown.Base}
	for _, t := range in.Toppings {
		values = append(values, t.Price)
	}
	for _, m := range in.Modifiers {
		values = append(values, m.Price)
	}
	if residual := pricing.Round2(in.Breakdown.Total - pricing.Sum2(values...)); residual != 0 {
		in.Modifiers = append(in.Modifiers, cart.ModifierSelection{
			ModifierID: adjustmentModifierID,
			Name:       "Price Adjustment",
			Price:      residual,
		})
	}

	return in, nil
}

// adjustmentModifierID marks the reconciliation line carrying the part of
// an external total the recorded selections do not.
const adjustmentModifierID = "price-adjustment"

// externalLinePrices attributes the applied quote's named lines to the
// active toppings, first name match wins. Nil unless the current
// breakdown came from the external calculation.
func (p *Pizza) externalLinePrices() map[string]float64 {
	if p.priceSource != "external" {
		return nil
	}
	prices := map[string]float64{}
	used := make([]bool, len(p.breakdown.Lines))
	for _, tc := range p.orderedChoices() {
		name := strings.ToLower(tc.Topping.Name)
		for i, line := range p.breakdown.Lines {
			if used[i] || !strings.Contains(strings.ToLower(line.Label), name) {
				continue
			}
			prices[tc.Topping.ID] = line.Price
			used[i] = true
			break
		}
	}
	return prices
}

// storedSelections exposes the reopened item's recorded prices while the
// breakdown is still the seeded one.
func (p *Pizza) storedSelections() (map[string]float64, map[string]cart.ModifierSelection) {
	if p.priceSource != "cached" || p.existing == nil {
		return nil, nil
	}
	prices := map[string]float64{}
	for _, sel := range p.existing.Toppings {
		prices[sel.ToppingID] = sel.Price
	}
	mods := map[string]cart.ModifierSelection{}
	for _, sel := range p.existing.Modifiers {
		mods[sel.ModifierID] = sel
	}
	return prices, mods
}

func (p *Pizza) Close() {
	if p.quoter != nil {
		p.quoter.Close()
	}
}

func appliesTo(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
