package customizer

import (
	"errors"
	"strings"

	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/cart"
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/catalog"
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/pricing"
)

const (
	maxIngredients = 6
	maxSauces      = 3
)

// Sandwich holds the in-progress state for one sandwich. Ingredients and
// sauces are id→tier maps; styles are mandatory for the fixed list of
// wet sandwiches and never affect price.
type Sandwich struct {
	base

	breadID        string
	defaultBreadID string
	deluxe         bool
	ingredients    map[string]pricing.IngredientTier
	sauces         map[string]pricing.SauceTier
	preparations   map[string]bool
	styleID        string
}

func NewSandwich(item *catalog.MenuItem, existing *cart.ConfiguredCartItem) *Sandwich {
	return &Sandwich{
		base:         newBase(item, existing),
		ingredients:  map[string]pricing.IngredientTier{},
		sauces:       map[string]pricing.SauceTier{},
		preparations: map[string]bool{},
	}
}

func (s *Sandwich) Family() catalog.ItemFamily { return catalog.FamilySandwich }

func (s *Sandwich) SetCatalog(snap *catalog.Snapshot, err error) {
	s.bind(snap, err)
	if s.snap == nil {
		return
	}

	s.defaultBreadID = s.findDefaultBread()

	if s.existing != nil {
		s.rehydrate()
		return
	}

	s.breadID = s.defaultBreadID
}

// The item's default bread carries no upcharge: garlic bread for the
// garlic-bread-default sandwiches, otherwise the house zero-price bread.
func (s *Sandwich) findDefaultBread() string {
	if pricing.GarlicBreadDefault(s.item.Name) {
		for _, cu := range s.snap.CustomizationsByCategory("sandwich_bread") {
			if strings.EqualFold(cu.Name, "Garlic Bread") {
				return cu.ID
			}
		}
	}
	for _, cu := range s.snap.CustomizationsByCategory("sandwich_bread") {
		if cu.Price == 0 {
			return cu.ID
		}
	}
	return ""
}

func (s *Sandwich) rehydrate() {
	s.instructions = s.existing.SpecialInstructions

	for _, sel := range s.existing.Toppings {
		switch sel.Category {
		case "sandwich_bread":
			s.breadID = sel.ToppingID
		case "sandwich_style":
			s.styleID = sel.ToppingID
		case "sandwich_ingredient":
			s.ingredients[sel.ToppingID] = pricing.IngredientTier(sel.Amount)
		case "sandwich_sauce":
			s.sauces[sel.ToppingID] = pricing.SauceTier(sel.Amount)
		case "sandwich_preparation":
			s.preparations[sel.ToppingID] = true
		}
	}

	deluxeID := s.deluxeModifierID()
	for _, sel := range s.existing.Modifiers {
		if sel.ModifierID == deluxeID {
			s.deluxe = true
		}
	}
}

func (s *Sandwich) deluxeModifierID() string {
	for _, m := range s.snap.ModifiersFor("sandwich") {
		if m.Category == "sandwich_deluxe" {
			return m.ID
		}
	}
	return ""
}

func (s *Sandwich) Apply(sel Selection) error {
	if err := s.ready(); err != nil {
		return err
	}

	switch sel.Kind {

	case KindBread:
		cu, ok := s.snap.Customization(sel.ID)
		if !ok || cu.Category != "sandwich_bread" {
			return ErrUnknownSelection
		}
		s.breadID = sel.ID

	case KindStyle:
		cu, ok := s.snap.Customization(sel.ID)
		if !ok || cu.Category != "sandwich_style" {
			return ErrUnknownSelection
		}
		s.styleID = sel.ID

	case KindDeluxe:
		s.deluxe = sel.On != nil && *sel.On

	case KindIngredient:
		topping, ok := s.snap.Topping(sel.ID)
		if !ok || topping.Category != "sandwich_ingredient" {
			return ErrUnknownSelection
		}
		if sel.Amount == "none" {
			delete(s.ingredients, sel.ID)
			return nil
		}
		tier := pricing.IngredientTier(sel.Amount)
		if !pricing.ValidIngredientTier(tier) {
			return errors.New("invalid ingredient tier")
		}
		if _, present := s.ingredients[sel.ID]; !present && len(s.ingredients) >= maxIngredients {
			return errors.New("ingredient limit reached")
		}
		s.ingredients[sel.ID] = tier

	case KindSauce:
		topping, ok := s.snap.Topping(sel.ID)
		if !ok || topping.Category != "sandwich_sauce" {
			return ErrUnknownSelection
		}
		if sel.Amount == "none" {
			delete(s.sauces, sel.ID)
			return nil
		}
		tier := pricing.SauceTier(sel.Amount)
		if !pricing.ValidSauceTier(tier) {
			return errors.New("invalid sauce tier")
		}
		if _, present := s.sauces[sel.ID]; !present && len(s.sauces) >= maxSauces {
			return errors.New("sauce limit reached")
		}
		s.sauces[sel.ID] = tier

	case KindPreparation:
		cu, ok := s.snap.Customization(sel.ID)
		if !ok || cu.Category != "sandwich_preparation" {
			return ErrUnknownSelection
		}
		if sel.On != nil && *sel.On {
			s.preparations[sel.ID] = true
		} else {
			delete(s.preparations, sel.ID)
		}

	case KindInstructions:
		s.instructions = sel.Text

	default:
		return ErrUnknownSelection
	}

	return nil
}

func (s *Sandwich) breakdown() pricing.Breakdown {
	in := pricing.SandwichInput{Item: s.item, Deluxe: s.deluxe}

	if s.breadID != "" {
		if cu, ok := s.snap.Customization(s.breadID); ok {
			in.Bread = cu
			in.BreadDefault = s.breadID == s.defaultBreadID
		}
	}
	if s.deluxe {
		if id := s.deluxeModifierID(); id != "" {
			if mod, ok := s.snap.Modifier(id); ok {
				in.DeluxePrice = mod.PriceAdjustment
			}
		}
	}

	for _, topping := range s.snap.ToppingsFor("sandwich") {
		if tier, ok := s.ingredients[topping.ID]; ok {
			in.Ingredients = append(in.Ingredients, pricing.IngredientChoice{Ingredient: topping, Tier: tier})
		}
		if tier, ok := s.sauces[topping.ID]; ok {
			in.Sauces = append(in.Sauces, pricing.SauceChoice{Sauce: topping, Tier: tier})
		}
	}

	return pricing.PriceSandwich(in)
}

func (s *Sandwich) Blockers() []string {
	if lb := s.loadBlockers(); lb != nil {
		return lb
	}
	var out []string
	if pricing.StyleRequired(s.item.Name) && s.styleID == "" {
		out = append(out, "choose a style: red sauce, natural gravy, or dry")
	}
	return out
}

func (s *Sandwich) CanComplete() bool { return len(s.Blockers()) == 0 }

func (s *Sandwich) State() State {
	st := State{Family: catalog.FamilySandwich}
	s.fillState(&st)

	st.BreadID = s.breadID
	st.StyleID = s.styleID
	st.Deluxe = s.deluxe

	st.Toppings = map[string]string{}
	for id, tier := range s.ingredients {
		st.Toppings[id] = string(tier)
	}
	st.Sauces = map[string]string{}
	for id, tier := range s.sauces {
		st.Sauces[id] = string(tier)
	}
	for id := range s.preparations {
		st.Customizations = append(st.Customizations, id)
	}

	if s.snap != nil {
		st.Breakdown = s.breakdown()
	}
	st.PriceSource = "local"
	st.Blockers = s.Blockers()
	st.CanComplete = len(st.Blockers) == 0
	return st
}

func (s *Sandwich) Build() (cart.NormalizeInput, error) {
	if !s.CanComplete() {
		return cart.NormalizeInput{}, ErrIncomplete
	}

	in := cart.NormalizeInput{
		Existing:            s.existing,
		MenuItem:            s.item,
		SpecialInstructions: s.instructions,
		Breakdown:           s.breakdown(),
	}

	if s.breadID != "" {
		if cu, ok := s.snap.Customization(s.breadID); ok {
			breadPrice := cu.Price
			if s.breadID == s.defaultBreadID {
				breadPrice = 0
			}
			in.Toppings = append(in.Toppings, cart.ToppingSelection{
				ToppingID: cu.ID,
				Name:      cu.Name,
				Amount:    "selected",
				Price:     breadPrice,
				IsDefault: s.breadID == s.defaultBreadID,
				Category:  cu.Category,
			})
		}
	}

	if s.styleID != "" {
		if cu, ok := s.snap.Customization(s.styleID); ok {
			in.Toppings = append(in.Toppings, customizationSelection(cu))
		}
	}

	for _, topping := range s.snap.ToppingsFor("sandwich") {
		if tier, ok := s.ingredients[topping.ID]; ok {
			in.Toppings = append(in.Toppings, cart.ToppingSelection{
				ToppingID: topping.ID,
				Name:      topping.Name,
				Amount:    string(tier),
				Price:     pricing.IngredientTierPrice(topping, tier),
				Category:  topping.Category,
			})
		}
		if tier, ok := s.sauces[topping.ID]; ok {
			in.Toppings = append(in.Toppings, cart.ToppingSelection{
				ToppingID: topping.ID,
				Name:      topping.Name,
				Amount:    string(tier),
				Price:     pricing.SauceTierPrice(topping, tier),
				Category:  topping.Category,
			})
		}
	}

	for _, category := range []string{"sandwich_preparation"} {
		for _, cu := range s.snap.CustomizationsByCategory(category) {
			if s.preparations[cu.ID] {
				cu := cu
				in.Toppings = append(in.Toppings, customizationSelection(&cu))
			}
		}
	}

	if s.deluxe {
		if id := s.deluxeModifierID(); id != "" {
			if mod, ok := s.snap.Modifier(id); ok {
				in.Modifiers = append(in.Modifiers, cart.ModifierSelection{
					ModifierID: mod.ID,
					Name:       mod.Name,
					Price:      mod.PriceAdjustment,
				})
			}
		}
	}

	return in, nil
}

func (s *Sandwich) Close() {}
