package catalog

import (
	"context"
	"errors"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Snapshot is the immutable per-session view of the catalog. Customizers
// and pricing read from it; nothing mutates it after load.
type Snapshot struct {
	items          map[string]*MenuItem
	itemOrder      []string
	toppings       []Topping
	modifiers      []Modifier
	customizations []Customization
}

// --------------------------------------------------
// Load snapshot (ONE NETWORK ROUND-TRIP)
// --------------------------------------------------
func (s *Service) LoadSnapshot(
	ctx context.Context,
	restaurantID string,
) (*Snapshot, error) {

	items, err := s.repo.MenuItems(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("no menu available")
	}

	toppings, err := s.repo.Toppings(ctx, restaurantID, "")
	if err != nil {
		return nil, err
	}
	modifiers, err := s.repo.Modifiers(ctx, restaurantID, "")
	if err != nil {
		return nil, err
	}
	customizations, err := s.repo.Customizations(ctx, restaurantID, "")
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		items:          make(map[string]*MenuItem, len(items)),
		toppings:       toppings,
		modifiers:      modifiers,
		customizations: customizations,
	}

	for i := range items {
		item := &items[i]
		// Family and pack kind resolved exactly once, here.
		if item.Family == "" {
			item.Family = ResolveFamily(item.CategoryName)
		}
		if item.Family == FamilyChicken {
			for j := range item.Variants {
				v := &item.Variants[j]
				if v.Pack == PackNone {
					v.Pack = ClassifyChickenVariant(v)
				}
			}
		}
		snap.items[item.ID] = item
		snap.itemOrder = append(snap.itemOrder, item.ID)
	}

	return snap, nil
}

// --------------------------------------------------
// Snapshot reads
// --------------------------------------------------

func (sn *Snapshot) Item(id string) (*MenuItem, bool) {
	item, ok := sn.items[id]
	return item, ok
}

func (sn *Snapshot) Items() []*MenuItem {
	out := make([]*MenuItem, 0, len(sn.itemOrder))
	for _, id := range sn.itemOrder {
		out = append(out, sn.items[id])
	}
	return out
}

func (sn *Snapshot) ItemsByCategory(categoryName string) []*MenuItem {
	var out []*MenuItem
	for _, id := range sn.itemOrder {
		if normalize(sn.items[id].CategoryName) == normalize(categoryName) {
			out = append(out, sn.items[id])
		}
	}
	return out
}

func (sn *Snapshot) ToppingsFor(tag string) []Topping {
	var out []Topping
	for _, t := range sn.toppings {
		if tag == "" || hasTag(t.AppliesTo, tag) {
			out = append(out, t)
		}
	}
	return out
}

func (sn *Snapshot) Topping(id string) (*Topping, bool) {
	for i := range sn.toppings {
		if sn.toppings[i].ID == id {
			return &sn.toppings[i], true
		}
	}
	return nil, false
}

func (sn *Snapshot) ModifiersFor(tag string) []Modifier {
	var out []Modifier
	for _, m := range sn.modifiers {
		if tag == "" || hasTag(m.AppliesTo, tag) {
			out = append(out, m)
		}
	}
	return out
}

func (sn *Snapshot) Modifier(id string) (*Modifier, bool) {
	for i := range sn.modifiers {
		if sn.modifiers[i].ID == id {
			return &sn.modifiers[i], true
		}
	}
	return nil, false
}

// CustomizationsByCategory returns the customizations in one category key,
// e.g. "chicken_side" or "chicken_white_meat_16pc_family".
func (sn *Snapshot) CustomizationsByCategory(category string) []Customization {
	var out []Customization
	for _, c := range sn.customizations {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return out
}

func (sn *Snapshot) Customization(id string) (*Customization, bool) {
	for i := range sn.customizations {
		if sn.customizations[i].ID == id {
			return &sn.customizations[i], true
		}
	}
	return nil, false
}
