package cart

// ToppingSelection is one structured selection on a cart item. The
// Category field carries the catalog category key so edit-mode
// rehydration reads ids and tiers directly; display strings are derived,
// never parsed back.
type ToppingSelection struct {
	ToppingID string  `json:"topping_id"`
	Name      string  `json:"name"`
	Amount    string  `json:"amount"`
	Price     float64 `json:"price"`
	IsDefault bool    `json:"is_default"`
	Category  string  `json:"category"`
}

// ModifierSelection is a binary selected add-on; Price may be negative.
type ModifierSelection struct {
	ModifierID string  `json:"modifier_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
}

// ConfiguredCartItem is the canonical output of a completed customizer
// or direct-add. Its ID is stable across edits: reopening and completing
// again replaces every pricing/selection field but never the identity.
type ConfiguredCartItem struct {
	ID                  string              `json:"id"`
	MenuItemID          string              `json:"menu_item_id"`
	MenuItemName        string              `json:"menu_item_name"`
	VariantID           string              `json:"variant_id,omitempty"`
	VariantName         string              `json:"variant_name,omitempty"`
	Quantity            int                 `json:"quantity"`
	BasePrice           float64             `json:"base_price"`
	Toppings            []ToppingSelection  `json:"toppings,omitempty"`
	Modifiers           []ModifierSelection `json:"modifiers,omitempty"`
	SpecialInstructions string              `json:"special_instructions"`
	TotalPrice          float64             `json:"total_price"`
	DisplayName         string              `json:"display_name"`
}

// LineTotal is the unit total multiplied by quantity.
func (i *ConfiguredCartItem) LineTotal() float64 {
	return i.TotalPrice * float64(i.Quantity)
}

func (i *ConfiguredCartItem) clone() *ConfiguredCartItem {
	out := *i
	out.Toppings = append([]ToppingSelection(nil), i.Toppings...)
	out.Modifiers = append([]ModifierSelection(nil), i.Modifiers...)
	return &out
}
