package catalog

// Amount is a topping portion level. "none" always prices to zero.
type Amount string

const (
	AmountNone   Amount = "none"
	AmountLight  Amount = "light"
	AmountNormal Amount = "normal"
	AmountExtra  Amount = "extra"
	AmountXXtra  Amount = "xxtra"
)

// ValidAmount reports whether a is a known portion level.
func ValidAmount(a Amount) bool {
	switch a {
	case AmountNone, AmountLight, AmountNormal, AmountExtra, AmountXXtra:
		return true
	}
	return false
}

// MenuItem is the read-only snapshot of one sellable item.
// Fetched once per ordering session and never mutated by the core.
type MenuItem struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	Family               ItemFamily       `json:"family"`
	CategoryID           string           `json:"category_id"`
	CategoryName         string           `json:"category_name"`
	BasePrice            float64          `json:"base_price"`
	PrepMinutes          int              `json:"prep_minutes"`
	AllowsCustomToppings bool             `json:"allows_custom_toppings"`
	DefaultToppings      []DefaultTopping `json:"default_toppings,omitempty"`
	Variants             []Variant        `json:"variants,omitempty"`
}

// DefaultTopping is one entry of a specialty item's default set, in menu order.
type DefaultTopping struct {
	ToppingID string `json:"topping_id"`
	Amount    Amount `json:"amount"`
}

// Variant is a priced (size, crust/type) combination of a menu item.
// Within one item, (SizeCode, TypeCode) pairs are unique.
type Variant struct {
	ID         string   `json:"id"`
	MenuItemID string   `json:"menu_item_id"`
	Name       string   `json:"name"`
	SizeCode   string   `json:"size_code"`
	TypeCode   string   `json:"type_code"`
	Price      float64  `json:"price"`
	Serves     string   `json:"serves,omitempty"`
	Pack       PackKind `json:"pack,omitempty"`
	PieceCount int      `json:"piece_count,omitempty"`
}

// Topping is catalog-level reference data shared by pizza toppings and
// sandwich ingredients/sauces. AppliesTo tags pick which families see it.
type Topping struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	BasePrice float64  `json:"base_price"`
	Premium   bool     `json:"premium"`
	AppliesTo []string `json:"applies_to"`
}

// Modifier is a binary priced add-on; adjustments may be negative.
type Modifier struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	PriceAdjustment float64  `json:"price_adjustment"`
	AppliesTo       []string `json:"applies_to"`
}

// Customization is family-scoped reference data (white-meat tiers, sides,
// preparations, condiments, breads, styles). The Category string is the
// lookup key the customizers gate on, e.g. "chicken_white_meat_8pc_regular".
type Customization struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Price     float64  `json:"price"`
	AppliesTo []string `json:"applies_to"`
}

// FindVariant returns the variant with the given id, or nil.
func (m *MenuItem) FindVariant(variantID string) *Variant {
	for i := range m.Variants {
		if m.Variants[i].ID == variantID {
			return &m.Variants[i]
		}
	}
	return nil
}

// IsDefaultTopping reports whether toppingID is part of the item's
// specialty default set.
func (m *MenuItem) IsDefaultTopping(toppingID string) bool {
	for _, dt := range m.DefaultToppings {
		if dt.ToppingID == toppingID {
			return true
		}
	}
	return false
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
