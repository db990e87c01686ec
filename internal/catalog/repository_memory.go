package catalog

import "context"

// InMemoryRepository serves a fixed menu. Used by tests and by
// CATALOG_SOURCE=memory so the API runs without a database.
type InMemoryRepository struct {
	items          []MenuItem
	toppings       []Topping
	modifiers      []Modifier
	customizations []Customization
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		items:          fixtureItems(),
		toppings:       fixtureToppings(),
		modifiers:      fixtureModifiers(),
		customizations: fixtureCustomizations(),
	}
}

func (r *InMemoryRepository) MenuItems(
	ctx context.Context,
	restaurantID string,
) ([]MenuItem, error) {
	out := make([]MenuItem, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *InMemoryRepository) Toppings(
	ctx context.Context,
	restaurantID, appliesTo string,
) ([]Topping, error) {
	var out []Topping
	for _, t := range r.toppings {
		if appliesTo == "" || hasTag(t.AppliesTo, appliesTo) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Modifiers(
	ctx context.Context,
	restaurantID, appliesTo string,
) ([]Modifier, error) {
	var out []Modifier
	for _, m := range r.modifiers {
		if appliesTo == "" || hasTag(m.AppliesTo, appliesTo) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Customizations(
	ctx context.Context,
	restaurantID, appliesTo string,
) ([]Customization, error) {
	var out []Customization
	for _, c := range r.customizations {
		if appliesTo == "" || hasTag(c.AppliesTo, appliesTo) {
			out = append(out, c)
		}
	}
	return out, nil
}

// --------------------------------------------------
// Fixture menu (Chicago-style pizzeria)
// --------------------------------------------------

func fixtureItems() []MenuItem {
	return []MenuItem{
		{
			ID: "item-byo", Name: "Build Your Own Pizza",
			Family: FamilyPizza, CategoryID: "cat-pizza", CategoryName: "Pizzas",
			BasePrice: 10.00, PrepMinutes: 20, AllowsCustomToppings: true,
			Variants: []Variant{
				{ID: "var-byo-sm-thin", MenuItemID: "item-byo", Name: `Small 12" Thin Crust`, SizeCode: "small", TypeCode: "thin", Price: 10.00, Serves: "1-2"},
				{ID: "var-byo-md-thin", MenuItemID: "item-byo", Name: `Medium 14" Thin Crust`, SizeCode: "medium", TypeCode: "thin", Price: 12.00, Serves: "2-3"},
				{ID: "var-byo-lg-thin", MenuItemID: "item-byo", Name: `Large 16" Thin Crust`, SizeCode: "large", TypeCode: "thin", Price: 15.00, Serves: "3-4"},
				{ID: "var-byo-xl-thin", MenuItemID: "item-byo", Name: `X-Large 18" Thin Crust`, SizeCode: "xlarge", TypeCode: "thin", Price: 18.00, Serves: "4-5"},
				{ID: "var-byo-md-pan", MenuItemID: "item-byo", Name: `Medium 14" Pan`, SizeCode: "medium", TypeCode: "pan", Price: 13.50, Serves: "2-3"},
				{ID: "var-byo-lg-pan", MenuItemID: "item-byo", Name: `Large 16" Pan`, SizeCode: "large", TypeCode: "pan", Price: 16.50, Serves: "3-4"},
				{ID: "var-byo-lg-double", MenuItemID: "item-byo", Name: `Large 16" Double Dough`, SizeCode: "large", TypeCode: "double_dough", Price: 17.00, Serves: "3-4"},
			},
		},
		{
			ID: "item-works", Name: "The Works Special",
			Family: FamilyPizza, CategoryID: "cat-pizza", CategoryName: "Pizzas",
			BasePrice: 16.00, PrepMinutes: 25, AllowsCustomToppings: true,
			DefaultToppings: []DefaultTopping{
				{ToppingID: "top-mozzarella", Amount: AmountNormal},
				{ToppingID: "top-sausage", Amount: AmountNormal},
				{ToppingID: "top-mushroom", Amount: AmountNormal},
				{ToppingID: "top-onion", Amount: AmountNormal},
				{ToppingID: "top-green-pepper", Amount: AmountNormal},
			},
			Variants: []Variant{
				{ID: "var-works-md", MenuItemID: "item-works", Name: `Medium 14" Thin Crust`, SizeCode: "medium", TypeCode: "thin", Price: 16.00, Serves: "2-3"},
				{ID: "var-works-lg", MenuItemID: "item-works", Name: `Large 16" Thin Crust`, SizeCode: "large", TypeCode: "thin", Price: 19.00, Serves: "3-4"},
			},
		},
		{
			ID: "item-margherita", Name: "Margherita Special",
			Family: FamilyPizza, CategoryID: "cat-pizza", CategoryName: "Pizzas",
			BasePrice: 14.00, PrepMinutes: 20, AllowsCustomToppings: true,
			DefaultToppings: []DefaultTopping{
				{ToppingID: "top-mozzarella", Amount: AmountNormal},
				{ToppingID: "top-basil", Amount: AmountNormal},
			},
			Variants: []Variant{
				{ID: "var-marg-md", MenuItemID: "item-margherita", Name: `Medium 14" Thin Crust`, SizeCode: "medium", TypeCode: "thin", Price: 14.00, Serves: "2-3"},
				{ID: "var-marg-lg", MenuItemID: "item-margherita", Name: `Large 16" Thin Crust`, SizeCode: "large", TypeCode: "thin", Price: 17.00, Serves: "3-4"},
			},
		},
		{
			ID: "item-broasted", Name: "Broasted Chicken Pack",
			Family: FamilyChicken, CategoryID: "cat-chicken", CategoryName: "Broasted Chicken",
			BasePrice: 15.00, PrepMinutes: 30,
			Variants: []Variant{
				{ID: "var-chx-8", MenuItemID: "item-broasted", Name: "8 Piece Pack", SizeCode: "8pc", TypeCode: "pack", Price: 15.00, Serves: "3-4", PieceCount: 8},
				{ID: "var-chx-12", MenuItemID: "item-broasted", Name: "12 Piece Family Pack", SizeCode: "12pc", TypeCode: "pack", Price: 21.00, Serves: "5-6", PieceCount: 12},
				{ID: "var-chx-16", MenuItemID: "item-broasted", Name: "16 Piece Family Pack", SizeCode: "16pc", TypeCode: "pack", Price: 27.00, Serves: "7-8", PieceCount: 16},
				{ID: "var-chx-20", MenuItemID: "item-broasted", Name: "20 Piece Family Pack", SizeCode: "20pc", TypeCode: "pack", Price: 32.00, Serves: "9-10", PieceCount: 20},
			},
		},
		{
			ID: "item-bulk-chx", Name: "Bulk Broasted Chicken",
			Family: FamilyChicken, CategoryID: "cat-chicken", CategoryName: "Broasted Chicken",
			BasePrice: 78.00, PrepMinutes: 60,
			Variants: []Variant{
				{ID: "var-chx-50", MenuItemID: "item-bulk-chx", Name: "50 Piece Bulk", SizeCode: "50pc", TypeCode: "bulk", Price: 78.00, Serves: "20+", PieceCount: 50},
			},
		},
		{
			ID: "item-chx-piece", Name: "Chicken By The Piece",
			Family: FamilyChicken, CategoryID: "cat-chicken", CategoryName: "Broasted Chicken",
			BasePrice: 1.95, PrepMinutes: 10,
			Variants: []Variant{
				{ID: "var-piece-leg", MenuItemID: "item-chx-piece", Name: "Leg", SizeCode: "leg", TypeCode: "piece", Price: 2.25},
				{ID: "var-piece-thigh", MenuItemID: "item-chx-piece", Name: "Thigh", SizeCode: "thigh", TypeCode: "piece", Price: 2.50},
				{ID: "var-piece-breast", MenuItemID: "item-chx-piece", Name: "Breast", SizeCode: "breast", TypeCode: "piece", Price: 3.25},
				{ID: "var-piece-wing", MenuItemID: "item-chx-piece", Name: "Wing", SizeCode: "wing", TypeCode: "piece", Price: 1.95},
			},
		},
		{
			ID: "item-beef", Name: "Italian Beef",
			Family: FamilySandwich, CategoryID: "cat-sandwich", CategoryName: "Sandwiches",
			BasePrice: 8.50, PrepMinutes: 12,
		},
		{
			ID: "item-sausage-sw", Name: "Italian Sausage Sandwich",
			Family: FamilySandwich, CategoryID: "cat-sandwich", CategoryName: "Sandwiches",
			BasePrice: 7.75, PrepMinutes: 12,
		},
		{
			ID: "item-meatball", Name: "Meatball Sandwich",
			Family: FamilySandwich, CategoryID: "cat-sandwich", CategoryName: "Sandwiches",
			BasePrice: 7.50, PrepMinutes: 12,
		},
		{
			ID: "item-combo", Name: "Combo Beef & Sausage",
			Family: FamilySandwich, CategoryID: "cat-sandwich", CategoryName: "Sandwiches",
			BasePrice: 9.75, PrepMinutes: 14,
		},
		{
			ID: "item-garden-sw", Name: "Garden Sandwich",
			Family: FamilySandwich, CategoryID: "cat-sandwich", CategoryName: "Sandwiches",
			BasePrice: 6.50, PrepMinutes: 10,
		},
		{
			ID: "item-mozz-sticks", Name: "Mozzarella Sticks",
			Family: FamilyAppetizer, CategoryID: "cat-appetizer", CategoryName: "Appetizers",
			BasePrice: 6.95, PrepMinutes: 8,
		},
		{
			ID: "item-fried-mush", Name: "Fried Mushrooms",
			Family: FamilyAppetizer, CategoryID: "cat-appetizer", CategoryName: "Appetizers",
			BasePrice: 6.50, PrepMinutes: 8,
		},
		{
			ID: "item-pizza-bread", Name: "Pizza Bread",
			Family: FamilyAppetizer, CategoryID: "cat-appetizer", CategoryName: "Appetizers",
			BasePrice: 5.25, PrepMinutes: 8,
		},
		{
			ID: "item-soda-2l", Name: "2 Liter Soda",
			Family: FamilyGeneric, CategoryID: "cat-beverage", CategoryName: "Beverages",
			BasePrice: 3.50,
			Variants: []Variant{
				{ID: "var-soda-cola", MenuItemID: "item-soda-2l", Name: "Cola", SizeCode: "2l", TypeCode: "cola", Price: 3.50},
				{ID: "var-soda-lemon", MenuItemID: "item-soda-2l", Name: "Lemon Lime", SizeCode: "2l", TypeCode: "lemon_lime", Price: 3.50},
			},
		},
		{
			ID: "item-cannoli", Name: "Cannoli",
			Family: FamilyGeneric, CategoryID: "cat-dessert", CategoryName: "Desserts",
			BasePrice: 4.25,
		},
	}
}

func fixtureToppings() []Topping {
	return []Topping{
		{ID: "top-pepperoni", Name: "Pepperoni", Category: "pizza_topping", BasePrice: 2.00, AppliesTo: []string{"pizza"}},
		{ID: "top-sausage", Name: "Italian Sausage", Category: "pizza_topping", BasePrice: 2.00, AppliesTo: []string{"pizza"}},
		{ID: "top-mushroom", Name: "Mushrooms", Category: "pizza_topping", BasePrice: 1.75, AppliesTo: []string{"pizza"}},
		{ID: "top-onion", Name: "Onions", Category: "pizza_topping", BasePrice: 1.50, AppliesTo: []string{"pizza"}},
		{ID: "top-green-pepper", Name: "Green Peppers", Category: "pizza_topping", BasePrice: 1.50, AppliesTo: []string{"pizza"}},
		{ID: "top-mozzarella", Name: "Mozzarella", Category: "pizza_topping", BasePrice: 2.00, AppliesTo: []string{"pizza"}},
		{ID: "top-basil", Name: "Fresh Basil", Category: "pizza_topping", BasePrice: 2.00, Premium: true, AppliesTo: []string{"pizza"}},
		{ID: "top-black-olive", Name: "Black Olives", Category: "pizza_topping", BasePrice: 1.75, AppliesTo: []string{"pizza"}},

		{ID: "ing-mozzarella", Name: "Mozzarella", Category: "sandwich_ingredient", BasePrice: 2.00, AppliesTo: []string{"sandwich"}},
		{ID: "ing-onion", Name: "Grilled Onions", Category: "sandwich_ingredient", BasePrice: 1.00, AppliesTo: []string{"sandwich"}},
		{ID: "ing-sweet-pepper", Name: "Sweet Peppers", Category: "sandwich_ingredient", BasePrice: 1.00, AppliesTo: []string{"sandwich"}},
		{ID: "ing-giardiniera", Name: "Hot Giardiniera", Category: "sandwich_ingredient", BasePrice: 1.25, AppliesTo: []string{"sandwich"}},

		{ID: "sauce-marinara", Name: "Marinara", Category: "sandwich_sauce", BasePrice: 0.75, AppliesTo: []string{"sandwich"}},
		{ID: "sauce-garlic-butter", Name: "Garlic Butter", Category: "sandwich_sauce", BasePrice: 0.75, AppliesTo: []string{"sandwich"}},
	}
}

func fixtureModifiers() []Modifier {
	return []Modifier{
		{ID: "mod-deluxe", Name: "Make It Deluxe", Category: "sandwich_deluxe", PriceAdjustment: 2.50, AppliesTo: []string{"sandwich"}},
		{ID: "mod-well-done", Name: "Well Done", Category: "pizza_preparation", PriceAdjustment: 0, AppliesTo: []string{"pizza"}},
		{ID: "mod-extra-marinara", Name: "Extra Marinara", Category: "appetizer_addon", PriceAdjustment: 0.75, AppliesTo: []string{"appetizer"}},
		{ID: "mod-side-ranch", Name: "Side of Ranch", Category: "appetizer_addon", PriceAdjustment: 0.50, AppliesTo: []string{"appetizer"}},
		{ID: "mod-lightly-fried", Name: "Lightly Fried", Category: "appetizer_preparation", PriceAdjustment: 0, AppliesTo: []string{"appetizer"}},
	}
}

func fixtureCustomizations() []Customization {
	return []Customization{
		// Breads. French is the house default; deviating carries the upcharge.
		{ID: "cust-bread-french", Name: "French Bread", Category: "sandwich_bread", Price: 0, AppliesTo: []string{"sandwich"}},
		{ID: "cust-bread-garlic", Name: "Garlic Bread", Category: "sandwich_bread", Price: 1.50, AppliesTo: []string{"sandwich"}},

		// Styles carry no price effect.
		{ID: "cust-style-red", Name: "Red Sauce", Category: "sandwich_style", Price: 0, AppliesTo: []string{"sandwich"}},
		{ID: "cust-style-gravy", Name: "Natural Gravy", Category: "sandwich_style", Price: 0, AppliesTo: []string{"sandwich"}},
		{ID: "cust-style-dry", Name: "Dry", Category: "sandwich_style", Price: 0, AppliesTo: []string{"sandwich"}},

		{ID: "cust-sprep-toasted", Name: "Toasted", Category: "sandwich_preparation", Price: 0, AppliesTo: []string{"sandwich"}},
		{ID: "cust-sprep-cut", Name: "Cut in Half", Category: "sandwich_preparation", Price: 0, AppliesTo: []string{"sandwich"}},

		// White-meat tiers, keyed by pack size.
		{ID: "cust-wm-8r", Name: "White Meat", Category: "chicken_white_meat_8pc_regular", Price: 2.00, AppliesTo: []string{"chicken"}},
		{ID: "cust-wm-8r-extra", Name: "Extra White Meat", Category: "chicken_white_meat_8pc_regular", Price: 3.00, AppliesTo: []string{"chicken"}},
		{ID: "cust-wm-12f", Name: "White Meat", Category: "chicken_white_meat_12pc_family", Price: 3.50, AppliesTo: []string{"chicken"}},
		{ID: "cust-wm-12f-extra", Name: "Extra White Meat", Category: "chicken_white_meat_12pc_family", Price: 4.50, AppliesTo: []string{"chicken"}},
		{ID: "cust-wm-16f", Name: "White Meat", Category: "chicken_white_meat_16pc_family", Price: 4.00, AppliesTo: []string{"chicken"}},
		{ID: "cust-wm-16f-extra", Name: "Extra White Meat", Category: "chicken_white_meat_16pc_family", Price: 5.00, AppliesTo: []string{"chicken"}},
		{ID: "cust-wm-20f", Name: "White Meat", Category: "chicken_white_meat_20pc_family", Price: 5.00, AppliesTo: []string{"chicken"}},
		{ID: "cust-wm-20f-extra", Name: "Extra White Meat", Category: "chicken_white_meat_20pc_family", Price: 6.00, AppliesTo: []string{"chicken"}},

		// Sides are free with a pack.
		{ID: "cust-side-garlic-bread", Name: "Garlic Bread", Category: "chicken_side", Price: 0, AppliesTo: []string{"chicken"}},
		{ID: "cust-side-coleslaw", Name: "Coleslaw", Category: "chicken_side", Price: 0, AppliesTo: []string{"chicken"}},
		{ID: "cust-side-potatoes", Name: "Broasted Potatoes", Category: "chicken_side", Price: 0, AppliesTo: []string{"chicken"}},
		{ID: "cust-side-fries", Name: "French Fries", Category: "chicken_side", Price: 0, AppliesTo: []string{"chicken"}},

		{ID: "cust-prep-crispy", Name: "Extra Crispy", Category: "chicken_preparation", Price: 0, AppliesTo: []string{"chicken"}},
		{ID: "cust-prep-regular", Name: "Regular Cooking", Category: "chicken_preparation", Price: 0, AppliesTo: []string{"chicken"}},

		{ID: "cust-cond-ranch", Name: "Ranch", Category: "chicken_condiment", Price: 0.50, AppliesTo: []string{"chicken"}},
		{ID: "cust-cond-hot", Name: "Hot Sauce", Category: "chicken_condiment", Price: 0.50, AppliesTo: []string{"chicken"}},
	}
}
