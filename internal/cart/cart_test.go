package cart

import "testing"

func testItem(id string, price float64, qty int) *ConfiguredCartItem {
	return &ConfiguredCartItem{
		ID:           id,
		MenuItemID:   "item-x",
		MenuItemName: "Test Item",
		Quantity:     qty,
		TotalPrice:   price,
		DisplayName:  "Test Item",
	}
}

func TestCart_AddAndSubtotal(t *testing.T) {
	c := New()

	if err := c.Add(testItem("a", 10.00, 1)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := c.Add(testItem("b", 4.25, 2)); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if c.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", c.Len())
	}
	if got := c.Subtotal(); got != 18.50 {
		t.Fatalf("expected subtotal 18.50, got %.2f", got)
	}
}

func TestCart_DuplicateIDRejected(t *testing.T) {
	c := New()
	if err := c.Add(testItem("a", 10.00, 1)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := c.Add(testItem("a", 12.00, 1)); err == nil {
		t.Fatal("expected duplicate id to be rejected")
	}
}

func TestCart_ReplaceKeepsPosition(t *testing.T) {
	c := New()
	c.Add(testItem("a", 10.00, 1))
	c.Add(testItem("b", 5.00, 1))

	replacement := testItem("a", 12.50, 1)
	if err := c.Replace(replacement); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	items := c.Items()
	if items[0].ID != "a" || items[0].TotalPrice != 12.50 {
		t.Fatalf("replaced item must keep its slot: got %s at %.2f", items[0].ID, items[0].TotalPrice)
	}

	if err := c.Replace(testItem("missing", 1.00, 1)); err != ErrItemNotFound {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestCart_UpdateQuantityZeroRemoves(t *testing.T) {
	c := New()
	c.Add(testItem("a", 10.00, 2))

	zero := 0
	item, err := c.Update("a", ItemUpdate{Quantity: &zero})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if item != nil {
		t.Fatal("quantity 0 must remove, expected nil item")
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty cart, got %d items", c.Len())
	}
}

func TestCart_UpdateNegativeQuantityRejected(t *testing.T) {
	c := New()
	c.Add(testItem("a", 10.00, 1))

	neg := -1
	if _, err := c.Update("a", ItemUpdate{Quantity: &neg}); err == nil {
		t.Fatal("expected negative quantity to be rejected")
	}
	if c.Len() != 1 {
		t.Fatal("rejected update must leave the cart untouched")
	}
}

func TestCart_GetReturnsCopy(t *testing.T) {
	c := New()
	orig := testItem("a", 10.00, 1)
	orig.Toppings = []ToppingSelection{{ToppingID: "top-1", Name: "Pepperoni"}}
	c.Add(orig)

	got, ok := c.Get("a")
	if !ok {
		t.Fatal("Get: missing item")
	}
	got.Toppings[0].Name = "mutated"
	got.TotalPrice = 99

	again, _ := c.Get("a")
	if again.Toppings[0].Name != "Pepperoni" || again.TotalPrice != 10.00 {
		t.Fatal("mutating a Get result must not touch the cart")
	}
}

func TestCart_Remove(t *testing.T) {
	c := New()
	c.Add(testItem("a", 10.00, 1))

	if err := c.Remove("a"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := c.Remove("a"); err != ErrItemNotFound {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}
