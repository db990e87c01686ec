package cart

import (
	"testing"

	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/catalog"
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/pricing"
)

func breakdownOf(base float64, lines ...pricing.LineItem) pricing.Breakdown {
	total := base
	for _, l := range lines {
		total += l.Price
	}
	return pricing.Breakdown{Base: base, Lines: lines, Total: total}
}

func TestNormalize_MintsIDForNewItems(t *testing.T) {
	item := &catalog.MenuItem{ID: "item-beef", Name: "Italian Beef", BasePrice: 8.50}

	a, err := Normalize(NormalizeInput{MenuItem: item, Breakdown: breakdownOf(8.50)})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	b, _ := Normalize(NormalizeInput{MenuItem: item, Breakdown: breakdownOf(8.50)})

	if a.ID == "" || b.ID == "" || a.ID == b.ID {
		t.Fatalf("each new item needs a fresh id: %q vs %q", a.ID, b.ID)
	}
	if a.Quantity != 1 {
		t.Fatalf("quantity defaults to 1, got %d", a.Quantity)
	}
	if a.TotalPrice != 8.50 {
		t.Fatalf("expected 8.50, got %.2f", a.TotalPrice)
	}
}

func TestNormalize_EditPreservesIdentityAndQuantity(t *testing.T) {
	item := &catalog.MenuItem{ID: "item-beef", Name: "Italian Beef", BasePrice: 8.50}
	existing := &ConfiguredCartItem{ID: "fixed-id", Quantity: 3, TotalPrice: 8.50}

	got, err := Normalize(NormalizeInput{
		Existing:  existing,
		MenuItem:  item,
		Quantity:  1, // ignored in edit mode
		Breakdown: breakdownOf(10.00),
	})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got.ID != "fixed-id" {
		t.Fatalf("edit must keep id, got %q", got.ID)
	}
	if got.Quantity != 3 {
		t.Fatalf("edit must keep quantity, got %d", got.Quantity)
	}
	if got.TotalPrice != 10.00 {
		t.Fatalf("pricing fields must be replaced, got %.2f", got.TotalPrice)
	}
}

func TestNormalize_ContractViolations(t *testing.T) {
	item := &catalog.MenuItem{ID: "item-beef", Name: "Italian Beef"}

	if _, err := Normalize(NormalizeInput{Breakdown: breakdownOf(1)}); err != ErrMissingItem {
		t.Errorf("missing menu item: got %v", err)
	}

	if _, err := Normalize(NormalizeInput{
		MenuItem:  item,
		Breakdown: pricing.Breakdown{Base: 1, Total: -0.01},
	}); err != ErrNegativePrice {
		t.Errorf("negative total: got %v", err)
	}

	if _, err := Normalize(NormalizeInput{
		MenuItem:  item,
		Existing:  &ConfiguredCartItem{ID: "x", Quantity: 0},
		Breakdown: breakdownOf(1),
	}); err != ErrInvalidQuantity {
		t.Errorf("zero quantity on edit: got %v", err)
	}
}

func TestNormalize_DisplayName(t *testing.T) {
	pizza := &catalog.MenuItem{ID: "item-byo", Name: "Build Your Own Pizza"}
	variant := &catalog.Variant{ID: "v", Name: `Medium 14" Thin Crust`, Price: 12.00}

	got, err := Normalize(NormalizeInput{MenuItem: pizza, Variant: variant, Breakdown: breakdownOf(12.00)})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got.DisplayName != `Medium 14" Thin Crust Build Your Own Pizza` {
		t.Fatalf("got %q", got.DisplayName)
	}

	// Variant names that already contain the item name stand alone.
	soda := &catalog.MenuItem{ID: "item-soda-2l", Name: "Soda"}
	sodaVar := &catalog.Variant{ID: "v2", Name: "2 Liter Soda Cola", Price: 3.50}
	got, _ = Normalize(NormalizeInput{MenuItem: soda, Variant: sodaVar, Breakdown: breakdownOf(3.50)})
	if got.DisplayName != "2 Liter Soda Cola" {
		t.Fatalf("got %q", got.DisplayName)
	}

	// No variant at all: plain item name.
	got, _ = Normalize(NormalizeInput{MenuItem: pizza, Breakdown: breakdownOf(10.00)})
	if got.DisplayName != "Build Your Own Pizza" {
		t.Fatalf("got %q", got.DisplayName)
	}
}

func TestNormalize_RoundsTotal(t *testing.T) {
	item := &catalog.MenuItem{ID: "item-x", Name: "X"}
	got, err := Normalize(NormalizeInput{
		MenuItem:  item,
		Breakdown: pricing.Breakdown{Base: 1, Total: 10.005},
	})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got.TotalPrice != 10.01 {
		t.Fatalf("expected half-up rounding to 10.01, got %.4f", got.TotalPrice)
	}
}
