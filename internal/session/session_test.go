package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/cart"
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/catalog"
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/customizer"
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/pricing"
)

func newTestManager() *Manager {
	svc := catalog.NewService(catalog.NewInMemoryRepository())
	return NewManager(svc, nil, pricing.ModeFlat, 10*time.Millisecond, "default")
}

func TestRouting_Deterministic(t *testing.T) {
	m := newTestManager()
	s := m.Session("")
	if _, err := s.SelectItem(context.Background(), "item-cannoli", "", ""); err != nil {
		t.Fatalf("SelectItem: %v", err) // also forces the snapshot load
	}
	snap := s.snap

	tests := []struct {
		itemID string
		want   RouteKind
	}{
		{"item-byo", RouteCustomizer},
		{"item-margherita", RouteCustomizer},
		{"item-broasted", RouteCustomizer},
		{"item-bulk-chx", RouteCustomizer},
		{"item-chx-piece", RouteDirectAdd}, // every variant is an individual piece
		{"item-beef", RouteCustomizer},
		{"item-mozz-sticks", RouteCustomizer},
		{"item-soda-2l", RouteDirectAdd},
		{"item-cannoli", RouteDirectAdd},
	}

	for _, tt := range tests {
		item, ok := snap.Item(tt.itemID)
		if !ok {
			t.Fatalf("fixture item %s missing", tt.itemID)
		}
		// Same item, same decision, every time.
		for i := 0; i < 3; i++ {
			if got := RouteFor(item); got.Kind != tt.want {
				t.Errorf("RouteFor(%s) = %s, want %s", tt.itemID, got.Kind, tt.want)
			}
		}
	}
}

func TestSession_CustomizerFlowAddsToCart(t *testing.T) {
	m := newTestManager()
	s := m.Session("")

	result, err := s.SelectItem(context.Background(), "item-margherita", "", "")
	if err != nil {
		t.Fatalf("SelectItem: %v", err)
	}
	if result.Action != "customizer_opened" || result.State == nil {
		t.Fatalf("expected customizer_opened, got %+v", result)
	}

	if _, err := s.ApplySelection(customizer.Selection{Kind: customizer.KindTopping, ID: "top-basil", Amount: "extra"}); err != nil {
		t.Fatalf("ApplySelection: %v", err)
	}

	item, err := s.Complete()
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if item.TotalPrice != 15.00 {
		t.Fatalf("expected 15.00, got %.2f", item.TotalPrice)
	}
	if s.Cart().Len() != 1 {
		t.Fatalf("expected 1 cart item, got %d", s.Cart().Len())
	}

	// Completion closes the customizer.
	if _, err := s.CustomizerState(); !errors.Is(err, ErrNoCustomizer) {
		t.Fatalf("expected ErrNoCustomizer after complete, got %v", err)
	}
}

func TestSession_AtMostOneOpenCustomizer(t *testing.T) {
	m := newTestManager()
	s := m.Session("")

	if _, err := s.SelectItem(context.Background(), "item-byo", "", ""); err != nil {
		t.Fatalf("SelectItem: %v", err)
	}
	result, err := s.SelectItem(context.Background(), "item-beef", "", "")
	if err != nil {
		t.Fatalf("SelectItem: %v", err)
	}

	// The pizza customizer is gone; only the sandwich remains.
	if result.State.Family != catalog.FamilySandwich {
		t.Fatalf("expected sandwich customizer, got %s", result.State.Family)
	}
	st, err := s.CustomizerState()
	if err != nil {
		t.Fatalf("CustomizerState: %v", err)
	}
	if st.ItemID != "item-beef" {
		t.Fatalf("expected item-beef open, got %s", st.ItemID)
	}
}

func TestSession_CancelLeavesCartUntouched(t *testing.T) {
	m := newTestManager()
	s := m.Session("")

	s.SelectItem(context.Background(), "item-margherita", "", "")
	s.Complete()

	s.SelectItem(context.Background(), "item-byo", "", "")
	s.ApplySelection(customizer.Selection{Kind: customizer.KindTopping, ID: "top-pepperoni", Amount: "extra"})
	s.Cancel()

	if s.Cart().Len() != 1 {
		t.Fatalf("cancel must not touch the cart, got %d items", s.Cart().Len())
	}
	if got := s.Cart().Subtotal(); got != 14.00 {
		t.Fatalf("expected 14.00, got %.2f", got)
	}
	if _, err := s.CustomizerState(); !errors.Is(err, ErrNoCustomizer) {
		t.Fatal("cancel must close the customizer")
	}
}

func TestSession_IncompleteBlocksCompletion(t *testing.T) {
	m := newTestManager()
	s := m.Session("")

	s.SelectItem(context.Background(), "item-beef", "", "")

	if _, err := s.Complete(); !errors.Is(err, customizer.ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	if s.Cart().Len() != 0 {
		t.Fatal("blocked completion must not reach the cart")
	}

	s.ApplySelection(customizer.Selection{Kind: customizer.KindStyle, ID: "cust-style-dry"})
	if _, err := s.Complete(); err != nil {
		t.Fatalf("Complete after style: %v", err)
	}
}

func TestSession_EditReplacesInPlace(t *testing.T) {
	m := newTestManager()
	s := m.Session("")

	s.SelectItem(context.Background(), "item-margherita", "", "")
	original, err := s.Complete()
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	// Bump the quantity the way the hosting UI would.
	qty := 2
	if _, err := s.Cart().Update(original.ID, cart.ItemUpdate{Quantity: &qty}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	// Reopen for edit, upgrade basil, complete.
	result, err := s.SelectItem(context.Background(), "item-margherita", "", original.ID)
	if err != nil {
		t.Fatalf("SelectItem edit: %v", err)
	}
	if result.State.Toppings["top-basil"] != "normal" {
		t.Fatalf("edit must rehydrate defaults: %v", result.State.Toppings)
	}

	s.ApplySelection(customizer.Selection{Kind: customizer.KindTopping, ID: "top-basil", Amount: "extra"})
	edited, err := s.Complete()
	if err != nil {
		t.Fatalf("Complete edit: %v", err)
	}

	if edited.ID != original.ID {
		t.Fatal("edit must preserve the cart item id")
	}
	if edited.Quantity != 2 {
		t.Fatalf("edit must preserve quantity, got %d", edited.Quantity)
	}
	if edited.TotalPrice != 15.00 {
		t.Fatalf("expected 15.00, got %.2f", edited.TotalPrice)
	}
	if s.Cart().Len() != 1 {
		t.Fatalf("edit must replace, not append: %d items", s.Cart().Len())
	}
}

func TestSession_EditUnknownCartItem(t *testing.T) {
	m := newTestManager()
	s := m.Session("")

	if _, err := s.SelectItem(context.Background(), "item-margherita", "", "nope"); !errors.Is(err, ErrItemNotInCart) {
		t.Fatalf("expected ErrItemNotInCart, got %v", err)
	}
}

func TestSession_DirectAddIndividualPiece(t *testing.T) {
	m := newTestManager()
	s := m.Session("")

	result, err := s.SelectItem(context.Background(), "item-chx-piece", "var-piece-leg", "")
	if err != nil {
		t.Fatalf("SelectItem: %v", err)
	}
	if result.Action != "added_directly" || result.Item == nil {
		t.Fatalf("expected added_directly, got %+v", result)
	}
	if result.Item.TotalPrice != 2.25 {
		t.Fatalf("expected leg at 2.25, got %.2f", result.Item.TotalPrice)
	}

	// The same piece again merges into the existing row.
	result, err = s.SelectItem(context.Background(), "item-chx-piece", "var-piece-leg", "")
	if err != nil {
		t.Fatalf("SelectItem: %v", err)
	}
	if result.Item.Quantity != 2 {
		t.Fatalf("expected quantity merge to 2, got %d", result.Item.Quantity)
	}
	if s.Cart().Len() != 1 {
		t.Fatalf("expected 1 row, got %d", s.Cart().Len())
	}

	// A different piece gets its own row.
	if _, err := s.SelectItem(context.Background(), "item-chx-piece", "var-piece-breast", ""); err != nil {
		t.Fatalf("SelectItem: %v", err)
	}
	if s.Cart().Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", s.Cart().Len())
	}
}

func TestSession_DirectAddNeedsVariant(t *testing.T) {
	m := newTestManager()
	s := m.Session("")

	if _, err := s.SelectItem(context.Background(), "item-soda-2l", "", ""); !errors.Is(err, ErrVariantNeeded) {
		t.Fatalf("expected ErrVariantNeeded, got %v", err)
	}

	// Variant-less generics add straight away.
	result, err := s.SelectItem(context.Background(), "item-cannoli", "", "")
	if err != nil {
		t.Fatalf("SelectItem: %v", err)
	}
	if result.Item.TotalPrice != 4.25 {
		t.Fatalf("expected 4.25, got %.2f", result.Item.TotalPrice)
	}
}

func TestSession_UnknownItem(t *testing.T) {
	m := newTestManager()
	s := m.Session("")

	if _, err := s.SelectItem(context.Background(), "item-nope", "", ""); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
}

// flakyRepo serves the fixture menu until fail is flipped on.
type flakyRepo struct {
	*catalog.InMemoryRepository
	fail bool
}

func (r *flakyRepo) MenuItems(ctx context.Context, restaurantID string) ([]catalog.MenuItem, error) {
	if r.fail {
		return nil, errors.New("menu service unavailable")
	}
	return r.InMemoryRepository.MenuItems(ctx, restaurantID)
}

func newFlakyManager() (*Manager, *flakyRepo) {
	repo := &flakyRepo{InMemoryRepository: catalog.NewInMemoryRepository()}
	svc := catalog.NewService(repo)
	return NewManager(svc, nil, pricing.ModeFlat, 10*time.Millisecond, "default"), repo
}

func TestSession_LoadFailureThenRetry(t *testing.T) {
	m, repo := newFlakyManager()
	s := m.Session("")

	// Prime the session's routing snapshot, then take the catalog down.
	if _, err := s.SelectItem(context.Background(), "item-cannoli", "", ""); err != nil {
		t.Fatalf("SelectItem: %v", err)
	}
	repo.fail = true

	// The customizer still opens, carrying the load failure.
	result, err := s.SelectItem(context.Background(), "item-beef", "", "")
	if err != nil {
		t.Fatalf("SelectItem: %v", err)
	}
	if result.State.LoadError == "" {
		t.Fatalf("expected load failure surfaced, got %+v", result.State)
	}
	if _, err := s.ApplySelection(customizer.Selection{Kind: customizer.KindStyle, ID: "cust-style-dry"}); !errors.Is(err, customizer.ErrLoadFailed) {
		t.Fatalf("expected ErrLoadFailed, got %v", err)
	}

	// A retry that also fails stays in the failed state.
	st, err := s.RetryLoad(context.Background())
	if err != nil {
		t.Fatalf("RetryLoad: %v", err)
	}
	if st.LoadError == "" {
		t.Fatal("failed retry must keep the load error")
	}

	// Recovery: retry succeeds and the customizer becomes usable.
	repo.fail = false
	st, err = s.RetryLoad(context.Background())
	if err != nil {
		t.Fatalf("RetryLoad: %v", err)
	}
	if st.Loading || st.LoadError != "" {
		t.Fatalf("retry must clear the load failure: %+v", st)
	}

	s.ApplySelection(customizer.Selection{Kind: customizer.KindStyle, ID: "cust-style-dry"})
	if _, err := s.Complete(); err != nil {
		t.Fatalf("Complete after recovery: %v", err)
	}
	if s.Cart().Len() != 2 {
		t.Fatalf("expected cannoli + sandwich, got %d items", s.Cart().Len())
	}
}

func TestSession_RetryLeavesHealthyCustomizerAlone(t *testing.T) {
	m, repo := newFlakyManager()
	s := m.Session("")

	if _, err := s.SelectItem(context.Background(), "item-byo", "", ""); err != nil {
		t.Fatalf("SelectItem: %v", err)
	}
	s.ApplySelection(customizer.Selection{Kind: customizer.KindTopping, ID: "top-pepperoni", Amount: "normal"})

	repo.fail = true
	st, err := s.RetryLoad(context.Background())
	if err != nil {
		t.Fatalf("RetryLoad: %v", err)
	}
	if st.LoadError != "" {
		t.Fatalf("retry must not disturb a loaded customizer: %+v", st)
	}
	if st.Toppings["top-pepperoni"] != "normal" || st.Breakdown.Total != 14.00 {
		t.Fatalf("state lost on no-op retry: %v %.2f", st.Toppings, st.Breakdown.Total)
	}
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	m := newTestManager()
	a := m.Session("a")
	b := m.Session("b")

	if _, err := a.SelectItem(context.Background(), "item-cannoli", "", ""); err != nil {
		t.Fatalf("SelectItem: %v", err)
	}
	if b.Cart().Len() != 0 {
		t.Fatal("sessions must not share carts")
	}
	if m.Session("a") != a {
		t.Fatal("same id must return the same session")
	}
	if m.Session("") == m.Session("") {
		t.Fatal("empty id must mint distinct sessions")
	}
}
