package customizer

import (
	"context"
	"errors"
	"testing"

	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/catalog"
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/pricing"
)

func testSnapshot(t *testing.T) *catalog.Snapshot {
	t.Helper()
	svc := catalog.NewService(catalog.NewInMemoryRepository())
	snap, err := svc.LoadSnapshot(context.Background(), "default")
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	return snap
}

func fixtureItem(t *testing.T, snap *catalog.Snapshot, id string) *catalog.MenuItem {
	t.Helper()
	item, ok := snap.Item(id)
	if !ok {
		t.Fatalf("fixture item %s missing", id)
	}
	return item
}

func on() *bool  { v := true; return &v }
func off() *bool { v := false; return &v }

func TestCustomizer_LoadBoundary(t *testing.T) {
	snap := testSnapshot(t)
	item := fixtureItem(t, snap, "item-margherita")

	p := NewPizza(item, nil, pricing.ModeFlat)

	// Before reference data resolves nothing works and nothing completes.
	if !p.Loading() {
		t.Fatal("fresh customizer must be loading")
	}
	if err := p.Apply(Selection{Kind: KindTopping, ID: "top-basil", Amount: "extra"}); !errors.Is(err, ErrLoading) {
		t.Fatalf("expected ErrLoading, got %v", err)
	}
	if p.CanComplete() {
		t.Fatal("loading customizer must not complete")
	}
	if _, err := p.Build(); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}

	// A failed load blocks with a retry hint instead.
	failed := NewPizza(item, nil, pricing.ModeFlat)
	failed.SetCatalog(nil, errors.New("catalog timeout"))
	if err := failed.Apply(Selection{Kind: KindTopping, ID: "top-basil", Amount: "extra"}); !errors.Is(err, ErrLoadFailed) {
		t.Fatalf("expected ErrLoadFailed, got %v", err)
	}
	st := failed.State()
	if st.LoadError == "" || st.CanComplete {
		t.Fatalf("failed load must surface in state: %+v", st)
	}

	// Retry resolves the same customizer.
	failed.SetCatalog(snap, nil)
	if failed.Loading() || failed.State().LoadError != "" {
		t.Fatal("successful retry must clear the failure")
	}
}
