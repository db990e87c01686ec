package customizer

import (
	"errors"

	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/cart"
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/catalog"
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/pricing"
)

var (
	// ErrLoading: reference data has not resolved yet.
	ErrLoading = errors.New("reference data still loading")
	// ErrLoadFailed: the catalog read failed; retry before continuing.
	ErrLoadFailed = errors.New("reference data failed to load")
	// ErrIncomplete: required selections missing, completion blocked.
	ErrIncomplete = errors.New("required selections missing")

	ErrUnknownSelection = errors.New("selection not available for this item")
)

// SelectionKind tags one mutation of customizer state.
type SelectionKind string

const (
	KindVariant       SelectionKind = "variant"
	KindTopping       SelectionKind = "topping"
	KindModifier      SelectionKind = "modifier"
	KindIngredient    SelectionKind = "ingredient"
	KindSauce         SelectionKind = "sauce"
	KindWhiteMeat     SelectionKind = "white_meat"
	KindCustomization SelectionKind = "customization"
	KindBread         SelectionKind = "bread"
	KindStyle         SelectionKind = "style"
	KindDeluxe        SelectionKind = "deluxe"
	KindPreparation   SelectionKind = "preparation"
	KindInstructions  SelectionKind = "instructions"
)

// Selection is one user mutation. Which fields matter depends on Kind:
// toppings/ingredients/sauces use ID+Amount, binary kinds use ID+On,
// instructions use Text.
type Selection struct {
	Kind   SelectionKind `json:"kind"`
	ID     string        `json:"id,omitempty"`
	Amount string        `json:"amount,omitempty"`
	On     *bool         `json:"on,omitempty"`
	Text   string        `json:"text,omitempty"`
}

// State is the UI-facing snapshot of an open customizer.
type State struct {
	Family    catalog.ItemFamily `json:"family"`
	ItemID    string             `json:"item_id"`
	ItemName  string             `json:"item_name"`
	Loading   bool               `json:"loading"`
	LoadError string             `json:"load_error,omitempty"`

	VariantID           string            `json:"variant_id,omitempty"`
	Toppings            map[string]string `json:"toppings,omitempty"`
	Sauces              map[string]string `json:"sauces,omitempty"`
	Customizations      []string          `json:"customizations,omitempty"`
	Modifiers           []string          `json:"modifiers,omitempty"`
	WhiteMeatID         string            `json:"white_meat_id,omitempty"`
	BreadID             string            `json:"bread_id,omitempty"`
	StyleID             string            `json:"style_id,omitempty"`
	Deluxe              bool              `json:"deluxe,omitempty"`
	SpecialInstructions string            `json:"special_instructions,omitempty"`

	Breakdown   pricing.Breakdown `json:"breakdown"`
	PriceSource string            `json:"price_source,omitempty"`
	PriceError  string            `json:"price_error,omitempty"`

	Blockers    []string `json:"blockers,omitempty"`
	CanComplete bool     `json:"can_complete"`
}

// Customizer is one in-progress item configuration. Exactly one is open
// per session; the session serializes all calls.
type Customizer interface {
	Family() catalog.ItemFamily
	Item() *catalog.MenuItem

	// SetCatalog resolves the reference-data load boundary. Defaults are
	// computed here (never before), and only when no existing cart item
	// was supplied; with an existing item, state is rehydrated from its
	// structured selections instead.
	SetCatalog(snap *catalog.Snapshot, err error)
	Loading() bool

	Apply(sel Selection) error
	State() State
	Blockers() []string
	CanComplete() bool

	// Build produces the normalizer input. Fails with ErrIncomplete when
	// Blockers is non-empty.
	Build() (cart.NormalizeInput, error)

	// Close abandons in-flight work (debounced pricing requests).
	Close()
}

// base carries the load boundary and fields every family shares.
type base struct {
	item         *catalog.MenuItem
	snap         *catalog.Snapshot
	loading      bool
	loadErr      string
	existing     *cart.ConfiguredCartItem
	instructions string
}

func newBase(item *catalog.MenuItem, existing *cart.ConfiguredCartItem) base {
	return base{item: item, existing: existing, loading: true}
}

func (b *base) Item() *catalog.MenuItem { return b.item }
func (b *base) Loading() bool           { return b.loading }

func (b *base) bind(snap *catalog.Snapshot, err error) {
	b.loading = false
	if err != nil {
		b.loadErr = err.Error()
		b.snap = nil
		return
	}
	b.loadErr = ""
	b.snap = snap
}

func (b *base) ready() error {
	if b.loading {
		return ErrLoading
	}
	if b.snap == nil {
		return ErrLoadFailed
	}
	return nil
}

func (b *base) loadBlockers() []string {
	if b.loading {
		return []string{"menu data is still loading"}
	}
	if b.snap == nil {
		return []string{"menu data failed to load, retry to continue"}
	}
	return nil
}

func (b *base) fillState(st *State) {
	st.ItemID = b.item.ID
	st.ItemName = b.item.Name
	st.Loading = b.loading
	st.LoadError = b.loadErr
	st.SpecialInstructions = b.instructions
}
