package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/cart"
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/catalog"
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/customizer"
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/priceapi"
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/pricing"
	"github.com/google/uuid"
)

var (
	ErrNoCustomizer   = errors.New("no customizer open")
	ErrVariantNeeded  = errors.New("variant required for direct add")
	ErrItemNotInCart  = errors.New("cart item to edit not found")
	ErrUnknownItem    = errors.New("unknown menu item")
	ErrCatalogOffline = errors.New("catalog unavailable")
)

// Manager owns the per-session state. Each session gets its own cart,
// catalog snapshot, and at most one open customizer.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	catalog      *catalog.Service
	calc         priceapi.Calculator // nil disables external pricing
	mode         pricing.Mode
	quiet        time.Duration
	restaurantID string
}

func NewManager(
	catalogService *catalog.Service,
	calc priceapi.Calculator,
	mode pricing.Mode,
	quiet time.Duration,
	restaurantID string,
) *Manager {
	if quiet <= 0 {
		quiet = priceapi.DefaultQuiet
	}
	return &Manager{
		sessions:     map[string]*Session{},
		catalog:      catalogService,
		calc:         calc,
		mode:         mode,
		quiet:        quiet,
		restaurantID: restaurantID,
	}
}

// Session returns the session for id, creating it if needed. Empty id
// mints a new session.
func (m *Manager) Session(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id = uuid.New().String()
	}
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := &Session{ID: id, mgr: m, cart: cart.New()}
	m.sessions[id] = s
	return s
}

// CartFor implements cart.Provider for the cart handler.
func (m *Manager) CartFor(sessionID string) *cart.Cart {
	return m.Session(sessionID).Cart()
}

// Session is one ordering session: a catalog snapshot, a cart, and the
// navigation state machine. The zero-or-one active customizer is the
// sole writer of its own state; Session.mu serializes every transition.
type Session struct {
	ID string

	mu     sync.Mutex
	mgr    *Manager
	snap   *catalog.Snapshot
	cart   *cart.Cart
	active customizer.Customizer
}

func (s *Session) Cart() *cart.Cart { return s.cart }

func (s *Session) ensureSnapshot(ctx context.Context) error {
	if s.snap != nil {
		return nil
	}
	snap, err := s.mgr.catalog.LoadSnapshot(ctx, s.mgr.restaurantID)
	if err != nil {
		return errors.Join(ErrCatalogOffline, err)
	}
	s.snap = snap
	return nil
}

// SelectResult reports what the routing decision did.
type SelectResult struct {
	Action string              `json:"action"` // customizer_opened | added_directly
	Family catalog.ItemFamily  `json:"family"`
	Item   *cart.ConfiguredCartItem `json:"item,omitempty"`
	State  *customizer.State   `json:"state,omitempty"`
}

// SelectItem runs the routing transition for one picked menu item.
// Opening a customizer first closes any other; direct-add paths never
// open one.
func (s *Session) SelectItem(
	ctx context.Context,
	itemID string,
	variantID string,
	cartItemID string,
) (*SelectResult, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	refreshed := s.snap == nil
	if err := s.ensureSnapshot(ctx); err != nil {
		return nil, err
	}

	item, ok := s.snap.Item(itemID)
	if !ok {
		return nil, ErrUnknownItem
	}

	s.closeActive()

	route := RouteFor(item)
	if route.Kind == RouteDirectAdd {
		added, err := s.directAdd(item, variantID)
		if err != nil {
			return nil, err
		}
		return &SelectResult{Action: "added_directly", Family: route.Family, Item: added}, nil
	}

	var existing *cart.ConfiguredCartItem
	if cartItemID != "" {
		existing, ok = s.cart.Get(cartItemID)
		if !ok {
			return nil, ErrItemNotInCart
		}
	}

	cz := s.newCustomizer(route.Family, item, existing)
	s.active = cz

	// Reference data binds fresh at every customizer open; routing may
	// have used a cached snapshot. A failed fetch leaves the customizer
	// open in the load-failed state so RetryLoad can recover it.
	if refreshed {
		cz.SetCatalog(s.snap, nil)
	} else if snap, err := s.mgr.catalog.LoadSnapshot(ctx, s.mgr.restaurantID); err != nil {
		cz.SetCatalog(nil, err)
	} else {
		s.snap = snap
		cz.SetCatalog(snap, nil)
	}

	st := cz.State()
	return &SelectResult{Action: "customizer_opened", Family: route.Family, State: &st}, nil
}

func (s *Session) newCustomizer(
	family catalog.ItemFamily,
	item *catalog.MenuItem,
	existing *cart.ConfiguredCartItem,
) customizer.Customizer {

	switch family {
	case catalog.FamilyPizza:
		p := customizer.NewPizza(item, existing, s.mgr.mode)
		if s.mgr.calc != nil {
			deb := priceapi.NewDebouncer(s.mgr.calc, s.mgr.quiet,
				func(fp string, quote *priceapi.Quote, err error) {
					s.applyQuote(p, fp, quote, err)
				})
			p.SetQuoter(deb)
		}
		return p
	case catalog.FamilyChicken:
		return customizer.NewChicken(item, existing)
	case catalog.FamilySandwich:
		return customizer.NewSandwich(item, existing)
	default:
		return customizer.NewAppetizer(item, existing)
	}
}

// applyQuote routes a debounced quote result to the pizza customizer
// that requested it, dropping it when that customizer is no longer
// active. The fingerprint re-check inside ApplyQuote drops supersessions.
func (s *Session) applyQuote(p *customizer.Pizza, fp string, quote *priceapi.Quote, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != customizer.Customizer(p) {
		return // customizer closed or replaced, abandon the effect
	}
	p.ApplyQuote(fp, quote, err)
}

func (s *Session) directAdd(item *catalog.MenuItem, variantID string) (*cart.ConfiguredCartItem, error) {
	var variant *catalog.Variant
	if len(item.Variants) > 0 {
		if variantID == "" {
			return nil, ErrVariantNeeded
		}
		variant = item.FindVariant(variantID)
		if variant == nil {
			return nil, ErrUnknownItem
		}
	}

	// Same plain item again: bump quantity instead of a duplicate row.
	for _, existing := range s.cart.Items() {
		if existing.MenuItemID != item.ID || variantKey(existing.VariantID) != variantKey(variantID) {
			continue
		}
		if len(existing.Toppings) > 0 || len(existing.Modifiers) > 0 {
			continue
		}
		quantity := existing.Quantity + 1
		return s.cart.Update(existing.ID, cart.ItemUpdate{Quantity: &quantity})
	}

	added, err := cart.Normalize(cart.NormalizeInput{
		MenuItem:  item,
		Variant:   variant,
		Breakdown: pricing.PriceDirect(item, variant),
	})
	if err != nil {
		return nil, err
	}
	if err := s.cart.Add(added); err != nil {
		return nil, err
	}
	return added, nil
}

func variantKey(id string) string {
	if id == "" {
		return "-"
	}
	return id
}

// ApplySelection forwards one mutation to the open customizer.
func (s *Session) ApplySelection(sel customizer.Selection) (*customizer.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil, ErrNoCustomizer
	}
	if err := s.active.Apply(sel); err != nil {
		return nil, err
	}
	st := s.active.State()
	return &st, nil
}

func (s *Session) CustomizerState() (*customizer.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil, ErrNoCustomizer
	}
	st := s.active.State()
	return &st, nil
}

// RetryLoad re-fetches the catalog after a reference-data load failure
// and rebinds the open customizer. A customizer that already loaded is
// left alone; its state is returned as-is.
func (s *Session) RetryLoad(ctx context.Context) (*customizer.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil, ErrNoCustomizer
	}

	st := s.active.State()
	if !st.Loading && st.LoadError == "" {
		return &st, nil
	}

	snap, err := s.mgr.catalog.LoadSnapshot(ctx, s.mgr.restaurantID)
	if err == nil {
		s.snap = snap
	}
	s.active.SetCatalog(snap, err)

	st = s.active.State()
	return &st, nil
}

// Complete validates, normalizes, pushes to the cart, and closes the
// customizer. Edits replace the same cart item identity in place.
func (s *Session) Complete() (*cart.ConfiguredCartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil, ErrNoCustomizer
	}

	in, err := s.active.Build()
	if err != nil {
		return nil, err
	}

	item, err := cart.Normalize(in)
	if err != nil {
		// Contract violation: nothing reaches the cart.
		return nil, err
	}

	if in.Existing != nil {
		err = s.cart.Replace(item)
	} else {
		err = s.cart.Add(item)
	}
	if err != nil {
		return nil, err
	}

	s.closeActive()
	return item, nil
}

// Cancel discards all in-progress state; the cart is untouched.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeActive()
}

func (s *Session) closeActive() {
	if s.active != nil {
		s.active.Close()
		s.active = nil
	}
}
