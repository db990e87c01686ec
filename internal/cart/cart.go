package cart

import (
	"errors"
	"sync"

	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/pricing"
)

var ErrItemNotFound = errors.New("cart item not found")

// Cart is the ordered collection of configured items for one session.
// Single writer by design (one customizer open at a time); the mutex
// only guards against the hosting UI reading while a completion writes.
type Cart struct {
	mu    sync.Mutex
	items []*ConfiguredCartItem
}

func New() *Cart {
	return &Cart{}
}

// ItemUpdate is the partial update surface exposed to the hosting UI.
type ItemUpdate struct {
	Quantity            *int    `json:"quantity,omitempty"`
	SpecialInstructions *string `json:"special_instructions,omitempty"`
}

func (c *Cart) Add(item *ConfiguredCartItem) error {
	if item == nil || item.ID == "" {
		return errors.New("cart item missing id")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.items {
		if existing.ID == item.ID {
			return errors.New("cart item id already present")
		}
	}
	c.items = append(c.items, item.clone())
	return nil
}

// Replace swaps a re-normalized item in place, keeping its position.
// Used when an edit completes.
func (c *Cart) Replace(item *ConfiguredCartItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, existing := range c.items {
		if existing.ID == item.ID {
			c.items[i] = item.clone()
			return nil
		}
	}
	return ErrItemNotFound
}

// Update applies a partial update. Quantity 0 removes the item.
func (c *Cart) Update(id string, update ItemUpdate) (*ConfiguredCartItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, item := range c.items {
		if item.ID != id {
			continue
		}

		if update.Quantity != nil {
			if *update.Quantity < 0 {
				return nil, errors.New("quantity cannot be negative")
			}
			if *update.Quantity == 0 {
				c.items = append(c.items[:i], c.items[i+1:]...)
				return nil, nil
			}
			item.Quantity = *update.Quantity
		}
		if update.SpecialInstructions != nil {
			item.SpecialInstructions = *update.SpecialInstructions
		}
		return item.clone(), nil
	}
	return nil, ErrItemNotFound
}

func (c *Cart) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, item := range c.items {
		if item.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

// Get returns a copy; mutating it never touches the cart.
func (c *Cart) Get(id string) (*ConfiguredCartItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range c.items {
		if item.ID == id {
			return item.clone(), true
		}
	}
	return nil, false
}

func (c *Cart) Items() []*ConfiguredCartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*ConfiguredCartItem, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, item.clone())
	}
	return out
}

func (c *Cart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	values := make([]float64, 0, len(c.items))
	for _, item := range c.items {
		values = append(values, item.LineTotal())
	}
	return pricing.Sum2(values...)
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
