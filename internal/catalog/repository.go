package catalog

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("catalog entry not found")

// Repository defines all menu-service reads used by the core.
// Implementations return reference data only; the core never writes back.
type Repository interface {

	// Menu items with nested variants for one restaurant.
	MenuItems(ctx context.Context, restaurantID string) ([]MenuItem, error)

	// Flat add-on lists, filterable by applies-to tag ("" = all).
	Toppings(ctx context.Context, restaurantID, appliesTo string) ([]Topping, error)
	Modifiers(ctx context.Context, restaurantID, appliesTo string) ([]Modifier, error)
	Customizations(ctx context.Context, restaurantID, appliesTo string) ([]Customization, error)
}
