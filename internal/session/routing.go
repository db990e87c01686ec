package session

import (
	"github.com/DylanJDombrowski/restaurant-system-sub000/internal/catalog"
)

// RouteKind is the decision for one selected item: open a customizer or
// add directly.
type RouteKind string

const (
	RouteCustomizer RouteKind = "customizer"
	RouteDirectAdd  RouteKind = "direct_add"
)

type Route struct {
	Kind   RouteKind
	Family catalog.ItemFamily
}

// RouteFor is deterministic: same family and variants, same route.
// Chicken items sold only as individual pieces skip the customizer;
// generic and unrecognized categories fall back to direct-add.
func RouteFor(item *catalog.MenuItem) Route {
	switch item.Family {
	case catalog.FamilyPizza, catalog.FamilySandwich, catalog.FamilyAppetizer:
		return Route{Kind: RouteCustomizer, Family: item.Family}
	case catalog.FamilyChicken:
		if allIndividual(item) {
			return Route{Kind: RouteDirectAdd, Family: item.Family}
		}
		return Route{Kind: RouteCustomizer, Family: item.Family}
	default:
		return Route{Kind: RouteDirectAdd, Family: catalog.FamilyGeneric}
	}
}

func allIndividual(item *catalog.MenuItem) bool {
	if len(item.Variants) == 0 {
		return false
	}
	for _, v := range item.Variants {
		if v.Pack != catalog.PackIndividual {
			return false
		}
	}
	return true
}
