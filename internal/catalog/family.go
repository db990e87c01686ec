package catalog

import (
	"fmt"
	"strings"
)

// ItemFamily decides which pricing rules and customizer apply to an item.
// Resolved once at catalog load, never re-derived from name substrings
// at selection time.
type ItemFamily string

const (
	FamilyPizza     ItemFamily = "pizza"
	FamilyChicken   ItemFamily = "chicken"
	FamilySandwich  ItemFamily = "sandwich"
	FamilyAppetizer ItemFamily = "appetizer"
	FamilyGeneric   ItemFamily = "generic"
)

// PackKind classifies a chicken variant. Resolved at catalog load from
// the variant name and piece count.
type PackKind string

const (
	PackNone       PackKind = ""
	PackBulk       PackKind = "bulk"
	PackFamily     PackKind = "family_pack"
	PackRegular    PackKind = "regular_piece"
	PackIndividual PackKind = "individual"
)

// ResolveFamily maps a category name onto an ItemFamily.
// Unrecognized categories (beverages, desserts, sides) are generic and
// route to the direct-add path.
func ResolveFamily(categoryName string) ItemFamily {
	switch normalize(categoryName) {
	case "pizza", "pizzas", "specialty pizza", "specialty pizzas":
		return FamilyPizza
	case "chicken", "broasted chicken", "fried chicken":
		return FamilyChicken
	case "sandwich", "sandwiches", "subs":
		return FamilySandwich
	case "appetizer", "appetizers", "starters":
		return FamilyAppetizer
	default:
		return FamilyGeneric
	}
}

// ClassifyChickenVariant resolves the pack kind for a chicken variant.
// Bulk packs are 30+ pieces, family packs 12+, anything counted below
// that is a regular pack; variants without a piece count are sold as
// individual pieces and bypass the customizer.
func ClassifyChickenVariant(v *Variant) PackKind {
	name := normalize(v.Name)
	switch {
	case strings.Contains(name, "bulk") || v.PieceCount >= 30:
		return PackBulk
	case strings.Contains(name, "family") || v.PieceCount >= 12:
		return PackFamily
	case v.PieceCount > 0:
		return PackRegular
	default:
		return PackIndividual
	}
}

// WhiteMeatCategory builds the customization category key that holds the
// white-meat tiers for a counted chicken pack.
func WhiteMeatCategory(v *Variant) string {
	switch v.Pack {
	case PackFamily:
		return fmt.Sprintf("chicken_white_meat_%dpc_family", v.PieceCount)
	case PackRegular:
		return fmt.Sprintf("chicken_white_meat_%dpc_regular", v.PieceCount)
	}
	return ""
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
