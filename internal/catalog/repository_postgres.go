package catalog

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// MENU ITEMS (with nested variants)
// --------------------------------------------------
func (r *PostgresRepository) MenuItems(
	ctx context.Context,
	restaurantID string,
) ([]MenuItem, error) {

	rows, err := r.db.Query(ctx, `
		SELECT
			i.id,
			i.name,
			i.family,
			i.category_id,
			c.name AS category_name,
			i.base_price,
			i.prep_minutes,
			i.allows_custom_toppings,
			COALESCE(i.default_toppings, '[]'::jsonb)
		FROM menu_items i
		JOIN categories c ON c.id = i.category_id
		WHERE i.restaurant_id = $1
		ORDER BY c.sort_order, i.sort_order
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []MenuItem
	index := map[string]int{}

	for rows.Next() {
		var item MenuItem
		var defaults []byte

		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Family,
			&item.CategoryID,
			&item.CategoryName,
			&item.BasePrice,
			&item.PrepMinutes,
			&item.AllowsCustomToppings,
			&defaults,
		); err != nil {
			return nil, err
		}

		if err := json.Unmarshal(defaults, &item.DefaultToppings); err != nil {
			return nil, err
		}

		index[item.ID] = len(items)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	variantRows, err := r.db.Query(ctx, `
		SELECT
			v.id,
			v.menu_item_id,
			v.name,
			v.size_code,
			v.type_code,
			v.price,
			COALESCE(v.serves, ''),
			COALESCE(v.piece_count, 0)
		FROM variants v
		JOIN menu_items i ON i.id = v.menu_item_id
		WHERE i.restaurant_id = $1
		ORDER BY v.sort_order
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer variantRows.Close()

	for variantRows.Next() {
		var v Variant
		if err := variantRows.Scan(
			&v.ID,
			&v.MenuItemID,
			&v.Name,
			&v.SizeCode,
			&v.TypeCode,
			&v.Price,
			&v.Serves,
			&v.PieceCount,
		); err != nil {
			return nil, err
		}
		if i, ok := index[v.MenuItemID]; ok {
			items[i].Variants = append(items[i].Variants, v)
		}
	}

	return items, variantRows.Err()
}

// --------------------------------------------------
// ADD-ON LISTS (filterable by applies-to tag)
// --------------------------------------------------

func (r *PostgresRepository) Toppings(
	ctx context.Context,
	restaurantID, appliesTo string,
) ([]Topping, error) {

	rows, err := r.db.Query(ctx, `
		SELECT id, name, category, base_price, premium, applies_to
		FROM toppings
		WHERE restaurant_id = $1
		  AND ($2 = '' OR $2 = ANY(applies_to))
		ORDER BY name
	`, restaurantID, appliesTo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Topping
	for rows.Next() {
		var t Topping
		if err := rows.Scan(&t.ID, &t.Name, &t.Category, &t.BasePrice, &t.Premium, &t.AppliesTo); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Modifiers(
	ctx context.Context,
	restaurantID, appliesTo string,
) ([]Modifier, error) {

	rows, err := r.db.Query(ctx, `
		SELECT id, name, category, price_adjustment, applies_to
		FROM modifiers
		WHERE restaurant_id = $1
		  AND ($2 = '' OR $2 = ANY(applies_to))
		ORDER BY name
	`, restaurantID, appliesTo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Modifier
	for rows.Next() {
		var m Modifier
		if err := rows.Scan(&m.ID, &m.Name, &m.Category, &m.PriceAdjustment, &m.AppliesTo); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Customizations(
	ctx context.Context,
	restaurantID, appliesTo string,
) ([]Customization, error) {

	rows, err := r.db.Query(ctx, `
		SELECT id, name, category, price, applies_to
		FROM customizations
		WHERE restaurant_id = $1
		  AND ($2 = '' OR $2 = ANY(applies_to))
		ORDER BY category, price
	`, restaurantID, appliesTo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Customization
	for rows.Next() {
		var c Customization
		if err := rows.Scan(&c.ID, &c.Name, &c.Category, &c.Price, &c.AppliesTo); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
