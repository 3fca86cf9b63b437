package storage

import (
	"database/sql"

	"github.com/lib/pq"

	"quickbite/internal/domain"
)

// PostgresCatalog is the read-only catalog provider: restaurants, menu
// items and their option groups.
type PostgresCatalog struct {
	DB *sql.DB
}

func NewPostgresCatalog(db *sql.DB) *PostgresCatalog {
	return &PostgresCatalog{DB: db}
}

func (r *PostgresCatalog) ListRestaurants() ([]domain.Restaurant, error) {
	rows, err := r.DB.Query(`
        SELECT id, name, COALESCE(image, ''), COALESCE(cuisine, ''), rating,
               COALESCE(delivery_time, ''), delivery_fee, featured,
               COALESCE(address, ''), COALESCE(distance, ''), tags
        FROM restaurants
        ORDER BY featured DESC, rating DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Image, &rest.Cuisine, &rest.Rating,
			&rest.DeliveryTime, &rest.DeliveryFee, &rest.Featured,
			&rest.Address, &rest.Distance, pq.Array(&rest.Tags)); err != nil {
			continue
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, nil
}

func (r *PostgresCatalog) GetRestaurant(id string) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.DB.QueryRow(`
        SELECT id, name, COALESCE(image, ''), COALESCE(cuisine, ''), rating,
               COALESCE(delivery_time, ''), delivery_fee, featured,
               COALESCE(address, ''), COALESCE(distance, ''), tags
        FROM restaurants
        WHERE id = $1`, id).
		Scan(&rest.ID, &rest.Name, &rest.Image, &rest.Cuisine, &rest.Rating,
			&rest.DeliveryTime, &rest.DeliveryFee, &rest.Featured,
			&rest.Address, &rest.Distance, pq.Array(&rest.Tags))
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *PostgresCatalog) ListMenuItems(restaurantID string) ([]domain.MenuItem, error) {
	rows, err := r.DB.Query(`
        SELECT id, restaurant_id, name, COALESCE(description, ''), price,
               COALESCE(image, ''), COALESCE(category, ''), popular
        FROM menu_items
        WHERE restaurant_id = $1
        ORDER BY popular DESC, name`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description,
			&item.Price, &item.Image, &item.Category, &item.Popular); err != nil {
			continue
		}
		items = append(items, item)
	}

	for i := range items {
		options, err := r.loadOptions(items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Options = options
	}
	return items, nil
}

func (r *PostgresCatalog) GetMenuItem(id string) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := r.DB.QueryRow(`
        SELECT id, restaurant_id, name, COALESCE(description, ''), price,
               COALESCE(image, ''), COALESCE(category, ''), popular
        FROM menu_items
        WHERE id = $1`, id).
		Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description,
			&item.Price, &item.Image, &item.Category, &item.Popular)
	if err != nil {
		return nil, err
	}

	options, err := r.loadOptions(item.ID)
	if err != nil {
		return nil, err
	}
	item.Options = options
	return &item, nil
}

func (r *PostgresCatalog) loadOptions(menuItemID string) ([]domain.OptionGroup, error) {
	rows, err := r.DB.Query(`
        SELECT id, name, required, multiple
        FROM option_groups
        WHERE menu_item_id = $1
        ORDER BY position`, menuItemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.OptionGroup
	for rows.Next() {
		var group domain.OptionGroup
		if err := rows.Scan(&group.ID, &group.Name, &group.Required, &group.Multiple); err != nil {
			continue
		}
		groups = append(groups, group)
	}

	for i := range groups {
		choices, err := r.loadChoices(groups[i].ID)
		if err != nil {
			return nil, err
		}
		groups[i].Choices = choices
	}
	return groups, nil
}

func (r *PostgresCatalog) loadChoices(groupID string) ([]domain.Choice, error) {
	rows, err := r.DB.Query(`
        SELECT id, name, price
        FROM choices
        WHERE group_id = $1
        ORDER BY position`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var choices []domain.Choice
	for rows.Next() {
		var choice domain.Choice
		if err := rows.Scan(&choice.ID, &choice.Name, &choice.Price); err != nil {
			continue
		}
		choices = append(choices, choice)
	}
	return choices, nil
}
