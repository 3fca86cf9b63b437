package storage

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"quickbite/internal/domain"
)

// EnsureSchema creates the catalog tables when missing.
func EnsureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS restaurants (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			image TEXT,
			cuisine TEXT,
			rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			delivery_time TEXT,
			delivery_fee DOUBLE PRECISION NOT NULL DEFAULT 0,
			featured BOOLEAN NOT NULL DEFAULT FALSE,
			address TEXT,
			distance TEXT,
			tags TEXT[] NOT NULL DEFAULT '{}'
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id TEXT PRIMARY KEY,
			restaurant_id TEXT NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			description TEXT,
			price DOUBLE PRECISION NOT NULL,
			image TEXT,
			category TEXT,
			popular BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS option_groups (
			id TEXT PRIMARY KEY,
			menu_item_id TEXT NOT NULL REFERENCES menu_items(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			required BOOLEAN NOT NULL DEFAULT FALSE,
			multiple BOOLEAN NOT NULL DEFAULT FALSE,
			position INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS choices (
			id TEXT PRIMARY KEY,
			group_id TEXT NOT NULL REFERENCES option_groups(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			position INT NOT NULL DEFAULT 0
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// SeedCatalog loads the starter catalog when the restaurants table is
// empty.
func SeedCatalog(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM restaurants").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, rest := range seedRestaurants {
		_, err := db.Exec(`
			INSERT INTO restaurants (id, name, image, cuisine, rating, delivery_time, delivery_fee, featured, address, distance, tags)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			rest.ID, rest.Name, rest.Image, rest.Cuisine, rest.Rating, rest.DeliveryTime,
			rest.DeliveryFee, rest.Featured, rest.Address, rest.Distance, pq.Array(rest.Tags))
		if err != nil {
			return fmt.Errorf("seed restaurant %s: %w", rest.ID, err)
		}
	}

	for _, item := range seedMenuItems {
		_, err := db.Exec(`
			INSERT INTO menu_items (id, restaurant_id, name, description, price, image, category, popular)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			item.ID, item.RestaurantID, item.Name, item.Description, item.Price,
			item.Image, item.Category, item.Popular)
		if err != nil {
			return fmt.Errorf("seed menu item %s: %w", item.ID, err)
		}

		for gi, group := range item.Options {
			_, err := db.Exec(`
				INSERT INTO option_groups (id, menu_item_id, name, required, multiple, position)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				group.ID, item.ID, group.Name, group.Required, group.Multiple, gi)
			if err != nil {
				return fmt.Errorf("seed option group %s: %w", group.ID, err)
			}
			for ci, choice := range group.Choices {
				_, err := db.Exec(`
					INSERT INTO choices (id, group_id, name, price, position)
					VALUES ($1, $2, $3, $4, $5)`,
					choice.ID, group.ID, choice.Name, choice.Price, ci)
				if err != nil {
					return fmt.Errorf("seed choice %s: %w", choice.ID, err)
				}
			}
		}
	}
	return nil
}

var seedRestaurants = []domain.Restaurant{
	{
		ID: "1", Name: "Burger Palace", Cuisine: "American", Rating: 4.7,
		DeliveryTime: "15-25 min", DeliveryFee: 2.99, Featured: true,
		Address: "123 Main St, Anytown, USA", Distance: "1.2 mi",
		Tags: []string{"Burgers", "Fast Food", "Fries"},
	},
	{
		ID: "2", Name: "Pizza Heaven", Cuisine: "Italian", Rating: 4.5,
		DeliveryTime: "20-30 min", DeliveryFee: 3.99, Featured: true,
		Address: "456 Oak St, Anytown, USA", Distance: "2.1 mi",
		Tags: []string{"Pizza", "Italian", "Pasta"},
	},
	{
		ID: "3", Name: "Sushi Express", Cuisine: "Japanese", Rating: 4.8,
		DeliveryTime: "25-35 min", DeliveryFee: 4.99, Featured: true,
		Address: "789 Maple St, Anytown, USA", Distance: "3.0 mi",
		Tags: []string{"Sushi", "Japanese", "Asian"},
	},
}

var seedMenuItems = []domain.MenuItem{
	{
		ID: "101", RestaurantID: "1", Name: "Classic Cheeseburger",
		Description: "Juicy beef patty with melted cheddar, lettuce, tomato, and special sauce",
		Price:       8.99, Category: "Burgers", Popular: true,
		Options: []domain.OptionGroup{
			{
				ID: "1001", Name: "Patty Type", Required: true,
				Choices: []domain.Choice{
					{ID: "10001", Name: "Beef", Price: 0},
					{ID: "10002", Name: "Turkey", Price: 1},
					{ID: "10003", Name: "Veggie", Price: 1},
				},
			},
			{
				ID: "1002", Name: "Add-ons", Multiple: true,
				Choices: []domain.Choice{
					{ID: "10004", Name: "Bacon", Price: 1.5},
					{ID: "10005", Name: "Extra Cheese", Price: 1},
					{ID: "10006", Name: "Avocado", Price: 2},
				},
			},
		},
	},
	{
		ID: "102", RestaurantID: "1", Name: "Double Bacon Burger",
		Description: "Two beef patties with crispy bacon, cheddar cheese, and BBQ sauce",
		Price:       12.99, Category: "Burgers", Popular: true,
	},
	{
		ID: "103", RestaurantID: "1", Name: "Crispy Chicken Sandwich",
		Description: "Crispy fried chicken breast with pickles and special sauce",
		Price:       9.99, Category: "Sandwiches",
	},
	{
		ID: "104", RestaurantID: "1", Name: "French Fries",
		Description: "Crispy golden fries with sea salt",
		Price:       3.99, Category: "Sides",
	},
	{
		ID: "201", RestaurantID: "2", Name: "Margherita Pizza",
		Description: "Fresh mozzarella, tomato sauce, and basil on a thin crust",
		Price:       11.99, Category: "Pizza", Popular: true,
		Options: []domain.OptionGroup{
			{
				ID: "2001", Name: "Size", Required: true,
				Choices: []domain.Choice{
					{ID: "20001", Name: "Small", Price: 0},
					{ID: "20002", Name: "Medium", Price: 3},
					{ID: "20003", Name: "Large", Price: 5},
				},
			},
			{
				ID: "2002", Name: "Toppings", Multiple: true,
				Choices: []domain.Choice{
					{ID: "20004", Name: "Mushrooms", Price: 1.5},
					{ID: "20005", Name: "Pepperoni", Price: 2},
					{ID: "20006", Name: "Olives", Price: 1},
				},
			},
		},
	},
	{
		ID: "301", RestaurantID: "3", Name: "California Roll",
		Description: "Crab, avocado, and cucumber wrapped in seaweed and rice",
		Price:       7.99, Category: "Rolls", Popular: true,
	},
	{
		ID: "302", RestaurantID: "3", Name: "Salmon Nigiri",
		Description: "Fresh salmon over pressed sushi rice",
		Price:       6.99, Category: "Nigiri",
	},
}
