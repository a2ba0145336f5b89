// Package model defines the smarket domain types: products, settings,
// and notification intents.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Category is one of the eight fixed product categories.
type Category string

// Product categories, in display form.
const (
	CategoryFood         Category = "Food"
	CategoryBeverages    Category = "Beverages"
	CategoryHousehold    Category = "Household"
	CategoryPersonalCare Category = "Personal Care"
	CategoryHealth       Category = "Health"
	CategoryPetSupplies  Category = "Pet Supplies"
	CategoryCleaning     Category = "Cleaning"
	CategoryOther        Category = "Other"
)

// AllCategories lists every category in display order.
var AllCategories = []Category{
	CategoryFood,
	CategoryBeverages,
	CategoryHousehold,
	CategoryPersonalCare,
	CategoryHealth,
	CategoryPetSupplies,
	CategoryCleaning,
	CategoryOther,
}

// ParseCategory maps a stored string back to a Category, defaulting to Other.
func ParseCategory(s string) Category {
	for _, c := range AllCategories {
		if string(c) == s {
			return c
		}
	}
	return CategoryOther
}

// Product is one tracked purchasable item. The projected run-out date is
// always derived from LastPurchasedAt and LastsDays, never stored.
type Product struct {
	ID              string
	Name            string
	PriceLatest     float64
	LastsDays       int // always >= 1
	LastPurchasedAt time.Time
	Notes           string
	Category        Category
}

// NewProduct builds a product with a fresh ID. LastsDays below 1 is clamped
// to 1 rather than rejected so a usable run-out estimate always exists.
func NewProduct(name string, priceLatest float64, lastsDays int, lastPurchasedAt time.Time, notes string, category Category) Product {
	return Product{
		ID:              uuid.NewString(),
		Name:            name,
		PriceLatest:     priceLatest,
		LastsDays:       ClampLastsDays(lastsDays),
		LastPurchasedAt: lastPurchasedAt,
		Notes:           notes,
		Category:        category,
	}
}

// ClampLastsDays enforces the lastsDays >= 1 invariant.
func ClampLastsDays(days int) int {
	if days < 1 {
		return 1
	}
	return days
}
