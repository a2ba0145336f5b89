// Package category auto-classifies product names into the eight fixed
// categories by keyword matching.
package category

import (
	"strings"

	"github.com/mfigueredo/smarket/internal/model"
)

// rule pairs a category with its trigger keywords. Rules are evaluated in
// slice order and the first match wins, so a name like "coconut water"
// lands in Beverages even though it would also match Food-adjacent terms.
type rule struct {
	category model.Category
	keywords []string
}

var rules = []rule{
	{model.CategoryBeverages, []string{
		"milk", "juice", "water", "coffee", "tea", "soda", "beer", "wine",
		"drink", "beverage", "cola", "latte", "smoothie", "coconut water",
		"sparkling", "bottle",
	}},
	{model.CategoryFood, []string{
		"bread", "rice", "pasta", "meat", "egg", "cheese", "fruit",
		"vegetable", "food", "chicken", "beef", "fish", "cereal", "flour",
		"sugar", "salt", "oil", "butter", "yogurt", "apple", "banana",
		"tomato", "onion", "potato", "nuts", "beans", "honey", "sauce",
	}},
	{model.CategoryHousehold, []string{
		"toilet", "paper", "towel", "battery", "bulb", "tissue", "napkin",
		"candle", "lightbulb", "foil", "wrap", "bag", "garbage", "trash",
	}},
	{model.CategoryPersonalCare, []string{
		"shampoo", "soap", "toothpaste", "deodorant", "lotion",
		"conditioner", "body wash", "moisturizer", "sunscreen",
		"toothbrush", "razor", "makeup", "perfume", "nail",
	}},
	{model.CategoryHealth, []string{
		"vitamin", "medicine", "pill", "tablet", "supplement", "aspirin",
		"bandage", "first aid", "thermometer", "prescription",
	}},
	{model.CategoryPetSupplies, []string{
		"dog", "cat", "pet", "puppy", "kitten", "leash", "collar",
		"litter", "cage", "carrier", "treats", "paw",
	}},
	{model.CategoryCleaning, []string{
		"clean", "detergent", "bleach", "disinfectant", "sanitizer",
		"wipes", "scrub", "mop", "vacuum", "polish", "laundry",
		"fabric softener",
	}},
}

// Categorize maps a product name to a category. Matching is
// case-insensitive substring containment; names matching no rule fall
// through to Other. Always returns a value.
func Categorize(name string) model.Category {
	lowered := strings.ToLower(strings.TrimSpace(name))
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lowered, kw) {
				return r.category
			}
		}
	}
	return model.CategoryOther
}
