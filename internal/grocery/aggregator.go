// Package grocery turns a meal plan into a consolidated shopping list.
//
// Aggregation is a pure function of the plan and the category table: it holds
// no state between calls and may be used from any number of goroutines.
package grocery

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Aggregator consolidates meal plans using a fixed category table.
type Aggregator struct {
	categories CategoryTable
}

// NewAggregator returns an Aggregator that categorizes with table. A nil or
// empty table selects the built-in one.
func NewAggregator(table CategoryTable) *Aggregator {
	if len(table) == 0 {
		table = defaultCategories
	}
	return &Aggregator{categories: table}
}

var defaultAggregator = NewAggregator(nil)

// Aggregate consolidates plan with the built-in category table.
func Aggregate(plan MealPlan) List {
	return defaultAggregator.Aggregate(plan)
}

type entry struct {
	amount   float64
	unit     string
	category string
}

// Aggregate collects every ingredient line of plan, sums quantities of lines
// sharing an item key and unit, and groups the result by category.
//
// When the same item appears with a different unit than its first
// occurrence, the later quantity is left out of the total rather than
// combined into a wrong number.
func (a *Aggregator) Aggregate(plan MealPlan) List {
	entries := make(map[string]*entry)

	for _, day := range plan.Days {
		for _, slot := range day.Meals.SlotNames() {
			for _, line := range day.Meals[slot].Ingredients {
				key := normalizeKey(line.Item)
				if key == "" {
					continue
				}
				quantity, unit := ParseAmount(line.Amount)

				existing, ok := entries[key]
				if !ok {
					entries[key] = &entry{
						amount:   quantity,
						unit:     unit,
						category: a.categories.Categorize(key),
					}
					continue
				}
				if existing.unit == unit {
					existing.amount += quantity
				}
			}
		}
	}

	return group(entries)
}

func group(entries map[string]*entry) List {
	byCategory := make(map[string][]Item)
	for key, e := range entries {
		byCategory[e.category] = append(byCategory[e.category], Item{
			Item:     displayName(key),
			Amount:   formatAmount(e.amount, e.unit),
			Category: e.category,
		})
	}

	categories := make([]Category, 0, len(byCategory))
	for name, items := range byCategory {
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Item < items[j].Item
		})
		categories = append(categories, Category{Name: name, Items: items})
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})

	return List{Categories: categories}
}

func normalizeKey(item string) string {
	return strings.ToLower(strings.TrimSpace(item))
}

// displayName upper-cases only the first rune of key.
func displayName(key string) string {
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError {
		return key
	}
	return string(unicode.ToUpper(r)) + key[size:]
}
