package grocery

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// OtherCategory is assigned to items that match no keyword.
const OtherCategory = "Other"

// CategoryRule maps a keyword to a shopping-aisle category.
type CategoryRule struct {
	Keyword  string `yaml:"keyword" json:"keyword"`
	Category string `yaml:"category" json:"category"`
}

// CategoryTable is an ordered list of rules. The first rule whose keyword
// occurs in an ingredient key decides its category, so order matters.
type CategoryTable []CategoryRule

var defaultCategories = CategoryTable{
	{"chicken", "Proteins"},
	{"beef", "Proteins"},
	{"pork", "Proteins"},
	{"fish", "Proteins"},
	{"salmon", "Proteins"},
	{"shrimp", "Proteins"},
	{"tofu", "Proteins"},
	{"eggs", "Proteins"},
	{"turkey", "Proteins"},
	{"bacon", "Proteins"},
	{"sausage", "Proteins"},
	{"lamb", "Proteins"},

	{"milk", "Dairy"},
	{"cheese", "Dairy"},
	{"butter", "Dairy"},
	{"yogurt", "Dairy"},
	{"cream", "Dairy"},
	{"sour cream", "Dairy"},

	{"onion", "Produce"},
	{"garlic", "Produce"},
	{"tomato", "Produce"},
	{"lettuce", "Produce"},
	{"carrot", "Produce"},
	{"celery", "Produce"},
	{"pepper", "Produce"},
	{"potato", "Produce"},
	{"broccoli", "Produce"},
	{"spinach", "Produce"},
	{"cucumber", "Produce"},
	{"apple", "Produce"},
	{"banana", "Produce"},
	{"lemon", "Produce"},
	{"lime", "Produce"},
	{"avocado", "Produce"},
	{"mushroom", "Produce"},
	{"zucchini", "Produce"},

	{"bread", "Grains & Bread"},
	{"rice", "Grains & Bread"},
	{"pasta", "Grains & Bread"},
	{"flour", "Grains & Bread"},
	{"oats", "Grains & Bread"},
	{"tortilla", "Grains & Bread"},
	{"noodles", "Grains & Bread"},
	{"quinoa", "Grains & Bread"},

	{"oil", "Pantry"},
	{"salt", "Pantry"},
	{"sugar", "Pantry"},
	{"sauce", "Pantry"},
	{"vinegar", "Pantry"},
	{"broth", "Pantry"},
	{"stock", "Pantry"},
	{"honey", "Pantry"},
	{"maple", "Pantry"},
	{"beans", "Pantry"},
	{"lentils", "Pantry"},
}

// DefaultCategories returns a copy of the built-in category table.
func DefaultCategories() CategoryTable {
	table := make(CategoryTable, len(defaultCategories))
	copy(table, defaultCategories)
	return table
}

// Categorize returns the category of a normalized ingredient key.
func (t CategoryTable) Categorize(key string) string {
	for _, rule := range t {
		if strings.Contains(key, rule.Keyword) {
			return rule.Category
		}
	}
	return OtherCategory
}

// ParseCategoryTable reads an ordered YAML list of keyword/category rules.
// Keywords are lower-cased so they match normalized keys.
func ParseCategoryTable(r io.Reader) (CategoryTable, error) {
	var table CategoryTable
	if err := yaml.NewDecoder(r).Decode(&table); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("category table is empty")
		}
		return nil, fmt.Errorf("failed to decode category table: %w", err)
	}
	if len(table) == 0 {
		return nil, errors.New("category table is empty")
	}

	for i := range table {
		table[i].Keyword = strings.ToLower(strings.TrimSpace(table[i].Keyword))
		table[i].Category = strings.TrimSpace(table[i].Category)
		if table[i].Keyword == "" {
			return nil, fmt.Errorf("category rule %d: keyword is required", i+1)
		}
		if table[i].Category == "" {
			return nil, fmt.Errorf("category rule %d: category is required", i+1)
		}
	}
	return table, nil
}
