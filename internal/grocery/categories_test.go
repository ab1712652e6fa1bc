package grocery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorize(t *testing.T) {
	table := DefaultCategories()

	tests := map[string]string{
		"chicken breast":   "Proteins",
		"chicken broth":    "Proteins",
		"sour cream":       "Dairy",
		"red bell pepper":  "Produce",
		"brown rice":       "Grains & Bread",
		"soy sauce":        "Pantry",
		"xylophone snacks": OtherCategory,
		"":                 OtherCategory,
	}

	for key, want := range tests {
		assert.Equal(t, want, table.Categorize(key), key)
	}
}

func TestDefaultCategoriesReturnsCopy(t *testing.T) {
	table := DefaultCategories()
	table[0].Category = "Changed"

	assert.Equal(t, "Proteins", DefaultCategories()[0].Category)
	assert.Equal(t, "Proteins", Aggregate(planOf(&Meal{Ingredients: []IngredientLine{line("chicken", "1")}})).Categories[0].Name)
}

func TestParseCategoryTable(t *testing.T) {
	doc := `
- keyword: " Broth "
  category: Soups
- keyword: chicken
  category: Meat
`
	table, err := ParseCategoryTable(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, CategoryTable{
		{Keyword: "broth", Category: "Soups"},
		{Keyword: "chicken", Category: "Meat"},
	}, table)
	assert.Equal(t, "Soups", table.Categorize("chicken broth"))
}

func TestParseCategoryTableErrors(t *testing.T) {
	tests := map[string]string{
		"empty document":   "",
		"empty list":       "[]",
		"missing keyword":  "- category: Meat\n",
		"missing category": "- keyword: beef\n",
		"not a list":       "keyword: beef\n",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCategoryTable(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}
