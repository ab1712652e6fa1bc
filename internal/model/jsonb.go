package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/pageza/mealwise/backend/internal/grocery"
)

// Values are written as JSON text so the same column works for postgres
// jsonb and SQLite.
func jsonbValue(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func jsonbScan(value interface{}, dst interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dst)
}

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	return jsonbValue([]string(a))
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	*a = JSONBStringArray{}
	return jsonbScan(value, (*[]string)(a))
}

// Ingredients is a JSONB list of ingredient lines.
type Ingredients []grocery.IngredientLine

func (i Ingredients) Value() (driver.Value, error) {
	if i == nil {
		return "[]", nil
	}
	return jsonbValue([]grocery.IngredientLine(i))
}

func (i *Ingredients) Scan(value interface{}) error {
	*i = Ingredients{}
	return jsonbScan(value, (*[]grocery.IngredientLine)(i))
}
