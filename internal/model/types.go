package model

import (
	"database/sql/driver"
	"encoding/json"
)

// StringArray is a custom type for handling string arrays in JSONB
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Nutrient is one entry of the enrichment snapshot.
type Nutrient struct {
	Label    string  `json:"label"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// NutrientSet is the per-recipe nutrient snapshot, stored as JSONB. It is
// fully replaced whenever the recipe is re-enriched.
type NutrientSet struct {
	Protein Nutrient `json:"protein"`
	Carb    Nutrient `json:"carb"`
	Fat     Nutrient `json:"fat"`
	Fiber   Nutrient `json:"fiber"`
}

// Value implements the driver.Valuer interface
func (n NutrientSet) Value() (driver.Value, error) {
	return json.Marshal(n)
}

// Scan implements the sql.Scanner interface
func (n *NutrientSet) Scan(value interface{}) error {
	if value == nil {
		*n = NutrientSet{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, n)
}
