package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// NullMoney is an optional per-person price. The zero value is "absent";
// callers must check Valid before reading Amount.
type NullMoney struct {
	Amount float64
	Valid  bool
}

// MoneyFrom returns a present NullMoney.
func MoneyFrom(amount float64) NullMoney {
	return NullMoney{Amount: amount, Valid: true}
}

// Or returns the amount if present, otherwise the fallback.
func (m NullMoney) Or(fallback float64) float64 {
	if m.Valid {
		return m.Amount
	}
	return fallback
}

// Scan implements sql.Scanner so NullMoney maps to a nullable numeric column.
func (m *NullMoney) Scan(src interface{}) error {
	if src == nil {
		*m = NullMoney{}
		return nil
	}
	switch v := src.(type) {
	case float64:
		*m = NullMoney{Amount: v, Valid: true}
	case int64:
		*m = NullMoney{Amount: float64(v), Valid: true}
	case []byte:
		var f float64
		if _, err := fmt.Sscanf(string(v), "%f", &f); err != nil {
			return fmt.Errorf("cannot scan %q into NullMoney", v)
		}
		*m = NullMoney{Amount: f, Valid: true}
	default:
		return fmt.Errorf("cannot scan %T into NullMoney", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (m NullMoney) Value() (driver.Value, error) {
	if !m.Valid {
		return nil, nil
	}
	return m.Amount, nil
}

// MarshalJSON encodes an absent amount as null.
func (m NullMoney) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Amount)
}

func (m *NullMoney) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = NullMoney{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*m = NullMoney{Amount: f, Valid: true}
	return nil
}
