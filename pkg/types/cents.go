package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Cents is a monetary amount in the smallest currency unit. Merchant-facing
// forms submit prices as either JSON numbers or numeric strings, so the
// decoder coerces both at the boundary and rejects anything else up front.
type Cents int64

func (c Cents) Int64() int64 {
	return int64(c)
}

// MarshalJSON always emits a plain number.
func (c Cents) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(c))
}

// UnmarshalJSON accepts integers and integer-valued strings ("1250").
func (c *Cents) UnmarshalJSON(raw []byte) error {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "null" {
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return err
		}
		trimmed = strings.TrimSpace(str)
	}
	if trimmed == "" {
		return fmt.Errorf("amount is empty")
	}
	value, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return fmt.Errorf("amount %q is not an integer cent value", trimmed)
	}
	*c = Cents(value)
	return nil
}
