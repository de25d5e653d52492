package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Metadata is an arbitrary JSON object persisted in a jsonb column.
type Metadata map[string]any

// Value implements driver.Valuer so the map can be stored as jsonb.
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for jsonb columns.
func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("metadata: unsupported scan type %T", value)
	}
}
