package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const KindExchange = "exchange"

// RequestLog records one user-facing lookup; the popular-pair job aggregates them.
type RequestLog struct {
	ID        int64       `json:"id"`
	Kind      string      `json:"kind"`
	Args      RequestArgs `json:"args"`
	CreatedAt time.Time   `json:"created_at"`
}

type RequestArgs map[string]string

// Value stores the args as JSONB.
func (a RequestArgs) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *RequestArgs) Scan(value interface{}) error {
	if value == nil {
		*a = make(RequestArgs)
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into RequestArgs", value)
	}
	return json.Unmarshal(b, a)
}

type PopularRequest struct {
	Kind string      `json:"type"`
	Args RequestArgs `json:"args"`
}
