package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// JSONB is a generic type for PostgreSQL JSONB columns.
type JSONB json.RawMessage

func (j JSONB) Value() (driver.Value, error) {
	if len(j) == 0 {
		return "{}", nil
	}
	return string(j), nil
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = JSONB("{}")
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = JSONB(v)
	case string:
		*j = JSONB(v)
	default:
		return fmt.Errorf("unsupported type for JSONB: %T", value)
	}
	return nil
}

func (j JSONB) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("{}"), nil
	}
	return json.RawMessage(j).MarshalJSON()
}

func (j *JSONB) UnmarshalJSON(data []byte) error {
	*j = JSONB(data)
	return nil
}

// UsageLog is one recorded tool call.
type UsageLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Tool      string    `gorm:"type:text;not null;index" json:"tool"`
	RequestID *string   `gorm:"type:text" json:"request_id,omitempty"`
	Details   JSONB     `gorm:"type:jsonb;not null" json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

func (UsageLog) TableName() string { return "usage_log" }
