package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TemplateConfigRecord is a stored configuration document
type TemplateConfigRecord struct {
	UserID    uuid.UUID       `json:"user_id"`
	Variant   string          `json:"variant"`
	Document  json.RawMessage `json:"document"`
	UpdatedAt time.Time       `json:"updated_at"`
}
