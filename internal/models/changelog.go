package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Change types recorded in the change log.
const (
	ChangeCreated = "created"
	ChangeUpdated = "updated"
	ChangeDeleted = "deleted"
)

// FieldChange is the old/new value pair for one changed field.
type FieldChange struct {
	Old interface{} `json:"old"`
	New interface{} `json:"new"`
}

// ChangeMap maps field names to their old/new values.
type ChangeMap map[string]FieldChange

// Value implements driver.Valuer.
func (m ChangeMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *ChangeMap) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("cannot scan %T into ChangeMap", value)
	}
}

// ChangeLogEntry is one append-only audit record. It references the asset by
// (AssetType, AssetID) rather than a foreign key, so entries outlive the
// assets they describe. Entries are never updated or deleted.
type ChangeLogEntry struct {
	ID            int64      `json:"id"`
	AssetType     string     `json:"asset_type"`
	AssetID       uuid.UUID  `json:"asset_id"`
	AssetName     string     `json:"asset_name"`
	ChangeType    string     `json:"change_type"`
	ChangedFields ChangeMap  `json:"changed_fields"`
	ChangedByID   *uuid.UUID `json:"changed_by_id,omitempty"`
	ChangedAt     time.Time  `json:"changed_at"`
	IPAddress     *string    `json:"ip_address,omitempty"`
	UserAgent     *string    `json:"user_agent,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
}

// AssetSummary is the projection returned by the per-kind list endpoints for
// the non-server kinds.
type AssetSummary struct {
	ID          uuid.UUID   `json:"id"`
	AssetTag    string      `json:"asset_tag"`
	Name        string      `json:"name"`
	DeviceType  string      `json:"device_type"`
	Status      AssetStatus `json:"status"`
	Environment Environment `json:"environment"`
	Hostname    *string     `json:"hostname,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
