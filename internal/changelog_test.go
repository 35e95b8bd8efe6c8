package internal

import (
	"testing"

	"asset-inventory-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordToMap(t *testing.T) {
	srv := &models.Server{}
	srv.Name = "db-01"
	srv.AssetTag = "SRV-0001"
	srv.ServerType = models.ServerPhysical

	m, err := recordToMap(srv)
	require.NoError(t, err)
	assert.Equal(t, "db-01", m["name"])
	assert.Equal(t, "SRV-0001", m["asset_tag"])
	assert.Equal(t, "PHYSICAL", m["server_type"])
	// omitempty pointers stay out of the diff surface
	assert.NotContains(t, m, "hostname")
}

func TestChangedFields(t *testing.T) {
	before := map[string]interface{}{
		"name":       "db-01",
		"status":     "ACTIVE",
		"hostname":   "db-01.corp",
		"updated_at": "2026-01-01T00:00:00Z",
	}
	after := map[string]interface{}{
		"name":       "db-01-new",
		"status":     "ACTIVE",
		"ram_gb":     float64(64),
		"updated_at": "2026-02-01T00:00:00Z",
	}

	changes := changedFields(before, after)

	require.Contains(t, changes, "name")
	assert.Equal(t, "db-01", changes["name"].Old)
	assert.Equal(t, "db-01-new", changes["name"].New)

	// added field carries a nil old value
	require.Contains(t, changes, "ram_gb")
	assert.Nil(t, changes["ram_gb"].Old)
	assert.Equal(t, float64(64), changes["ram_gb"].New)

	// removed field carries a nil new value
	require.Contains(t, changes, "hostname")
	assert.Equal(t, "db-01.corp", changes["hostname"].Old)
	assert.Nil(t, changes["hostname"].New)

	// unchanged and bookkeeping fields stay out
	assert.NotContains(t, changes, "status")
	assert.NotContains(t, changes, "updated_at")
}

func TestChangedFieldsNoChanges(t *testing.T) {
	m := map[string]interface{}{"name": "db-01", "status": "ACTIVE"}
	assert.Empty(t, changedFields(m, m))
}

func TestChangeMapForCreate(t *testing.T) {
	srv := &models.Server{}
	srv.Name = "db-01"
	srv.AssetTag = "SRV-0001"
	srv.ApplyDefaults()

	changes := changeMapForCreate(srv)

	require.Contains(t, changes, "name")
	assert.Nil(t, changes["name"].Old)
	assert.Equal(t, "db-01", changes["name"].New)

	require.Contains(t, changes, "status")
	assert.Equal(t, "ACTIVE", changes["status"].New)

	for field := range changeLogExcludedFields {
		assert.NotContains(t, changes, field)
	}
}

func TestChangeMapForCreateUnmarshalable(t *testing.T) {
	// funcs cannot be marshaled; the failure is logged and yields a nil map
	assert.Nil(t, changeMapForCreate(func() {}))
}
