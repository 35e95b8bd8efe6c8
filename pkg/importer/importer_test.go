package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEnums(t *testing.T) {
	assert.NoError(t, validateEnums(map[string]interface{}{
		"status":      "ACTIVE",
		"environment": "PROD",
		"server_type": "PHYSICAL",
	}))

	// absent fields keep their stored values
	assert.NoError(t, validateEnums(map[string]interface{}{"name": "web-01"}))

	err := validateEnums(map[string]interface{}{"status": "bogus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status")

	err = validateEnums(map[string]interface{}{"server_type": "MAINFRAME"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server_type")

	// non-string values never pass a closed set
	require.Error(t, validateEnums(map[string]interface{}{"environment": 7}))
}

func TestValidateNewServer(t *testing.T) {
	valid := map[string]interface{}{
		"asset_tag":        "SRV-0100",
		"name":             "web-01",
		"server_type":      "PHYSICAL",
		"operating_system": "UBUNTU",
		"server_role":      "WEB",
		"status":           "ACTIVE",
		"environment":      "PROD",
		"ram_gb":           64,
		"is_virtual":       false,
	}
	assert.NoError(t, validateNewServer(valid))

	missing := map[string]interface{}{"asset_tag": "SRV-0101", "name": "web-02"}
	err := validateNewServer(missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server_type")
	assert.Contains(t, err.Error(), "operating_system")
	assert.Contains(t, err.Error(), "server_role")

	bad := map[string]interface{}{
		"asset_tag":        "SRV-0102",
		"name":             "web-03",
		"server_type":      "MAINFRAME",
		"operating_system": "UBUNTU",
		"server_role":      "WEB",
	}
	err = validateNewServer(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server_type")
}

func TestSameValue(t *testing.T) {
	assert.True(t, sameValue(nil, nil))
	assert.False(t, sameValue(nil, "x"))
	assert.False(t, sameValue("x", nil))
	assert.True(t, sameValue("UBUNTU", "UBUNTU"))
	assert.False(t, sameValue("web-01", "web-02"))
	// INT columns come back as int64
	assert.True(t, sameValue(int64(64), 64))
	assert.False(t, sameValue(int64(64), 128))

	utc := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.True(t, sameValue(utc, utc.In(time.FixedZone("CET", 3600))))
	assert.False(t, sameValue(utc, utc.Add(time.Hour)))
}
