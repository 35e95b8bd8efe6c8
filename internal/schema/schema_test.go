package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset-inventory-api/internal/models"
)

func validServer() *models.Server {
	s := &models.Server{
		ServerType:      models.ServerPhysical,
		OperatingSystem: models.ServerOSUbuntu,
		ServerRole:      models.RoleWeb,
	}
	s.AssetTag = "SRV-0001"
	s.Name = "web-01"
	s.ApplyDefaults()
	return s
}

func intPtr(v int) *int { return &v }

func TestValidateServerOK(t *testing.T) {
	require.Nil(t, ValidateServer(validServer()))
}

func TestValidateServerRequiredFields(t *testing.T) {
	s := validServer()
	s.AssetTag = "  "
	s.Name = ""
	s.ServerType = ""
	s.OperatingSystem = ""
	s.ServerRole = ""

	err := ValidateServer(s)
	require.NotNil(t, err)
	for _, f := range []string{"asset_tag", "name", "server_type", "operating_system", "server_role"} {
		assert.True(t, err.Has(f), "expected %s to be flagged", f)
	}
}

func TestValidateServerEnumMembership(t *testing.T) {
	s := validServer()
	s.Status = "BROKEN"
	s.Environment = "QA2"
	s.RiskLevel = "EXTREME"
	s.ServerType = "MAINFRAME"
	s.OperatingSystem = "TEMPLEOS"
	s.ServerRole = "COFFEE"

	err := ValidateServer(s)
	require.NotNil(t, err)
	for _, f := range []string{"status", "environment", "risk_level", "server_type", "operating_system", "server_role"} {
		assert.True(t, err.Has(f), "expected %s to be flagged", f)
	}
}

func TestValidateServerRanges(t *testing.T) {
	cases := []struct {
		name  string
		field string
		set   func(*models.Server, int)
		min   int
		max   int
	}{
		{"vulnerability score", "vulnerability_score", func(s *models.Server, v int) { s.VulnerabilityScore = &v }, 0, 10},
		{"cpu utilization", "cpu_utilization", func(s *models.Server, v int) { s.CPUUtilization = &v }, 0, 100},
		{"memory utilization", "memory_utilization", func(s *models.Server, v int) { s.MemoryUtilization = &v }, 0, 100},
		{"disk utilization", "disk_utilization", func(s *models.Server, v int) { s.DiskUtilization = &v }, 0, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validServer()
			tc.set(s, tc.min-1)
			err := ValidateServer(s)
			require.NotNil(t, err)
			assert.True(t, err.Has(tc.field))

			s = validServer()
			tc.set(s, tc.max+1)
			err = ValidateServer(s)
			require.NotNil(t, err)
			assert.True(t, err.Has(tc.field))

			s = validServer()
			tc.set(s, tc.min)
			assert.Nil(t, ValidateServer(s))

			s = validServer()
			tc.set(s, tc.max)
			assert.Nil(t, ValidateServer(s))
		})
	}
}

func TestValidateServerCollectsAllViolations(t *testing.T) {
	s := validServer()
	s.AssetTag = ""
	s.ServerRole = "COFFEE"
	s.VulnerabilityScore = intPtr(12)

	err := ValidateServer(s)
	require.NotNil(t, err)
	assert.Len(t, err.Fields, 3)
	assert.Contains(t, err.Error(), "asset_tag")
	assert.Contains(t, err.Error(), "server_role")
	assert.Contains(t, err.Error(), "vulnerability_score")
}

func TestValidateEndUserDevice(t *testing.T) {
	d := &models.EndUserDevice{
		DeviceType:      models.DeviceLaptop,
		OperatingSystem: models.EndUserOSWin11,
	}
	d.AssetTag = "LAP-0001"
	d.Name = "laptop-01"
	d.ApplyDefaults()
	require.Nil(t, ValidateEndUserDevice(d))

	d.BatteryHealth = intPtr(101)
	err := ValidateEndUserDevice(d)
	require.NotNil(t, err)
	assert.True(t, err.Has("battery_health"))

	d.BatteryHealth = intPtr(100)
	d.DeviceType = ""
	err = ValidateEndUserDevice(d)
	require.NotNil(t, err)
	assert.True(t, err.Has("device_type"))
}

func TestValidateNetworkDevice(t *testing.T) {
	d := &models.NetworkDevice{DeviceType: models.NetSwitch}
	d.AssetTag = "NET-0001"
	d.Name = "core-sw-01"
	d.ApplyDefaults()
	require.Nil(t, ValidateNetworkDevice(d))

	d.CPUUtilization = intPtr(-1)
	d.MemoryUtilization = intPtr(250)
	err := ValidateNetworkDevice(d)
	require.NotNil(t, err)
	assert.True(t, err.Has("cpu_utilization"))
	assert.True(t, err.Has("memory_utilization"))
}

func TestValidateIoTDevice(t *testing.T) {
	d := &models.IoTDevice{DeviceType: models.IoTCamera}
	d.AssetTag = "IOT-0001"
	d.Name = "lobby-cam"
	d.ApplyDefaults()
	require.Nil(t, ValidateIoTDevice(d))

	d.DeviceType = "TOASTER"
	err := ValidateIoTDevice(d)
	require.NotNil(t, err)
	assert.True(t, err.Has("device_type"))
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("asset_tag", "already in use")
	require.NotNil(t, err)
	assert.True(t, err.Has("asset_tag"))
	assert.Equal(t, "validation failed: asset_tag: already in use", err.Error())
}
