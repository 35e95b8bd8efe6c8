package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONBScan(t *testing.T) {
	var j JSONB
	require.NoError(t, j.Scan([]byte(`{"cpu_count":4}`)))
	assert.Equal(t, float64(4), j["cpu_count"])

	// some driver configurations hand jsonb back as text
	require.NoError(t, j.Scan(`{"ram_gb":8}`))
	assert.Equal(t, float64(8), j["ram_gb"])

	require.NoError(t, j.Scan(nil))
	assert.Nil(t, j)

	// anything else is a driver contract change, not a null column
	assert.Error(t, j.Scan(42))
}

func TestChangeMapScan(t *testing.T) {
	var m ChangeMap
	require.NoError(t, m.Scan([]byte(`{"name":{"old":"a","new":"b"}}`)))
	assert.Equal(t, "a", m["name"].Old)
	assert.Equal(t, "b", m["name"].New)

	require.NoError(t, m.Scan(`{"status":{"old":null,"new":"ACTIVE"}}`))
	assert.Equal(t, "ACTIVE", m["status"].New)

	require.NoError(t, m.Scan(nil))
	assert.Nil(t, m)

	assert.Error(t, m.Scan(3.14))
}
