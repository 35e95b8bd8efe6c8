//go:build integration

package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"asset-inventory-api/internal/models"
	"asset-inventory-api/internal/testutil"
	"asset-inventory-api/pkg/importer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"
)

var importHeader = []string{"Asset Tag", "Name", "Server Type", "Operating System", "Server Role"}

func buildWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Servers")
	require.NoError(t, err)
	for _, r := range rows {
		row := sheet.AddRow()
		for _, v := range r {
			row.AddCell().SetString(v)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func uploadWorkbook(t *testing.T, token string, workbook []byte, dryRun bool) importer.ImportSummary {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fw, err := writer.CreateFormFile("file", "inventory.xlsx")
	require.NoError(t, err)
	_, err = fw.Write(workbook)
	require.NoError(t, err)
	if dryRun {
		require.NoError(t, writer.WriteField("dry_run", "true"))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/imports/excel", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	testServer.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data importer.ImportSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func serverChangeLog(t *testing.T, id uuid.UUID) []models.ChangeLogEntry {
	t.Helper()
	w := doRequest(t, "GET", "/servers/"+id.String()+"/changelog", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var entries []models.ChangeLogEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	return entries
}

func TestImportWritesChangeLog(t *testing.T) {
	testutil.RequireIntegration(t)
	token := testToken(t)

	tag := fmt.Sprintf("IMP-%d", time.Now().UnixNano())
	workbook := buildWorkbook(t, [][]string{
		importHeader,
		{tag, "imp-01", "PHYSICAL", "UBUNTU", "WEB"},
	})
	sum := uploadWorkbook(t, token, workbook, false)
	assert.Equal(t, 1, sum.Inserted)
	assert.Zero(t, sum.Errors)

	var id uuid.UUID
	require.NoError(t, testServer.DB.QueryRow(
		"SELECT id FROM servers WHERE asset_tag = $1", tag).Scan(&id))

	entries := serverChangeLog(t, id)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ChangeCreated, entries[0].ChangeType)
	assert.Equal(t, "imp-01", entries[0].AssetName)
	require.NotNil(t, entries[0].ChangedByID)
	require.NotNil(t, entries[0].Notes)
	assert.Equal(t, "excel import", *entries[0].Notes)
	change, ok := entries[0].ChangedFields["server_type"]
	require.True(t, ok)
	assert.Nil(t, change.Old)
	assert.Equal(t, "PHYSICAL", change.New)

	// a second pass with a renamed row appends an updated entry with the
	// old/new pair, and only for the fields that actually changed
	workbook = buildWorkbook(t, [][]string{
		importHeader,
		{tag, "imp-01-renamed", "PHYSICAL", "UBUNTU", "WEB"},
	})
	sum = uploadWorkbook(t, token, workbook, false)
	assert.Equal(t, 1, sum.Updated)
	assert.Zero(t, sum.Errors)

	entries = serverChangeLog(t, id)
	require.Len(t, entries, 2)
	assert.Equal(t, models.ChangeUpdated, entries[0].ChangeType)
	change, ok = entries[0].ChangedFields["name"]
	require.True(t, ok)
	assert.Equal(t, "imp-01", change.Old)
	assert.Equal(t, "imp-01-renamed", change.New)
	assert.NotContains(t, entries[0].ChangedFields, "server_type")
}

func TestImportDryRunLeavesNoTrace(t *testing.T) {
	testutil.RequireIntegration(t)
	token := testToken(t)

	tag := fmt.Sprintf("DRY-%d", time.Now().UnixNano())
	workbook := buildWorkbook(t, [][]string{
		importHeader,
		{tag, "dry-01", "VIRTUAL", "RHEL", "APP"},
	})
	sum := uploadWorkbook(t, token, workbook, true)
	assert.Equal(t, 1, sum.Inserted)
	assert.True(t, sum.DryRun)

	var n int
	require.NoError(t, testServer.DB.QueryRow(
		"SELECT count(*) FROM servers WHERE asset_tag = $1", tag).Scan(&n))
	assert.Zero(t, n)
	require.NoError(t, testServer.DB.QueryRow(
		"SELECT count(*) FROM asset_change_log WHERE asset_name = 'dry-01'").Scan(&n))
	assert.Zero(t, n)
}

func TestImportRejectsTagHeldByAnotherKind(t *testing.T) {
	testutil.RequireIntegration(t)
	token := testToken(t)

	tag := fmt.Sprintf("LAP-%d", time.Now().UnixNano())
	_, err := testServer.DB.Exec(
		"INSERT INTO end_user_devices (asset_tag, name, device_type, operating_system) VALUES ($1, 'loaner', 'LAPTOP', 'WIN11')",
		tag)
	require.NoError(t, err)

	workbook := buildWorkbook(t, [][]string{
		importHeader,
		{tag, "imp-collision", "PHYSICAL", "UBUNTU", "WEB"},
	})
	sum := uploadWorkbook(t, token, workbook, false)
	assert.Zero(t, sum.Inserted)
	assert.Equal(t, 1, sum.Errors)
	require.Len(t, sum.Sheets, 1)
	require.NotEmpty(t, sum.Sheets[0].Samples)
	assert.Contains(t, sum.Sheets[0].Samples[0].Message, "another asset kind")

	var n int
	require.NoError(t, testServer.DB.QueryRow(
		"SELECT count(*) FROM servers WHERE asset_tag = $1", tag).Scan(&n))
	assert.Zero(t, n)
}

func TestImportRejectsUnknownEnum(t *testing.T) {
	testutil.RequireIntegration(t)
	token := testToken(t)

	tag := fmt.Sprintf("ENM-%d", time.Now().UnixNano())
	workbook := buildWorkbook(t, [][]string{
		importHeader,
		{tag, "imp-bad", "MAINFRAME", "UBUNTU", "WEB"},
	})
	sum := uploadWorkbook(t, token, workbook, false)
	assert.Zero(t, sum.Inserted)
	assert.Equal(t, 1, sum.Errors)
	require.Len(t, sum.Sheets, 1)
	require.NotEmpty(t, sum.Sheets[0].Samples)
	assert.Contains(t, sum.Sheets[0].Samples[0].Message, "server_type")

	var n int
	require.NoError(t, testServer.DB.QueryRow(
		"SELECT count(*) FROM servers WHERE asset_tag = $1", tag).Scan(&n))
	assert.Zero(t, n)
}
