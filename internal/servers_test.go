package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"asset-inventory-api/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withURLParam injects a chi route parameter without running the router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestGetServerInvalidID(t *testing.T) {
	server := &Server{}

	req := httptest.NewRequest("GET", "/servers/not-a-uuid", nil)
	req = withURLParam(req, "id", "not-a-uuid")
	w := httptest.NewRecorder()

	server.getServer(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateServerInvalidID(t *testing.T) {
	server := &Server{}

	req := httptest.NewRequest("PUT", "/servers/123", bytes.NewBufferString("{}"))
	req = withURLParam(req, "id", "123")
	w := httptest.NewRecorder()

	server.updateServer(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteServerInvalidID(t *testing.T) {
	server := &Server{}

	req := httptest.NewRequest("DELETE", "/servers/abc", nil)
	req = withURLParam(req, "id", "abc")
	w := httptest.NewRecorder()

	server.deleteServer(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateServerInvalidJSON(t *testing.T) {
	server := &Server{}

	req := httptest.NewRequest("POST", "/servers", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	server.createServer(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateServerValidationFailure(t *testing.T) {
	server := &Server{}

	// missing every required field
	req := httptest.NewRequest("POST", "/servers", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	server.createServer(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation_failed", resp.Error)
	for _, field := range []string{"asset_tag", "name", "server_type", "operating_system", "server_role"} {
		assert.Contains(t, resp.Fields, field)
	}
}

func TestServerSQLBuilders(t *testing.T) {
	sel := serverSelectSQL("")
	assert.Contains(t, sel, "SELECT id, asset_tag")
	assert.Contains(t, sel, "FROM servers")

	ins := serverInsertSQL()
	assert.Contains(t, ins, "INSERT INTO servers (id, asset_tag")
	assert.Contains(t, ins, "$1")

	upd := serverUpdateSQL()
	assert.Contains(t, upd, "UPDATE servers SET asset_tag = $2")
	assert.Contains(t, upd, "WHERE id = $1")
	// id is the key, never a SET target
	assert.NotContains(t, upd, "id = $2,")
}

func TestServerColumnsMatchFields(t *testing.T) {
	var srv models.Server
	fields := serverFields(&srv)
	require.Equal(t, len(serverColumns), len(fields),
		"column list and field list must stay in lockstep")
}
