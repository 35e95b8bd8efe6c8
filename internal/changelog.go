package internal

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"reflect"
	"strings"

	"asset-inventory-api/internal/auth"
	"asset-inventory-api/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Bookkeeping fields stamped by the server itself; recording them would put
// an entry in the log for every write.
var changeLogExcludedFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"created_by_id":    true,
	"updated_by_id":    true,
	"first_discovered": true,
}

// recordToMap flattens a record through its JSON form, so the diff compares
// the same representation clients see.
func recordToMap(record interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// changedFields diffs two flattened records and returns the old/new pair for
// every field whose value changed. Bookkeeping fields are skipped.
func changedFields(before, after map[string]interface{}) models.ChangeMap {
	changes := models.ChangeMap{}
	for key, newVal := range after {
		if changeLogExcludedFields[key] {
			continue
		}
		oldVal, existed := before[key]
		if !existed || !reflect.DeepEqual(oldVal, newVal) {
			changes[key] = models.FieldChange{Old: oldVal, New: newVal}
		}
	}
	for key, oldVal := range before {
		if changeLogExcludedFields[key] {
			continue
		}
		if _, still := after[key]; !still {
			changes[key] = models.FieldChange{Old: oldVal, New: nil}
		}
	}
	return changes
}

// changeMapForCreate records every field of a new record with a null old
// value.
func changeMapForCreate(record interface{}) models.ChangeMap {
	after, err := recordToMap(record)
	if err != nil {
		log.Printf("change map for create failed: %v", err)
		return nil
	}
	changes := models.ChangeMap{}
	for key, val := range after {
		if changeLogExcludedFields[key] {
			continue
		}
		changes[key] = models.FieldChange{Old: nil, New: val}
	}
	return changes
}

// recordChange appends one audit entry. Failures are logged and swallowed;
// the write that triggered the entry has already been committed.
func (s *Server) recordChange(r *http.Request, assetType string, assetID uuid.UUID, assetName, changeType string, changes models.ChangeMap) {
	var changedBy interface{}
	if actor := auth.UserIDFromContext(r.Context()); actor != uuid.Nil {
		changedBy = actor
	}

	var ip interface{}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		ip = host
	} else if r.RemoteAddr != "" {
		ip = r.RemoteAddr
	}

	var userAgent interface{}
	if ua := r.Header.Get("User-Agent"); ua != "" {
		userAgent = ua
	}

	_, err := s.DB.ExecContext(r.Context(), `
		INSERT INTO asset_change_log (asset_type, asset_id, asset_name, change_type, changed_fields, changed_by_id, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, assetType, assetID, assetName, changeType, changes, changedBy, ip, userAgent)
	if err != nil {
		log.Printf("change log write failed for %s %s: %v", assetType, assetID, err)
	}
}

const changeLogSelect = `
	SELECT id, asset_type, asset_id, asset_name, change_type, changed_fields, changed_by_id, changed_at, ip_address, user_agent, notes`

func scanChangeLogRows(rows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
}, withTotal bool) ([]models.ChangeLogEntry, int, error) {
	entries := []models.ChangeLogEntry{}
	var totalCount int
	for rows.Next() {
		var e models.ChangeLogEntry
		dest := []interface{}{
			&e.ID, &e.AssetType, &e.AssetID, &e.AssetName, &e.ChangeType,
			&e.ChangedFields, &e.ChangedByID, &e.ChangedAt,
			&e.IPAddress, &e.UserAgent, &e.Notes,
		}
		if withTotal {
			dest = append(dest, &totalCount)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, totalCount, rows.Err()
}

// listChangeLog handles the catalog-wide audit feed, newest first.
func (s *Server) listChangeLog(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	clauses := []string{}
	args := []interface{}{}
	arg := 1

	for _, f := range []struct{ param, col string }{
		{"asset_type", "asset_type"},
		{"change_type", "change_type"},
	} {
		if v := strings.TrimSpace(r.URL.Query().Get(f.param)); v != "" {
			clauses = append(clauses, fmt.Sprintf("%s = $%d", f.col, arg))
			args = append(args, v)
			arg++
		}
	}

	if v := strings.TrimSpace(r.URL.Query().Get("asset_id")); v != "" {
		assetID, err := uuid.Parse(v)
		if err != nil {
			http.Error(w, "invalid asset_id", 400)
			return
		}
		clauses = append(clauses, fmt.Sprintf("asset_id = $%d", arg))
		args = append(args, assetID)
		arg++
	}

	whereClause := ""
	if len(clauses) > 0 {
		whereClause = " WHERE " + strings.Join(clauses, " AND ")
	}

	sqlStr := changeLogSelect + ", COUNT(*) OVER() as total_count FROM asset_change_log" + whereClause
	sqlStr += " ORDER BY changed_at DESC, id DESC"
	sqlStr += fmt.Sprintf(" LIMIT %d OFFSET %d", params.limit, params.offset)

	rows, err := s.DB.QueryContext(r.Context(), sqlStr, args...)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	defer rows.Close()

	entries, totalCount, err := scanChangeLogRows(rows, true)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	sendListResponse(w, entries, totalCount, params)
}

// getServerChangeLog returns the audit history of one server, newest first.
// The history survives deletion of the server itself.
func (s *Server) getServerChangeLog(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	rows, err := s.DB.QueryContext(r.Context(), changeLogSelect+`
		FROM asset_change_log
		WHERE asset_type = $1 AND asset_id = $2
		ORDER BY changed_at DESC, id DESC
	`, models.KindServer, id)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	defer rows.Close()

	entries, _, err := scanChangeLogRows(rows, false)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
