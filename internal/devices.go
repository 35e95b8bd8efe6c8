package internal

import (
	"fmt"
	"net/http"
	"strings"

	"asset-inventory-api/internal/models"
)

// The non-server kinds are browsed through a compact summary projection;
// full CRUD is only exposed for servers.

// listDeviceSummaries builds a list handler over one device table.
func (s *Server) listDeviceSummaries(table string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := parseListParams(r)

		clauses := []string{}
		args := []interface{}{}
		arg := 1

		for _, f := range []struct{ param, col string }{
			{"status", "status"},
			{"environment", "environment"},
			{"device_type", "device_type"},
		} {
			if v := strings.TrimSpace(r.URL.Query().Get(f.param)); v != "" {
				clauses = append(clauses, fmt.Sprintf("%s = $%d", f.col, arg))
				args = append(args, v)
				arg++
			}
		}

		if params.q != "" {
			clauses = append(clauses, fmt.Sprintf("(name ILIKE $%d OR hostname ILIKE $%d OR asset_tag ILIKE $%d)", arg, arg, arg))
			args = append(args, "%"+params.q+"%")
			arg++
		}

		whereClause := ""
		if len(clauses) > 0 {
			whereClause = " WHERE " + strings.Join(clauses, " AND ")
		}

		sqlStr := fmt.Sprintf(`
			SELECT id, asset_tag, name, device_type, status, environment, hostname, created_at, updated_at,
			       COUNT(*) OVER() as total_count
			FROM %s%s`, table, whereClause)

		allowedSort := map[string]string{
			"asset_tag":   "asset_tag",
			"name":        "name",
			"device_type": "device_type",
			"status":      "status",
			"environment": "environment",
			"created_at":  "created_at",
			"updated_at":  "updated_at",
		}
		sqlStr += buildOrderBy(params.sort, allowedSort)
		sqlStr += fmt.Sprintf(" LIMIT %d OFFSET %d", params.limit, params.offset)

		rows, err := s.DB.QueryContext(r.Context(), sqlStr, args...)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		defer rows.Close()

		devices := []models.AssetSummary{}
		var totalCount int
		for rows.Next() {
			var d models.AssetSummary
			if err := rows.Scan(&d.ID, &d.AssetTag, &d.Name, &d.DeviceType, &d.Status, &d.Environment, &d.Hostname, &d.CreatedAt, &d.UpdatedAt, &totalCount); err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
			devices = append(devices, d)
		}
		if err := rows.Err(); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}

		sendListResponse(w, devices, totalCount, params)
	}
}
