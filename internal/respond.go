package internal

import (
	"encoding/json"
	"net/http"

	"asset-inventory-api/internal/schema"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// sendListResponse wraps list payloads with the total row count and the
// applied paging window.
func sendListResponse(w http.ResponseWriter, items interface{}, total int, params listParams) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items":  items,
		"total":  total,
		"limit":  params.limit,
		"offset": params.offset,
	})
}

// sendValidationError reports every offending field in one response.
func sendValidationError(w http.ResponseWriter, ve *schema.ValidationError) {
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":  "validation_failed",
		"fields": ve.Fields,
	})
}
