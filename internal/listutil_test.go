package internal

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseListParams(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantLimit  int
		wantOffset int
		wantQ      string
		wantSort   string
	}{
		{"defaults", "/servers", 50, 0, "", ""},
		{"explicit", "/servers?limit=10&offset=20&q=web&sort=name", 10, 20, "web", "name"},
		{"limit capped", "/servers?limit=9999", 200, 0, "", ""},
		{"limit zero ignored", "/servers?limit=0", 50, 0, "", ""},
		{"negative offset ignored", "/servers?offset=-5", 50, 0, "", ""},
		{"garbage ignored", "/servers?limit=abc&offset=xyz", 50, 0, "", ""},
		{"q trimmed", "/servers?q=%20web%20", 50, 0, "web", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			p := parseListParams(r)
			assert.Equal(t, tt.wantLimit, p.limit)
			assert.Equal(t, tt.wantOffset, p.offset)
			assert.Equal(t, tt.wantQ, p.q)
			assert.Equal(t, tt.wantSort, p.sort)
		})
	}
}

func TestBuildOrderBy(t *testing.T) {
	allowed := map[string]string{
		"name":       "name",
		"created_at": "created_at",
		"status":     "status",
	}

	tests := []struct {
		name string
		sort string
		want string
	}{
		{"empty defaults to newest first", "", " ORDER BY created_at DESC"},
		{"single asc", "name", " ORDER BY name ASC"},
		{"single desc", "-name", " ORDER BY name DESC"},
		{"multiple", "status,-created_at", " ORDER BY status ASC, created_at DESC"},
		{"unknown key ignored", "evil;DROP TABLE", " ORDER BY created_at DESC"},
		{"mixed known and unknown", "bogus,name", " ORDER BY name ASC"},
		{"blank segments skipped", ",,name,", " ORDER BY name ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildOrderBy(tt.sort, allowed))
		})
	}
}

func TestBuildOrderByNoCreatedAtColumn(t *testing.T) {
	// tables whose whitelist omits created_at still get a stable default
	got := buildOrderBy("", map[string]string{"name": "name"})
	assert.Equal(t, " ORDER BY created_at DESC", got)
}
