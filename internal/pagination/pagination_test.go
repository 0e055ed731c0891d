package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newContext(query string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/products?"+query, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestFromContext(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 10},
		{"explicit", "page=3&limit=25", 3, 25},
		{"page only", "page=2", 2, 10},
		{"limit only", "limit=5", 1, 5},
		{"non-numeric falls back", "page=abc&limit=xyz", 1, 10},
		// Non-positive values are passed through unvalidated; the database
		// layer ignores negative offsets and limits, so page=0 behaves like
		// page=1 and limit=-1 like no limit.
		{"zero page passes through", "page=0", 0, 10},
		{"negative limit passes through", "limit=-1", 1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := FromContext(newContext(tt.query))
			if params.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", params.Page, tt.wantPage)
			}
			if params.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", params.Limit, tt.wantLimit)
			}
		})
	}
}

func TestParamsOffset(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   int
	}{
		{"first page", Params{Page: 1, Limit: 10}, 0},
		{"second page", Params{Page: 2, Limit: 10}, 10},
		{"page five limit three", Params{Page: 5, Limit: 3}, 12},
		// Documenting the unguarded edge: page 0 yields a negative offset,
		// which the database layer drops, effectively serving page 1.
		{"zero page", Params{Page: 0, Limit: 10}, -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.Offset(); got != tt.want {
				t.Errorf("Offset() = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestWindowLengthProperty pins the item-count contract: for page ≥ 1 and
// limit ≥ 1 a page holds min(limit, total-(page-1)*limit) rows, floored at 0.
func TestWindowLengthProperty(t *testing.T) {
	window := func(total int, p Params) int {
		remaining := total - p.Offset()
		if remaining < 0 {
			return 0
		}
		if remaining < p.Limit {
			return remaining
		}
		return p.Limit
	}

	tests := []struct {
		name   string
		total  int
		params Params
		want   int
	}{
		{"full first page", 35, Params{Page: 1, Limit: 10}, 10},
		{"partial last page", 35, Params{Page: 4, Limit: 10}, 5},
		{"past the end", 35, Params{Page: 5, Limit: 10}, 0},
		{"exact fit", 30, Params{Page: 3, Limit: 10}, 10},
		{"empty table", 0, Params{Page: 1, Limit: 10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := window(tt.total, tt.params); got != tt.want {
				t.Errorf("window = %d, want %d", got, tt.want)
			}
		})
	}
}
