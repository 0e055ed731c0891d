package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Params holds the page/limit pair read from a list request. Values are not
// validated for positivity; non-positive values fall through to the database
// layer, which ignores negative offsets and limits.
type Params struct {
	Page  int
	Limit int
}

// Result carries the count metadata returned alongside every page
type Result struct {
	CurrentPage int   `json:"current_page"`
	Total       int64 `json:"total"`
}

// FromContext reads page and limit query parameters with defaults 1 and 10.
// Non-integer values fall back to the defaults.
func FromContext(c echo.Context) Params {
	return Params{
		Page:  intQueryParam(c, "page", DefaultPage),
		Limit: intQueryParam(c, "limit", DefaultLimit),
	}
}

// Offset returns the index of the first row of the requested page
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Paginate counts all rows matching the base query, then loads the requested
// window into dest, preserving the query's ordering. The count is independent
// of page and limit. Projection happens after pagination, never before, so
// one implementation serves every list endpoint.
func Paginate(query *gorm.DB, params Params, dest interface{}) (*Result, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	if err := query.Offset(params.Offset()).Limit(params.Limit).Find(dest).Error; err != nil {
		return nil, err
	}

	return &Result{CurrentPage: params.Page, Total: total}, nil
}

func intQueryParam(c echo.Context, name string, defaultValue int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
