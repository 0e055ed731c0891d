package handler

import (
	"errors"
	"net/http"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCategoryKeepsProductReferences(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery(`SELECT .* FROM "categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}).
			AddRow(3, "Coffee", "Beans and grounds"))
	mock.ExpectExec(`DELETE FROM "categories"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := newTestContext(http.MethodGet, "/api/categories/3/delete", "")
	c.SetParamNames("id")
	c.SetParamValues("3")

	require.NoError(t, DeleteCategory(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Category deleted successfully")

	// Only the categories table was touched: no statement reached products,
	// so a product pointing at id 3 keeps its now-dangling category id.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCategoryUnknownIDReturnsNotFound(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery(`SELECT .* FROM "categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	c, rec := newTestContext(http.MethodGet, "/api/categories/9999", "")
	c.SetParamNames("id")
	c.SetParamValues("9999")

	require.NoError(t, GetCategory(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Category not found"}`, rec.Body.String())
}

func TestGetCategoryDatabaseFailureReturnsServerError(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery(`SELECT .* FROM "categories"`).
		WillReturnError(errors.New("connection refused"))

	c, rec := newTestContext(http.MethodGet, "/api/categories/3", "")
	c.SetParamNames("id")
	c.SetParamValues("3")

	require.NoError(t, GetCategory(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to retrieve category"}`, rec.Body.String())
}
