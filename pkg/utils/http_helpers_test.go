package utils

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "rental-system/pkg/errors"
)

func TestParseFilterFromQueryDefaults(t *testing.T) {
	filter := ParseFilterFromQuery(url.Values{})

	assert.Equal(t, DefaultLimit, filter.Limit)
	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, 0, filter.Offset)
	assert.True(t, filter.WithPagination)
}

func TestParseFilterFromQueryLimitCap(t *testing.T) {
	values := url.Values{}
	values.Set("limit", "9000")

	filter := ParseFilterFromQuery(values)
	assert.Equal(t, MaxLimit, filter.Limit)
}

func TestParseFilterFromQuerySortAndFilter(t *testing.T) {
	values := url.Values{}
	values.Set("search", "JBL")
	values.Set("sort[created_at]", "desc")
	values.Set("sort[name]", "up") // недопустимое направление игнорируется
	values.Set("filter[category_id]", "3")

	filter := ParseFilterFromQuery(values)
	assert.Equal(t, "JBL", filter.Search)
	assert.Equal(t, map[string]string{"created_at": "desc"}, filter.Sort)
	assert.Equal(t, "3", filter.Filter["category_id"])
}

func TestParseFilterFromQueryOffsetFromPage(t *testing.T) {
	values := url.Values{}
	values.Set("page", "3")
	values.Set("limit", "10")

	filter := ParseFilterFromQuery(values)
	assert.Equal(t, 20, filter.Offset)
}

func errorStatus(t *testing.T, err error) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, ErrorResponse(c, err, zap.NewNop()))
	return rec.Code
}

func TestErrorResponseStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, errorStatus(t, apperrors.ErrNotFound))
	assert.Equal(t, http.StatusBadRequest, errorStatus(t, apperrors.ErrBadRequest))
	assert.Equal(t, http.StatusUnauthorized, errorStatus(t, apperrors.ErrForbidden))
	assert.Equal(t, http.StatusUnauthorized, errorStatus(t, apperrors.ErrInvalidCredentials))
}

func TestErrorResponseHttpError(t *testing.T) {
	err := apperrors.NewHttpError(http.StatusBadRequest, "Неверный ID", nil, nil)
	assert.Equal(t, http.StatusBadRequest, errorStatus(t, err))
}

func TestErrorResponseUnknownErrorIs500(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, errorStatus(t, assert.AnError))
}
