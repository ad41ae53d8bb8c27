package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"virtual_gallery/internal/lib/logger/handlers/slogdiscard"
	"virtual_gallery/internal/transport/http/dto/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestPathID(t *testing.T) {
	tests := []struct {
		value  string
		wantID int64
		wantOK bool
	}{
		{"1", 1, true},
		{"42", 42, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"1.5", 0, false},
		{"", 0, false},
		{"99999999999999999999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			c, _ := newContext(http.MethodGet, "/")
			c.SetParamNames("id")
			c.SetParamValues(tt.value)

			id, ok := pathID(c, "id")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestMissingRequired(t *testing.T) {
	type payload struct {
		Name  string `validate:"required"`
		Price int    `validate:"gte=0"`
	}

	v := validator.New()

	assert.True(t, missingRequired(v.Struct(payload{Price: 1})))
	assert.False(t, missingRequired(v.Struct(payload{Name: "x", Price: -1})))
	assert.False(t, missingRequired(errors.New("plain")))
	assert.False(t, missingRequired(nil))
}

func TestHTTPErrorHandler(t *testing.T) {
	r := NewRouter(slogdiscard.NewDiscardLogger(), nil, nil, nil, nil)

	tests := []struct {
		name     string
		method   string
		target   string
		err      error
		wantCode int
		wantBody response.ErrorResponse
	}{
		{
			name:     "unknown api route",
			method:   http.MethodGet,
			target:   "/api/nope",
			err:      echo.ErrNotFound,
			wantCode: http.StatusNotFound,
			wantBody: response.ErrAPIRouteNotFound("/api/nope"),
		},
		{
			name:     "unsupported method on api",
			method:   http.MethodPatch,
			target:   "/api/pictures",
			err:      echo.ErrMethodNotAllowed,
			wantCode: http.StatusNotFound,
			wantBody: response.ErrAPIRouteNotFound("/api/pictures"),
		},
		{
			name:     "missing static file",
			method:   http.MethodGet,
			target:   "/apis.html",
			err:      echo.ErrNotFound,
			wantCode: http.StatusNotFound,
			wantBody: response.Error("Not Found"),
		},
		{
			name:     "plain error",
			method:   http.MethodGet,
			target:   "/api/pictures",
			err:      errors.New("boom"),
			wantCode: http.StatusInternalServerError,
			wantBody: response.ErrInternal,
		},
		{
			name:     "internal http error hides details",
			method:   http.MethodGet,
			target:   "/api/pictures",
			err:      echo.NewHTTPError(http.StatusBadGateway, "upstream secrets").SetInternal(errors.New("x")),
			wantCode: http.StatusBadGateway,
			wantBody: response.ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(tt.method, tt.target)

			r.HTTPErrorHandler(tt.err, c)

			require.Equal(t, tt.wantCode, rec.Code)

			var got response.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.wantBody, got)
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	r := NewRouter(slogdiscard.NewDiscardLogger(), nil, nil, nil, nil)
	c, rec := newContext(http.MethodGet, "/api/pictures")

	require.NoError(t, c.NoContent(http.StatusNoContent))
	r.HTTPErrorHandler(errors.New("late"), c)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
