package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"virtual_gallery/internal/metrics"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMetrics(t *testing.T) {
	e := echo.New()
	e.Use(PrometheusMetrics)
	e.GET("/api/pictures/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/api/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot)
	})

	ok := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/pictures/:id", "204")
	before := testutil.ToFloat64(ok)

	for _, path := range []string{"/api/pictures/1", "/api/pictures/2"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}

	assert.Equal(t, before+2, testutil.ToFloat64(ok))

	teapot := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/boom", "418")
	before = testutil.ToFloat64(teapot)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/boom", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(teapot))
}

func TestPrometheusMetrics_FailedHandlers(t *testing.T) {
	e := echo.New()
	e.Use(PrometheusMetrics)
	e.Use(echomw.Recover())
	e.GET("/api/plain", func(c echo.Context) error {
		return errors.New("storage is down")
	})
	e.GET("/api/panic", func(c echo.Context) error {
		panic("unexpected")
	})

	tests := []struct {
		name string
		path string
	}{
		{name: "plain error", path: "/api/plain"},
		{name: "panic", path: "/api/panic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failed := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, tt.path, "500")
			okCount := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, tt.path, "200")
			before, beforeOK := testutil.ToFloat64(failed), testutil.ToFloat64(okCount)

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, before+1, testutil.ToFloat64(failed))
			assert.Equal(t, beforeOK, testutil.ToFloat64(okCount))
		})
	}
}
