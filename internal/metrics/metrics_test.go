package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsByRoute(t *testing.T) {
	m := New()
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/mysql/Collections/:id", func(c echo.Context) error {
		if c.Param("id") == "0" {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return c.NoContent(http.StatusOK)
	})

	for _, path := range []string{"/api/mysql/Collections/1", "/api/mysql/Collections/2", "/api/mysql/Collections/0"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/mysql/Collections/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/mysql/Collections/:id", "404")))
}

func TestAddCopied(t *testing.T) {
	m := New()
	m.AddCopied("neo4j", "Artist", 3)
	m.AddCopied("neo4j", "Artist", 0)
	m.AddCopied("neo4j", "Artist", 2)

	assert.Equal(t, 5.0, testutil.ToFloat64(m.CopiedRows.WithLabelValues("neo4j", "Artist")))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.AddCopied("mongo", "artists", 1) })
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.AddCopied("mongo", "artists", 4)

	e := echo.New()
	e.GET("/metrics", m.Handler())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `artmuseum_migrated_rows_total{step="artists",target="mongo"} 4`), body)
}
