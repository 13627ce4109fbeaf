package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrometheus(t *testing.T) (*PrometheusMiddleware, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)
	return m, reg
}

func TestPrometheusMiddleware(t *testing.T) {
	promMiddleware, _ := newTestPrometheus(t)

	app := fiber.New()
	app.Use(promMiddleware.Handler())

	app.Get("/temas", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Delete("/temas", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/error", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "bad request")
	})

	resp, _ := app.Test(httptest.NewRequest("GET", "/temas", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), testutil.ToFloat64(promMiddleware.requestCount.WithLabelValues("GET", "/temas", "200")))

	resp, _ = app.Test(httptest.NewRequest("DELETE", "/temas", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), testutil.ToFloat64(promMiddleware.requestCount.WithLabelValues("DELETE", "/temas", "200")))

	app.Test(httptest.NewRequest("GET", "/error", nil))
	assert.Equal(t, float64(1), testutil.ToFloat64(promMiddleware.requestCount.WithLabelValues("GET", "/error", "400")))
}

func TestPrometheusMiddleware_ExcludeMetrics(t *testing.T) {
	promMiddleware, reg := newTestPrometheus(t)

	app := fiber.New()
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	app.Test(httptest.NewRequest("GET", "/metrics", nil))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		assert.Empty(t, mf.GetMetric(), mf.GetName())
	}
}

func TestPrometheusMiddleware_PathPattern(t *testing.T) {
	promMiddleware, _ := newTestPrometheus(t)

	app := fiber.New()
	app.Use(promMiddleware.Handler())
	app.Get("/postagens/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	app.Test(httptest.NewRequest("GET", "/postagens/123", nil))

	assert.Equal(t, float64(1), testutil.ToFloat64(promMiddleware.requestCount.WithLabelValues("GET", "/postagens/:id", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(promMiddleware.requestDuration))
}

func TestNewPrometheusMiddleware_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	_, err = NewPrometheusMiddleware(reg)
	assert.Error(t, err)
}
