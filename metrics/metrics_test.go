package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveBackend(t *testing.T) {
	m := New()
	m.ObserveBackend("query", 10*time.Millisecond, nil)
	m.ObserveBackend("query", 10*time.Millisecond, errors.New("boom"))
	m.ObserveBackend("query", 10*time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.backendRequests.WithLabelValues("query", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.backendRequests.WithLabelValues("query", "error")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveBackend("query", time.Second, nil)
		m.ObserveQuery("demo", "success")
		m.ObserveUpload("error")
		m.SetActiveSessions(3)
	})
}

func TestGinMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	m.ObserveQuery("backend", "success")
	m.SetActiveSessions(2)

	r := gin.New()
	r.Use(m.GinMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/ping", "200")))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "insightiq_queries_total"))
	assert.True(t, strings.Contains(body, "insightiq_active_sessions 2"))
}
