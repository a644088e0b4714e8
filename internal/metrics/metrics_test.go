package metrics

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	m := New("backend-1")

	m.Start()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.inFlight))

	m.Observe(http.MethodGet, http.StatusOK, 15*time.Millisecond)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "404")))
}

func TestHandlerExposition(t *testing.T) {
	m := New("backend-1")
	m.Start()
	m.Observe(http.MethodGet, http.StatusNotFound, time.Millisecond)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `lbapp_http_requests_total{code="404",method="GET",server="backend-1"} 1`)
	assert.Contains(t, body, "lbapp_http_request_duration_seconds_bucket")
	assert.Contains(t, body, "go_goroutines")
}

func TestInstancesAreIndependent(t *testing.T) {
	a := New("a")
	b := New("b")

	a.Start()
	a.Observe(http.MethodGet, http.StatusOK, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.requests.WithLabelValues("GET", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.requests.WithLabelValues("GET", "200")))
}

func TestObserveFoldsUnknownMethods(t *testing.T) {
	m := New("backend-1")

	for i := 0; i < 50; i++ {
		m.Start()
		m.Observe(fmt.Sprintf("MADEUP%d", i), http.StatusMethodNotAllowed, time.Millisecond)
	}
	m.Start()
	m.Observe(http.MethodDelete, http.StatusMethodNotAllowed, time.Millisecond)

	assert.Equal(t, 2, testutil.CollectAndCount(m.requests))
	assert.Equal(t, 50.0, testutil.ToFloat64(m.requests.WithLabelValues("other", "405")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("DELETE", "405")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}
