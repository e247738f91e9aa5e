package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersRecord(t *testing.T) {
	m := New()

	m.OrderPlaced()
	m.OrderPlaced()
	m.StatusChanged("PAID", "customer")
	m.Notification("sent")
	m.Notification("dropped")
	m.EventDropped()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ordersPlaced))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("PAID", "customer")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues("dropped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventsDropped))
}

func TestRequestStartedTracksInFlight(t *testing.T) {
	m := New()

	done := m.RequestStarted()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpInFlight))

	done("get", "/orders", http.StatusOK)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/orders", "200")))

	m.RequestStarted()("POST", "", http.StatusNotFound)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "unmatched", "404")))
}

func TestHandlerExposesSubscribers(t *testing.T) {
	m := New()
	m.RegisterSubscribers(func() int { return 3 })

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "orders_stream_subscribers 3"))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.OrderPlaced()
		m.StatusChanged("PAID", "partner")
		m.Notification("failed")
		m.EventDropped()
		m.RegisterSubscribers(func() int { return 1 })
		m.RequestStarted()("GET", "/", http.StatusOK)
	})
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
