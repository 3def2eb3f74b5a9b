package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-practice/internal/session"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/sessions/{id}", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/sessions/{id}", "418"))
	for _, id := range []string{"a", "b"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sessions/"+id, nil))
		assert.Equal(t, http.StatusTeapot, rr.Code)
	}
	assert.Equal(t, before+2, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/sessions/{id}", "418")))
}

func TestSink(t *testing.T) {
	c := sessionsSubmitted.WithLabelValues("metrics-test", "true")
	before := testutil.ToFloat64(c)
	require.NoError(t, Sink{}.Consume(context.Background(), session.Result{TestID: "metrics-test", Forced: true, Score: 40}))
	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestRegisterLiveSessions(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, RegisterLiveSessions(reg, func() int { return 3 }))

	expected := `
# HELP practice_live_sessions Sessions currently held in memory
# TYPE practice_live_sessions gauge
practice_live_sessions 3
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "practice_live_sessions"))
}

func TestHandler(t *testing.T) {
	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "practice_http_in_flight_requests")
}
