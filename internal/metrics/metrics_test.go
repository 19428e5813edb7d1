package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordConstruction(t *testing.T) {
	attempts := testutil.ToFloat64(constructions)
	failures := testutil.ToFloat64(constructionFailures)

	RecordConstruction(time.Millisecond, nil)
	RecordConstruction(time.Millisecond, errors.New("boom"))

	if got := testutil.ToFloat64(constructions) - attempts; got != 2 {
		t.Errorf("constructions delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(constructionFailures) - failures; got != 1 {
		t.Errorf("construction failures delta = %v, want 1", got)
	}
}

func TestRecordInvocation(t *testing.T) {
	counter := invocations.WithLabelValues("v2", OutcomeSuccess)
	before := testutil.ToFloat64(counter)

	RecordInvocation("v2", OutcomeSuccess)

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("invocations delta = %v, want 1", got)
	}
}

func TestRequestStarted(t *testing.T) {
	before := testutil.ToFloat64(httpInFlight)
	done := RequestStarted()
	if got := testutil.ToFloat64(httpInFlight) - before; got != 1 {
		t.Errorf("in-flight delta = %v, want 1", got)
	}
	done()
	if got := testutil.ToFloat64(httpInFlight); got != before {
		t.Errorf("in-flight = %v, want %v", got, before)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	RecordHTTPRequest("GET", "/hello", "200", 10*time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "serverless_gin_api_http_requests_total") {
		t.Error("exposition is missing the HTTP request counter")
	}
}
