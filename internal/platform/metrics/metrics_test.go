package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordTokenRejection(t *testing.T) {
	before := testutil.ToFloat64(TokenRejectionsTotal.WithLabelValues("expired"))

	RecordTokenRejection("expired")
	RecordTokenRejection("expired")

	after := testutil.ToFloat64(TokenRejectionsTotal.WithLabelValues("expired"))
	assert.Equal(t, before+2, after)
}

func TestRecordForbidden(t *testing.T) {
	before := testutil.ToFloat64(ForbiddenTotal.WithLabelValues("role"))
	RecordForbidden("role")
	assert.Equal(t, before+1, testutil.ToFloat64(ForbiddenTotal.WithLabelValues("role")))
}

func TestRecordAccountEvent(t *testing.T) {
	before := testutil.ToFloat64(AccountEventsTotal.WithLabelValues("account.registered"))
	RecordAccountEvent("account.registered")
	assert.Equal(t, before+1, testutil.ToFloat64(AccountEventsTotal.WithLabelValues("account.registered")))
}

func TestHandler(t *testing.T) {
	RecordRequest(http.MethodGet, "/health", "200", 0.01)

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "taskboard_http_requests_total")
}
