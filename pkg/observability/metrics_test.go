package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSessionTokenRequest(t *testing.T) {
	counter := sessionTokenRequestsTotal.WithLabelValues("UAT", "rejected")
	before := testutil.ToFloat64(counter)

	RecordSessionTokenRequest("UAT", "rejected", 120*time.Millisecond)
	RecordSessionTokenRequest("UAT", "rejected", 80*time.Millisecond)

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestPaymentAttemptGauge(t *testing.T) {
	before := testutil.ToFloat64(paymentAttemptsInFlight)
	finished := paymentAttemptsTotal.WithLabelValues("NFC", "success")
	finishedBefore := testutil.ToFloat64(finished)

	PaymentAttemptStarted()
	assert.Equal(t, before+1, testutil.ToFloat64(paymentAttemptsInFlight))

	PaymentAttemptFinished("NFC", "success")
	assert.Equal(t, before, testutil.ToFloat64(paymentAttemptsInFlight))
	assert.Equal(t, finishedBefore+1, testutil.ToFloat64(finished))
}

func TestMetricsHandler(t *testing.T) {
	RecordSessionTokenRequest("SIT", "success", time.Millisecond)

	server := httptest.NewServer(NewMetricsHandler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "amwal_session_token_requests_total")

	ready, err := http.Get(server.URL + "/ready")
	require.NoError(t, err)
	defer ready.Body.Close()
	assert.Equal(t, http.StatusOK, ready.StatusCode)
}
