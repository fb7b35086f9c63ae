package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordGateway(t *testing.T) {
	before := testutil.ToFloat64(GatewayRequestsTotal.WithLabelValues("ok"))
	RecordGateway("ok", 1500*time.Millisecond)
	after := testutil.ToFloat64(GatewayRequestsTotal.WithLabelValues("ok"))
	assert.Equal(t, before+1, after)
}

func TestRecordStorageError(t *testing.T) {
	before := testutil.ToFloat64(StorageErrorsTotal.WithLabelValues("save"))
	RecordStorageError("save")
	assert.Equal(t, before+1, testutil.ToFloat64(StorageErrorsTotal.WithLabelValues("save")))
}

func TestSetActiveSessions(t *testing.T) {
	SetActiveSessions(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(ActiveSessions))
}
