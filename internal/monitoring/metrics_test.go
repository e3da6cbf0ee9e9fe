package monitoring

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIncHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("/api/occupancy/summary", "200"))

	IncHTTPRequest("/api/occupancy/summary", "200")
	IncHTTPRequest("/api/occupancy/summary", "200")

	assert.Equal(t, before+2, testutil.ToFloat64(httpRequests.WithLabelValues("/api/occupancy/summary", "200")))
}

func TestIncSyncRun(t *testing.T) {
	before := testutil.ToFloat64(syncRuns.WithLabelValues("completed"))

	IncSyncRun("completed")

	assert.Equal(t, before+1, testutil.ToFloat64(syncRuns.WithLabelValues("completed")))
}
