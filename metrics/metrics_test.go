package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCall(t *testing.T) {
	before := testutil.ToFloat64(APIRequests.WithLabelValues("metrics-test", "success"))
	RecordCall("metrics-test", nil, false, 10*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(APIRequests.WithLabelValues("metrics-test", "success")))

	RecordCall("metrics-test", errors.New("gone"), true, time.Millisecond)
	assert.Equal(t, float64(1), testutil.ToFloat64(APIRequests.WithLabelValues("metrics-test", "not_found")))

	RecordCall("metrics-test", errors.New("boom"), false, time.Millisecond)
	assert.Equal(t, float64(1), testutil.ToFloat64(APIRequests.WithLabelValues("metrics-test", "error")))
}

func TestSetOnline(t *testing.T) {
	SetOnline(false)
	assert.Equal(t, float64(0), testutil.ToFloat64(NetworkOnline))
	SetOnline(true)
	assert.Equal(t, float64(1), testutil.ToFloat64(NetworkOnline))
}
