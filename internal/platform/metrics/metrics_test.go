package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncLogin("success")
	m.IncLogin("success")
	m.IncLogin("invalid_credentials")
	m.AddStatusUpdates("technical", "shortlisted", 3)
	m.AddTasksAssigned("creative", 2)
	m.IncEmail("failed")
	m.IncRateLimited("login")
	m.ObserveRequest(http.MethodGet, "/health", http.StatusOK, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Logins.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Logins.WithLabelValues("invalid_credentials")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.StatusUpdates.WithLabelValues("technical", "shortlisted")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TasksAssigned.WithLabelValues("creative")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EmailsSent.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimitRejected.WithLabelValues("login")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
}
