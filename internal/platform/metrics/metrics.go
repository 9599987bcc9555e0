package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	RequestDuration   *prometheus.HistogramVec
	Registrations     *prometheus.CounterVec
	Logins            *prometheus.CounterVec
	StatusUpdates     *prometheus.CounterVec
	TasksAssigned     *prometheus.CounterVec
	EmailsSent        *prometheus.CounterVec
	RateLimitRejected *prometheus.CounterVec
}

// New registers the metrics with reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hrcc_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		Registrations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hrcc_registrations_total",
			Help: "Applicant registrations by domain and outcome",
		}, []string{"domain", "outcome"}),
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hrcc_admin_logins_total",
			Help: "Admin login attempts by outcome",
		}, []string{"outcome"}),
		StatusUpdates: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hrcc_status_updates_total",
			Help: "Applicant status changes by domain and status",
		}, []string{"domain", "status"}),
		TasksAssigned: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hrcc_tasks_assigned_total",
			Help: "Task assignments by domain",
		}, []string{"domain"}),
		EmailsSent: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hrcc_emails_total",
			Help: "Outbound emails by outcome",
		}, []string{"outcome"}),
		RateLimitRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hrcc_rate_limited_total",
			Help: "Requests rejected by rate limiting",
		}, []string{"route"}),
	}
}

func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

func (m *Metrics) IncRegistration(domain, outcome string) {
	m.Registrations.WithLabelValues(domain, outcome).Inc()
}

func (m *Metrics) IncLogin(outcome string) {
	m.Logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) AddStatusUpdates(domain, status string, n int) {
	m.StatusUpdates.WithLabelValues(domain, status).Add(float64(n))
}

func (m *Metrics) AddTasksAssigned(domain string, n int) {
	m.TasksAssigned.WithLabelValues(domain).Add(float64(n))
}

func (m *Metrics) IncEmail(outcome string) {
	m.EmailsSent.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncRateLimited(route string) {
	m.RateLimitRejected.WithLabelValues(route).Inc()
}
