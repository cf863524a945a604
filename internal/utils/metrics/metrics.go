package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Invitation metrics
	InvitesSentTotal     *prometheus.CounterVec
	InvitesVerifiedTotal *prometheus.CounterVec
	InvitesAcceptedTotal *prometheus.CounterVec
	InvitesFailedTotal   *prometheus.CounterVec

	// Notification metrics
	NotificationsTotal        *prometheus.CounterVec
	NotificationFailuresTotal *prometheus.CounterVec

	// Mail metrics
	MailSentTotal   *prometheus.CounterVec
	MailFailedTotal *prometheus.CounterVec

	// Database metrics
	DBQueryDuration   *prometheus.HistogramVec
	DBConnectionsOpen prometheus.Gauge

	// Cache metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "provely"
	}

	return &Metrics{
		// HTTP metrics
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),

		// Invitation metrics
		InvitesSentTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "invites",
				Name:      "sent_total",
				Help:      "Total number of invitations sent",
			},
			[]string{"domain"},
		),
		InvitesVerifiedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "invites",
				Name:      "verified_total",
				Help:      "Total number of invitations verified",
			},
			[]string{"domain"},
		),
		InvitesAcceptedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "invites",
				Name:      "accepted_total",
				Help:      "Total number of invitations accepted",
			},
			[]string{"domain"},
		),
		InvitesFailedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "invites",
				Name:      "failed_total",
				Help:      "Total number of failed verifications",
			},
			[]string{"domain"},
		),

		// Notification metrics
		NotificationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "notifications",
				Name:      "dispatched_total",
				Help:      "Total number of notifications dispatched",
			},
			[]string{"type"},
		),
		NotificationFailuresTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "notifications",
				Name:      "failures_total",
				Help:      "Total number of notification dispatch failures",
			},
			[]string{"stage"}, // persist, push
		),

		// Mail metrics
		MailSentTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "mail",
				Name:      "sent_total",
				Help:      "Total number of emails sent",
			},
			[]string{"template"},
		),
		MailFailedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "mail",
				Name:      "failed_total",
				Help:      "Total number of email send failures",
			},
			[]string{"template"},
		),

		// Database metrics
		DBQueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "db",
				Name:      "query_duration_seconds",
				Help:      "Database query duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation"}, // select, insert, update, delete
		),
		DBConnectionsOpen: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "db",
				Name:      "connections_open",
				Help:      "Number of open database connections",
			},
		),

		// Cache metrics
		CacheHitsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "hits_total",
				Help:      "Total number of cache hits",
			},
			[]string{"cache"},
		),
		CacheMissesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "misses_total",
				Help:      "Total number of cache misses",
			},
			[]string{"cache"},
		),
	}
}

// --- Convenience methods ---

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	statusStr := statusCodeToString(status)
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordInviteSent records sent invitations for a domain.
func (m *Metrics) RecordInviteSent(domain string, count int) {
	if count > 0 {
		m.InvitesSentTotal.WithLabelValues(domain).Add(float64(count))
	}
}

// RecordInviteVerified records a completed verification.
func (m *Metrics) RecordInviteVerified(domain string) {
	m.InvitesVerifiedTotal.WithLabelValues(domain).Inc()
}

// RecordInviteAccepted records an accepted membership invitation.
func (m *Metrics) RecordInviteAccepted(domain string) {
	m.InvitesAcceptedTotal.WithLabelValues(domain).Inc()
}

// RecordInviteFailed records a verification rejected by the gate answers.
func (m *Metrics) RecordInviteFailed(domain string) {
	m.InvitesFailedTotal.WithLabelValues(domain).Inc()
}

// RecordNotification records a dispatched notification.
func (m *Metrics) RecordNotification(notificationType string) {
	m.NotificationsTotal.WithLabelValues(notificationType).Inc()
}

// RecordNotificationFailure records a failed dispatch stage.
func (m *Metrics) RecordNotificationFailure(stage string) {
	m.NotificationFailuresTotal.WithLabelValues(stage).Inc()
}

// RecordMailSent records a successfully sent email.
func (m *Metrics) RecordMailSent(template string) {
	m.MailSentTotal.WithLabelValues(template).Inc()
}

// RecordMailFailed records a failed email send.
func (m *Metrics) RecordMailFailed(template string) {
	m.MailFailedTotal.WithLabelValues(template).Inc()
}

// RecordDBQuery records a database query.
func (m *Metrics) RecordDBQuery(operation string, duration time.Duration) {
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCacheHit records a cache hit.
func (m *Metrics) RecordCacheHit(cache string) {
	m.CacheHitsTotal.WithLabelValues(cache).Inc()
}

// RecordCacheMiss records a cache miss.
func (m *Metrics) RecordCacheMiss(cache string) {
	m.CacheMissesTotal.WithLabelValues(cache).Inc()
}

// statusCodeToString converts an HTTP status code to a string category.
func statusCodeToString(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
