package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds every metric Warrify exports.
type AppMetrics struct {
	// HTTP
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec
	RateLimitedTotal    CounterVec

	// Auth
	AuthAttemptsTotal CounterVec

	// Claim intelligence
	RiskAssessmentsTotal CounterVec
	CacheHitsTotal       CounterVec
	CacheMissesTotal     CounterVec
	AssistantRequests    CounterVec
	AssistantDuration    HistogramVec

	// Reminders and notifications
	ReminderTicksTotal    CounterVec
	ReminderTickDuration  HistogramVec
	RemindersTotal        CounterVec
	NotificationsTotal    CounterVec
	NotificationEvents    CounterVec
	MessageProcessSeconds HistogramVec

	// Invoices
	InvoiceUploadsTotal CounterVec
	InvoiceUploadBytes  HistogramVec

	// Health
	HealthCheckStatus GaugeVec
	ErrorsTotal       CounterVec
}

var (
	DefaultHTTPDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultTickDurationBuckets = []float64{.1, .5, 1, 5, 10, 30, 60, 120, 240}
	DefaultLLMDurationBuckets  = []float64{.25, .5, 1, 2, 5, 10, 30}
	DefaultUploadSizeBuckets   = []float64{10e3, 100e3, 500e3, 1e6, 2.5e6, 5e6}
)

// NewAppMetrics registers all metrics on collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "In-flight HTTP requests")
	m.RateLimitedTotal = collector.RegisterCounter("rate_limited_requests_total", "Requests rejected by a rate limit", "bucket")

	m.AuthAttemptsTotal = collector.RegisterCounter("auth_attempts_total", "Signup and login attempts", "operation", "result")

	m.RiskAssessmentsTotal = collector.RegisterCounter("risk_assessments_total", "Claim risk assessments served", "category")
	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Cache misses", "cache")
	m.AssistantRequests = collector.RegisterCounter("assistant_requests_total", "Assistant replies by source", "source")
	m.AssistantDuration = collector.RegisterHistogram("assistant_request_duration_seconds", "Assistant reply latency", DefaultLLMDurationBuckets, "source")

	m.ReminderTicksTotal = collector.RegisterCounter("reminder_ticks_total", "Reminder scheduler ticks", "outcome")
	m.ReminderTickDuration = collector.RegisterHistogram("reminder_tick_duration_seconds", "Reminder tick duration", DefaultTickDurationBuckets)
	m.RemindersTotal = collector.RegisterCounter("reminders_total", "Reminder candidates by result", "type", "result")
	m.NotificationsTotal = collector.RegisterCounter("notifications_total", "Notifications recorded", "type", "status")
	m.NotificationEvents = collector.RegisterCounter("notification_events_consumed_total", "Notification events consumed from the event topic", "type", "status")
	m.MessageProcessSeconds = collector.RegisterHistogram("mq_process_duration_seconds", "Message processing duration", DefaultHTTPDurationBuckets, "topic")

	m.InvoiceUploadsTotal = collector.RegisterCounter("invoice_uploads_total", "Invoice uploads", "result")
	m.InvoiceUploadBytes = collector.RegisterHistogram("invoice_upload_bytes", "Accepted invoice size", DefaultUploadSizeBuckets)

	m.HealthCheckStatus = collector.RegisterGauge("health_check_status", "Health check status (1=up, 0=down)", "component")
	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Total errors", "component", "error_code")

	return m
}

// The Record helpers accept a nil *AppMetrics so callers can run without metrics.

func RecordHTTPRequest(m *AppMetrics, method, path string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func RecordRateLimited(m *AppMetrics, bucket string) {
	if m == nil {
		return
	}
	m.RateLimitedTotal.WithLabelValues(bucket).Inc()
}

func RecordAuthAttempt(m *AppMetrics, operation string, success bool) {
	if m == nil {
		return
	}
	m.AuthAttemptsTotal.WithLabelValues(operation, result(success)).Inc()
}

func RecordRiskAssessment(m *AppMetrics, category string) {
	if m == nil {
		return
	}
	m.RiskAssessmentsTotal.WithLabelValues(category).Inc()
}

func RecordCacheAccess(m *AppMetrics, cache string, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHitsTotal.WithLabelValues(cache).Inc()
	} else {
		m.CacheMissesTotal.WithLabelValues(cache).Inc()
	}
}

// RecordAssistant counts one assistant reply. source is "gemini" or "fallback".
func RecordAssistant(m *AppMetrics, source string, duration time.Duration) {
	if m == nil {
		return
	}
	m.AssistantRequests.WithLabelValues(source).Inc()
	m.AssistantDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordReminderTick records a finished tick. outcome is "completed",
// "skipped" (another instance held the lock) or "failed".
func RecordReminderTick(m *AppMetrics, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.ReminderTicksTotal.WithLabelValues(outcome).Inc()
	if outcome != "skipped" {
		m.ReminderTickDuration.WithLabelValues().Observe(duration.Seconds())
	}
}

// RecordReminder counts one reminder candidate; result is "sent", "failed"
// or "duplicate".
func RecordReminder(m *AppMetrics, notificationType, result string) {
	if m == nil {
		return
	}
	m.RemindersTotal.WithLabelValues(notificationType, result).Inc()
}

func RecordNotification(m *AppMetrics, notificationType, status string) {
	if m == nil {
		return
	}
	m.NotificationsTotal.WithLabelValues(notificationType, status).Inc()
}

func RecordNotificationEvent(m *AppMetrics, topic, notificationType, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.NotificationEvents.WithLabelValues(notificationType, status).Inc()
	m.MessageProcessSeconds.WithLabelValues(topic).Observe(duration.Seconds())
}

// RecordInvoiceUpload counts an upload attempt; size is observed only when
// the upload was stored.
func RecordInvoiceUpload(m *AppMetrics, outcome string, size int64) {
	if m == nil {
		return
	}
	m.InvoiceUploadsTotal.WithLabelValues(outcome).Inc()
	if outcome == "stored" {
		m.InvoiceUploadBytes.WithLabelValues().Observe(float64(size))
	}
}

func SetHealth(m *AppMetrics, component string, up bool) {
	if m == nil {
		return
	}
	v := 0.0
	if up {
		v = 1
	}
	m.HealthCheckStatus.WithLabelValues(component).Set(v)
}

func RecordError(m *AppMetrics, component, code string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(component, code).Inc()
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
