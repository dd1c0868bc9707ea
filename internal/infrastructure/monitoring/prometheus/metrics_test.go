package prometheus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAppMetrics(t *testing.T) (*AppMetrics, MetricsCollector) {
	t.Helper()
	c := newTestCollector(t)
	return NewAppMetrics(c), c
}

func TestNewAppMetrics_AllMetricsRegistered(t *testing.T) {
	m, _ := newTestAppMetrics(t)
	require.NotNil(t, m)

	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.RateLimitedTotal)
	assert.NotNil(t, m.RiskAssessmentsTotal)
	assert.NotNil(t, m.ReminderTicksTotal)
	assert.NotNil(t, m.NotificationEvents)
	assert.NotNil(t, m.InvoiceUploadsTotal)
}

func TestRecordHTTPRequest(t *testing.T) {
	m, c := newTestAppMetrics(t)
	RecordHTTPRequest(m, "GET", "/api/products", 200, 20*time.Millisecond)

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_http_requests_total{method="GET",path="/api/products",status_code="200"} 1`)
	assert.Contains(t, out, `test_unit_http_request_duration_seconds_count{method="GET",path="/api/products"} 1`)
}

func TestRecordAuthAttempt(t *testing.T) {
	m, c := newTestAppMetrics(t)
	RecordAuthAttempt(m, "login", true)
	RecordAuthAttempt(m, "login", false)
	RecordAuthAttempt(m, "login", false)

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_auth_attempts_total{operation="login",result="success"} 1`)
	assert.Contains(t, out, `test_unit_auth_attempts_total{operation="login",result="failure"} 2`)
}

func TestRecordCacheAccess(t *testing.T) {
	m, c := newTestAppMetrics(t)
	RecordCacheAccess(m, "risk", true)
	RecordCacheAccess(m, "risk", false)

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_cache_hits_total{cache="risk"} 1`)
	assert.Contains(t, out, `test_unit_cache_misses_total{cache="risk"} 1`)
}

func TestRecordReminderTick_SkippedHasNoDuration(t *testing.T) {
	m, c := newTestAppMetrics(t)
	RecordReminderTick(m, "skipped", time.Second)
	RecordReminderTick(m, "completed", 2*time.Second)

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_reminder_ticks_total{outcome="skipped"} 1`)
	assert.Contains(t, out, `test_unit_reminder_ticks_total{outcome="completed"} 1`)
	assert.Contains(t, out, "test_unit_reminder_tick_duration_seconds_count 1")
}

func TestRecordReminderAndNotification(t *testing.T) {
	m, c := newTestAppMetrics(t)
	RecordReminder(m, "30_DAY", "sent")
	RecordReminder(m, "7_DAY", "duplicate")
	RecordNotification(m, "30_DAY", "SENT")
	RecordNotificationEvent(m, "notification.events", "30_DAY", "SENT", time.Millisecond)

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_reminders_total{result="sent",type="30_DAY"} 1`)
	assert.Contains(t, out, `test_unit_reminders_total{result="duplicate",type="7_DAY"} 1`)
	assert.Contains(t, out, `test_unit_notifications_total{status="SENT",type="30_DAY"} 1`)
	assert.Contains(t, out, `test_unit_notification_events_consumed_total{status="SENT",type="30_DAY"} 1`)
	assert.Contains(t, out, `test_unit_mq_process_duration_seconds_count{topic="notification.events"} 1`)
}

func TestRecordInvoiceUpload(t *testing.T) {
	m, c := newTestAppMetrics(t)
	RecordInvoiceUpload(m, "stored", 2048)
	RecordInvoiceUpload(m, "rejected", 0)

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_invoice_uploads_total{result="stored"} 1`)
	assert.Contains(t, out, `test_unit_invoice_uploads_total{result="rejected"} 1`)
	assert.Contains(t, out, "test_unit_invoice_upload_bytes_count 1")
}

func TestRecordAssistantAndHealth(t *testing.T) {
	m, c := newTestAppMetrics(t)
	RecordAssistant(m, "fallback", 0)
	SetHealth(m, "redis", true)
	SetHealth(m, "minio", false)
	RecordError(m, "http", "COMMON_001")
	RecordRateLimited(m, "auth")
	RecordRiskAssessment(m, "Electronics")

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_assistant_requests_total{source="fallback"} 1`)
	assert.Contains(t, out, `test_unit_health_check_status{component="redis"} 1`)
	assert.Contains(t, out, `test_unit_health_check_status{component="minio"} 0`)
	assert.Contains(t, out, `test_unit_errors_total{component="http",error_code="COMMON_001"} 1`)
	assert.Contains(t, out, `test_unit_rate_limited_requests_total{bucket="auth"} 1`)
	assert.Contains(t, out, `test_unit_risk_assessments_total{category="Electronics"} 1`)
}

func TestRecordHelpers_NilMetrics(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordHTTPRequest(nil, "GET", "/", 200, 0)
		RecordReminderTick(nil, "completed", 0)
		RecordInvoiceUpload(nil, "stored", 1)
		SetHealth(nil, "db", true)
	})
}

func TestConcurrentMetricRecording(t *testing.T) {
	m, c := newTestAppMetrics(t)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordHTTPRequest(m, "POST", "/api/login", 200, time.Millisecond)
		}()
	}
	wg.Wait()

	assert.Contains(t, scrapeMetrics(t, c), `test_unit_http_requests_total{method="POST",path="/api/login",status_code="200"} 100`)
}
