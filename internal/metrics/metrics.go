// Package metrics exports Prometheus counters for the HTTP layer and the OTP flows.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OTP purposes.
const (
	PurposeLogin       = "login"
	PurposePhoneChange = "phone_change"
)

// Verification results.
const (
	ResultSuccess  = "success"
	ResultMismatch = "mismatch"
	ResultMissing  = "missing"
)

// Recorder is what services report to.
type Recorder interface {
	OTPIssued(purpose string)
	OTPVerified(purpose, result string)
	SessionsEvicted(n int)
	CacheLookup(hit bool)
}

// NoopRecorder discards everything.
type NoopRecorder struct{}

func (NoopRecorder) OTPIssued(string)           {}
func (NoopRecorder) OTPVerified(string, string) {}
func (NoopRecorder) SessionsEvicted(int)        {}
func (NoopRecorder) CacheLookup(bool)           {}

type Prometheus struct {
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	otpIssued       *prometheus.CounterVec
	otpVerified     *prometheus.CounterVec
	sessionsEvicted prometheus.Counter
	cacheLookups    *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		otpIssued: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otp_issued_total",
				Help: "Total number of OTPs issued.",
			},
			[]string{"purpose"},
		),
		otpVerified: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otp_verifications_total",
				Help: "Total number of OTP verification attempts.",
			},
			[]string{"purpose", "result"},
		),
		sessionsEvicted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sessions_evicted_total",
				Help: "Sessions destroyed to keep users under the active session cap.",
			},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "profile_cache_lookups_total",
				Help: "Profile cache lookups by outcome.",
			},
			[]string{"outcome"},
		),
	}

	reg.MustRegister(
		p.httpRequests,
		p.httpDuration,
		p.otpIssued,
		p.otpVerified,
		p.sessionsEvicted,
		p.cacheLookups,
	)
	return p
}

func (p *Prometheus) OTPIssued(purpose string) {
	p.otpIssued.WithLabelValues(purpose).Inc()
}

func (p *Prometheus) OTPVerified(purpose, result string) {
	p.otpVerified.WithLabelValues(purpose, result).Inc()
}

func (p *Prometheus) SessionsEvicted(n int) {
	if n > 0 {
		p.sessionsEvicted.Add(float64(n))
	}
}

func (p *Prometheus) CacheLookup(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	p.cacheLookups.WithLabelValues(outcome).Inc()
}

// ObserveHTTP records one served request.
func (p *Prometheus) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	p.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}
