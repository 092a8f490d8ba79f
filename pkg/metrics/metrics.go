package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "folio", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "folio", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	// ContentMutations counts successful writes per collection and operation.
	ContentMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "folio", Name: "content_mutations_total", Help: "Successful content writes by entity and operation."},
		[]string{"entity", "op"},
	)
	UploadsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "folio", Name: "uploads_rejected_total", Help: "Rejected image uploads by reason."},
		[]string{"reason"},
	)
	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "folio", Name: "login_attempts_total", Help: "Admin login attempts by outcome."},
		[]string{"outcome"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(ContentMutations)
	reg.MustRegister(UploadsRejected)
	reg.MustRegister(LoginAttempts)
}
