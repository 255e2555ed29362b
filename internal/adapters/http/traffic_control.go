package httpadapter

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// trafficControl guards the /v1 API with a global token bucket and an
// in-flight gate. Health and metrics endpoints bypass both.
func (rt *Router) trafficControl(next http.Handler) http.Handler {
	guarded := next
	if rt.maxInFlight > 0 {
		guarded = backpressureMiddleware(guarded, rt.maxInFlight, rt.backpressureWait)
	}
	if rt.rateLimitRPS > 0 {
		guarded = rateLimitMiddleware(guarded, rt.rateLimitRPS, rt.rateLimitBurst)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v1/") {
			next.ServeHTTP(w, r)
			return
		}
		recorder := &rejectRecorder{ResponseWriter: w}
		guarded.ServeHTTP(recorder, r)
		if recorder.reason != "" && rt.metrics != nil {
			rt.metrics.RecordRejected(serviceName, recorder.reason)
		}
	})
}

func rateLimitMiddleware(next http.Handler, rps float64, burst int) http.Handler {
	if burst <= 0 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limiter.Allow() {
			next.ServeHTTP(w, r)
			return
		}

		reservation := limiter.Reserve()
		delay := reservation.Delay()
		reservation.Cancel()

		retryAfter := int(math.Ceil(delay.Seconds()))
		if retryAfter < 1 {
			retryAfter = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		markRejected(w, "rate_limit")
		writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
	})
}

func backpressureMiddleware(next http.Handler, maxInFlight int, wait time.Duration) http.Handler {
	slots := make(chan struct{}, maxInFlight)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case slots <- struct{}{}:
		default:
			timer := time.NewTimer(wait)
			select {
			case slots <- struct{}{}:
				timer.Stop()
			case <-timer.C:
				markRejected(w, "backpressure")
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "server is overloaded, retry later"})
				return
			case <-r.Context().Done():
				timer.Stop()
				return
			}
		}
		defer func() { <-slots }()

		next.ServeHTTP(w, r)
	})
}

func bodyLimitMiddleware(next http.Handler, maxBytes int64) http.Handler {
	if maxBytes <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}
		next.ServeHTTP(w, r)
	})
}

type rejectRecorder struct {
	http.ResponseWriter
	reason string
}

func markRejected(w http.ResponseWriter, reason string) {
	if recorder, ok := w.(*rejectRecorder); ok {
		recorder.reason = reason
	}
}
