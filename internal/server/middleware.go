package server

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type contextKey string

// requestIDKey stores the per-request ID in the request context.
const requestIDKey contextKey = "request_id"

// RequestID returns the request's correlation ID, or "" outside the
// middleware stack.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestIDMiddleware assigns every request a correlation ID, honoring an
// inbound X-Request-ID header so upstream proxies can trace through.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// loggingMiddleware emits one structured log line per request.
func loggingMiddleware(next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logger.Info("http request",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote", r.RemoteAddr),
		)
	})
}

// corsMiddleware grants cross-origin access to the configured origins.
func corsMiddleware(next http.Handler, origins []string) http.Handler {
	allowAll := false
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			_, ok := allowed[origin]
			if allowAll {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else if ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ipLimiters hands out one token bucket per client IP. Buckets idle for
// an hour are dropped to keep the map bounded.
type ipLimiters struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	limit    rate.Limit
	burst    int
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiters(limit float64, burst int) *ipLimiters {
	if burst < 1 {
		burst = 1
	}
	l := &ipLimiters{
		limiters: make(map[string]*ipLimiter),
		limit:    rate.Limit(limit),
		burst:    burst,
	}
	go l.evictLoop()
	return l
}

func (l *ipLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.limiters[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

func (l *ipLimiters) evictLoop() {
	for range time.Tick(10 * time.Minute) {
		l.mu.Lock()
		for ip, entry := range l.limiters {
			if time.Since(entry.lastSeen) > time.Hour {
				delete(l.limiters, ip)
			}
		}
		l.mu.Unlock()
	}
}

// rateLimitMiddleware rejects clients exceeding their per-IP budget with a
// 429 problem response.
func rateLimitMiddleware(next http.Handler, limit float64, burst int) http.Handler {
	limiters := newIPLimiters(limit, burst)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !limiters.get(ip).Allow() {
			RateLimited(w, "request rate exceeded", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// routePattern reduces a request to its mux pattern for metric labels,
// falling back to the raw path for unmatched requests.
func routePattern(r *http.Request) string {
	if p := r.Pattern; p != "" {
		// Strip the method prefix from "GET /api/v1/...".
		if _, path, ok := strings.Cut(p, " "); ok {
			return path
		}
		return p
	}
	return r.URL.Path
}
