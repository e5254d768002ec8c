package router

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/lintang-b-s/graphcut/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = message

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// EnforceJSONHandler rejects requests with a body that is not declared as application/json.
func EnforceJSONHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost {
			contentType := r.Header.Get("Content-Type")
			if contentType != "" && !strings.HasPrefix(strings.ToLower(contentType), "application/json") {
				writeError(w, http.StatusUnsupportedMediaType, "unsupported_media_type",
					"Content-Type header must be application/json")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (api *API) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			if err := recover(); err != nil {
				api.log.Error("panic while serving request",
					zap.Any("panic", err), zap.String("path", r.URL.Path),
					zap.Bool("response_started", rec.wroteHeader))
				// too late for an error response once the handler started writing
				if rec.wroteHeader {
					return
				}
				w.Header().Set("Connection", "close")
				writeError(w, http.StatusInternalServerError, "internal_server_error",
					"the server encountered a problem and could not process your request")
			}
		}()
		next.ServeHTTP(rec, r)
	})
}

// RealIP replaces RemoteAddr with the client address forwarded by a proxy, if any.
func RealIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ip := realIP(r); ip != "" {
			r.RemoteAddr = ip
		}
		next.ServeHTTP(w, r)
	})
}

func realIP(r *http.Request) string {
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}
	return ""
}

// Heartbeat answers GET /<endpoint> with 200 before the router sees the request.
func Heartbeat(endpoint string) func(http.Handler) http.Handler {
	path := "/" + strings.TrimPrefix(endpoint, "/")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if (r.Method == http.MethodGet || r.Method == http.MethodHead) && r.URL.Path == path {
				w.Header().Set("Content-Type", "text/plain")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("."))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (sr *statusRecorder) WriteHeader(status int) {
	if !sr.wroteHeader {
		sr.status = status
		sr.wroteHeader = true
	}
	sr.ResponseWriter.WriteHeader(status)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	sr.wroteHeader = true
	return sr.ResponseWriter.Write(b)
}

func Logger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Int("status", rec.status),
				zap.Duration("took", time.Since(start)),
			)
		})
	}
}

// Metrics counts requests per path. unknown paths share one label.
func Metrics(met *metrics.Metric) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			met.ObserveRequest(r.Method, routeLabel(r.URL.Path, rec.status), rec.status, time.Since(start))
		})
	}
}

// routeLabel keeps the path label bounded: catch-all routes collapse to their prefix.
func routeLabel(path string, status int) string {
	switch {
	case status == http.StatusNotFound:
		return "unmatched"
	case strings.HasPrefix(path, "/doc/"):
		return "/doc/*"
	case strings.HasPrefix(path, "/debug/pprof/"):
		return "/debug/pprof/*"
	}
	return path
}

// Limit is a token bucket shared by every client: rps requests per second, bursts up to burst.
func Limit(rps float64, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "rate_limit_exceeded", "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
