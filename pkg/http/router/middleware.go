package router

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (api *API) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				api.log.Error("panic while serving request", zap.String("path", r.URL.Path),
					zap.String("panic", fmt.Sprintf("%v", err)))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":{"code":"internal_error","message":"internal server error"}}` + "\n"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// EnforceJSONHandler. rejects request bodies that are not json
func EnforceJSONHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 {
			contentType := r.Header.Get("Content-Type")
			if !strings.HasPrefix(contentType, "application/json") {
				http.Error(w, "Content-Type header must be application/json", http.StatusUnsupportedMediaType)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RealIP. sets r.RemoteAddr from X-Real-IP or the first X-Forwarded-For entry
func RealIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ip := r.Header.Get("X-Real-IP"); ip != "" {
			r.RemoteAddr = ip
		} else if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			r.RemoteAddr = strings.TrimSpace(strings.Split(fwd, ",")[0])
		}
		next.ServeHTTP(w, r)
	})
}

// Heartbeat. answers GET /<endpoint> with 200 "." before any other handler
func Heartbeat(endpoint string) func(http.Handler) http.Handler {
	path := "/" + strings.TrimPrefix(endpoint, "/")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if (r.Method == http.MethodGet || r.Method == http.MethodHead) && strings.EqualFold(r.URL.Path, path) {
				w.Header().Set("Content-Type", "text/plain")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("."))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
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
				zap.String("remote", clientIP(r)),
				zap.Int("status", rec.status),
				zap.Duration("took", time.Since(start)))
		})
	}
}

// Limit. global token bucket, rate_limit_rps requests per second with a burst of twice that.
func Limit(next http.Handler) http.Handler {
	viper.SetDefault("rate_limit_rps", 50)
	rps := viper.GetFloat64("rate_limit_rps")
	limiter := rate.NewLimiter(rate.Limit(rps), int(2*rps))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"code":"rate_limited","message":"rate limit exceeded"}}` + "\n"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
