package server

import (
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		log.WithFields(log.Fields{
			"method":    r.Method,
			"path":      r.URL.Path,
			"status":    ww.Status(),
			"duration":  time.Since(start).String(),
			"requestID": chimiddleware.GetReqID(r.Context()),
		}).Info("http request")
	})
}

// rateLimit applies one shared token bucket. The vault serves a single user,
// so per-client buckets would be overkill.
func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				respondError(w, http.StatusTooManyRequests, "too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// authenticate requires a live session token. WebSocket clients cannot set
// headers, so a token query parameter is accepted as an alternative.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

		if token == "" {
			token = r.URL.Query().Get("token")
		}

		if token == "" || !s.gate.Verify(token) {
			respondError(w, http.StatusUnauthorized, "vault is locked")
			return
		}

		next.ServeHTTP(w, r)
	})
}
