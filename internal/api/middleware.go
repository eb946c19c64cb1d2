package api

import (
	"net"
	"net/http"
	"time"

	"github.com/chanspick/PiCom/pkg/errors"
	"github.com/chanspick/PiCom/pkg/logger"
	"github.com/chanspick/PiCom/pkg/util"
)

const (
	headerRequestID = "X-Request-ID"
	headerUserID    = "X-User-ID"
)

// requestContext seeds the request context with a request id, the
// caller identity from the gateway header and the client address.
func requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := util.WithRequestID(r.Context(), r.Header.Get(headerRequestID))
		ctx = util.WithActorID(ctx, r.Header.Get(headerUserID))
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			ctx = util.WithClientIP(ctx, host)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireActor rejects requests that carry no caller identity. Mutating
// routes sit behind it; reads stay open.
func requireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if util.GetActorID(r.Context()) == "" {
			WriteError(w, http.StatusUnauthorized, string(errors.GeneralUnauthenticatedError), "missing caller identity")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogging logs each request's method, path, status and duration.
func requestLogging(log logger.Interface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			log.InfoContext(r.Context(), "request",
				logger.Field{Key: "method", Value: r.Method},
				logger.Field{Key: "path", Value: r.URL.Path},
				logger.Field{Key: "status", Value: ww.status},
				logger.Field{Key: "duration", Value: time.Since(start).String()},
			)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}
