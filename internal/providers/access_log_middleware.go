package providers

import (
	"net/http"
	"time"
)

// AccessLogMiddleware writes one line per request to the get or post log.
// It expects the transaction id to be in the request context already.
func AccessLogMiddleware(logger Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		logger.Infof(GetLogTypeByRequestType(r.Method), "[%s] %s %s %d %s",
			TransactionID(r.Context()), r.Method, r.URL.RequestURI(), sw.status, time.Since(start))
	})
}
