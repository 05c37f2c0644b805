package httpx

import (
	"log"
	"net/http"
	"time"
)

// statusWriter remembers the status code and body size of a response.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (sw *statusWriter) WriteHeader(code int) {
	if sw.status != 0 {
		return
	}
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if sw.status == 0 {
		sw.WriteHeader(http.StatusOK)
	}
	n, err := sw.ResponseWriter.Write(b)
	sw.bytes += int64(n)
	return n, err
}

func (sw *statusWriter) started() bool {
	return sw.status != 0
}

// AccessLogMiddleware logs one line per request once it has been served.
func AccessLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}

		next.ServeHTTP(sw, r)

		status := sw.status
		if status == 0 {
			status = http.StatusOK
		}
		log.Printf("access method=%s path=%s status=%d bytes=%d duration_ms=%d client=%s request_id=%s",
			r.Method, r.URL.Path, status, sw.bytes, time.Since(start).Milliseconds(), remoteHost(r), RequestIDFrom(r))
	})
}
