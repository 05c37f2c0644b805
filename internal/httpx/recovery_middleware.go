package httpx

import (
	"log"
	"net/http"
	"runtime/debug"
)

// RecoveryMiddleware turns a handler panic into a 500 envelope, unless the
// handler already started its response. http.ErrAbortHandler is re-raised so
// the server aborts the connection as usual.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			log.Printf("panic recovered: request_id=%s method=%s path=%s error=%v stack=%s",
				RequestIDFrom(r), r.Method, r.URL.Path, rec, debug.Stack())

			if sw, ok := w.(*statusWriter); ok && sw.started() {
				return
			}
			JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred", nil)
		}()
		next.ServeHTTP(w, r)
	})
}
