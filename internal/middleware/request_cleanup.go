package middleware

import (
	"io"
	"net/http"
)

// bodies larger than this are closed without draining, the connection is
// not worth reusing at that point
const maxDrainBytes = 256 << 10

// DrainAndCloseRequest consumes what the handler left of the request body
// (up to maxDrainBytes) and closes it, so keep-alive connections can be reused.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil || r.Body == http.NoBody {
				return
			}
			_, _ = io.Copy(io.Discard, io.LimitReader(r.Body, maxDrainBytes))
			_ = r.Body.Close()
		})
	}
}
