// Package middleware holds small, reusable net/http middleware for
// cmd/tracedemo: CORS and standard security headers. Gateway-specific
// concerns the teacher carried here (auth, per-provider rate limiting,
// concurrency slots, provider timeouts, upstream header scrubbing) have no
// analog in a tracing demo with no upstream providers and were dropped.
package middleware

import "net/http"

// allowlist decides whether an Origin header may receive a CORS grant. It is
// built once per CORS call and captured by value in the returned middleware,
// rather than recomputed or matched inline per request.
type allowlist struct {
	all    bool
	origin map[string]struct{}
}

func newAllowlist(origins []string) allowlist {
	a := allowlist{origin: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		if o == "*" {
			a.all = true
			continue
		}
		a.origin[o] = struct{}{}
	}
	return a
}

func (a allowlist) allows(origin string) bool {
	if a.all {
		return true
	}
	_, ok := a.origin[origin]
	return ok
}

// corsHeaders are fixed response headers CORS sets on every request,
// regardless of whether the origin was granted.
var corsHeaders = [...][2]string{
	{"Access-Control-Allow-Methods", "GET, POST, OPTIONS"},
	{"Access-Control-Allow-Headers", "Accept, Content-Type, X-Request-ID"},
	{"Access-Control-Max-Age", "3600"},
}

// CORS handles Cross-Origin Resource Sharing for the demo's JSON endpoints.
// A preflight OPTIONS request is answered directly; every other request
// passes through to next after its headers are set.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := newAllowlist(allowedOrigins)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); allowed.allows(origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			}
			for _, h := range corsHeaders {
				w.Header().Set(h[0], h[1])
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// securityHeaders are the fixed defensive response headers SecurityHeaders
// sets on every response.
var securityHeaders = [...][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "strict-origin-when-cross-origin"},
}

// SecurityHeaders adds standard defensive response headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, h := range securityHeaders {
			w.Header().Set(h[0], h[1])
		}
		next.ServeHTTP(w, r)
	})
}
