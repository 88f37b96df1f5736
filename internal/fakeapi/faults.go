package fakeapi

import (
	"net/http"
	"strings"
)

// DropConnection as a fault status closes the connection without a reply.
const DropConnection = 0

type fault struct {
	method string
	prefix string
	status int
}

// Fail makes the next request whose method and path prefix match answer
// with status instead of being served. Faults are consumed in the order
// they were added.
func (s *Server) Fail(method, pathPrefix string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = append(s.faults, fault{method: method, prefix: pathPrefix, status: status})
}

func (s *Server) takeFault(r *http.Request) (fault, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.faults {
		if f.method == r.Method && strings.HasPrefix(r.URL.Path, f.prefix) {
			s.faults = append(s.faults[:i], s.faults[i+1:]...)
			return f, true
		}
	}
	return fault{}, false
}

func (s *Server) injectFaults(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, ok := s.takeFault(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		s.logger.Warn(r.Context(), "injected fault", "method", r.Method, "path", r.URL.Path, "status", f.status)

		if f.status == DropConnection {
			if hj, ok := w.(http.Hijacker); ok {
				if conn, _, err := hj.Hijack(); err == nil {
					_ = conn.Close()
					return
				}
			}
			f.status = http.StatusServiceUnavailable
		}
		writeError(w, f.status, http.StatusText(f.status))
	})
}
