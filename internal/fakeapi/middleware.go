package fakeapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/storefront/internal/auth"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const subjectKey ctxKey = "subject"

// resetPrefix marks the subject of password reset tokens, which are not
// valid as session tokens.
const resetPrefix = "reset:"

func subjectFrom(ctx context.Context) string {
	s, _ := ctx.Value(subjectKey).(string)
	return s
}

// requireToken accepts requests carrying a valid session token and puts
// its subject, the user email, in the context.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := common.BearerToken(r.Header.Get(common.AuthorizationHeader))
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing token")
			return
		}
		subject, err := auth.SubjectFromToken(token, s.jwtSecret)
		if err != nil || strings.HasPrefix(subject, resetPrefix) {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), subjectKey, subject)))
	})
}

// requestLog writes one structured line per request and tags every log line
// written while serving it with the request id.
func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		ctx := logging.ContextWith(r.Context(), "request_id", middleware.GetReqID(r.Context()))

		next.ServeHTTP(ww, r.WithContext(ctx))

		s.logger.Info(ctx, "http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).String(),
		)
	})
}
