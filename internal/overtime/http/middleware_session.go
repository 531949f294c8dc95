package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/hourbank/overtime/internal/overtime/domain"
	"github.com/hourbank/overtime/internal/overtime/service"
	"github.com/hourbank/overtime/pkg/httpx"
	"github.com/hourbank/overtime/pkg/slogx"
)

// SessionCookie is the HTTP-only cookie carrying the session token.
const SessionCookie = "overtime_session"

// SessionMiddleware verifies the session token (cookie first, then a Bearer
// header for non-browser clients) and attaches the resulting domain.Session
// to the request context. Requests without a valid token pass through
// unauthenticated; RequireSession decides whether that is acceptable.
func SessionMiddleware(auth *service.AuthService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := auth.SessionFromToken(token)
			if err != nil {
				slogx.FromContext(r.Context()).Debug("session token rejected", "err", err)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), httpx.CtxKeySession, sess)
			ctx = context.WithValue(ctx, httpx.CtxKeyUserID, sess.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects requests that did not carry a valid session token.
func RequireSession() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sessionFrom(r.Context()).Authenticated() {
				httpx.WriteError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func sessionFrom(ctx context.Context) domain.Session {
	if sess, ok := ctx.Value(httpx.CtxKeySession).(domain.Session); ok {
		return sess
	}
	return domain.Session{}
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}
