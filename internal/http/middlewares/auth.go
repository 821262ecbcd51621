package middlewares

import (
	"context"
	"net/http"
	"strings"

	httperrors "github.com/dropDatabas3/coursegate/internal/http/errors"
	"github.com/dropDatabas3/coursegate/internal/observability/logger"
	"github.com/dropDatabas3/coursegate/internal/session"
)

type ctxKeySession struct{}

// RequireSession valida el JWT de plataforma (Bearer, o la cookie de sesión
// como fallback para los flujos de navegador) y cuelga la Session del contexto.
func RequireSession(secret []byte, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" && cookieName != "" {
				if c, err := r.Cookie(cookieName); err == nil {
					raw = c.Value
				}
			}
			if raw == "" {
				httperrors.WriteError(w, httperrors.ErrUnauthorized)
				return
			}

			sess, err := session.FromToken(raw, secret)
			if err != nil {
				logger.From(r.Context()).Warn("session token rejected", logger.Err(err))
				httperrors.WriteError(w, httperrors.ErrUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeySession{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFrom recupera la sesión de plataforma del contexto; nil si no hay.
func SessionFrom(ctx context.Context) *session.Session {
	if s, ok := ctx.Value(ctxKeySession{}).(*session.Session); ok {
		return s
	}
	return nil
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
