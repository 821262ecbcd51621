package middlewares

import (
	"crypto/subtle"
	"net/http"

	httperrors "github.com/dropDatabas3/coursegate/internal/http/errors"
)

// CSRF implementa el patrón double-submit: el token debe venir a la vez en la
// cookie y en el header, y coincidir. Sólo aplica a métodos mutantes.
func CSRF(headerName, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get(headerName)
			cookie, err := r.Cookie(cookieName)
			if header == "" || err != nil || cookie.Value == "" {
				httperrors.WriteError(w, httperrors.ErrInvalidCSRF)
				return
			}
			if !constantTimeEqual(header, cookie.Value) {
				httperrors.WriteError(w, httperrors.ErrInvalidCSRF)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
