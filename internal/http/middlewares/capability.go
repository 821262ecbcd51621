package middlewares

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	httperrors "github.com/dropDatabas3/coursegate/internal/http/errors"
	"github.com/dropDatabas3/coursegate/internal/observability/logger"
)

// RequireManage exige que la sesión pueda administrar excepciones en el curso
// del path ({courseID}). Corre después de RequireSession.
func RequireManage() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := SessionFrom(r.Context())
			if sess == nil {
				httperrors.WriteError(w, httperrors.ErrUnauthorized)
				return
			}

			courseID, err := strconv.ParseInt(chi.URLParam(r, "courseID"), 10, 64)
			if err != nil {
				httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("courseID must be an integer"))
				return
			}

			if !sess.CanManage(courseID) {
				logger.From(r.Context()).Warn("manage capability denied",
					logger.UserID(sess.UserID),
					logger.CourseID(courseID),
				)
				httperrors.WriteError(w, httperrors.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireManageAll exige la credencial de servicio de la plataforma: el claim
// comodín manage "*". Gatea las superficies server-to-server (feed de ciclo de
// vida, privacidad), cuyas mutaciones no pueden quedar al alcance de una sesión
// de usuario común. Corre después de RequireSession.
func RequireManageAll() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := SessionFrom(r.Context())
			if sess == nil {
				httperrors.WriteError(w, httperrors.ErrUnauthorized)
				return
			}
			if !sess.ManageAll {
				logger.From(r.Context()).Warn("service credential denied",
					logger.UserID(sess.UserID),
					logger.Path(r.URL.Path),
				)
				httperrors.WriteError(w, httperrors.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
