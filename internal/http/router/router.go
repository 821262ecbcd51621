// Package router arma el árbol de rutas del servicio y su stack de middlewares.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/coursegate/internal/config"
	accessctl "github.com/dropDatabas3/coursegate/internal/http/controllers/access"
	eventsctl "github.com/dropDatabas3/coursegate/internal/http/controllers/events"
	healthctl "github.com/dropDatabas3/coursegate/internal/http/controllers/health"
	managectl "github.com/dropDatabas3/coursegate/internal/http/controllers/manage"
	privacyctl "github.com/dropDatabas3/coursegate/internal/http/controllers/privacy"
	httperrors "github.com/dropDatabas3/coursegate/internal/http/errors"
	"github.com/dropDatabas3/coursegate/internal/http/middlewares"
	accesssvc "github.com/dropDatabas3/coursegate/internal/http/services/access"
	eventssvc "github.com/dropDatabas3/coursegate/internal/http/services/events"
	managesvc "github.com/dropDatabas3/coursegate/internal/http/services/manage"
	"github.com/dropDatabas3/coursegate/internal/idp"
	"github.com/dropDatabas3/coursegate/internal/privacy"
	"github.com/dropDatabas3/coursegate/internal/session"
	"github.com/dropDatabas3/coursegate/internal/store/core"
)

// Deps agrupa todo lo que el router necesita ya construido.
type Deps struct {
	Cfg     *config.Config
	Store   core.Store
	Tracker *session.Tracker
	Source  idp.Source
	Metrics http.Handler
}

// New construye el handler raíz del servicio.
func New(d Deps) http.Handler {
	accessCtl := accessctl.NewController(
		accesssvc.NewService(d.Store, d.Tracker, d.Cfg.Server.BaseURL, d.Cfg.Gate.CourseURL),
		d.Source,
	)
	manageCtl := managectl.NewController(managesvc.NewService(d.Store))
	eventsCtl := eventsctl.NewController(eventssvc.NewService(d.Store))
	privacyCtl := privacyctl.NewController(privacy.NewProvider(d.Store))
	healthCtl := healthctl.NewController(d.Store)

	secret := []byte(d.Cfg.Session.JWTSecret)
	requireSession := middlewares.RequireSession(secret, "coursegate_session")
	requireManage := middlewares.RequireManage()
	requireService := middlewares.RequireManageAll()
	csrf := middlewares.CSRF(d.Cfg.CSRF.HeaderName, d.Cfg.CSRF.CookieName)

	r := chi.NewRouter()

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	r.Get("/healthz", healthCtl.Healthz)
	r.Method(http.MethodGet, "/metrics", d.Metrics)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/courses/{courseID}", func(r chi.Router) {
			// Flujo de decisión/verificación: sólo requiere sesión válida.
			r.Group(func(r chi.Router) {
				r.Use(requireSession)
				r.Get("/access", accessCtl.Check)
				r.Get("/access/confirm", accessCtl.Confirm)
				r.Get("/access/verify", accessCtl.Verify)
			})

			// Management: capability del curso + CSRF en mutaciones.
			r.Group(func(r chi.Router) {
				r.Use(requireSession, requireManage, csrf)
				r.Get("/exceptions", manageCtl.List)
				r.Put("/exceptions/{userID}", manageCtl.Set)
				r.Post("/exceptions", manageCtl.Bulk)
			})
		})

		// Feed de ciclo de vida y privacidad: superficies server-to-server.
		// Exigen la credencial de servicio (manage "*"), no alcanza una
		// sesión de usuario común.
		r.Group(func(r chi.Router) {
			r.Use(requireSession, requireService)
			r.Post("/events", eventsCtl.Apply)

			r.Route("/privacy", func(r chi.Router) {
				r.Get("/users/{userID}/courses", privacyCtl.Courses)
				r.Get("/users/{userID}/export", privacyCtl.Export)
				r.Post("/users/{userID}/delete", privacyCtl.DeleteForUser)
				r.Get("/courses/{courseID}/users", privacyCtl.Users)
				r.Delete("/courses/{courseID}", privacyCtl.DeleteAllInCourse)
				r.Post("/courses/{courseID}/delete", privacyCtl.DeleteUsersInCourse)
			})
		})
	})

	// Stack global por fuera del árbol de rutas, así también cubre 404/405.
	return middlewares.Chain(r,
		middlewares.RequestID(),
		middlewares.Logging(),
		middlewares.Recover(),
		middlewares.SecurityHeaders(),
	)
}
