// Package access expone los endpoints de decisión, confirmación y verificación.
package access

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/coursegate/internal/availability"
	"github.com/dropDatabas3/coursegate/internal/http/dto/access"
	httperrors "github.com/dropDatabas3/coursegate/internal/http/errors"
	"github.com/dropDatabas3/coursegate/internal/http/middlewares"
	accesssvc "github.com/dropDatabas3/coursegate/internal/http/services/access"
	"github.com/dropDatabas3/coursegate/internal/idp"
	"github.com/dropDatabas3/coursegate/internal/observability/logger"
)

type Controller struct {
	svc    *accesssvc.Service
	source idp.Source
}

func NewController(svc *accesssvc.Service, source idp.Source) *Controller {
	return &Controller{svc: svc, source: source}
}

// Check maneja GET /v1/courses/{courseID}/access.
// Query: user_id (default: usuario de la sesión), not, bulk.
func (c *Controller) Check(w http.ResponseWriter, r *http.Request) {
	sess := middlewares.SessionFrom(r.Context())
	courseID, err := courseIDParam(r)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	userID := sess.UserID
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		userID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("user_id must be an integer"))
			return
		}
	}
	cond := availability.Condition{Not: queryBool(r, "not")}
	bulk := queryBool(r, "bulk")

	granted, err := c.svc.Check(r.Context(), sess, cond, courseID, userID, bulk)
	if err != nil {
		logger.From(r.Context()).Error("access check failed", logger.Err(err), logger.CourseID(courseID))
		httperrors.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, access.DecisionResponse{
		CourseID: courseID,
		UserID:   userID,
		Granted:  granted,
	})
}

// Confirm maneja GET /v1/courses/{courseID}/access/confirm.
func (c *Controller) Confirm(w http.ResponseWriter, r *http.Request) {
	sess := middlewares.SessionFrom(r.Context())
	courseID, err := courseIDParam(r)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	cmid, sectionID := carryParams(r)

	conf, err := c.svc.Confirm(r.Context(), sess, courseID, cmid, sectionID)
	if err != nil {
		logger.From(r.Context()).Error("confirm failed", logger.Err(err), logger.CourseID(courseID))
		httperrors.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, access.ConfirmResponse{
		CourseID:    courseID,
		Available:   conf.Available,
		ContinueURL: conf.ContinueURL,
		VerifyURL:   conf.VerifyURL,
	})
}

// Verify maneja GET /v1/courses/{courseID}/access/verify: obtiene la afirmación
// externa, la verifica contra la sesión y redirige a la confirmación.
func (c *Controller) Verify(w http.ResponseWriter, r *http.Request) {
	sess := middlewares.SessionFrom(r.Context())
	courseID, err := courseIDParam(r)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	cmid, sectionID := carryParams(r)

	asserted, err := c.source.Username(r)
	if err != nil {
		logger.From(r.Context()).Error("external assertion lookup failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrServiceUnavailable.WithCause(err))
		return
	}

	redirectURL, err := c.svc.Verify(r.Context(), sess, asserted, courseID, cmid, sectionID)
	switch {
	case err == nil:
		// ok
	case errors.Is(err, idp.ErrNoExternalLogin):
		httperrors.WriteError(w, httperrors.ErrAuthAbsent)
		return
	case errors.Is(err, idp.ErrWrongUser):
		httperrors.WriteError(w, httperrors.ErrAuthMismatch)
		return
	default:
		logger.From(r.Context()).Error("verify failed", logger.Err(err), logger.CourseID(courseID))
		httperrors.WriteError(w, err)
		return
	}

	w.Header().Set("Location", redirectURL)
	writeJSON(w, http.StatusSeeOther, access.VerifyResponse{
		CourseID:    courseID,
		Verified:    true,
		RedirectURL: redirectURL,
	})
}

// ---- helpers ----

func courseIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "courseID"), 10, 64)
	if err != nil {
		return 0, httperrors.ErrBadRequest.WithDetail("courseID must be an integer")
	}
	return id, nil
}

func carryParams(r *http.Request) (cmid, sectionID int64) {
	q := r.URL.Query()
	cmid, _ = strconv.ParseInt(q.Get("cmid"), 10, 64)
	sectionID, _ = strconv.ParseInt(q.Get("sectionid"), 10, 64)
	return cmid, sectionID
}

func queryBool(r *http.Request, name string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
