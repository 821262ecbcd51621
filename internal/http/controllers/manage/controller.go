// Package manage expone los endpoints de administración de excepciones.
package manage

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/coursegate/internal/http/dto/manage"
	httperrors "github.com/dropDatabas3/coursegate/internal/http/errors"
	managesvc "github.com/dropDatabas3/coursegate/internal/http/services/manage"
	"github.com/dropDatabas3/coursegate/internal/observability/logger"
)

type Controller struct {
	svc *managesvc.Service
}

func NewController(svc *managesvc.Service) *Controller {
	return &Controller{svc: svc}
}

// List maneja GET /v1/courses/{courseID}/exceptions.
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	courseID, err := courseIDParam(r)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	users, err := c.svc.List(r.Context(), courseID)
	if err != nil {
		logger.From(r.Context()).Error("exception list failed", logger.Err(err), logger.CourseID(courseID))
		httperrors.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, manage.ListResponse{
		CourseID:         courseID,
		WithException:    users.WithException,
		WithoutException: users.WithoutException,
	})
}

// Set maneja PUT /v1/courses/{courseID}/exceptions/{userID}.
func (c *Controller) Set(w http.ResponseWriter, r *http.Request) {
	courseID, err := courseIDParam(r)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("userID must be an integer"))
		return
	}

	var req manage.SetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	if err := c.svc.Set(r.Context(), courseID, userID, req.SkipAuth); err != nil {
		logger.From(r.Context()).Error("exception set failed", logger.Err(err), logger.CourseID(courseID))
		httperrors.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Bulk maneja POST /v1/courses/{courseID}/exceptions.
func (c *Controller) Bulk(w http.ResponseWriter, r *http.Request) {
	courseID, err := courseIDParam(r)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	var req manage.BulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	affected, err := c.svc.Bulk(r.Context(), courseID, req.Action, req.UserIDs)
	switch {
	case err == nil:
		// ok
	case errors.Is(err, managesvc.ErrUnknownAction):
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("action must be add or remove"))
		return
	case errors.Is(err, managesvc.ErrEmptySelection):
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("user_ids must not be empty"))
		return
	default:
		logger.From(r.Context()).Error("bulk exception change failed", logger.Err(err), logger.CourseID(courseID))
		httperrors.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, manage.BulkResponse{
		CourseID: courseID,
		Action:   req.Action,
		Affected: affected,
	})
}

func courseIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "courseID"), 10, 64)
	if err != nil {
		return 0, httperrors.ErrBadRequest.WithDetail("courseID must be an integer")
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
