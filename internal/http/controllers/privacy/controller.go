// Package privacy expone la superficie de privacidad/GDPR para la plataforma.
package privacy

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dto "github.com/dropDatabas3/coursegate/internal/http/dto/privacy"
	httperrors "github.com/dropDatabas3/coursegate/internal/http/errors"
	"github.com/dropDatabas3/coursegate/internal/observability/logger"
	"github.com/dropDatabas3/coursegate/internal/privacy"
)

type Controller struct {
	provider *privacy.Provider
}

func NewController(provider *privacy.Provider) *Controller {
	return &Controller{provider: provider}
}

// Courses maneja GET /v1/privacy/users/{userID}/courses.
func (c *Controller) Courses(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	ids, err := c.provider.CoursesForUser(r.Context(), userID)
	if err != nil {
		logger.From(r.Context()).Error("privacy courses failed", logger.Err(err), logger.UserID(userID))
		httperrors.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.CoursesResponse{UserID: userID, CourseIDs: ids})
}

// Export maneja GET /v1/privacy/users/{userID}/export.
func (c *Controller) Export(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	recs, err := c.provider.Export(r.Context(), userID)
	if err != nil {
		logger.From(r.Context()).Error("privacy export failed", logger.Err(err), logger.UserID(userID))
		httperrors.WriteError(w, err)
		return
	}

	out := make([]dto.ExportRecord, 0, len(recs))
	for _, rec := range recs {
		out = append(out, dto.ExportRecord{CourseID: rec.CourseID, SkipAuth: rec.SkipAuth})
	}
	writeJSON(w, http.StatusOK, dto.ExportResponse{UserID: userID, Records: out})
}

// DeleteForUser maneja POST /v1/privacy/users/{userID}/delete.
// Body: los cursos aprobados donde borrar.
func (c *Controller) DeleteForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	var req dto.DeleteForUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	if err := c.provider.DeleteForUser(r.Context(), userID, req.CourseIDs); err != nil {
		logger.From(r.Context()).Error("privacy delete for user failed", logger.Err(err), logger.UserID(userID))
		httperrors.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Users maneja GET /v1/privacy/courses/{courseID}/users.
func (c *Controller) Users(w http.ResponseWriter, r *http.Request) {
	courseID, err := courseIDParam(r)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	ids, err := c.provider.UsersInCourse(r.Context(), courseID)
	if err != nil {
		logger.From(r.Context()).Error("privacy users failed", logger.Err(err), logger.CourseID(courseID))
		httperrors.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.UsersResponse{CourseID: courseID, UserIDs: ids})
}

// DeleteAllInCourse maneja DELETE /v1/privacy/courses/{courseID}.
func (c *Controller) DeleteAllInCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := courseIDParam(r)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	if err := c.provider.DeleteAllInCourse(r.Context(), courseID); err != nil {
		logger.From(r.Context()).Error("privacy delete course failed", logger.Err(err), logger.CourseID(courseID))
		httperrors.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteUsersInCourse maneja POST /v1/privacy/courses/{courseID}/delete.
// Body: los usuarios aprobados a borrar en el curso.
func (c *Controller) DeleteUsersInCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := courseIDParam(r)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	var req dto.DeleteUsersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	if err := c.provider.DeleteUsersInCourse(r.Context(), courseID, req.UserIDs); err != nil {
		logger.From(r.Context()).Error("privacy delete users failed", logger.Err(err), logger.CourseID(courseID))
		httperrors.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- helpers ----

func userIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		return 0, httperrors.ErrBadRequest.WithDetail("userID must be an integer")
	}
	return id, nil
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
