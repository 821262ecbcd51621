// Package events expone el endpoint del feed de ciclo de vida.
package events

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dropDatabas3/coursegate/internal/http/dto/events"
	httperrors "github.com/dropDatabas3/coursegate/internal/http/errors"
	eventssvc "github.com/dropDatabas3/coursegate/internal/http/services/events"
	"github.com/dropDatabas3/coursegate/internal/observability/logger"
)

type Controller struct {
	svc *eventssvc.Service
}

func NewController(svc *eventssvc.Service) *Controller {
	return &Controller{svc: svc}
}

// Apply maneja POST /v1/events.
func (c *Controller) Apply(w http.ResponseWriter, r *http.Request) {
	var ev events.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	err := c.svc.Apply(r.Context(), ev.Kind, ev.CourseID, ev.UserID)
	switch {
	case err == nil:
		// ok
	case errors.Is(err, eventssvc.ErrUnknownKind):
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("unknown event kind"))
		return
	case errors.Is(err, eventssvc.ErrInvalidEvent):
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("event missing required ids"))
		return
	default:
		logger.From(r.Context()).Error("event apply failed", logger.Err(err), logger.EventKind(ev.Kind))
		httperrors.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(events.AckResponse{Kind: ev.Kind, Applied: true})
}
