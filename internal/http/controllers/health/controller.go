// Package health expone el health check del servicio.
package health

import (
	"encoding/json"
	"net/http"

	httperrors "github.com/dropDatabas3/coursegate/internal/http/errors"
	"github.com/dropDatabas3/coursegate/internal/observability/logger"
	"github.com/dropDatabas3/coursegate/internal/store/core"
)

type Controller struct {
	store core.Store
}

func NewController(store core.Store) *Controller {
	return &Controller{store: store}
}

// Healthz maneja GET /healthz: responde ok si el store contesta el ping.
func (c *Controller) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := c.store.Ping(r.Context()); err != nil {
		logger.From(r.Context()).Error("health check failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrServiceUnavailable.WithCause(err))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
