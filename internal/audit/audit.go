// Package audit define el sink de eventos de auditoría del servicio.
package audit

import (
	"context"

	"github.com/google/uuid"

	"github.com/dropDatabas3/coursegate/internal/metrics"
	"github.com/dropDatabas3/coursegate/internal/observability/logger"
)

// KindSecondFactorLogin se emite una vez por sesión cuando un usuario completa
// el segundo factor.
const KindSecondFactorLogin = "user_2fa_loggedin"

// Recorder acepta eventos de auditoría. Se inyecta donde haga falta emitir;
// los emisores no asumen nada sobre el destino.
type Recorder interface {
	Record(ctx context.Context, kind string, subjectID int64) error
}

// Log es un Recorder que escribe eventos como líneas estructuradas.
type Log struct{}

func NewLog() *Log { return &Log{} }

func (l *Log) Record(ctx context.Context, kind string, subjectID int64) error {
	logger.From(ctx).Info("audit event",
		logger.String("event_id", uuid.NewString()),
		logger.EventKind(kind),
		logger.UserID(subjectID),
	)
	metrics.AuditEvent(kind)
	return nil
}

// Discard descarta todos los eventos. Útil en tests y tooling.
type Discard struct{}

func (Discard) Record(context.Context, string, int64) error { return nil }
