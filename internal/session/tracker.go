package session

import (
	"context"

	"github.com/dropDatabas3/coursegate/internal/audit"
)

// Tracker administra el flag de segundo factor de las sesiones y emite el
// evento de auditoría correspondiente.
type Tracker struct {
	flags FlagStore
	rec   audit.Recorder
}

func NewTracker(flags FlagStore, rec audit.Recorder) *Tracker {
	if rec == nil {
		rec = audit.Discard{}
	}
	return &Tracker{flags: flags, rec: rec}
}

// Authenticated retorna true si la sesión ya completó el segundo factor.
func (t *Tracker) Authenticated(ctx context.Context, s *Session) (bool, error) {
	if s == nil {
		return false, nil
	}
	return t.flags.Get(ctx, s.ID)
}

// SetAuthenticated marca la sesión como autenticada. Es idempotente: una
// segunda llamada en la misma sesión no emite otro evento de auditoría.
//
// El flag se escribe ANTES de emitir el evento: un fallo del sink no puede
// dejar al usuario sin su autenticación, pero sí se propaga al caller
// (la emisión no falla en silencio).
func (t *Tracker) SetAuthenticated(ctx context.Context, s *Session) error {
	already, err := t.flags.Get(ctx, s.ID)
	if err != nil {
		return err
	}
	if already {
		return nil
	}
	if err := t.flags.Set(ctx, s.ID); err != nil {
		return err
	}
	return t.rec.Record(ctx, audit.KindSecondFactorLogin, s.UserID)
}
