// Package events aplica el feed de ciclo de vida de la plataforma: altas de
// enrolment para la proyección y cascadas de borrado sobre las excepciones.
package events

import (
	"context"
	"errors"

	"github.com/dropDatabas3/coursegate/internal/availability"
	"github.com/dropDatabas3/coursegate/internal/observability/logger"
	"github.com/dropDatabas3/coursegate/internal/store/core"
)

const (
	KindEnrolmentCreated = "enrolment_created"
	KindEnrolmentDeleted = "enrolment_deleted"
	KindCourseDeleted    = "course_deleted"
	KindUserDeleted      = "user_deleted"
)

var (
	// ErrUnknownKind: el kind del evento no pertenece al contrato.
	ErrUnknownKind = errors.New("unknown event kind")

	// ErrInvalidEvent: faltan los ids que el kind requiere.
	ErrInvalidEvent = errors.New("event missing required ids")
)

type Service struct {
	store core.Store
}

func NewService(store core.Store) *Service {
	return &Service{store: store}
}

// Apply ejecuta el efecto del evento. Idempotente: re-aplicar un borrado que ya
// ocurrió no es error.
func (s *Service) Apply(ctx context.Context, kind string, courseID, userID int64) error {
	exc := availability.NewExceptions(s.store)

	switch kind {
	case KindEnrolmentCreated:
		if courseID <= 0 || userID <= 0 {
			return ErrInvalidEvent
		}
		if err := s.store.AddEnrolment(ctx, courseID, userID); err != nil {
			return err
		}

	case KindEnrolmentDeleted:
		if courseID <= 0 || userID <= 0 {
			return ErrInvalidEvent
		}
		if err := exc.EnrolmentDeleted(ctx, courseID, userID); err != nil {
			return err
		}
		if err := s.store.DeleteEnrolment(ctx, courseID, userID); err != nil {
			return err
		}

	case KindCourseDeleted:
		if courseID <= 0 {
			return ErrInvalidEvent
		}
		if err := exc.CourseDeleted(ctx, courseID); err != nil {
			return err
		}
		if err := s.store.DeleteCourseEnrolments(ctx, courseID); err != nil {
			return err
		}

	case KindUserDeleted:
		if userID <= 0 {
			return ErrInvalidEvent
		}
		if err := exc.UserDeleted(ctx, userID); err != nil {
			return err
		}
		if err := s.store.DeleteUserEnrolments(ctx, userID); err != nil {
			return err
		}

	default:
		return ErrUnknownKind
	}

	logger.From(ctx).Info("lifecycle event applied",
		logger.EventKind(kind),
		logger.CourseID(courseID),
		logger.UserID(userID),
	)
	return nil
}
