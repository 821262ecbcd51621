// Package manage implementa la administración de excepciones de un curso.
package manage

import (
	"context"
	"errors"

	"github.com/dropDatabas3/coursegate/internal/availability"
	"github.com/dropDatabas3/coursegate/internal/observability/logger"
	"github.com/dropDatabas3/coursegate/internal/store/core"
)

const (
	ActionAdd    = "add"
	ActionRemove = "remove"
)

var (
	// ErrUnknownAction: el action del bulk no es add ni remove.
	ErrUnknownAction = errors.New("unknown bulk action")

	// ErrEmptySelection: el bulk llegó sin usuarios seleccionados.
	ErrEmptySelection = errors.New("empty user selection")
)

type Service struct {
	store core.Store
}

func NewService(store core.Store) *Service {
	return &Service{store: store}
}

// CourseUsers son los dos conjuntos del management: inscritos con excepción e
// inscritos sin ella.
type CourseUsers struct {
	WithException    []int64
	WithoutException []int64
}

// List arma los dos selectores de usuarios del curso.
func (s *Service) List(ctx context.Context, courseID int64) (*CourseUsers, error) {
	with, err := s.store.ListEnrolledUsers(ctx, courseID, true)
	if err != nil {
		return nil, err
	}
	without, err := s.store.ListEnrolledUsers(ctx, courseID, false)
	if err != nil {
		return nil, err
	}
	return &CourseUsers{WithException: with, WithoutException: without}, nil
}

// Set hace el upsert puntual de la excepción del par.
func (s *Service) Set(ctx context.Context, courseID, userID int64, skipAuth bool) error {
	exc := availability.NewExceptions(s.store)
	if err := exc.Set(ctx, courseID, userID, skipAuth); err != nil {
		return err
	}
	logger.From(ctx).Info("exception set",
		logger.CourseID(courseID),
		logger.UserID(userID),
		logger.Bool("skip_auth", skipAuth),
	)
	return nil
}

// Bulk aplica la acción masiva de los dos botones: add concede la excepción a
// cada usuario seleccionado, remove borra sus registros del curso.
func (s *Service) Bulk(ctx context.Context, courseID int64, action string, userIDs []int64) (int, error) {
	if len(userIDs) == 0 {
		return 0, ErrEmptySelection
	}

	switch action {
	case ActionAdd:
		exc := availability.NewExceptions(s.store)
		for _, uid := range userIDs {
			if err := exc.Set(ctx, courseID, uid, true); err != nil {
				return 0, err
			}
		}
	case ActionRemove:
		if err := s.store.DeleteExceptionsForUsers(ctx, courseID, userIDs); err != nil {
			return 0, err
		}
	default:
		return 0, ErrUnknownAction
	}

	logger.From(ctx).Info("bulk exception change",
		logger.CourseID(courseID),
		logger.String("action", action),
		logger.Count(len(userIDs)),
	)
	return len(userIDs), nil
}
