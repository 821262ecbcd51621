// Package privacy implementa las proyecciones de privacidad/GDPR sobre el
// store de excepciones: enumerar, exportar y borrar datos personales.
package privacy

import (
	"context"

	"github.com/dropDatabas3/coursegate/internal/store/core"
)

// Provider responde los pedidos del subsistema de privacidad de la plataforma.
// Todas las operaciones son proyecciones directas sobre el store.
type Provider struct {
	store core.ExceptionStore
}

func NewProvider(store core.ExceptionStore) *Provider {
	return &Provider{store: store}
}

// CoursesForUser enumera los cursos (contextos) que guardan datos del usuario.
func (p *Provider) CoursesForUser(ctx context.Context, userID int64) ([]int64, error) {
	recs, err := p.store.ListExceptionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]int64, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.CourseID)
	}
	return out, nil
}

// Export retorna todos los registros del usuario, para el export de datos.
func (p *Provider) Export(ctx context.Context, userID int64) ([]core.ExceptionRecord, error) {
	return p.store.ListExceptionsByUser(ctx, userID)
}

// DeleteAllInCourse borra los datos de todos los usuarios en un curso.
func (p *Provider) DeleteAllInCourse(ctx context.Context, courseID int64) error {
	return p.store.DeleteCourseExceptions(ctx, courseID)
}

// DeleteForUser borra los datos del usuario dentro de los cursos aprobados.
func (p *Provider) DeleteForUser(ctx context.Context, userID int64, courseIDs []int64) error {
	for _, courseID := range courseIDs {
		if err := p.store.DeleteException(ctx, courseID, userID); err != nil {
			return err
		}
	}
	return nil
}

// UsersInCourse lista los usuarios con datos en un curso.
func (p *Provider) UsersInCourse(ctx context.Context, courseID int64) ([]int64, error) {
	return p.store.ListExceptionUserIDs(ctx, courseID)
}

// DeleteUsersInCourse borra los datos de un conjunto aprobado de usuarios en un curso.
func (p *Provider) DeleteUsersInCourse(ctx context.Context, courseID int64, userIDs []int64) error {
	return p.store.DeleteExceptionsForUsers(ctx, courseID, userIDs)
}
