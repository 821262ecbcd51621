// Package availability implementa la decisión de acceso: un usuario puede ver
// contenido de un curso si completó el segundo factor en su sesión actual o si
// tiene una excepción administrativa para ese curso.
package availability

import (
	"context"

	"github.com/dropDatabas3/coursegate/internal/metrics"
	"github.com/dropDatabas3/coursegate/internal/session"
)

// Condition es el nodo de condición tal como vive en el árbol booleano de la
// plataforma. Not invierte el resultado ("NOT this condition").
type Condition struct {
	Not bool `json:"not"`
}

// SessionFlags consulta el flag de segundo factor de una sesión.
// Implementado por session.Tracker.
type SessionFlags interface {
	Authenticated(ctx context.Context, s *session.Session) (bool, error)
}

// Checker evalúa la condición para un request. Se construye por request: el
// cache de lectura de Exceptions no debe sobrevivir al request que lo creó.
type Checker struct {
	Exceptions *Exceptions
	Flags      SessionFlags
	Session    *session.Session // sesión de plataforma del request; puede ser nil
}

// CourseAvailable decide si el usuario satisface el requisito en el curso.
//
// Fast path: sólo aplica al usuario de la sesión actual. No existe registro del
// segundo factor de OTRAS sesiones, así que para cualquier otro usuario (p.ej.
// generación de reportes bulk) la única vía de true es una excepción.
func (ch *Checker) CourseAvailable(ctx context.Context, courseID, userID int64) (bool, error) {
	if ch.Session != nil && ch.Session.UserID == userID && ch.Flags != nil {
		ok, err := ch.Flags.Authenticated(ctx, ch.Session)
		if err != nil {
			return false, err
		}
		if ok {
			metrics.SessionFastPath()
			return true, nil
		}
	}
	return ch.Exceptions.Get(ctx, courseID, userID)
}

// IsAvailable evalúa la condición completa, aplicando la inversión Not.
// grabTheLot es el hint del caller de que va a consultar muchos cursos para el
// mismo usuario: precarga el cache de excepciones de una vez.
func (ch *Checker) IsAvailable(ctx context.Context, cond Condition, courseID, userID int64, grabTheLot bool) (bool, error) {
	if grabTheLot {
		if err := ch.Exceptions.Preload(ctx, userID); err != nil {
			return false, err
		}
	}
	satisfied, err := ch.CourseAvailable(ctx, courseID, userID)
	if err != nil {
		return false, err
	}
	result := cond.Not != satisfied // XOR
	metrics.AccessCheck(result)
	return result, nil
}
