package availability

import (
	"context"

	"github.com/dropDatabas3/coursegate/internal/metrics"
	"github.com/dropDatabas3/coursegate/internal/store/core"
)

// Exceptions es la fachada sobre el store de excepciones que añade el cache de
// lectura de un slot. Se construye por request (o por operación bulk); el cache
// no es fuente de verdad y siempre puede reconstruirse desde el store.
type Exceptions struct {
	store core.ExceptionStore
	cache ReadCache
}

func NewExceptions(store core.ExceptionStore) *Exceptions {
	return &Exceptions{store: store}
}

// Get retorna true si el par (courseID, userID) tiene skipauth=1.
// Si el slot del cache está cargado para ese usuario responde por membership,
// convirtiendo el patrón "un usuario contra muchos cursos" en una sola lectura.
func (e *Exceptions) Get(ctx context.Context, courseID, userID int64) (bool, error) {
	if skip, ok := e.cache.Lookup(courseID, userID); ok {
		metrics.ExceptionCacheHit()
		return skip, nil
	}
	metrics.ExceptionCacheMiss()
	return e.store.GetException(ctx, courseID, userID)
}

// Preload carga de una vez todos los cursos con skipauth=1 del usuario,
// reemplazando el slot completo.
func (e *Exceptions) Preload(ctx context.Context, userID int64) error {
	courses, err := e.store.ListSkipAuthCourses(ctx, userID)
	if err != nil {
		return err
	}
	e.cache.Replace(userID, courses)
	return nil
}

// Set hace el upsert del registro y, si el usuario escrito coincide con el slot
// cargado, invalida el cache entero.
func (e *Exceptions) Set(ctx context.Context, courseID, userID int64, skipAuth bool) error {
	if err := e.store.SetException(ctx, courseID, userID, skipAuth); err != nil {
		return err
	}
	if e.cache.Holds(userID) {
		e.cache.Invalidate()
	}
	return nil
}

// ====================== CASCADE DELETES ======================
// Invocados por el feed de ciclo de vida. A diferencia del flujo original,
// también invalidan el cache cuando tocan al usuario (o curso) cacheado, para
// no servir un stale true dentro del mismo request.

// EnrolmentDeleted elimina el registro exacto del par cuando se borra un enrolment.
func (e *Exceptions) EnrolmentDeleted(ctx context.Context, courseID, userID int64) error {
	if err := e.store.DeleteException(ctx, courseID, userID); err != nil {
		return err
	}
	if e.cache.Holds(userID) {
		e.cache.Invalidate()
	}
	return nil
}

// CourseDeleted elimina todos los registros del curso.
func (e *Exceptions) CourseDeleted(ctx context.Context, courseID int64) error {
	if err := e.store.DeleteCourseExceptions(ctx, courseID); err != nil {
		return err
	}
	if e.cache.Contains(courseID) {
		e.cache.Invalidate()
	}
	return nil
}

// UserDeleted elimina todos los registros del usuario.
func (e *Exceptions) UserDeleted(ctx context.Context, userID int64) error {
	if err := e.store.DeleteUserExceptions(ctx, userID); err != nil {
		return err
	}
	if e.cache.Holds(userID) {
		e.cache.Invalidate()
	}
	return nil
}
