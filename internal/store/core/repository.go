package core

import "context"

// ExceptionStore define las operaciones de persistencia sobre las excepciones.
//
// SetException es deliberadamente read-then-write (no un upsert atómico): las
// excepciones son una acción administrativa de baja frecuencia y el lost-update
// entre dos staff concurrentes se acepta.
type ExceptionStore interface {
	// GetException retorna true si existe un registro (courseID, userID) con skipauth=1.
	GetException(ctx context.Context, courseID, userID int64) (bool, error)

	// ListSkipAuthCourses retorna todos los cursos donde el usuario tiene skipauth=1.
	// Alimenta el preload del cache de lectura.
	ListSkipAuthCourses(ctx context.Context, userID int64) ([]int64, error)

	// SetException crea o actualiza el registro del par.
	SetException(ctx context.Context, courseID, userID int64, skipAuth bool) error

	// DeleteException elimina el registro de un par exacto (enrolment eliminado).
	DeleteException(ctx context.Context, courseID, userID int64) error

	// DeleteCourseExceptions elimina todos los registros de un curso (curso eliminado).
	DeleteCourseExceptions(ctx context.Context, courseID int64) error

	// DeleteUserExceptions elimina todos los registros de un usuario (usuario eliminado).
	DeleteUserExceptions(ctx context.Context, userID int64) error

	// DeleteExceptionsForUsers elimina los registros de un conjunto aprobado de
	// usuarios dentro de un curso (privacy bulk delete).
	DeleteExceptionsForUsers(ctx context.Context, courseID int64, userIDs []int64) error

	// ListExceptionsByUser retorna los registros completos de un usuario (privacy export).
	ListExceptionsByUser(ctx context.Context, userID int64) ([]ExceptionRecord, error)

	// ListExceptionUserIDs retorna los usuarios con skipauth=1 en un curso.
	ListExceptionUserIDs(ctx context.Context, courseID int64) ([]int64, error)
}

// EnrolmentStore mantiene la proyección de enrolments usada para listar los dos
// conjuntos del management (con excepción / sin excepción).
type EnrolmentStore interface {
	AddEnrolment(ctx context.Context, courseID, userID int64) error
	DeleteEnrolment(ctx context.Context, courseID, userID int64) error

	// DeleteCourseEnrolments / DeleteUserEnrolments limpian la proyección cuando
	// el ciclo de vida borra el curso o el usuario entero.
	DeleteCourseEnrolments(ctx context.Context, courseID int64) error
	DeleteUserEnrolments(ctx context.Context, userID int64) error

	// ListEnrolledUsers retorna los usuarios inscritos en el curso. Con
	// withException=true retorna sólo los que tienen skipauth=1; con false,
	// sólo los que no lo tienen.
	ListEnrolledUsers(ctx context.Context, courseID int64, withException bool) ([]int64, error)
}

// Store agrupa todo lo que el servicio necesita de la capa de persistencia.
type Store interface {
	ExceptionStore
	EnrolmentStore

	Ping(ctx context.Context) error
	Close()
}
