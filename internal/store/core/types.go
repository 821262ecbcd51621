package core

// ExceptionRecord es una excepción por usuario y curso al requisito de segundo factor.
// Única por (CourseID, UserID); upsert por la capa de management.
type ExceptionRecord struct {
	CourseID int64 `json:"course_id"`
	UserID   int64 `json:"user_id"`
	SkipAuth bool  `json:"skip_auth"`
}

// Enrolment vincula un usuario con un curso. La plataforma es la fuente de verdad;
// aquí sólo mantenemos la proyección que alimenta el feed de ciclo de vida.
type Enrolment struct {
	CourseID int64 `json:"course_id"`
	UserID   int64 `json:"user_id"`
}
