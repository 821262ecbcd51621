// Package manage define los contratos JSON del management de excepciones.
package manage

// ListResponse devuelve los dos conjuntos de usuarios inscritos del curso.
type ListResponse struct {
	CourseID         int64   `json:"course_id"`
	WithException    []int64 `json:"with_exception"`
	WithoutException []int64 `json:"without_exception"`
}

// SetRequest es el body del upsert puntual.
type SetRequest struct {
	SkipAuth bool `json:"skip_auth"`
}

// BulkRequest es el body de la acción masiva de los dos botones del management.
type BulkRequest struct {
	Action  string  `json:"action"` // add | remove
	UserIDs []int64 `json:"user_ids"`
}

// BulkResponse reporta cuántos usuarios tocó la acción.
type BulkResponse struct {
	CourseID int64  `json:"course_id"`
	Action   string `json:"action"`
	Affected int    `json:"affected"`
}
