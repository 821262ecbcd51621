// Package events define el contrato JSON del feed de ciclo de vida.
package events

// Event es un evento entrante de la plataforma. Según el kind, course_id y
// user_id pueden ser opcionales (p.ej. course_deleted no trae user_id).
type Event struct {
	Kind     string `json:"kind"`
	CourseID int64  `json:"course_id,omitempty"`
	UserID   int64  `json:"user_id,omitempty"`
}

// AckResponse confirma la aplicación del evento.
type AckResponse struct {
	Kind    string `json:"kind"`
	Applied bool   `json:"applied"`
}
