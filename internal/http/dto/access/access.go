// Package access define los contratos JSON del flujo de decisión y verificación.
package access

// DecisionResponse es la respuesta del check de disponibilidad.
type DecisionResponse struct {
	CourseID int64 `json:"course_id"`
	UserID   int64 `json:"user_id"`
	Granted  bool  `json:"granted"`
}

// ConfirmResponse es la respuesta de la página de confirmación: si el curso ya
// está disponible devuelve la URL para continuar; si no, la URL de verificación.
type ConfirmResponse struct {
	CourseID    int64  `json:"course_id"`
	Available   bool   `json:"available"`
	ContinueURL string `json:"continue_url,omitempty"`
	VerifyURL   string `json:"verify_url,omitempty"`
}

// VerifyResponse es la respuesta del endpoint de verificación cuando el segundo
// factor quedó confirmado.
type VerifyResponse struct {
	CourseID    int64  `json:"course_id"`
	Verified    bool   `json:"verified"`
	RedirectURL string `json:"redirect_url"`
}
