// Package privacy define los contratos JSON de la superficie de privacidad.
package privacy

// CoursesResponse enumera los cursos que guardan datos del usuario.
type CoursesResponse struct {
	UserID    int64   `json:"user_id"`
	CourseIDs []int64 `json:"course_ids"`
}

// ExportRecord es un registro exportado del usuario.
type ExportRecord struct {
	CourseID int64 `json:"course_id"`
	SkipAuth bool  `json:"skip_auth"`
}

// ExportResponse es el export completo de datos del usuario.
type ExportResponse struct {
	UserID  int64          `json:"user_id"`
	Records []ExportRecord `json:"records"`
}

// UsersResponse enumera los usuarios con datos en un curso.
type UsersResponse struct {
	CourseID int64   `json:"course_id"`
	UserIDs  []int64 `json:"user_ids"`
}

// DeleteForUserRequest acota el borrado del usuario a los cursos aprobados.
type DeleteForUserRequest struct {
	CourseIDs []int64 `json:"course_ids"`
}

// DeleteUsersRequest acota el borrado en el curso a los usuarios aprobados.
type DeleteUsersRequest struct {
	UserIDs []int64 `json:"user_ids"`
}
