package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/dropDatabas3/coursegate/internal/store/core"
)

// ====================== EXCEPTIONS ======================

func (s *Store) GetException(ctx context.Context, courseID, userID int64) (bool, error) {
	const q = `SELECT 1 FROM course_exception WHERE courseid = $1 AND userid = $2 AND skipauth = TRUE`
	var one int
	err := s.pool.QueryRow(ctx, q, courseID, userID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) ListSkipAuthCourses(ctx context.Context, userID int64) ([]int64, error) {
	const q = `SELECT courseid FROM course_exception WHERE userid = $1 AND skipauth = TRUE ORDER BY courseid`
	rows, err := s.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// SetException hace el upsert en dos pasos (SELECT id y luego UPDATE o INSERT),
// igual que el flujo de management que lo invoca: sin transacción, tolerando el
// lost-update entre escritores concurrentes.
func (s *Store) SetException(ctx context.Context, courseID, userID int64, skipAuth bool) error {
	const qSel = `SELECT id FROM course_exception WHERE courseid = $1 AND userid = $2`
	var id int64
	err := s.pool.QueryRow(ctx, qSel, courseID, userID).Scan(&id)
	switch {
	case err == nil:
		const qUpd = `UPDATE course_exception SET skipauth = $2 WHERE id = $1`
		_, err = s.pool.Exec(ctx, qUpd, id, skipAuth)
		return err
	case errors.Is(err, pgx.ErrNoRows):
		const qIns = `INSERT INTO course_exception (courseid, userid, skipauth) VALUES ($1, $2, $3)`
		_, err = s.pool.Exec(ctx, qIns, courseID, userID, skipAuth)
		return err
	default:
		return err
	}
}

func (s *Store) DeleteException(ctx context.Context, courseID, userID int64) error {
	const q = `DELETE FROM course_exception WHERE courseid = $1 AND userid = $2`
	_, err := s.pool.Exec(ctx, q, courseID, userID)
	return err
}

func (s *Store) DeleteCourseExceptions(ctx context.Context, courseID int64) error {
	const q = `DELETE FROM course_exception WHERE courseid = $1`
	_, err := s.pool.Exec(ctx, q, courseID)
	return err
}

func (s *Store) DeleteUserExceptions(ctx context.Context, userID int64) error {
	const q = `DELETE FROM course_exception WHERE userid = $1`
	_, err := s.pool.Exec(ctx, q, userID)
	return err
}

func (s *Store) DeleteExceptionsForUsers(ctx context.Context, courseID int64, userIDs []int64) error {
	if len(userIDs) == 0 {
		return nil
	}
	const q = `DELETE FROM course_exception WHERE courseid = $1 AND userid = ANY($2)`
	_, err := s.pool.Exec(ctx, q, courseID, userIDs)
	return err
}

func (s *Store) ListExceptionsByUser(ctx context.Context, userID int64) ([]core.ExceptionRecord, error) {
	const q = `SELECT courseid, userid, skipauth FROM course_exception WHERE userid = $1 ORDER BY courseid`
	rows, err := s.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.ExceptionRecord
	for rows.Next() {
		var rec core.ExceptionRecord
		if err := rows.Scan(&rec.CourseID, &rec.UserID, &rec.SkipAuth); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) ListExceptionUserIDs(ctx context.Context, courseID int64) ([]int64, error) {
	const q = `SELECT userid FROM course_exception WHERE courseid = $1 AND skipauth = TRUE ORDER BY userid`
	rows, err := s.pool.Query(ctx, q, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// ====================== ENROLMENTS ======================

func (s *Store) AddEnrolment(ctx context.Context, courseID, userID int64) error {
	const q = `INSERT INTO course_enrolment (courseid, userid) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	_, err := s.pool.Exec(ctx, q, courseID, userID)
	return err
}

func (s *Store) DeleteEnrolment(ctx context.Context, courseID, userID int64) error {
	const q = `DELETE FROM course_enrolment WHERE courseid = $1 AND userid = $2`
	_, err := s.pool.Exec(ctx, q, courseID, userID)
	return err
}

func (s *Store) DeleteCourseEnrolments(ctx context.Context, courseID int64) error {
	const q = `DELETE FROM course_enrolment WHERE courseid = $1`
	_, err := s.pool.Exec(ctx, q, courseID)
	return err
}

func (s *Store) DeleteUserEnrolments(ctx context.Context, userID int64) error {
	const q = `DELETE FROM course_enrolment WHERE userid = $1`
	_, err := s.pool.Exec(ctx, q, userID)
	return err
}

// ListEnrolledUsers arma los dos conjuntos del management con un LEFT JOIN sobre
// la tabla de excepciones, como hace el selector de usuarios de la plataforma.
func (s *Store) ListEnrolledUsers(ctx context.Context, courseID int64, withException bool) ([]int64, error) {
	var q string
	if withException {
		q = `SELECT en.userid
		       FROM course_enrolment en
		       JOIN course_exception e ON e.userid = en.userid AND e.courseid = en.courseid AND e.skipauth = TRUE
		      WHERE en.courseid = $1
		      ORDER BY en.userid`
	} else {
		q = `SELECT en.userid
		       FROM course_enrolment en
		  LEFT JOIN course_exception e ON e.userid = en.userid AND e.courseid = en.courseid AND e.skipauth = TRUE
		      WHERE en.courseid = $1 AND e.id IS NULL
		      ORDER BY en.userid`
	}
	rows, err := s.pool.Query(ctx, q, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
