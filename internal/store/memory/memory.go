// Package memory implementa core.Store sobre mapas en memoria.
// Pensado para desarrollo y tests; no persiste nada.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dropDatabas3/coursegate/internal/store/core"
)

type pair struct{ courseID, userID int64 }

type Store struct {
	mu         sync.Mutex
	exceptions map[pair]bool // pair -> skipauth
	enrolments map[pair]struct{}
}

func New() *Store {
	return &Store{
		exceptions: make(map[pair]bool),
		enrolments: make(map[pair]struct{}),
	}
}

func (s *Store) Ping(ctx context.Context) error { return nil }
func (s *Store) Close()                         {}

// ====================== EXCEPTIONS ======================

func (s *Store) GetException(ctx context.Context, courseID, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exceptions[pair{courseID, userID}], nil
}

func (s *Store) ListSkipAuthCourses(ctx context.Context, userID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []int64
	for p, skip := range s.exceptions {
		if p.userID == userID && skip {
			out = append(out, p.courseID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (s *Store) SetException(ctx context.Context, courseID, userID int64, skipAuth bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Upsert: el mapa ya garantiza un registro por par.
	s.exceptions[pair{courseID, userID}] = skipAuth
	return nil
}

func (s *Store) DeleteException(ctx context.Context, courseID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.exceptions, pair{courseID, userID})
	return nil
}

func (s *Store) DeleteCourseExceptions(ctx context.Context, courseID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for p := range s.exceptions {
		if p.courseID == courseID {
			delete(s.exceptions, p)
		}
	}
	return nil
}

func (s *Store) DeleteUserExceptions(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for p := range s.exceptions {
		if p.userID == userID {
			delete(s.exceptions, p)
		}
	}
	return nil
}

func (s *Store) DeleteExceptionsForUsers(ctx context.Context, courseID int64, userIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, uid := range userIDs {
		delete(s.exceptions, pair{courseID, uid})
	}
	return nil
}

func (s *Store) ListExceptionsByUser(ctx context.Context, userID int64) ([]core.ExceptionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.ExceptionRecord
	for p, skip := range s.exceptions {
		if p.userID == userID {
			out = append(out, core.ExceptionRecord{CourseID: p.courseID, UserID: p.userID, SkipAuth: skip})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourseID < out[j].CourseID })
	return out, nil
}

func (s *Store) ListExceptionUserIDs(ctx context.Context, courseID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []int64
	for p, skip := range s.exceptions {
		if p.courseID == courseID && skip {
			out = append(out, p.userID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// ====================== ENROLMENTS ======================

func (s *Store) AddEnrolment(ctx context.Context, courseID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enrolments[pair{courseID, userID}] = struct{}{}
	return nil
}

func (s *Store) DeleteEnrolment(ctx context.Context, courseID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.enrolments, pair{courseID, userID})
	return nil
}

func (s *Store) DeleteCourseEnrolments(ctx context.Context, courseID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for p := range s.enrolments {
		if p.courseID == courseID {
			delete(s.enrolments, p)
		}
	}
	return nil
}

func (s *Store) DeleteUserEnrolments(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for p := range s.enrolments {
		if p.userID == userID {
			delete(s.enrolments, p)
		}
	}
	return nil
}

func (s *Store) ListEnrolledUsers(ctx context.Context, courseID int64, withException bool) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []int64
	for p := range s.enrolments {
		if p.courseID != courseID {
			continue
		}
		if s.exceptions[pair{courseID, p.userID}] == withException {
			out = append(out, p.userID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}
