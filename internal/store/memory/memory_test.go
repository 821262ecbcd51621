package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/coursegate/internal/store/core"
)

func seed(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	// curso 10: usuarios 1 (skip), 2 (skip), 3 (sin skip)
	require.NoError(t, s.SetException(ctx, 10, 1, true))
	require.NoError(t, s.SetException(ctx, 10, 2, true))
	require.NoError(t, s.SetException(ctx, 10, 3, false))
	// curso 11: usuario 1
	require.NoError(t, s.SetException(ctx, 11, 1, true))
}

func TestGetException(t *testing.T) {
	s := New()
	seed(t, s)
	ctx := context.Background()

	got, err := s.GetException(ctx, 10, 1)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = s.GetException(ctx, 10, 3)
	require.NoError(t, err)
	assert.False(t, got, "skipauth=false no concede")

	got, err = s.GetException(ctx, 10, 99)
	require.NoError(t, err)
	assert.False(t, got, "registro ausente no concede")
}

func TestListSkipAuthCourses(t *testing.T) {
	s := New()
	seed(t, s)

	courses, err := s.ListSkipAuthCourses(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11}, courses)
}

func TestDeleteExceptionExactPairOnly(t *testing.T) {
	s := New()
	seed(t, s)
	ctx := context.Background()

	require.NoError(t, s.DeleteException(ctx, 10, 1))

	got, _ := s.GetException(ctx, 10, 1)
	assert.False(t, got)
	// El mismo usuario en otro curso no se toca.
	got, _ = s.GetException(ctx, 11, 1)
	assert.True(t, got)
	// Otros usuarios del mismo curso no se tocan.
	got, _ = s.GetException(ctx, 10, 2)
	assert.True(t, got)
}

func TestDeleteCourseExceptions(t *testing.T) {
	s := New()
	seed(t, s)
	ctx := context.Background()

	require.NoError(t, s.DeleteCourseExceptions(ctx, 10))

	ids, err := s.ListExceptionUserIDs(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, ids)

	got, _ := s.GetException(ctx, 11, 1)
	assert.True(t, got, "otros cursos intactos")
}

func TestDeleteUserExceptions(t *testing.T) {
	s := New()
	seed(t, s)
	ctx := context.Background()

	require.NoError(t, s.DeleteUserExceptions(ctx, 1))

	recs, err := s.ListExceptionsByUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, recs)

	got, _ := s.GetException(ctx, 10, 2)
	assert.True(t, got, "otros usuarios intactos")
}

func TestDeleteExceptionsForUsers(t *testing.T) {
	s := New()
	seed(t, s)
	ctx := context.Background()

	require.NoError(t, s.DeleteExceptionsForUsers(ctx, 10, []int64{1, 3}))

	ids, err := s.ListExceptionUserIDs(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids)
}

func TestListExceptionsByUser(t *testing.T) {
	s := New()
	seed(t, s)

	recs, err := s.ListExceptionsByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []core.ExceptionRecord{
		{CourseID: 10, UserID: 1, SkipAuth: true},
		{CourseID: 11, UserID: 1, SkipAuth: true},
	}, recs)
}

func TestListEnrolledUsersTwoSets(t *testing.T) {
	s := New()
	seed(t, s)
	ctx := context.Background()

	for _, uid := range []int64{1, 2, 3, 4} {
		require.NoError(t, s.AddEnrolment(ctx, 10, uid))
	}

	with, err := s.ListEnrolledUsers(ctx, 10, true)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, with)

	// skipauth=false y sin registro caen en el mismo conjunto.
	without, err := s.ListEnrolledUsers(ctx, 10, false)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4}, without)
}

func TestEnrolmentProjectionDeletes(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.AddEnrolment(ctx, 10, 1))
	require.NoError(t, s.AddEnrolment(ctx, 10, 2))
	require.NoError(t, s.AddEnrolment(ctx, 11, 1))

	require.NoError(t, s.DeleteEnrolment(ctx, 10, 1))
	users, _ := s.ListEnrolledUsers(ctx, 10, false)
	assert.Equal(t, []int64{2}, users)

	require.NoError(t, s.DeleteCourseEnrolments(ctx, 10))
	users, _ = s.ListEnrolledUsers(ctx, 10, false)
	assert.Empty(t, users)

	require.NoError(t, s.DeleteUserEnrolments(ctx, 1))
	users, _ = s.ListEnrolledUsers(ctx, 11, false)
	assert.Empty(t, users)
}
