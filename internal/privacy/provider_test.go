package privacy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/coursegate/internal/store/core"
	"github.com/dropDatabas3/coursegate/internal/store/memory"
)

func newProvider(t *testing.T) (*Provider, *memory.Store) {
	t.Helper()
	s := memory.New()
	ctx := context.Background()
	require.NoError(t, s.SetException(ctx, 10, 1, true))
	require.NoError(t, s.SetException(ctx, 11, 1, true))
	require.NoError(t, s.SetException(ctx, 10, 2, true))
	return NewProvider(s), s
}

func TestCoursesForUser(t *testing.T) {
	p, _ := newProvider(t)

	ids, err := p.CoursesForUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11}, ids)

	ids, err = p.CoursesForUser(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestExport(t *testing.T) {
	p, _ := newProvider(t)

	recs, err := p.Export(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []core.ExceptionRecord{
		{CourseID: 10, UserID: 1, SkipAuth: true},
		{CourseID: 11, UserID: 1, SkipAuth: true},
	}, recs)
}

func TestDeleteAllInCourse(t *testing.T) {
	p, s := newProvider(t)
	ctx := context.Background()

	require.NoError(t, p.DeleteAllInCourse(ctx, 10))

	ids, _ := s.ListExceptionUserIDs(ctx, 10)
	assert.Empty(t, ids)
	ids, _ = s.ListExceptionUserIDs(ctx, 11)
	assert.Equal(t, []int64{1}, ids, "otros cursos intactos")
}

func TestDeleteForUserScopedToApprovedCourses(t *testing.T) {
	p, s := newProvider(t)
	ctx := context.Background()

	require.NoError(t, p.DeleteForUser(ctx, 1, []int64{10}))

	got, _ := s.GetException(ctx, 10, 1)
	assert.False(t, got)
	got, _ = s.GetException(ctx, 11, 1)
	assert.True(t, got, "cursos no aprobados intactos")
}

func TestUsersInCourse(t *testing.T) {
	p, _ := newProvider(t)

	ids, err := p.UsersInCourse(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids)
}

func TestDeleteUsersInCourse(t *testing.T) {
	p, s := newProvider(t)
	ctx := context.Background()

	require.NoError(t, p.DeleteUsersInCourse(ctx, 10, []int64{1}))

	ids, _ := p.UsersInCourse(ctx, 10)
	assert.Equal(t, []int64{2}, ids)
	got, _ := s.GetException(ctx, 11, 1)
	assert.True(t, got)
}
