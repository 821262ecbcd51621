package availability

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/coursegate/internal/store/core"
	"github.com/dropDatabas3/coursegate/internal/store/memory"
)

// countingStore cuenta las lecturas puntuales que llegan al store real.
type countingStore struct {
	core.ExceptionStore
	gets  atomic.Int64
	lists atomic.Int64
}

func (c *countingStore) GetException(ctx context.Context, courseID, userID int64) (bool, error) {
	c.gets.Add(1)
	return c.ExceptionStore.GetException(ctx, courseID, userID)
}

func (c *countingStore) ListSkipAuthCourses(ctx context.Context, userID int64) ([]int64, error) {
	c.lists.Add(1)
	return c.ExceptionStore.ListSkipAuthCourses(ctx, userID)
}

func TestExceptionsGetWithoutCacheHitsStore(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	require.NoError(t, mem.SetException(ctx, 10, 7, true))

	cs := &countingStore{ExceptionStore: mem}
	exc := NewExceptions(cs)

	skip, err := exc.Get(ctx, 10, 7)
	require.NoError(t, err)
	assert.True(t, skip)
	assert.EqualValues(t, 1, cs.gets.Load())

	// Sin preload, cada Get vuelve al store.
	_, err = exc.Get(ctx, 11, 7)
	require.NoError(t, err)
	assert.EqualValues(t, 2, cs.gets.Load())
}

func TestExceptionsPreloadServesFromCache(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	require.NoError(t, mem.SetException(ctx, 10, 7, true))
	require.NoError(t, mem.SetException(ctx, 11, 7, true))
	require.NoError(t, mem.SetException(ctx, 12, 7, false))

	cs := &countingStore{ExceptionStore: mem}
	exc := NewExceptions(cs)

	require.NoError(t, exc.Preload(ctx, 7))
	assert.EqualValues(t, 1, cs.lists.Load())

	for courseID, want := range map[int64]bool{10: true, 11: true, 12: false, 99: false} {
		got, err := exc.Get(ctx, courseID, 7)
		require.NoError(t, err)
		assert.Equal(t, want, got, "course %d", courseID)
	}
	// Todas las lecturas salieron del slot, ninguna del store.
	assert.EqualValues(t, 0, cs.gets.Load())
}

func TestExceptionsCacheIsPerUser(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	require.NoError(t, mem.SetException(ctx, 10, 8, true))

	cs := &countingStore{ExceptionStore: mem}
	exc := NewExceptions(cs)

	require.NoError(t, exc.Preload(ctx, 7))

	// Otro usuario no matchea el slot: va al store.
	skip, err := exc.Get(ctx, 10, 8)
	require.NoError(t, err)
	assert.True(t, skip)
	assert.EqualValues(t, 1, cs.gets.Load())
}

func TestExceptionsSetInvalidatesLoadedSlot(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	exc := NewExceptions(mem)

	require.NoError(t, exc.Preload(ctx, 7))

	skip, err := exc.Get(ctx, 10, 7)
	require.NoError(t, err)
	assert.False(t, skip)

	// La escritura del mismo usuario tira el slot: la próxima lectura ve el
	// valor nuevo en vez de un stale false.
	require.NoError(t, exc.Set(ctx, 10, 7, true))

	skip, err = exc.Get(ctx, 10, 7)
	require.NoError(t, err)
	assert.True(t, skip)
}

func TestExceptionsSetIsIdempotent(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	exc := NewExceptions(mem)

	require.NoError(t, exc.Set(ctx, 10, 7, true))
	require.NoError(t, exc.Set(ctx, 10, 7, true))

	skip, err := exc.Get(ctx, 10, 7)
	require.NoError(t, err)
	assert.True(t, skip)

	// El upsert sobre el mismo par conserva un solo registro.
	recs, err := mem.ListExceptionsByUser(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestCascadeDeletesInvalidateCache(t *testing.T) {
	ctx := context.Background()

	t.Run("enrolment deleted", func(t *testing.T) {
		mem := memory.New()
		require.NoError(t, mem.SetException(ctx, 10, 7, true))
		exc := NewExceptions(mem)
		require.NoError(t, exc.Preload(ctx, 7))

		require.NoError(t, exc.EnrolmentDeleted(ctx, 10, 7))

		skip, err := exc.Get(ctx, 10, 7)
		require.NoError(t, err)
		assert.False(t, skip, "stale true must not survive the cascade")
	})

	t.Run("course deleted", func(t *testing.T) {
		mem := memory.New()
		require.NoError(t, mem.SetException(ctx, 10, 7, true))
		exc := NewExceptions(mem)
		require.NoError(t, exc.Preload(ctx, 7))

		require.NoError(t, exc.CourseDeleted(ctx, 10))

		skip, err := exc.Get(ctx, 10, 7)
		require.NoError(t, err)
		assert.False(t, skip)
	})

	t.Run("user deleted", func(t *testing.T) {
		mem := memory.New()
		require.NoError(t, mem.SetException(ctx, 10, 7, true))
		exc := NewExceptions(mem)
		require.NoError(t, exc.Preload(ctx, 7))

		require.NoError(t, exc.UserDeleted(ctx, 7))

		skip, err := exc.Get(ctx, 10, 7)
		require.NoError(t, err)
		assert.False(t, skip)
	})
}
