package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/coursegate/internal/session"
	"github.com/dropDatabas3/coursegate/internal/store/memory"
)

func newChecker(t *testing.T, store *countingStore, sess *session.Session) (*Checker, *session.Tracker) {
	t.Helper()
	tracker := session.NewTracker(session.NewMemoryFlags(0), nil)
	return &Checker{
		Exceptions: NewExceptions(store),
		Flags:      tracker,
		Session:    sess,
	}, tracker
}

func TestIsAvailableDeniedByDefault(t *testing.T) {
	ctx := context.Background()
	cs := &countingStore{ExceptionStore: memory.New()}
	sess := &session.Session{ID: "s1", UserID: 7, Username: "alice"}
	ch, _ := newChecker(t, cs, sess)

	ok, err := ch.IsAvailable(ctx, Condition{}, 10, 7, false)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsAvailableSecondFactorFlow(t *testing.T) {
	ctx := context.Background()
	cs := &countingStore{ExceptionStore: memory.New()}
	sess := &session.Session{ID: "s1", UserID: 7, Username: "alice"}
	ch, tracker := newChecker(t, cs, sess)

	ok, err := ch.IsAvailable(ctx, Condition{}, 10, 7, false)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, tracker.SetAuthenticated(ctx, sess))

	cs.gets.Store(0)
	ok, err = ch.IsAvailable(ctx, Condition{}, 10, 7, false)
	require.NoError(t, err)
	assert.True(t, ok)
	// El fast path responde sin tocar el storage.
	assert.EqualValues(t, 0, cs.gets.Load())
	assert.EqualValues(t, 0, cs.lists.Load())
}

func TestIsAvailableExceptionGrantsWithoutSecondFactor(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	require.NoError(t, mem.SetException(ctx, 10, 7, true))
	cs := &countingStore{ExceptionStore: mem}
	sess := &session.Session{ID: "s1", UserID: 7, Username: "alice"}
	ch, _ := newChecker(t, cs, sess)

	ok, err := ch.IsAvailable(ctx, Condition{}, 10, 7, false)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsAvailableNotInversion(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	require.NoError(t, mem.SetException(ctx, 10, 7, true))
	cs := &countingStore{ExceptionStore: mem}
	sess := &session.Session{ID: "s1", UserID: 7, Username: "alice"}
	ch, _ := newChecker(t, cs, sess)

	ok, err := ch.IsAvailable(ctx, Condition{Not: true}, 10, 7, false)
	require.NoError(t, err)
	assert.False(t, ok, "satisfied + Not => false")

	ok, err = ch.IsAvailable(ctx, Condition{Not: true}, 99, 7, false)
	require.NoError(t, err)
	assert.True(t, ok, "not satisfied + Not => true")
}

func TestCourseAvailableOtherUserIgnoresSessionFlag(t *testing.T) {
	ctx := context.Background()
	cs := &countingStore{ExceptionStore: memory.New()}
	sess := &session.Session{ID: "s1", UserID: 7, Username: "alice"}
	ch, tracker := newChecker(t, cs, sess)

	require.NoError(t, tracker.SetAuthenticated(ctx, sess))

	// El flag es de ESTA sesión: para otro usuario sólo cuenta la excepción.
	ok, err := ch.CourseAvailable(ctx, 10, 8)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsAvailableBulkPreloadsOnce(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	require.NoError(t, mem.SetException(ctx, 10, 8, true))
	require.NoError(t, mem.SetException(ctx, 11, 8, true))
	cs := &countingStore{ExceptionStore: mem}

	// Caller bulk sin sesión del usuario consultado (p.ej. reportes).
	ch, _ := newChecker(t, cs, nil)

	for _, courseID := range []int64{10, 11, 12} {
		_, err := ch.IsAvailable(ctx, Condition{}, courseID, 8, true)
		require.NoError(t, err)
	}

	// Un list por IsAvailable (el preload), cero gets puntuales.
	assert.EqualValues(t, 3, cs.lists.Load())
	assert.EqualValues(t, 0, cs.gets.Load())
}

func TestAccessGateScenario(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()

	// Usuario 42 sin excepción en el curso 7 y sin segundo factor.
	sess := &session.Session{ID: "s1", UserID: 42, Username: "carol"}
	cs := &countingStore{ExceptionStore: mem}
	ch, _ := newChecker(t, cs, sess)

	ok, err := ch.IsAvailable(ctx, Condition{}, 7, 42, false)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = ch.IsAvailable(ctx, Condition{Not: true}, 7, 42, false)
	require.NoError(t, err)
	assert.True(t, ok)

	// Staff le concede la excepción: ambos resultados se invierten.
	require.NoError(t, ch.Exceptions.Set(ctx, 7, 42, true))

	ok, err = ch.IsAvailable(ctx, Condition{}, 7, 42, false)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = ch.IsAvailable(ctx, Condition{Not: true}, 7, 42, false)
	require.NoError(t, err)
	assert.False(t, ok)

	// Sesión nueva: completa el segundo factor y entra al curso 9 (sin
	// excepción) por el fast path, sin tocar el storage.
	fresh := &session.Session{ID: "s2", UserID: 42, Username: "carol"}
	cs2 := &countingStore{ExceptionStore: mem}
	ch2, tracker2 := newChecker(t, cs2, fresh)
	require.NoError(t, tracker2.SetAuthenticated(ctx, fresh))

	ok, err = ch2.IsAvailable(ctx, Condition{}, 9, 42, false)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 0, cs2.gets.Load())
	assert.EqualValues(t, 0, cs2.lists.Load())
}

func TestIsAvailableNilSessionDenies(t *testing.T) {
	ctx := context.Background()
	cs := &countingStore{ExceptionStore: memory.New()}
	ch, _ := newChecker(t, cs, nil)

	ok, err := ch.IsAvailable(ctx, Condition{}, 10, 7, false)
	require.NoError(t, err)
	assert.False(t, ok)
}
