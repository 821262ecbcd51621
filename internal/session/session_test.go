package session

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return raw
}

func TestFromTokenBuildsSession(t *testing.T) {
	raw := signToken(t, jwt.MapClaims{
		"sub":                "7",
		"sid":                "sess-1",
		"preferred_username": "alice",
		"manage":             []any{float64(10), "11"},
	})

	s, err := FromToken(raw, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", s.ID)
	assert.EqualValues(t, 7, s.UserID)
	assert.Equal(t, "alice", s.Username)
	assert.Equal(t, []int64{10, 11}, s.ManagedCourses)
	assert.False(t, s.ManageAll)
}

func TestFromTokenJTIFallback(t *testing.T) {
	raw := signToken(t, jwt.MapClaims{"sub": "7", "jti": "tok-9"})

	s, err := FromToken(raw, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "tok-9", s.ID)
}

func TestFromTokenManageWildcard(t *testing.T) {
	raw := signToken(t, jwt.MapClaims{"sub": "7", "sid": "s1", "manage": "*"})

	s, err := FromToken(raw, testSecret)
	require.NoError(t, err)
	assert.True(t, s.ManageAll)
	assert.True(t, s.CanManage(12345))
}

func TestFromTokenRejectsBadSignature(t *testing.T) {
	raw := signToken(t, jwt.MapClaims{"sub": "7", "sid": "s1"})

	_, err := FromToken(raw, []byte("other-secret"))
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestFromTokenRequiresSessionID(t *testing.T) {
	raw := signToken(t, jwt.MapClaims{"sub": "7"})

	_, err := FromToken(raw, testSecret)
	assert.ErrorIs(t, err, ErrNoSessionID)
}

func TestFromTokenRequiresSub(t *testing.T) {
	raw := signToken(t, jwt.MapClaims{"sid": "s1"})

	_, err := FromToken(raw, testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestCanManage(t *testing.T) {
	s := &Session{ManagedCourses: []int64{10}}
	assert.True(t, s.CanManage(10))
	assert.False(t, s.CanManage(11))

	var nilSess *Session
	assert.False(t, nilSess.CanManage(10))
}
