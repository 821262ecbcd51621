package idp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderSource(t *testing.T) {
	src := HeaderSource{Attribute: "X-Shib-User"}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Shib-User", "  alice  ")

	name, err := src.Username(r)
	require.NoError(t, err)
	assert.Equal(t, "alice", name)
}

func TestHeaderSourceAbsent(t *testing.T) {
	src := HeaderSource{Attribute: "X-Shib-User"}

	name, err := src.Username(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestUserInfoSourceForwardsCookies(t *testing.T) {
	var gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("MoodleSession"); err == nil {
			gotCookie = c.Value
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"username": "alice"})
	}))
	defer srv.Close()

	src := NewUserInfoSource(srv.URL)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "MoodleSession", Value: "abc123"})

	name, err := src.Username(r)
	require.NoError(t, err)
	assert.Equal(t, "alice", name)
	assert.Equal(t, "abc123", gotCookie)
}

func TestUserInfoSourceNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	src := NewUserInfoSource(srv.URL)
	_, err := src.Username(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Error(t, err)
}
