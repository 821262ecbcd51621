package idp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyMatchIsCaseInsensitive(t *testing.T) {
	assert.NoError(t, Verify("alice", "alice"))
	assert.NoError(t, Verify("Alice", "alice"))
	assert.NoError(t, Verify("alice", "ALICE"))
}

func TestVerifyAbsentAssertion(t *testing.T) {
	assert.ErrorIs(t, Verify("alice", ""), ErrNoExternalLogin)
}

func TestVerifyWrongUser(t *testing.T) {
	assert.ErrorIs(t, Verify("alice", "bob"), ErrWrongUser)
}
