package crypto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, CheckPassword("s3cret-password", hash))
	assert.False(t, CheckPassword("wrong-password", hash))
	assert.False(t, CheckPassword("s3cret-password", "not-a-hash"))
}

func TestHashPassword_Error(t *testing.T) {
	orig := bcryptGenerateFromPassword
	bcryptGenerateFromPassword = func(password []byte, cost int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	defer func() { bcryptGenerateFromPassword = orig }()

	_, err := HashPassword("anything")
	assert.Error(t, err)
}
