package password

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	t.Run("known vector", func(t *testing.T) {
		// sha256("pw1" + "42") == sha256("pw142")
		assert.Equal(t, Hash("pw142", ""), Hash("pw1", "42"))
		assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Hash("", ""))
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, Hash("secret", "123"), Hash("secret", "123"))
	})

	t.Run("any changed byte changes the digest", func(t *testing.T) {
		base := Hash("secret", "123")
		assert.NotEqual(t, base, Hash("secreT", "123"))
		assert.NotEqual(t, base, Hash("secret", "124"))
		assert.NotEqual(t, base, Hash("secret1", "23"))
		assert.Len(t, base, 64)
	})
}

func TestNewSalt(t *testing.T) {
	for i := 0; i < 200; i++ {
		s, err := NewSalt()
		require.NoError(t, err)
		n, err := strconv.Atoi(s)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, maxSalt)
	}
}

func TestHasher(t *testing.T) {
	sha, err := NewHasher("")
	require.NoError(t, err)
	assert.Equal(t, SchemeSHA256, sha.Scheme())

	bc, err := NewHasher(SchemeBcrypt)
	require.NoError(t, err)

	_, err = NewHasher("md5")
	assert.Error(t, err)

	t.Run("sha256 round trip", func(t *testing.T) {
		d, err := sha.Digest("pw1", "77")
		require.NoError(t, err)
		assert.Equal(t, Hash("pw1", "77"), d)
		assert.True(t, sha.Verify("pw1", "77", d))
		assert.False(t, sha.Verify("pw2", "77", d))
		assert.False(t, sha.Verify("pw1", "78", d))
	})

	t.Run("bcrypt round trip", func(t *testing.T) {
		d, err := bc.Digest("pw1", "77")
		require.NoError(t, err)
		assert.True(t, bc.Verify("pw1", "77", d))
		assert.False(t, bc.Verify("pw1", "78", d))
	})

	t.Run("verify follows the stored digest scheme", func(t *testing.T) {
		legacy := Hash("pw1", "5")
		assert.True(t, bc.Verify("pw1", "5", legacy))

		d, err := bc.Digest("pw1", "5")
		require.NoError(t, err)
		assert.True(t, sha.Verify("pw1", "5", d))
	})
}
