package hasher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndVerify(t *testing.T) {
	digest, err := Hash("correct horse battery staple")
	assert.NoError(t, err)
	assert.NotEmpty(t, digest)

	assert.True(t, Verify("correct horse battery staple", digest))
	assert.False(t, Verify("correct horse battery stapl", digest))
	assert.False(t, Verify("", digest))
}

func TestHash_SaltIsFreshPerCall(t *testing.T) {
	first, err := Hash("hunter2")
	assert.NoError(t, err)
	second, err := Hash("hunter2")
	assert.NoError(t, err)

	// same password, different digests: the salt is embedded, not shared
	assert.NotEqual(t, first, second)
	assert.True(t, Verify("hunter2", first))
	assert.True(t, Verify("hunter2", second))
}

func TestVerify_GarbageDigest(t *testing.T) {
	assert.False(t, Verify("hunter2", "not-a-bcrypt-digest"))
}
