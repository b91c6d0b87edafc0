package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifierAcquireOwnRelease(t *testing.T) {
	owner := &struct{ name string }{"thing"}
	id := IdentifierAcquireNewID(owner)

	assert.Same(t, owner, IdentifierOwner(id))

	require.NoError(t, IdentifierReleaseID(id))
	assert.Nil(t, IdentifierOwner(id))

	// The freed slot is handed out again.
	other := &struct{ name string }{"other"}
	id2 := IdentifierAcquireNewID(other)
	assert.Equal(t, id, id2)
	require.NoError(t, IdentifierReleaseID(id2))
}

func TestIdentifierReleaseOutOfRange(t *testing.T) {
	IdentifierAcquireNewID(&struct{}{})
	assert.Error(t, IdentifierReleaseID(1 << 30))
}

func TestIdentifierOwnerOutOfRange(t *testing.T) {
	assert.Nil(t, IdentifierOwner(1<<30))
}
