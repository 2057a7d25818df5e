package bt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlackboard_GetMissingKeyIsZero(t *testing.T) {
	bb := NewBlackboard()
	assert.Equal(t, 0, bb.Get("never-set"))
	assert.False(t, bb.Has("never-set"))

	var zero Blackboard
	assert.Equal(t, 0, zero.Get("x"))
	zero.Set("x", 3)
	assert.Equal(t, 3, zero.Get("x"))
}

func TestBlackboard_SetGetLastWriteWins(t *testing.T) {
	bb := NewBlackboard()
	bb.Set("health", 100)
	bb.Set("health", 25)
	assert.Equal(t, 25, bb.Get("health"))
	assert.True(t, bb.Has("health"))
}

func TestBlackboard_KeysAreIndependent(t *testing.T) {
	bb := NewBlackboard()
	bb.Set("a", 1)
	bb.Set("b", 2)
	bb.Set("a", 10)
	assert.Equal(t, 10, bb.Get("a"))
	assert.Equal(t, 2, bb.Get("b"))

	bb.Delete("a")
	assert.Equal(t, 0, bb.Get("a"))
	assert.Equal(t, 2, bb.Get("b"))
	assert.Equal(t, []string{"b"}, bb.Keys())
	assert.Equal(t, 1, bb.Len())
}

func TestBlackboard_SnapshotIsCopy(t *testing.T) {
	bb := NewBlackboard()
	bb.Set("k", 1)
	snap := bb.Snapshot()
	snap["k"] = 99
	assert.Equal(t, 1, bb.Get("k"))
}

func TestBlackboard_Digest(t *testing.T) {
	a := NewBlackboard()
	a.Set("x", 1)
	a.Set("y", 2)

	b := NewBlackboard()
	b.Set("y", 2)
	b.Set("x", 1)

	assert.Equal(t, a.Digest(), b.Digest())

	b.Set("x", 3)
	assert.NotEqual(t, a.Digest(), b.Digest())

	b.Delete("x")
	b.Set("x", 1)
	assert.Equal(t, a.Digest(), b.Digest())
}

func TestBlackboard_BinaryRoundTrip(t *testing.T) {
	src := NewBlackboard()
	src.Set("chaseProgress", 2)
	src.Set("playerDistance", -5)

	data, err := src.MarshalBinary()
	require.NoError(t, err)

	dst := NewBlackboard()
	dst.Set("stale", 7)
	require.NoError(t, dst.UnmarshalBinary(data))

	assert.Equal(t, src.Snapshot(), dst.Snapshot())
	assert.False(t, dst.Has("stale"))

	assert.Error(t, dst.UnmarshalBinary([]byte("garbage")))
}
