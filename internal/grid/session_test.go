package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToggle(t *testing.T) {
	sess := NewSession(threeLineNet(t))

	off, err := sess.Toggle("A")
	require.NoError(t, err)
	assert.True(t, off)
	assert.Equal(t, []string{"A"}, sess.OfflineNames())

	off, err = sess.Toggle("A")
	require.NoError(t, err)
	assert.False(t, off)
	assert.Empty(t, sess.OfflineNames())
}

func TestSessionToggleUnknownLine(t *testing.T) {
	sess := NewSession(threeLineNet(t))
	_, err := sess.Toggle("NOPE")
	assert.Error(t, err)
	assert.Empty(t, sess.OfflineNames())
}

func TestSessionSnapshotIsolated(t *testing.T) {
	sess := NewSession(threeLineNet(t))
	_, err := sess.Toggle("A")
	require.NoError(t, err)

	snap := sess.Snapshot()
	require.Contains(t, snap, "A")

	// Mutating the snapshot or toggling afterwards must not leak either way.
	snap["B"] = struct{}{}
	assert.Equal(t, []string{"A"}, sess.OfflineNames())

	_, err = sess.Toggle("C")
	require.NoError(t, err)
	assert.NotContains(t, snap, "C")
}
