//go:build unix

package archive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireLockSerializes(t *testing.T) {
	dir := t.TempDir()

	first, err := AcquireLock(dir)
	require.NoError(t, err)

	acquired := make(chan *Lock)
	go func() {
		second, err := AcquireLock(dir)
		if err != nil {
			close(acquired)
			return
		}
		acquired <- second
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while first is held")
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(t, first.Release())

	select {
	case second, ok := <-acquired:
		require.True(t, ok)
		assert.NoError(t, second.Release())
	case <-time.After(5 * time.Second):
		t.Fatal("second lock never acquired")
	}
}

func TestReleaseTwice(t *testing.T) {
	lock, err := AcquireLock(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, lock.Release())
	assert.NoError(t, lock.Release())
}
