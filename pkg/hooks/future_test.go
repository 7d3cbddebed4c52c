package hooks_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veltran/swoop/pkg/hooks"
)

func TestFuture_ResolveOnce(t *testing.T) {
	fut := hooks.NewFuture()
	assert.True(t, fut.Pending())

	fut.Resolve("first")
	fut.Resolve("second")
	fut.Reject(assert.AnError)

	val, err := fut.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", val)
	assert.False(t, fut.Pending())
}

func TestFuture_Reject(t *testing.T) {
	fut := hooks.NewFuture()
	fut.Reject(assert.AnError)

	_, err := fut.Wait(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestFuture_WaitHonorsContext(t *testing.T) {
	fut := hooks.NewFuture()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := fut.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
