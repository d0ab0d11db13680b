//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRedisURL = "redis://localhost:6380/0"

func TestRedis_Integration(t *testing.T) {
	ctx := context.Background()

	r, err := Connect(ctx, testRedisURL, "news-cms-test:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	require.NoError(t, r.Delete(ctx, KeyHomepage))

	_, err = r.Get(ctx, KeyHomepage)
	require.ErrorIs(t, err, ErrMiss)

	require.NoError(t, r.Set(ctx, KeyHomepage, []byte(`{"lead":null}`), time.Minute))

	got, err := r.Get(ctx, KeyHomepage)
	require.NoError(t, err)
	assert.JSONEq(t, `{"lead":null}`, string(got))

	require.NoError(t, Evict(ctx, r, KeyHomepage))
	_, err = r.Get(ctx, KeyHomepage)
	assert.ErrorIs(t, err, ErrMiss)
}
