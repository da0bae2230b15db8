package lease_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dealflow/internal/infrastructure/lease"
	"dealflow/pkg/dbtest"
)

func TestRedisLease(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	client := dbtest.Redis(t)

	first := lease.NewRedisLease(client, "dealflow:sweep", time.Minute)
	second := lease.NewRedisLease(client, "dealflow:sweep", time.Minute)

	release, ok, err := first.Acquire(ctx)
	rq.NoError(err)
	rq.True(ok)

	_, ok, err = second.Acquire(ctx)
	rq.NoError(err)
	rq.False(ok)

	rq.NoError(release(ctx))

	releaseSecond, ok, err := second.Acquire(ctx)
	rq.NoError(err)
	rq.True(ok)

	// A stale release must not free a lease taken over by another holder.
	rq.NoError(release(ctx))

	_, ok, err = first.Acquire(ctx)
	rq.NoError(err)
	rq.False(ok)

	rq.NoError(releaseSecond(ctx))
}
