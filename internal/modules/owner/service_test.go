package owner

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService() Service {
	return NewService(NewMemoryRepository(), zap.NewNop())
}

func TestClaimOwnerSetOnce(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	set, err := svc.IsOwnerSet(ctx)
	require.NoError(t, err)
	assert.False(t, set)

	claimed, err := svc.ClaimOwner(ctx, 100)
	require.NoError(t, err)
	assert.True(t, claimed)

	// A second claim must fail and must not replace the original value.
	claimed, err = svc.ClaimOwner(ctx, 200)
	require.NoError(t, err)
	assert.False(t, claimed)

	id, set, err := svc.GetOwner(ctx)
	require.NoError(t, err)
	assert.True(t, set)
	assert.Equal(t, int64(100), id)
}

func TestClaimOwnerConcurrent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	var wg sync.WaitGroup
	wins := make(chan int64, 50)
	for i := int64(1); i <= 50; i++ {
		wg.Add(1)
		go func(candidate int64) {
			defer wg.Done()
			if ok, err := svc.ClaimOwner(ctx, candidate); err == nil && ok {
				wins <- candidate
			}
		}(i)
	}
	wg.Wait()
	close(wins)

	var winners []int64
	for w := range wins {
		winners = append(winners, w)
	}
	require.Len(t, winners, 1)

	id, set, err := svc.GetOwner(ctx)
	require.NoError(t, err)
	assert.True(t, set)
	assert.Equal(t, winners[0], id)
}

func TestIsOwner(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	ok, err := svc.IsOwner(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok, "nobody is the owner before a claim")

	_, err = svc.ClaimOwner(ctx, 7)
	require.NoError(t, err)

	ok, err = svc.IsOwner(ctx, 7)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsOwner(ctx, 8)
	require.NoError(t, err)
	assert.False(t, ok)
}
