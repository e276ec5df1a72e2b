package mail

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllOrNothingJoin_KeepsInputOrder(t *testing.T) {
	ids := []string{"a", "b", "c", "d"}
	delays := map[string]time.Duration{"a": 30 * time.Millisecond, "b": 0, "c": 10 * time.Millisecond, "d": 0}

	results, err := AllOrNothingJoin(context.Background(), ids, 0, func(ctx context.Context, id string) (string, error) {
		time.Sleep(delays[id])
		return "msg-" + id, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"msg-a", "msg-b", "msg-c", "msg-d"}, results)
}

func TestAllOrNothingJoin_FailsWhole(t *testing.T) {
	boom := errors.New("boom")
	results, err := AllOrNothingJoin(context.Background(), []string{"a", "b", "c"}, 0, func(ctx context.Context, id string) (int, error) {
		if id == "b" {
			return 0, boom
		}
		return 1, nil
	})

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, results)
}

func TestAllOrNothingJoin_CancelsSiblings(t *testing.T) {
	var cancelled atomic.Bool
	_, err := AllOrNothingJoin(context.Background(), []string{"fail", "slow"}, 0, func(ctx context.Context, id string) (int, error) {
		if id == "fail" {
			return 0, errors.New("failed")
		}
		select {
		case <-ctx.Done():
			cancelled.Store(true)
			return 0, ctx.Err()
		case <-time.After(2 * time.Second):
			return 1, nil
		}
	})

	require.Error(t, err)
	assert.True(t, cancelled.Load())
}

func TestAllOrNothingJoin_BoundsConcurrency(t *testing.T) {
	ids := make([]string, 20)
	for i := range ids {
		ids[i] = fmt.Sprintf("m%d", i)
	}
	var inFlight, peak atomic.Int32

	results, err := AllOrNothingJoin(context.Background(), ids, 3, func(ctx context.Context, id string) (string, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return id, nil
	})

	require.NoError(t, err)
	assert.Equal(t, ids, results)
	assert.LessOrEqual(t, peak.Load(), int32(3))
	assert.Positive(t, peak.Load())
}

func TestAllOrNothingJoin_Empty(t *testing.T) {
	results, err := AllOrNothingJoin(context.Background(), nil, 0, func(ctx context.Context, id string) (int, error) {
		t.Fatal("must not be called")
		return 0, nil
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestBestEffortJoin(t *testing.T) {
	outcome := BestEffortJoin(context.Background(), []string{"m1", "m2", "m3", "m4"}, func(ctx context.Context, id string) error {
		if id == "m2" || id == "m4" {
			return errors.Errorf("cannot trash %s", id)
		}
		return nil
	})

	assert.Equal(t, 4, outcome.Total())
	assert.Equal(t, []string{"m1", "m3"}, outcome.Succeeded)
	assert.Equal(t, []string{"m2", "m4"}, outcome.FailedIDs())
	assert.EqualError(t, outcome.Failed[0].Err, "cannot trash m2")
}

func TestBestEffortJoin_AllSucceed(t *testing.T) {
	outcome := BestEffortJoin(context.Background(), []string{"m1"}, func(ctx context.Context, id string) error {
		return nil
	})
	assert.Equal(t, []string{"m1"}, outcome.Succeeded)
	assert.Empty(t, outcome.Failed)
	assert.NotNil(t, outcome.FailedIDs())
}
