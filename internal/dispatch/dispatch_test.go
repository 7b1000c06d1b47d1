package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/icelearn/hoicedata/internal/predtab"
	"github.com/icelearn/hoicedata/pkg/chcdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu      sync.Mutex
	batches int
}

func (r *recordingSink) Send(ctx context.Context, batch []chcdata.ConstraintView) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches++
	return nil
}

type failingSink struct{}

func (failingSink) Send(ctx context.Context, batch []chcdata.ConstraintView) error {
	return errors.New("sink unavailable")
}

func TestBroadcastFansOutToEverySink(t *testing.T) {
	d := New(4)
	a, b := &recordingSink{}, &recordingSink{}
	batch := []chcdata.ConstraintView{{}}

	err := d.Broadcast(context.Background(), batch, []Sink{a, b})
	require.NoError(t, err)
	assert.Equal(t, 1, a.batches)
	assert.Equal(t, 1, b.batches)
}

func TestBroadcastEmptyBatchIsNoop(t *testing.T) {
	d := New(4)
	a := &recordingSink{}
	require.NoError(t, d.Broadcast(context.Background(), nil, []Sink{a}))
	assert.Equal(t, 0, a.batches)
}

func TestBroadcastPropagatesSinkError(t *testing.T) {
	d := New(2)
	batch := []chcdata.ConstraintView{{}}
	err := d.Broadcast(context.Background(), batch, []Sink{failingSink{}})
	assert.Error(t, err)
}

func TestClassifyAllPreservesOrder(t *testing.T) {
	predTab := predtab.New()
	p := predTab.Declare(chcdata.IntSort)
	data := chcdata.New(chcdata.Config{}, predTab, predtab.NewClauses())

	pos := chcdata.NewArgs(chcdata.IntVFromInt64(1))
	neg := chcdata.NewArgs(chcdata.IntVFromInt64(2))
	data.AddRawPos(p, pos)
	data.AddRawNeg(p, neg)
	require.NoError(t, data.Propagate(context.Background()))

	d := New(4)
	results, err := d.ClassifyAll(context.Background(), data, p, []*chcdata.Args{pos, neg, chcdata.NewArgs(chcdata.IntVFromInt64(3))})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, chcdata.ClassPositive, results[0])
	assert.Equal(t, chcdata.ClassNegative, results[1])
	assert.Equal(t, chcdata.ClassUnknown, results[2])
}

func TestNewDefaultsMaxWorkersWhenNonPositive(t *testing.T) {
	d := New(0)
	assert.Greater(t, d.maxWorkers, 0)
}
