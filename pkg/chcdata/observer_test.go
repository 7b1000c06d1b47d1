package chcdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoopObserverIsSafeToCall(t *testing.T) {
	var o Observer = noopObserver{}
	o.Tick("phase")
	o.Mark("phase")
	o.Count("counter", 3)
}

func TestSimpleObserverAccumulatesCounters(t *testing.T) {
	o := NewSimpleObserver()
	o.Count("trivial constraints", 2)
	o.Count("trivial constraints", 3)
	assert.Equal(t, 5, o.Counters["trivial constraints"])
}

func TestSimpleObserverMarkWithoutTickIsNoop(t *testing.T) {
	o := NewSimpleObserver()
	o.Mark("never ticked")
	assert.Zero(t, o.Durations["never ticked"])
}

func TestSimpleObserverTickMarkRecordsDuration(t *testing.T) {
	o := NewSimpleObserver()
	o.Tick("propagate")
	o.Mark("propagate")
	_, stillTicking := o.ticks["propagate"]
	assert.False(t, stillTicking)
	_, recorded := o.Durations["propagate"]
	assert.True(t, recorded)
}
