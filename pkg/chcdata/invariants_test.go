package chcdata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInvariantsCleanOnFreshStore(t *testing.T) {
	d := newTestData(Config{})
	d.AddRawPos(predP, args1(1))
	require.NoError(t, d.Propagate(context.Background()))
	assert.NoError(t, d.CheckInvariants())
}

func TestCheckInvariantsCatchesComparableAntichainEntries(t *testing.T) {
	d := newTestData(Config{})
	ac := newAntichain()
	// Bypass InsertMinimal's own eviction to plant a deliberately broken
	// antichain: two comparable entries (a concrete tuple and the
	// partial tuple that subsumes it) under the same predicate.
	ac.tree.ReplaceOrInsert(args1(1))
	ac.tree.ReplaceOrInsert(NewArgs(Bot(IntSort)))
	d.st.samples.pos[predP] = ac

	err := d.CheckInvariants()
	assert.Error(t, err)
}

func TestCheckInvariantsCatchesDanglingIndexLink(t *testing.T) {
	d := newTestData(Config{})
	a := Atom{Pred: predP, Args: args1(1)}
	rhs := NewSample(predQ, args1(2))
	d.st.cstrs.add(newConstraint(lhsOf(a), &rhs))

	// Corrupt the index directly: link an atom no live constraint mentions.
	d.st.cstrs.index.link(predP, args1(99), 12345)

	err := d.CheckInvariants()
	assert.Error(t, err)
}
