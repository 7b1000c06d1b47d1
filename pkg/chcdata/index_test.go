package chcdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInverseIndexLinkAndRemoveSubs(t *testing.T) {
	ix := newInverseIndex()
	ix.link(predP, args1(1), 0)
	ix.link(predP, args1(2), 1)

	affected := ix.removeSubs(predP, NewArgs(Bot(IntSort)))
	assert.Len(t, affected, 2)
	_, ok0 := affected[0]
	_, ok1 := affected[1]
	assert.True(t, ok0)
	assert.True(t, ok1)

	// Both concrete keys were resolved and removed.
	assert.Empty(t, ix.similar(predP))
}

func TestInverseIndexUnlinkPrunesEmptyBuckets(t *testing.T) {
	ix := newInverseIndex()
	ix.link(predP, args1(1), 0)
	ix.unlink(predP, args1(1), 0)

	_, ok := ix.byPred[predP]
	assert.False(t, ok, "an emptied bucket must not linger")
}

func TestInverseIndexLinkUnlinkConstraint(t *testing.T) {
	a := Atom{Pred: predP, Args: args1(1)}
	rhs := NewSample(predQ, args1(2))
	c := newConstraint(lhsOf(a), &rhs)
	c.id = 7

	ix := newInverseIndex()
	ix.linkConstraint(7, c)
	assert.Len(t, ix.similar(predP), 1)
	assert.Len(t, ix.similar(predQ), 1)

	ix.unlinkConstraint(7, c)
	assert.Empty(t, ix.similar(predP))
	assert.Empty(t, ix.similar(predQ))
}
