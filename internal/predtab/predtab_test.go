package predtab

import (
	"testing"

	"github.com/icelearn/hoicedata/pkg/chcdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredicatesDeclareAndLookup(t *testing.T) {
	p := New()
	id := p.Declare(chcdata.IntSort, chcdata.BoolSort)

	assert.Equal(t, chcdata.PredId(0), id)
	assert.Equal(t, 2, p.Arity(id))
	assert.Equal(t, []chcdata.Sort{chcdata.IntSort, chcdata.BoolSort}, p.Sorts(id))
	assert.Equal(t, 1, p.Len())
}

func TestPredicatesArityPanicsOnUnknownId(t *testing.T) {
	p := New()
	assert.Panics(t, func() { p.Arity(chcdata.PredId(5)) })
}

func TestClausesDeclareAndLookup(t *testing.T) {
	c := NewClauses()
	head := chcdata.FormalSample{Pred: 0}
	lhs := []chcdata.FormalGroup{{Pred: 1}}

	id := c.Declare(head, lhs)
	require.Equal(t, chcdata.ClauseId(0), id)

	got, ok := c.Head(id)
	require.True(t, ok)
	assert.Equal(t, head, got)
	assert.Equal(t, lhs, c.LhsGroups(id))
}

func TestClausesLookupMissesReportFalse(t *testing.T) {
	c := NewClauses()
	_, ok := c.Head(chcdata.ClauseId(3))
	assert.False(t, ok)
	assert.Nil(t, c.LhsGroups(chcdata.ClauseId(3)))
}
