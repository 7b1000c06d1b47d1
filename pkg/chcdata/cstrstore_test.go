package chcdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCstrStoreAddAndGet(t *testing.T) {
	s := newCstrStore()
	a := Atom{Pred: predP, Args: args1(1)}
	rhs := NewSample(predQ, args1(2))

	id := s.add(newConstraint(lhsOf(a), &rhs))
	require.NotNil(t, s.get(id))
	assert.Len(t, s.index.similar(predP), 1)
}

func TestCstrStoreTautologizeUnlinksFromIndex(t *testing.T) {
	s := newCstrStore()
	a := Atom{Pred: predP, Args: args1(1)}
	rhs := NewSample(predQ, args1(2))

	id := s.add(newConstraint(lhsOf(a), &rhs))
	s.tautologize(id)

	assert.Nil(t, s.get(id))
	assert.Empty(t, s.index.similar(predP))
}

func TestCstrStoreShrinkConstraintsPeelsTrailingTautologySuffixOnly(t *testing.T) {
	s := newCstrStore()
	a := Atom{Pred: predP, Args: args1(1)}
	b := Atom{Pred: predP, Args: args1(2)}
	c := Atom{Pred: predP, Args: args1(3)}
	rhs := NewSample(predQ, args1(9))

	id0 := s.add(newConstraint(lhsOf(a), &rhs)) // tautologized, interior
	id1 := s.add(newConstraint(lhsOf(b), &rhs)) // stays live
	id2 := s.add(newConstraint(lhsOf(c), &rhs)) // tautologized, trailing

	s.tautologize(id0)
	s.tautologize(id2)

	s.shrinkConstraints()

	// The trailing tautology (id2) is physically dropped...
	require.Len(t, s.constraints, 2)
	// ...but the interior tombstone (id0) stays in its slot...
	assert.Nil(t, s.get(id0))
	require.NotNil(t, s.constraints[id0])
	assert.True(t, s.constraints[id0].tautology)
	// ...and every surviving id is completely untouched.
	require.NotNil(t, s.get(id1))
	assert.Equal(t, id1, s.get(id1).id)
}

func TestCstrStoreShrinkConstraintsLeavesLiveTrailingSlotAlone(t *testing.T) {
	s := newCstrStore()
	a := Atom{Pred: predP, Args: args1(1)}
	rhs := NewSample(predQ, args1(9))
	id := s.add(newConstraint(lhsOf(a), &rhs))

	s.shrinkConstraints()

	require.Len(t, s.constraints, 1)
	require.NotNil(t, s.get(id))
	assert.Equal(t, id, s.get(id).id)
}

func TestCstrStoreCstrUsefulDropsSubsumedConstraint(t *testing.T) {
	s := newCstrStore()
	a := Atom{Pred: predP, Args: args1(1)}
	b := Atom{Pred: predP, Args: args1(3)}
	rhs := NewSample(predQ, args1(2))

	general := s.add(newConstraint(lhsOf(a), &rhs))
	specific := s.add(newConstraint(lhsOf(a, b), &rhs))

	assert.True(t, s.cstrUseful(general))
	assert.False(t, s.cstrUseful(specific))
	assert.Nil(t, s.get(specific))
	assert.NotNil(t, s.get(general))
}
