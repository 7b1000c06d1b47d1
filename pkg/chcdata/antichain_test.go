package chcdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAntichainInsertMinimalDropsSubsumed(t *testing.T) {
	ac := newAntichain()
	a1 := NewArgs(IntVFromInt64(1))
	assert.True(t, ac.InsertMinimal(a1))

	bot := NewArgs(Bot(IntSort))
	assert.True(t, ac.InsertMinimal(bot), "a more general tuple evicts the specific one")
	assert.Equal(t, 1, ac.Len())
	assert.True(t, ac.Has(bot))
	assert.False(t, ac.Has(a1))
}

func TestAntichainInsertMinimalRejectsAlreadySubsumed(t *testing.T) {
	ac := newAntichain()
	bot := NewArgs(Bot(IntSort))
	assert.True(t, ac.InsertMinimal(bot))

	a1 := NewArgs(IntVFromInt64(1))
	assert.False(t, ac.InsertMinimal(a1), "a specific tuple already covered by a general one adds nothing")
	assert.Equal(t, 1, ac.Len())
}

func TestAntichainClone(t *testing.T) {
	ac := newAntichain()
	ac.InsertMinimal(NewArgs(IntVFromInt64(1)))
	clone := ac.clone()
	clone.InsertMinimal(NewArgs(IntVFromInt64(2)))

	assert.Equal(t, 1, ac.Len(), "mutating the clone must not affect the original")
	assert.Equal(t, 2, clone.Len())
}
