package chcdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgsHashconsing(t *testing.T) {
	a := NewArgs(IntVFromInt64(1), IntVFromInt64(2))
	b := NewArgs(IntVFromInt64(1), IntVFromInt64(2))
	assert.Same(t, a, b)

	c := NewArgs(IntVFromInt64(1), IntVFromInt64(3))
	assert.NotSame(t, a, c)
}

func TestArgsSubsumesPositional(t *testing.T) {
	concrete := NewArgs(IntVFromInt64(1), IntVFromInt64(2))
	partial := NewArgs(Bot(IntSort), IntVFromInt64(2))
	other := NewArgs(IntVFromInt64(9), IntVFromInt64(2))

	assert.True(t, ArgsSubsumes(partial, concrete), "bottom position matches anything")
	assert.False(t, ArgsSubsumes(concrete, partial))
	assert.True(t, ArgsSubsumes(partial, other))
}

func TestArgsSubsumesDoesNotRecurseIntoADT(t *testing.T) {
	// A partial ADT nested inside a concrete Args position does not make
	// that position subsumable by Bot-at-top-level logic alone; two
	// distinct ADT pointers at the same position are simply incomparable
	// unless they are Bot or identical, per ArgsSubsumes' doc comment.
	whole := ADTV("list", "cons", IntVFromInt64(1), Bot(ADTSort("list")))
	other := ADTV("list", "cons", IntVFromInt64(1), ADTV("list", "nil"))

	a := NewArgs(whole)
	b := NewArgs(other)
	assert.False(t, ArgsSubsumes(a, b), "ArgsSubsumes only checks Bot/identity at the top level")
}

func TestArgsCompare(t *testing.T) {
	concrete := NewArgs(IntVFromInt64(1))
	partial := NewArgs(Bot(IntSort))

	assert.Equal(t, Less, ArgsCompare(partial, concrete))
	assert.Equal(t, Greater, ArgsCompare(concrete, partial))
	assert.Equal(t, Equal, ArgsCompare(concrete, concrete))
}
