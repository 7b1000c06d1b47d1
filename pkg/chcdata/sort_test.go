package chcdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortEqual(t *testing.T) {
	assert.True(t, IntSort.Equal(IntSort))
	assert.False(t, IntSort.Equal(BoolSort))
	assert.True(t, ADTSort("list").Equal(ADTSort("list")))
	assert.False(t, ADTSort("list").Equal(ADTSort("tree")))
	assert.True(t, ArraySort(IntSort).Equal(ArraySort(IntSort)))
	assert.False(t, ArraySort(IntSort).Equal(ArraySort(BoolSort)))
}

func TestSortString(t *testing.T) {
	assert.Equal(t, "Int", IntSort.String())
	assert.Equal(t, "ADT(list)", ADTSort("list").String())
	assert.Equal(t, "Array(Int)", ArraySort(IntSort).String())
}
