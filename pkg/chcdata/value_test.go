package chcdata

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValHashconsing(t *testing.T) {
	a := IntVFromInt64(42)
	b := IntVFromInt64(42)
	assert.Same(t, a, b, "equal values must intern to the same pointer")

	c := IntVFromInt64(43)
	assert.NotSame(t, a, c)
}

func TestValBotIsPartial(t *testing.T) {
	bot := Bot(IntSort)
	assert.True(t, bot.IsPartial())
	assert.True(t, bot.IsBot())

	full := IntVFromInt64(7)
	assert.False(t, full.IsPartial())
}

func TestADTValuePartiality(t *testing.T) {
	adt := ADTV("list", "cons", IntVFromInt64(1), Bot(ADTSort("list")))
	assert.True(t, adt.IsPartial(), "an ADT with a bottom field is partial")

	full := ADTV("list", "cons", IntVFromInt64(1), ADTV("list", "nil"))
	assert.False(t, full.IsPartial())
}

func TestValSubsumesBot(t *testing.T) {
	bot := Bot(IntSort)
	seven := IntVFromInt64(7)
	assert.True(t, ValSubsumes(bot, seven), "⊥ subsumes every concrete value")
	assert.False(t, ValSubsumes(seven, bot))
	assert.True(t, ValSubsumes(seven, seven))
}

func TestValCompare(t *testing.T) {
	bot := Bot(IntSort)
	seven := IntVFromInt64(7)
	eight := IntVFromInt64(8)

	assert.Equal(t, Less, ValCompare(bot, seven))
	assert.Equal(t, Greater, ValCompare(seven, bot))
	assert.Equal(t, Equal, ValCompare(seven, seven))
	assert.Equal(t, Incomparable, ValCompare(seven, eight))
}

func TestRatValueInterning(t *testing.T) {
	a := RatV(big.NewRat(1, 3))
	b := RatV(big.NewRat(2, 6))
	assert.Same(t, a, b, "equivalent rationals must intern identically")
}
