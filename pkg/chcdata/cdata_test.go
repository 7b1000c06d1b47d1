package chcdata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassificationString(t *testing.T) {
	assert.Equal(t, "positive", ClassPositive.String())
	assert.Equal(t, "negative", ClassNegative.String())
	assert.Equal(t, "unknown", ClassUnknown.String())
}

func TestClassifyAgainstKnownSamples(t *testing.T) {
	d := newTestData(Config{})
	d.AddRawPos(predP, args1(1))
	d.AddRawNeg(predP, args1(2))
	require.NoError(t, d.Propagate(context.Background()))

	assert.Equal(t, ClassPositive, d.Classify(predP, args1(1)))
	assert.Equal(t, ClassNegative, d.Classify(predP, args1(2)))
	assert.Equal(t, ClassUnknown, d.Classify(predP, args1(3)))
}

func TestDataOfReturnsBothAntichains(t *testing.T) {
	d := newTestData(Config{})
	d.AddRawPos(predP, args1(1))
	d.AddRawNeg(predP, args1(2))
	require.NoError(t, d.Propagate(context.Background()))

	cd := d.DataOf(predP)
	require.Len(t, cd.Pos, 1)
	require.Len(t, cd.Neg, 1)
	assert.Equal(t, predP, cd.Pred)
	assert.Same(t, args1(1), cd.Pos[0])
	assert.Same(t, args1(2), cd.Neg[0])
}

func TestDataOfPopulatesUncFromLiveConstraints(t *testing.T) {
	d := newTestData(Config{})
	ctx := context.Background()

	_, added, err := d.AddCstr(ctx, []Atom{
		{Pred: predP, Args: args1(1)},
		{Pred: predP, Args: args1(2)},
	}, &Atom{Pred: predQ, Args: args1(9)})
	require.NoError(t, err)
	require.True(t, added)

	cd := d.DataOf(predP)
	assert.Empty(t, cd.Pos)
	assert.Empty(t, cd.Neg)
	require.Len(t, cd.Unc, 2)

	cdQ := d.DataOf(predQ)
	require.Len(t, cdQ.Unc, 1)
	assert.Same(t, args1(9), cdQ.Unc[0])
}

func TestClassifyBatchLabelsUncInPlaceByExactMembership(t *testing.T) {
	d := newTestData(Config{})
	ctx := context.Background()

	_, added, err := d.AddCstr(ctx, []Atom{
		{Pred: predP, Args: args1(1)},
		{Pred: predP, Args: args1(2)},
	}, &Atom{Pred: predQ, Args: args1(9)})
	require.NoError(t, err)
	require.True(t, added)

	cd := d.DataOf(predP)
	require.Len(t, cd.Unc, 2)

	d.AddRawPos(predP, args1(1))
	require.NoError(t, d.Propagate(ctx))

	d.ClassifyBatch(&cd)
	require.NotNil(t, cd.Labels)
	assert.Equal(t, ClassPositive, cd.Labels[args1(1)])
	assert.Equal(t, ClassUnknown, cd.Labels[args1(2)], "still an Lhs atom of the live constraint, not a known sample")
}
