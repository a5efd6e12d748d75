package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArithmeticAverage(t *testing.T) {
	avg, err := ArithmeticAverage([]float64{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)
	assert.Equal(t, 4.5, avg)

	_, err = ArithmeticAverage(nil)
	assert.ErrorIs(t, err, ErrNoValues)
}

func TestSampleStandardDeviation(t *testing.T) {
	r := []float64{9, 2, 5, 4, 12, 7, 8, 11, 9, 3, 7, 4, 12, 5, 4, 10, 9, 6, 9, 4}
	result, err := SampleStandardDeviation(r)
	require.NoError(t, err)
	assert.InDelta(t, 3.0607876523260447, result, 1e-12)

	result, err = SampleStandardDeviation([]float64{5})
	require.NoError(t, err)
	assert.Zero(t, result)
}

func TestPopulationStandardDeviation(t *testing.T) {
	r := []float64{4, 2, 5, 8, 6}
	result, err := PopulationStandardDeviation(r)
	require.NoError(t, err)
	assert.InDelta(t, 2, result, 1e-12)
}

func TestCalculateSharpeRatio(t *testing.T) {
	result, err := CalculateSharpeRatio([]float64{0.1, 0.1, 0.1}, 0)
	require.NoError(t, err)
	assert.Zero(t, result, "zero deviation must not divide")

	result, err = CalculateSharpeRatio([]float64{0.039, 0.198, 0.183, 0.364, 0.473, 0.446, 0.459}, 0.001)
	require.NoError(t, err)
	assert.InDelta(t, 1.8167, result, 1e-3)

	_, err = CalculateSharpeRatio(nil, 0)
	assert.ErrorIs(t, err, ErrNoValues)
}

func TestPercentile(t *testing.T) {
	values := []float64{-0.05, -0.02, 0.01, 0.02, 0.03, 0.04, 0.05, 0.06, 0.07, 0.08}
	p, err := Percentile(values, 0.05)
	require.NoError(t, err)
	assert.Equal(t, -0.05, p, "5th percentile of ten samples is the worst one")

	p, err = Percentile(values, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.04, p)

	p, err = Percentile(values, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.08, p)

	_, err = Percentile(nil, 0.5)
	assert.ErrorIs(t, err, ErrNoValues)
}

func TestCalculatePercentageGainOrLoss(t *testing.T) {
	assert.Equal(t, 100.0, CalculatePercentageGainOrLoss(9000, 4500))
	assert.Equal(t, -50.0, CalculatePercentageGainOrLoss(4500, 9000))
}

func TestRoundFloat(t *testing.T) {
	assert.Equal(t, 1.23, RoundFloat(1.23456789, 2))
	assert.Equal(t, 1.2346, RoundFloat(1.23456789, 4))
}
