// Package math provides the small statistical toolkit the performance
// analyzer is built on. All helpers operate on raw float64 samples; money
// values are converted by the caller
package math

import (
	"errors"
	"math"
	"sort"
)

// ErrNoValues is returned when a calculation receives an empty sample set
var ErrNoValues = errors.New("cannot calculate average of no values")

// ArithmeticAverage returns the mean of a sample set
func ArithmeticAverage(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoValues
	}
	var sum float64
	for x := range values {
		sum += values[x]
	}
	return sum / float64(len(values)), nil
}

// SampleStandardDeviation returns the sample standard deviation (n-1) of a
// sample set
func SampleStandardDeviation(values []float64) (float64, error) {
	if len(values) < 2 {
		return 0, nil
	}
	mean, err := ArithmeticAverage(values)
	if err != nil {
		return 0, err
	}
	var superMean []float64
	var combined float64
	for x := range values {
		result := math.Pow(values[x]-mean, 2)
		superMean = append(superMean, result)
		combined += result
	}
	avg := combined / (float64(len(superMean)) - 1)
	return math.Sqrt(avg), nil
}

// PopulationStandardDeviation returns the population standard deviation of a
// sample set
func PopulationStandardDeviation(values []float64) (float64, error) {
	if len(values) < 2 {
		return 0, nil
	}
	valAvg, err := ArithmeticAverage(values)
	if err != nil {
		return 0, err
	}
	diffs := make([]float64, len(values))
	for x := range values {
		diffs[x] = math.Pow(values[x]-valAvg, 2)
	}
	var diffAvg float64
	diffAvg, err = ArithmeticAverage(diffs)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(diffAvg), nil
}

// CalculateSharpeRatio returns the mean excess return divided by the sample
// standard deviation of returns. Annualisation is the caller's concern
func CalculateSharpeRatio(movementPerCandle []float64, riskFreeRate float64) (float64, error) {
	if len(movementPerCandle) == 0 {
		return 0, ErrNoValues
	}
	mean, err := ArithmeticAverage(movementPerCandle)
	if err != nil {
		return 0, err
	}
	std, err := SampleStandardDeviation(movementPerCandle)
	if err != nil {
		return 0, err
	}
	if std == 0 {
		return 0, nil
	}
	return (mean - riskFreeRate) / std, nil
}

// Percentile returns the pct-quantile (0..1) of a sample set using the
// nearest-rank method on an ascending sort. The input slice is not modified
func Percentile(values []float64, pct float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoValues
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	if pct <= 0 {
		return sorted[0], nil
	}
	if pct >= 1 {
		return sorted[len(sorted)-1], nil
	}
	idx := int(math.Floor(pct * float64(len(sorted))))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx], nil
}

// CalculatePercentageGainOrLoss returns the percentage rise over a given
// percentage
func CalculatePercentageGainOrLoss(priceNow, priceThen float64) float64 {
	return (priceNow - priceThen) / priceThen * 100
}

// RoundFloat rounds your floating point number to the desired decimal place
func RoundFloat(x float64, prec int) float64 {
	pow := math.Pow(10, float64(prec))
	return math.Round(x*pow) / pow
}
