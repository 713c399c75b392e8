package simulation

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Interval is a confidence interval on a proportion.
type Interval struct {
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`
	Level float64 `json:"level" yaml:"level"`
}

// Contains reports whether v lies within the interval.
func (i Interval) Contains(v float64) bool {
	return v >= i.Lower && v <= i.Upper
}

// WilsonInterval returns the Wilson score interval for wins out of trials.
func WilsonInterval(wins, trials int, level float64) Interval {
	if trials <= 0 {
		return Interval{Level: level}
	}
	z := distuv.UnitNormal.Quantile(1 - (1-level)/2)
	n := float64(trials)
	p := float64(wins) / n
	z2 := z * z
	denom := 1 + z2/n
	center := (p + z2/(2*n)) / denom
	half := z * math.Sqrt(p*(1-p)/n+z2/(4*n*n)) / denom
	return Interval{
		Lower: math.Max(0, center-half),
		Upper: math.Min(1, center+half),
		Level: level,
	}
}
