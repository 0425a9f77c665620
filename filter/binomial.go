package filter

import (
	"math"

	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"
)

// relErr is the tolerance used to decide whether an outcome is at least as
// extreme as the observed one.
const relErr = 1 + 1e-7

// BinomTest returns the two-sided exact binomial p-value for k successes in n
// trials with success probability p. The two-sided region holds every outcome
// whose probability does not exceed that of k.
func BinomTest(k, n int, p float64) float64 {
	if n <= 0 {
		return 1
	}
	d := distuv.Binomial{N: float64(n), P: p}
	pk := d.Prob(float64(k)) * relErr
	mean := p * float64(n)
	var y int
	var pval float64
	switch {
	case float64(k) == mean:
		return 1
	case float64(k) < mean:
		for i := int(math.Ceil(mean)); i <= n; i++ {
			if d.Prob(float64(i)) <= pk {
				y++
			}
		}
		pval = lowerTail(k, n, p) + upperTail(n-y+1, n, p)
	default:
		for i := 0; i <= int(math.Floor(mean)); i++ {
			if d.Prob(float64(i)) <= pk {
				y++
			}
		}
		pval = lowerTail(y-1, n, p) + upperTail(k, n, p)
	}
	return math.Min(1, pval)
}

// lowerTail is P(X <= k).
func lowerTail(k, n int, p float64) float64 {
	switch {
	case k < 0:
		return 0
	case k >= n:
		return 1
	}
	return mathext.RegIncBeta(float64(n-k), float64(k+1), 1-p)
}

// upperTail is P(X >= k).
func upperTail(k, n int, p float64) float64 {
	switch {
	case k <= 0:
		return 1
	case k > n:
		return 0
	}
	return mathext.RegIncBeta(float64(k), float64(n-k+1), p)
}
