package reducer

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// mannWhitneyULess computes the Mann-Whitney U statistic for the first
// sample and the one-sided p-value under the alternative hypothesis that the
// first sample is stochastically less than the second. Uses the normal
// approximation with tie correction and continuity correction, which is
// accurate for the group sizes seen here (thousands of records per group).
func mannWhitneyULess(x, y []float64) (u float64, p float64) {
	n1 := float64(len(x))
	n2 := float64(len(y))
	n := n1 + n2

	ranks, tieTerm := midRanks(x, y)

	r1 := 0.0
	for i := range x {
		r1 += ranks[i]
	}
	u = r1 - n1*(n1+1)/2

	mu := n1 * n2 / 2
	variance := n1 * n2 / 12 * ((n + 1) - tieTerm/(n*(n-1)))
	if variance <= 0 {
		// all values identical; no evidence either way
		return u, 0.5
	}

	z := (u + 0.5 - mu) / math.Sqrt(variance)
	normal := distuv.Normal{Mu: 0, Sigma: 1}
	return u, normal.CDF(z)
}

// midRanks assigns average ranks (1-based) to the concatenation of x and y,
// with ties sharing their midrank. Returns the ranks in input order (x first)
// and the tie-correction term sum(t^3 - t).
func midRanks(x, y []float64) (ranks []float64, tieTerm float64) {
	n := len(x) + len(y)
	type indexed struct {
		v   float64
		pos int
	}
	all := make([]indexed, 0, n)
	for i, v := range x {
		all = append(all, indexed{v, i})
	}
	for i, v := range y {
		all = append(all, indexed{v, len(x) + i})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].v < all[j].v })

	ranks = make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j < n && all[j].v == all[i].v {
			j++
		}
		// ranks i+1..j share the midrank
		mid := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[all[k].pos] = mid
		}
		t := float64(j - i)
		if t > 1 {
			tieTerm += t*t*t - t
		}
		i = j
	}
	return ranks, tieTerm
}
