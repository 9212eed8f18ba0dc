package analyzer

import (
	"math"
)

// solveAssignment returns the minimum total cost of a perfect matching on
// the square cost matrix, using the O(n^3) Hungarian algorithm with row
// and column potentials. Costs must be finite and nonnegative.
func solveAssignment(cost [][]float64) float64 {
	n := len(cost)
	if n == 0 {
		return 0
	}

	// 1-based arrays; p[j] is the row matched to column j, column 0 is
	// the virtual starting column of each augmenting search.
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	p := make([]int, n+1)
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		used := make([]bool, n+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := math.Inf(1)
			j1 := 0

			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}

			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		// Walk the augmenting path backwards, flipping the matching.
		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	total := 0.0
	for j := 1; j <= n; j++ {
		total += cost[p[j]-1][j-1]
	}
	return total
}
