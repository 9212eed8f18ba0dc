package analyzer

// UnorderedTreeDistance computes an upper bound on the unordered tree edit
// distance, where sibling order is irrelevant. Exact unordered edit
// distance is NP-hard for unbounded degree, so the engine aligns trees
// recursively and matches the children of paired nodes with a minimum-cost
// assignment instead of trying every permutation. The result is exact for
// identical trees under a zero-cost-at-identity model and never below the
// true distance's cost of any single alignment it considers; for wide
// branching it is a documented upper-bound heuristic, not a minimum.
func UnorderedTreeDistance(labelsA []string, adjA [][]int, labelsB []string, adjB [][]int, costs Costs) float64 {
	nA, nB := len(labelsA), len(labelsB)
	if nA == 0 && nB == 0 {
		return 0
	}
	if nA == 0 {
		return sumUnary(labelsB, costs)
	}
	if nB == 0 {
		return sumUnary(labelsA, costs)
	}

	poA := postorderOf(adjA)
	poB := postorderOf(adjB)

	// Whole-subtree removal/insertion costs, children first.
	delTree := make([]float64, nA)
	for _, i := range poA {
		delTree[i] = costs.Unary(labelsA[i])
		for _, c := range adjA[i] {
			delTree[i] += delTree[c]
		}
	}
	insTree := make([]float64, nB)
	for _, j := range poB {
		insTree[j] = costs.Unary(labelsB[j])
		for _, c := range adjB[j] {
			insTree[j] += insTree[c]
		}
	}

	// d[i][j] = upper-bound distance between the subtrees rooted at the
	// original indices i and j. Postorder iteration guarantees children
	// pairs are solved before their parents need them.
	d := newMatrix(nA, nB)
	for _, i := range poA {
		for _, j := range poB {
			// Align the roots and assign their children.
			best := costs.Substitute(labelsA[i], labelsB[j]) +
				matchChildren(adjA[i], adjB[j], d, delTree, insTree)

			// Delete root i, descending into one child and removing the
			// other child subtrees.
			for _, c := range adjA[i] {
				cand := delTree[i] - delTree[c] + d[c][j]
				if cand < best {
					best = cand
				}
			}

			// Insert root j symmetrically.
			for _, c := range adjB[j] {
				cand := insTree[j] - insTree[c] + d[i][c]
				if cand < best {
					best = cand
				}
			}

			d[i][j] = best
		}
	}

	return d[0][0]
}

// matchChildren prices the optimal pairing of two children sets: paired
// subtrees cost their precomputed distance, unmatched subtrees are charged
// their whole-subtree removal or insertion cost. The square assignment
// matrix pads each side with dummy partners so any child may stay
// unmatched.
func matchChildren(csA, csB []int, d [][]float64, delTree, insTree []float64) float64 {
	m, n := len(csA), len(csB)
	if m == 0 && n == 0 {
		return 0
	}
	if m == 0 {
		total := 0.0
		for _, c := range csB {
			total += insTree[c]
		}
		return total
	}
	if n == 0 {
		total := 0.0
		for _, c := range csA {
			total += delTree[c]
		}
		return total
	}

	size := m + n
	cost := newMatrix(size, size)
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			switch {
			case x < m && y < n:
				cost[x][y] = d[csA[x]][csB[y]]
			case x < m:
				cost[x][y] = delTree[csA[x]]
			case y < n:
				cost[x][y] = insTree[csB[y]]
			default:
				cost[x][y] = 0
			}
		}
	}

	return solveAssignment(cost)
}

// postorderOf returns the node indices of a nonempty tree in postorder,
// via an explicit stack
func postorderOf(adj [][]int) []int {
	po := make([]int, 0, len(adj))
	type frame struct {
		node int
		next int
	}
	stack := []frame{{node: 0}}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.next < len(adj[f.node]) {
			c := adj[f.node][f.next]
			f.next++
			stack = append(stack, frame{node: c})
			continue
		}
		po = append(po, f.node)
		stack = stack[:len(stack)-1]
	}
	return po
}
