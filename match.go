package colortransfer

import "math"

// axisPermutations lists every ordering of the three source axes.
var axisPermutations = [6][3]int{
	{0, 1, 2},
	{0, 2, 1},
	{1, 0, 2},
	{1, 2, 0},
	{2, 0, 1},
	{2, 1, 0},
}

// MatchAxes pairs source principal axes with target principal axes and returns
// square-rooted eigenvalues for both sides.
//
// With ruggedize enabled, source columns are reordered to the permutation that maximizes
// the sum of absolute dot products with target columns, source eigenvalues follow the
// same order, and every source column pointing away from its target counterpart is negated.
// Without it both decompositions are passed through unchanged.
func MatchAxes(source, target Decomposition, ruggedize bool) AxisMatch {
	m := AxisMatch{
		Source:      source,
		Target:      target,
		Permutation: axisPermutations[0],
	}

	if ruggedize {
		best := 0
		bestScore := math.Inf(-1)
		for i, perm := range axisPermutations {
			score := permutationScore(source, target, perm)
			if score > bestScore {
				bestScore = score
				best = i
			}
		}

		perm := axisPermutations[best]
		m.Permutation = perm
		m.Score = bestScore
		for k := 0; k < 3; k++ {
			col := source.column(perm[k])
			if dot3(col, target.column(k)) < 0 {
				col = [3]float64{-col[0], -col[1], -col[2]}
				m.Flipped[k] = true
			}
			m.Source.setColumn(k, col)
			m.Source.Eigenvalues[k] = source.Eigenvalues[perm[k]]
		}

		Logger().Debug("axes matched",
			"permutation", m.Permutation,
			"score", m.Score,
			"flipped", m.Flipped,
		)
	} else {
		m.Score = permutationScore(source, target, m.Permutation)
	}

	for k := 0; k < 3; k++ {
		m.SourceScale[k] = sqrtNonNegative(m.Source.Eigenvalues[k])
		m.TargetScale[k] = sqrtNonNegative(m.Target.Eigenvalues[k])
	}

	return m
}

func permutationScore(source, target Decomposition, perm [3]int) float64 {
	var score float64
	for k := 0; k < 3; k++ {
		score += math.Abs(dot3(source.column(perm[k]), target.column(k)))
	}
	return score
}

func dot3(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func sqrtNonNegative(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Sqrt(v)
}
