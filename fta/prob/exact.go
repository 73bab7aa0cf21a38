package prob

import "github.com/kegliz/fta/fta/mcs"

// indexSet is a deduplicated basic-event index combination: the union
// of the basic events appearing across some subset of cut sets.
type indexSet []int

func unionOf(sets []mcs.CutSet) indexSet {
	seen := make(map[int]bool)
	var out indexSet
	for _, c := range sets {
		for _, i := range c {
			if !seen[i] {
				seen[i] = true
				out = append(out, i)
			}
		}
	}
	return out
}

func product(s indexSet, p []float64) float64 {
	v := 1.0
	for _, i := range s {
		v *= p[i]
	}
	return v
}

// Term is one signed monomial of the truncated inclusion-exclusion
// expansion: the product of p_i over Indices, counted with sign Sign
// (+1 for odd-order terms, -1 for even-order). fta/montecarlo reuses
// this to build its indicator-variable polynomials (spec §4.5's
// "Monte-Carlo variant": pos_terms are the Sign=+1 entries, neg_terms
// the Sign=-1 ones).
type Term struct {
	Indices []int
	Sign    int
}

// Terms expands cutSets into the same level-by-level term list
// exactInclusionExclusion sums over, truncated at nSums levels.
func Terms(cutSets []mcs.CutSet, nSums int) []Term {
	n := len(cutSets)
	if n == 0 {
		return nil
	}
	if nSums < 1 {
		nSums = 1
	}
	if nSums > n {
		nSums = n
	}

	var terms []Term
	sign := 1
	for k := 1; k <= nSums; k++ {
		for _, combo := range combinations(n, k) {
			members := make([]mcs.CutSet, len(combo))
			for j, ci := range combo {
				members[j] = cutSets[ci]
			}
			terms = append(terms, Term{Indices: []int(unionOf(members)), Sign: sign})
		}
		sign = -sign
	}
	return terms
}

// exactInclusionExclusion implements spec §4.5's truncated
// inclusion-exclusion: Σ_{k=1}^{n_sums} (-1)^{k+1} Σ_{S⊆MCS, |S|=k} P(∪S),
// built level by level — level k is every k-subset of cutSets, its
// contribution the product of probabilities over the union of its
// members' basic events, signed and truncated at nSums levels.
func exactInclusionExclusion(cutSets []mcs.CutSet, p []float64, nSums int) float64 {
	var total float64
	for _, term := range Terms(cutSets, nSums) {
		total += float64(term.Sign) * product(term.Indices, p)
	}

	if total < 0 {
		total = 0
	}
	if total > 1 {
		total = 1
	}
	return total
}

// combinations returns every k-subset of {0, ..., n-1} as index slices,
// in lexicographic order — the same enumeration fta/mcs uses for
// K-of-N expansion, repeated here for the subsets-of-cut-sets the
// inclusion-exclusion levels need.
func combinations(n, k int) [][]int {
	if k < 0 || k > n {
		return nil
	}
	if k == 0 {
		return [][]int{{}}
	}
	var out [][]int
	combo := make([]int, k)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == k {
			item := make([]int, k)
			copy(item, combo)
			out = append(out, item)
			return
		}
		for i := start; i <= n-(k-depth); i++ {
			combo[depth] = i
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)
	return out
}
