package mcs

// combinations returns every k-subset of {0, ..., n-1}, each as a sorted
// slice of indices, enumerated in lexicographic order — the tie-break
// spec §4.4 mandates for K-out-of-N expansion ("combination enumeration
// for K-of-N uses lexicographic bitmask order").
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
		// Prune: not enough remaining elements to fill the rest of combo.
		for i := start; i <= n-(k-depth); i++ {
			combo[depth] = i
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)
	return out
}
