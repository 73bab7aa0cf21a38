package mcs

import "sort"

// Minimize removes every cut set that is a strict superset of another
// and returns the remainder ordered by size then lexicographically by
// content (spec §4.4). Implemented by sorting ascending by size first
// and only testing already-kept (hence smaller-or-equal) sets as
// candidate subsets, per the spec's complexity note.
func Minimize(sets []CutSet) []CutSet {
	sorted := make([]CutSet, len(sets))
	copy(sorted, sets)
	sort.Slice(sorted, func(i, j int) bool { return lexLess(sorted[i], sorted[j]) })

	var minimal []CutSet
	seen := make(map[string]bool)
	for _, c := range sorted {
		k := key(c)
		if seen[k] {
			continue
		}
		if isSupersetOfAny(c, minimal) {
			continue
		}
		seen[k] = true
		minimal = append(minimal, c)
	}
	return minimal
}

// isSupersetOfAny reports whether c is a (non-strict) superset of any
// set already kept in minimal — minimal only ever holds sets of length
// <= len(c) at this point in the scan, since sorted is size-ascending.
func isSupersetOfAny(c CutSet, minimal []CutSet) bool {
	set := make(map[int]bool, len(c))
	for _, v := range c {
		set[v] = true
	}
	for _, m := range minimal {
		if len(m) > len(c) {
			continue
		}
		allPresent := true
		for _, v := range m {
			if !set[v] {
				allPresent = false
				break
			}
		}
		if allPresent {
			return true
		}
	}
	return false
}

func lexLess(a, b CutSet) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func key(c CutSet) string {
	b := make([]byte, 0, len(c)*4)
	for _, v := range c {
		b = append(b, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
	return string(b)
}
