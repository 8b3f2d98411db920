package canned

// Ratio returns a similarity score in [0,1] between two strings. The score
// is 2*M/T where M is the total length of the longest matching blocks found
// by repeatedly taking the longest common substring and recursing into the
// pieces to its left and right, and T is the combined length of both inputs.
// Identical strings score 1, fully disjoint strings score 0.
func Ratio(a, b string) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 0
	}
	return 2 * float64(matchedLen(a, b)) / float64(total)
}

// matchedLen sums the lengths of all matching blocks between a and b.
func matchedLen(a, b string) int {
	i, j, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}
	return size + matchedLen(a[:i], b[:j]) + matchedLen(a[i+size:], b[j+size:])
}

// longestMatch finds the longest common substring of a and b and returns its
// start offsets and length. Ties resolve to the earliest position in a, then
// the earliest in b.
func longestMatch(a, b string) (bestI, bestJ, bestSize int) {
	// j2len[j] is the length of the match ending at a[i-1], b[j].
	j2len := make(map[int]int)
	for i := 0; i < len(a); i++ {
		next := make(map[int]int)
		for j := 0; j < len(b); j++ {
			if a[i] != b[j] {
				continue
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > bestSize {
				bestI = i - k + 1
				bestJ = j - k + 1
				bestSize = k
			}
		}
		j2len = next
	}
	return bestI, bestJ, bestSize
}
