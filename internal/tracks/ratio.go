package tracks

// Ratio computes a similarity ratio in [0, 1] between two strings using
// the Ratcliff/Obershelp matching-blocks algorithm: twice the total number
// of characters in the recursively found longest matching blocks, divided
// by the combined length of both strings. Symmetric; 1.0 only for
// identical strings.
func Ratio(a, b string) float64 {
	ar := []rune(a)
	br := []rune(b)
	total := len(ar) + len(br)
	if total == 0 {
		return 1.0
	}

	matched := matchingRunes(ar, br, 0, len(ar), 0, len(br))
	return 2.0 * float64(matched) / float64(total)
}

// matchingRunes returns the total size of all matching blocks between
// a[alo:ahi] and b[blo:bhi], found by locating the longest common run
// and recursing on the pieces to its left and right.
func matchingRunes(a, b []rune, alo, ahi, blo, bhi int) int {
	bestI, bestJ, bestSize := longestMatch(a, b, alo, ahi, blo, bhi)
	if bestSize == 0 {
		return 0
	}

	matched := bestSize
	matched += matchingRunes(a, b, alo, bestI, blo, bestJ)
	matched += matchingRunes(a, b, bestI+bestSize, ahi, bestJ+bestSize, bhi)
	return matched
}

// longestMatch finds the longest run of runes common to a[alo:ahi] and
// b[blo:bhi]. Among runs of equal length, the earliest in a (then in b)
// wins, matching the conventional sequence-matcher tie-break.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (int, int, int) {
	// b2j maps each rune in the b window to the positions where it occurs.
	b2j := make(map[rune][]int, bhi-blo)
	for j := blo; j < bhi; j++ {
		b2j[b[j]] = append(b2j[b[j]], j)
	}

	bestI, bestJ, bestSize := alo, blo, 0
	// j2len[j] holds the length of the run ending at a[i-1], b[j-1].
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newJ2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
			k := j2len[j-1] + 1
			newJ2len[j] = k
			if k > bestSize {
				bestI, bestJ, bestSize = i-k+1, j-k+1, k
			}
		}
		j2len = newJ2len
	}

	return bestI, bestJ, bestSize
}
