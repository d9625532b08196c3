// Package matching provides the sequence-ratio string similarity used
// by the duplicate scorer. Ratio follows the classic longest-matching-
// block algorithm (Ratcliff/Obershelp), so two names score the same
// here as they do in tools built on that measure.
package matching

// Ratio returns a similarity measure in [0, 1] for two strings:
// 0 means completely different, 1 identical. It is symmetric in the
// total match count: 2*M / (len(a)+len(b)), where M is the number of
// matched characters across all maximal matching blocks.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}

	// Index positions of each rune in b for O(1) candidate lookup.
	b2j := make(map[rune][]int, len(rb))
	for j, r := range rb {
		b2j[r] = append(b2j[r], j)
	}

	matched := 0
	type span struct{ alo, ahi, blo, bhi int }
	queue := []span{{0, len(ra), 0, len(rb)}}
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		i, j, size := longestMatch(ra, b2j, s.alo, s.ahi, s.blo, s.bhi)
		if size == 0 {
			continue
		}
		matched += size
		queue = append(queue,
			span{s.alo, i, s.blo, j},
			span{i + size, s.ahi, j + size, s.bhi},
		)
	}

	return 2 * float64(matched) / float64(total)
}

// longestMatch finds the longest block of a[alo:ahi] that matches a
// block of b[blo:bhi], preferring the earliest such block. b2j indexes
// rune positions in b.
func longestMatch(a []rune, b2j map[rune][]int, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo

	// j2len[j] = length of the longest match ending at a[i-1], b[j-1].
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}
	return besti, bestj, bestsize
}
