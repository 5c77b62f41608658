// Package match resolves free-text queries to canonical catalog titles.
package match

// Matcher selects the closest candidate for a query, or reports that
// nothing clears the cutoff. Implementations must be deterministic:
// equal scores resolve to the lowest candidate index.
type Matcher interface {
	// BestMatch returns the index of the best-scoring candidate whose
	// similarity to query is >= cutoff. ok is false when no candidate
	// qualifies.
	BestMatch(query string, candidates []string, cutoff float64) (index int, ok bool)
}

// RatioMatcher scores candidates with the Ratcliff/Obershelp sequence
// similarity ratio: twice the number of matching characters over the
// total length of both strings. It is the classic close-match
// algorithm for misspelled titles, tolerant of single-character edits.
type RatioMatcher struct{}

// NewRatioMatcher returns the default title matcher.
func NewRatioMatcher() *RatioMatcher {
	return &RatioMatcher{}
}

// BestMatch scans all candidates and keeps the highest ratio at or
// above cutoff. A cheap upper bound on the ratio is checked first so
// most candidates never pay for the full sequence match.
func (m *RatioMatcher) BestMatch(query string, candidates []string, cutoff float64) (int, bool) {
	a := []rune(query)

	bestIndex := -1
	bestRatio := cutoff
	for i, candidate := range candidates {
		b := []rune(candidate)
		if quickRatio(a, b) < bestRatio {
			continue
		}
		r := Ratio(a, b)
		if r > bestRatio || (bestIndex < 0 && r >= bestRatio) {
			bestIndex = i
			bestRatio = r
		}
	}

	return bestIndex, bestIndex >= 0
}

// Ratio computes the Ratcliff/Obershelp similarity of two rune
// sequences: 2*M/T where M is the total size of matching blocks and T
// the combined length. Result is in [0, 1]; two empty strings count as
// identical.
func Ratio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1
	}
	matched := matchingSize(a, b)
	return 2 * float64(matched) / float64(total)
}

// quickRatio is an upper bound on Ratio using rune multiset overlap.
func quickRatio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1
	}

	counts := make(map[rune]int, len(b))
	for _, r := range b {
		counts[r]++
	}

	matched := 0
	for _, r := range a {
		if counts[r] > 0 {
			counts[r]--
			matched++
		}
	}

	return 2 * float64(matched) / float64(total)
}

type span struct {
	alo, ahi int
	blo, bhi int
}

// matchingSize sums the sizes of all matching blocks found by
// recursively locating the longest common substring and matching the
// pieces on either side of it.
func matchingSize(a, b []rune) int {
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	matched := 0
	queue := []span{{0, len(a), 0, len(b)}}
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		i, j, size := longestMatch(a, b2j, s)
		if size == 0 {
			continue
		}
		matched += size
		queue = append(queue,
			span{s.alo, i, s.blo, j},
			span{i + size, s.ahi, j + size, s.bhi},
		)
	}

	return matched
}

// longestMatch finds the longest block where a[i:i+size] == b[j:j+size]
// within the given span. Among equally long blocks the earliest in a,
// then earliest in b, wins, keeping results deterministic.
func longestMatch(a []rune, b2j map[rune][]int, s span) (besti, bestj, bestsize int) {
	besti, bestj = s.alo, s.blo

	j2len := map[int]int{}
	for i := s.alo; i < s.ahi; i++ {
		newJ2len := map[int]int{}
		for _, j := range b2j[a[i]] {
			if j < s.blo {
				continue
			}
			if j >= s.bhi {
				break
			}
			k := j2len[j-1] + 1
			newJ2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newJ2len
	}

	return besti, bestj, bestsize
}
