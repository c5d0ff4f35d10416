package tags

// Similarity returns the Dice coefficient of the rune bigrams of a and b, in [0, 1].
// Strings too short to have a bigram score 1 when equal and 0 otherwise.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}

	ra, rb := []rune(a), []rune(b)
	if len(ra) < 2 || len(rb) < 2 {
		return 0
	}

	counts := make(map[[2]rune]int, len(ra)-1)
	for i := range len(ra) - 1 {
		counts[[2]rune{ra[i], ra[i+1]}]++
	}

	shared := 0

	for i := range len(rb) - 1 {
		bg := [2]rune{rb[i], rb[i+1]}
		if counts[bg] > 0 {
			counts[bg]--
			shared++
		}
	}

	return 2 * float64(shared) / float64(len(ra)-1+len(rb)-1)
}

// FindSimilarTag looks for the existing tag that candidate duplicates.
// An exact match after normalization wins and is returned with its original
// spelling. Otherwise the closest existing tag is returned when its score
// reaches threshold.
func FindSimilarTag(candidate string, existing []string, threshold float64) (string, bool) {
	match, _, ok := findSimilar(candidate, existing, threshold)
	return match, ok
}

func findSimilar(candidate string, existing []string, threshold float64) (string, float64, bool) {
	if len(existing) == 0 {
		return "", 0, false
	}

	norm := Normalize(candidate)
	normalized := make([]string, len(existing))

	for i, tag := range existing {
		normalized[i] = Normalize(tag)
		if normalized[i] == norm {
			return tag, 1, true
		}
	}

	best, bestScore := -1, 0.0

	for i, n := range normalized {
		if score := Similarity(norm, n); score > bestScore {
			best, bestScore = i, score
		}
	}

	if best < 0 || bestScore < threshold {
		return "", bestScore, false
	}

	return existing[best], bestScore, true
}
