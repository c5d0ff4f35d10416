package tags

// Set is an insertion-ordered set of tags.
type Set struct {
	order []string
	seen  map[string]struct{}
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{seen: make(map[string]struct{})}
}

// Add inserts tag if not already present.
func (s *Set) Add(tag string) {
	if _, ok := s.seen[tag]; ok {
		return
	}

	s.seen[tag] = struct{}{}
	s.order = append(s.order, tag)
}

// Contains reports membership.
func (s *Set) Contains(tag string) bool {
	_, ok := s.seen[tag]
	return ok
}

// Len returns the number of tags.
func (s *Set) Len() int { return len(s.order) }

// Slice returns the tags in first-insertion order. It is never nil.
func (s *Set) Slice() []string {
	return append(make([]string, 0, len(s.order)), s.order...)
}

// ProcessTags reconciles newTags with existingTags. Each new tag is normalized
// and dropped if empty. When it duplicates an existing tag the existing
// spelling is used instead, so near-duplicates never introduce a second tag.
func ProcessTags(newTags, existingTags []string, threshold float64) []string {
	result := NewSet()

	for _, raw := range newTags {
		norm := Normalize(raw)
		if norm == "" {
			continue
		}

		if match, ok := FindSimilarTag(norm, existingTags, threshold); ok {
			result.Add(match)
			continue
		}

		result.Add(norm)
	}

	return result.Slice()
}

// Merge describes folding a tag into a close neighbor.
type Merge struct {
	From  string
	Into  string
	Score float64
}

// PlanMerges finds near-duplicates inside a vocabulary. Tags are visited in
// the given order, so callers put the preferred spellings first; each later
// tag that duplicates an earlier kept tag is planned to merge into it.
func PlanMerges(vocabulary []string, threshold float64) []Merge {
	var (
		kept   []string
		merges []Merge
	)

	for _, tag := range vocabulary {
		if into, score, ok := findSimilar(tag, kept, threshold); ok {
			if into != tag {
				merges = append(merges, Merge{From: tag, Into: into, Score: score})
			}

			continue
		}

		kept = append(kept, tag)
	}

	return merges
}
