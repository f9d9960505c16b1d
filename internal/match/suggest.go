package match

import (
	"sort"
)

// MinScore is the similarity below which a name is not suggested.
const MinScore = 0.5

// Candidate is a known name with its similarity to the unknown one.
type Candidate struct {
	Name  string
	Score float64
}

// CandidateList is sorted by score (descending), then by name.
type CandidateList []Candidate

func (c CandidateList) Len() int      { return len(c) }
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Names returns the candidate names in order.
func (c CandidateList) Names() []string {
	names := make([]string, len(c))
	for i, cand := range c {
		names[i] = cand.Name
	}

	return names
}

// Rank scores every known name against target.
func Rank(target string, known []string) CandidateList {
	candidates := make(CandidateList, 0, len(known))

	for _, name := range known {
		candidates = append(candidates, Candidate{Name: name, Score: FoldedSimilarity(target, name)})
	}

	sort.Sort(candidates)

	return candidates
}

// Suggest returns up to limit known names scoring at least MinScore
// against target, best first. A name equal to target is never suggested.
func Suggest(target string, known []string, limit int) []string {
	var out []string

	for _, cand := range Rank(target, known) {
		if len(out) == limit || cand.Score < MinScore {
			break
		}

		if cand.Name == target {
			continue
		}

		out = append(out, cand.Name)
	}

	return out
}
