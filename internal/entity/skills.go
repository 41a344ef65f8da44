package entity

// SkillMatch is one accepted skill occurrence: the canonical taxonomy term,
// the category it belongs to, where it was found, and the match confidence.
type SkillMatch struct {
	Term       string  `json:"term"`
	Category   string  `json:"category"`
	Section    string  `json:"section"`
	Confidence float64 `json:"confidence"`
}

// SkillSet groups accepted skills by category, the shape stored on the
// skills field's structured data.
type SkillSet struct {
	ByCategory map[string][]SkillMatch `json:"by_category"`
	Total      int                     `json:"total"`
}

// Flatten returns all matched terms across categories, in the order the
// categories slice dictates.
func (s *SkillSet) Flatten(categories []string) []string {
	var out []string
	for _, c := range categories {
		for _, m := range s.ByCategory[c] {
			out = append(out, m.Term)
		}
	}
	return out
}
