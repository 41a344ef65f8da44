package skills

import (
	"strings"

	"github.com/marcus-hale/resume-extract/internal/taxonomy"
)

// Section labels passed to the confidence scorer.
const (
	SectionSkills        = "skills_section"
	SectionExperience    = "experience_section"
	SectionEducation     = "education_section"
	SectionCertification = "certification_section"
	SectionProject       = "project_section"
	SectionFullText      = "full_text"
)

var sectionBase = map[string]float64{
	SectionSkills:        0.9,
	SectionExperience:    0.8,
	SectionEducation:     0.7,
	SectionCertification: 0.85,
	SectionProject:       0.75,
	SectionFullText:      0.6,
}

var proficiencyBoosts = []struct {
	term  string
	boost float64
}{
	{"expert", 0.2},
	{"proficient", 0.15},
	{"advanced", 0.15},
	{"skilled", 0.1},
	{"experienced", 0.1},
	{"strong", 0.1},
	{"extensive", 0.1},
	{"comprehensive", 0.1},
}

// fullTextThreshold is the acceptance floor for matches found outside a
// recognized section.
const fullTextThreshold = 0.6

// score computes the confidence of one matched term.
//
// context must be the lowercased document text; sectionBody the lowercased
// body of the section the match came from ("" for full-text matches);
// positions are byte offsets of the occurrences in context; textGrams is
// the document's character n-gram set, computed once per document.
func score(idx *taxonomy.Index, term, section, context, sectionBody string, positions []int, textGrams map[string]struct{}) float64 {
	conf, ok := sectionBase[section]
	if !ok {
		conf = 0.5
	}

	conf += 0.2 * idx.Overlap(term, textGrams)

	// Proficiency language near the first occurrence that has any.
	for _, pos := range positions {
		lo := max(0, pos-50)
		hi := min(len(context), pos+50)
		window := context[lo:hi]
		boosted := false
		for _, p := range proficiencyBoosts {
			if strings.Contains(window, p.term) {
				conf += p.boost
				boosted = true
				break
			}
		}
		if boosted {
			break
		}
	}

	// Synonym evidence elsewhere in the document.
	for _, syn := range idx.Synonyms(term) {
		if strings.Contains(context, syn) {
			conf += 0.1
			break
		}
	}

	if n := len(positions); n > 1 {
		conf += min(0.1*float64(n-1), 0.3)
	}

	if section == SectionSkills && strings.Contains(sectionBody, term) {
		conf += 0.2
	}

	return max(0.1, min(1.0, conf))
}

// documentConfidence scores the skills field as a whole from the match
// counts: more skills and more distinct categories raise it, capped at 0.9.
func documentConfidence(total, categories int) float64 {
	if total == 0 {
		return 0
	}
	return min(0.9, 0.3+0.1*float64(min(4, total))+0.1*float64(min(2, categories)))
}
