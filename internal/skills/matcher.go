// Package skills finds taxonomy terms in resume text. Matching runs in two
// passes: tokens lifted from an explicit skills section, then word-boundary
// scans of the whole document for every vocabulary term. Each accepted match
// carries the confidence from the scoring formula in confidence.go.
package skills

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/marcus-hale/resume-extract/constants"
	"github.com/marcus-hale/resume-extract/internal/entity"
	"github.com/marcus-hale/resume-extract/internal/taxonomy"
)

var sectionHeaders = []string{
	"technical skills",
	"key skills",
	"core competencies",
	"areas of expertise",
	"technical highlights",
	"proficiencies",
	"expertise",
	"skills",
}

var tokenSplit = regexp.MustCompile(`[,;|/•·\n]`)

// CategoryUncategorized buckets skills-section tokens that resolve to no
// vocabulary term. They are kept rather than dropped; a skills section is
// strong evidence the token is a real skill.
const CategoryUncategorized = "technical_skills"

// Matcher scans text for vocabulary terms. Build one per extraction stack
// and reuse it; it is read-only after New.
type Matcher struct {
	idx      *taxonomy.Index
	logger   *slog.Logger
	sections []*regexp.Regexp
	patterns map[string][]*regexp.Regexp
}

// New compiles the boundary patterns for every term variant in the index.
func New(idx *taxonomy.Index, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Matcher{
		idx:      idx,
		logger:   logger,
		patterns: make(map[string][]*regexp.Regexp),
	}
	for _, h := range sectionHeaders {
		m.sections = append(m.sections, regexp.MustCompile(
			`(?is)(?:^|\n)[ \t]*`+strings.ReplaceAll(h, " ", `\s+`)+`[ \t]*[:\n](.*?)(?:\n\n|\z)`))
	}
	for _, cat := range idx.Categories() {
		for _, term := range idx.Terms(cat) {
			surfaces := append(idx.Variants(term), idx.Synonyms(term)...)
			seen := map[string]struct{}{}
			for _, s := range surfaces {
				if s == "" {
					continue
				}
				if _, dup := seen[s]; dup {
					continue
				}
				seen[s] = struct{}{}
				m.patterns[term] = append(m.patterns[term], compileBoundary(s))
			}
		}
	}
	return m
}

// compileBoundary builds a whole-token pattern for a surface form. Terms
// that start or end with punctuation ("c++", ".net") get explicit separator
// classes where \b cannot apply.
func compileBoundary(surface string) *regexp.Regexp {
	q := regexp.QuoteMeta(surface)
	lead, trail := `\b`, `\b`
	if !isWordByte(surface[0]) {
		lead = `(?:^|[^\w])`
	}
	if !isWordByte(surface[len(surface)-1]) {
		trail = `(?:[^\w]|$)`
	}
	return regexp.MustCompile(lead + q + trail)
}

func isWordByte(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

// Extract runs both passes over the document and returns the skills field
// plus the detailed match set. Section matches win over full-text matches
// for the same term.
func (m *Matcher) Extract(text string) (entity.ExtractedValue, *entity.SkillSet) {
	set := &entity.SkillSet{ByCategory: map[string][]entity.SkillMatch{}}
	if strings.TrimSpace(text) == "" {
		return entity.None(), set
	}

	lower := strings.ToLower(text)
	grams := taxonomy.TextGrams(lower)
	found := map[string]entity.SkillMatch{} // canonical term -> match

	for _, body := range m.sectionBodies(text) {
		bodyLower := strings.ToLower(body)
		for _, tok := range tokenSplit.Split(body, -1) {
			tok = strings.TrimLeft(strings.TrimSpace(tok), "-*– \t")
			norm := Normalize(tok)
			if norm == "" {
				continue
			}
			term, cat, ok := m.idx.Lookup(norm)
			if !ok {
				if len(norm) <= 2 {
					continue
				}
				if _, dup := found[norm]; dup {
					continue
				}
				found[norm] = entity.SkillMatch{
					Term:       norm,
					Category:   CategoryUncategorized,
					Section:    SectionSkills,
					Confidence: sectionBase[SectionSkills],
				}
				continue
			}
			if _, dup := found[term]; dup {
				continue
			}
			pos := m.positions(term, lower)
			found[term] = entity.SkillMatch{
				Term:       term,
				Category:   cat,
				Section:    SectionSkills,
				Confidence: score(m.idx, term, SectionSkills, lower, bodyLower, pos, grams),
			}
		}
	}

	for _, cat := range m.idx.Categories() {
		for _, term := range m.idx.Terms(cat) {
			if _, dup := found[term]; dup {
				continue
			}
			pos := m.positions(term, lower)
			if len(pos) == 0 {
				continue
			}
			conf := score(m.idx, term, SectionFullText, lower, "", pos, grams)
			if conf < fullTextThreshold {
				continue
			}
			found[term] = entity.SkillMatch{Term: term, Category: cat, Section: SectionFullText, Confidence: conf}
		}
	}

	for _, match := range found {
		set.ByCategory[match.Category] = append(set.ByCategory[match.Category], match)
		set.Total++
	}
	for cat := range set.ByCategory {
		sort.Slice(set.ByCategory[cat], func(i, j int) bool {
			return set.ByCategory[cat][i].Term < set.ByCategory[cat][j].Term
		})
	}

	if set.Total == 0 {
		return entity.None(), set
	}

	byCat := make(map[string][]string, len(set.ByCategory))
	for cat, matches := range set.ByCategory {
		for _, match := range matches {
			byCat[cat] = append(byCat[cat], match.Term)
		}
	}
	m.logger.Debug("skills.extract", "total", set.Total, "categories", len(set.ByCategory))

	return entity.ExtractedValue{
		Value:      byCat,
		Confidence: documentConfidence(set.Total, len(set.ByCategory)),
		Method:     constants.MethodMultiMethod,
	}, set
}

// sectionBodies returns the bodies of every recognized skills section.
func (m *Matcher) sectionBodies(text string) []string {
	var out []string
	for _, re := range m.sections {
		for _, match := range re.FindAllStringSubmatch(text, -1) {
			if body := strings.TrimSpace(match[1]); body != "" {
				out = append(out, body)
			}
		}
	}
	return out
}

// positions returns the sorted byte offsets of every occurrence of the
// term's surface forms in the lowercased document.
func (m *Matcher) positions(term, lower string) []int {
	seen := map[int]struct{}{}
	for _, re := range m.patterns[term] {
		for _, loc := range re.FindAllStringIndex(lower, -1) {
			start := loc[0]
			// Leading separator classes consume one byte before the term.
			if start < len(lower) && !isWordByte(lower[start]) && lower[start] != term[0] {
				start++
			}
			seen[start] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}
