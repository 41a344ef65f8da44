// Package taxonomy builds the lexical skill index: a prefix map over term
// variants, a character n-gram index for fuzzy scoring, and a synonym map.
// The index is immutable after Build and safe for concurrent readers.
package taxonomy

import (
	"fmt"
	"sort"
	"strings"
)

// Vocabulary is the raw taxonomy: category name -> canonical terms, plus
// explicit alias groups (canonical -> variants).
type Vocabulary struct {
	Categories map[string][]string `yaml:"categories"`
	Aliases    map[string][]string `yaml:"aliases"`
}

// Index is the built lookup structure.
type Index struct {
	// variant (lowercase) -> canonical term
	prefix map[string]string

	// canonical term -> category
	category map[string]string

	// canonical term -> 2..4 char n-grams of the term
	ngrams map[string]map[string]struct{}

	// canonical term -> other surface forms that count as synonym evidence
	synonyms map[string][]string

	// category names, sorted, for deterministic iteration
	categories []string

	// canonical terms per category, sorted
	terms map[string][]string
}

// Build constructs the index from a vocabulary. Building the same
// vocabulary twice yields an identical index.
func Build(v *Vocabulary) (*Index, error) {
	if len(v.Categories) == 0 {
		return nil, fmt.Errorf("taxonomy: vocabulary has no categories")
	}

	idx := &Index{
		prefix:   make(map[string]string),
		category: make(map[string]string),
		ngrams:   make(map[string]map[string]struct{}),
		synonyms: make(map[string][]string),
		terms:    make(map[string][]string),
	}

	for cat, terms := range v.Categories {
		cat = strings.ToLower(strings.TrimSpace(cat))
		for _, raw := range terms {
			term := strings.ToLower(strings.TrimSpace(raw))
			if term == "" {
				continue
			}
			if prev, ok := idx.category[term]; ok && prev != cat {
				return nil, fmt.Errorf("taxonomy: term %q in both %q and %q", term, prev, cat)
			}
			idx.category[term] = cat
			idx.terms[cat] = append(idx.terms[cat], term)

			for _, variant := range surfaceVariants(term) {
				idx.prefix[variant] = term
			}
			idx.ngrams[term] = charNgrams(term)
			idx.synonyms[term] = structuralSynonyms(term)
		}
	}

	for canonical, variants := range v.Aliases {
		canonical = strings.ToLower(strings.TrimSpace(canonical))
		if _, ok := idx.category[canonical]; !ok {
			return nil, fmt.Errorf("taxonomy: alias group for unknown term %q", canonical)
		}
		for _, raw := range variants {
			variant := strings.ToLower(strings.TrimSpace(raw))
			if variant == "" || variant == canonical {
				continue
			}
			idx.prefix[variant] = canonical
			idx.synonyms[canonical] = append(idx.synonyms[canonical], variant)
		}
	}

	for cat := range idx.terms {
		sort.Strings(idx.terms[cat])
		idx.categories = append(idx.categories, cat)
	}
	sort.Strings(idx.categories)
	for term := range idx.synonyms {
		sort.Strings(idx.synonyms[term])
	}

	return idx, nil
}

// surfaceVariants returns the lookup keys a term is reachable under: the
// term itself, a space-free form, and a hyphenated form.
func surfaceVariants(term string) []string {
	out := []string{term}
	if strings.Contains(term, " ") {
		out = append(out,
			strings.ReplaceAll(term, " ", ""),
			strings.ReplaceAll(term, " ", "-"))
	}
	if strings.Contains(term, "-") {
		out = append(out,
			strings.ReplaceAll(term, "-", ""),
			strings.ReplaceAll(term, "-", " "))
	}
	return out
}

// structuralSynonyms derives alias forms from the term's own structure.
func structuralSynonyms(term string) []string {
	var out []string
	if strings.Contains(term, "microsoft") {
		out = append(out, strings.TrimSpace(strings.ReplaceAll(term, "microsoft", "ms")))
	}
	if strings.Contains(term, "amazon") {
		out = append(out, "aws")
	}
	if strings.Contains(term, ".js") {
		out = append(out, strings.TrimSuffix(term, ".js"))
	}
	return out
}

// charNgrams returns the set of 2..4 character n-grams of s.
func charNgrams(s string) map[string]struct{} {
	grams := make(map[string]struct{})
	runes := []rune(s)
	for n := 2; n <= 4; n++ {
		for i := 0; i+n <= len(runes); i++ {
			grams[string(runes[i:i+n])] = struct{}{}
		}
	}
	return grams
}

// Lookup resolves a surface form to its canonical term and category.
func (i *Index) Lookup(surface string) (term, category string, ok bool) {
	term, ok = i.prefix[strings.ToLower(strings.TrimSpace(surface))]
	if !ok {
		return "", "", false
	}
	return term, i.category[term], true
}

// Category returns the category of a canonical term.
func (i *Index) Category(term string) (string, bool) {
	c, ok := i.category[term]
	return c, ok
}

// Categories returns the sorted category names.
func (i *Index) Categories() []string {
	return i.categories
}

// Terms returns the sorted canonical terms of a category.
func (i *Index) Terms(category string) []string {
	return i.terms[category]
}

// Variants returns every surface form that resolves to the given canonical
// term, sorted.
func (i *Index) Variants(term string) []string {
	var out []string
	for v, canon := range i.prefix {
		if canon == term {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// Synonyms returns the alias surface forms of a canonical term (explicit
// alias groups plus structural rules), sorted.
func (i *Index) Synonyms(term string) []string {
	return i.synonyms[term]
}

// TextGrams returns the 2..4 char n-gram set of a text span, for repeated
// Overlap queries against the same document.
func TextGrams(span string) map[string]struct{} {
	return charNgrams(strings.ToLower(span))
}

// Overlap returns the fraction of the canonical term's 2..4 char n-grams
// present in a precomputed gram set.
func (i *Index) Overlap(term string, grams map[string]struct{}) float64 {
	termGrams := i.ngrams[term]
	if len(termGrams) == 0 {
		return 0
	}
	shared := 0
	for g := range termGrams {
		if _, ok := grams[g]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(termGrams))
}

// NgramOverlap returns the fraction of the canonical term's 2..4 char
// n-grams also present in the candidate text span.
func (i *Index) NgramOverlap(term, span string) float64 {
	return i.Overlap(term, TextGrams(span))
}
