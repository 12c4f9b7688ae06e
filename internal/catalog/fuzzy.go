package catalog

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

const (
	// matchThreshold is the normalized edit-distance cutoff: 0 is exact,
	// 1 matches anything. 0.3 tolerates minor misspellings without letting
	// unrelated names through.
	matchThreshold = 0.3

	// minMatchLength is the minimum query-token length considered. Shorter
	// tokens produce single-character noise matches and are ignored.
	minMatchLength = 2
)

// Matcher is a fuzzy index over product names. Build one per product list
// and rebuild it only when the list changes, not on every query.
type Matcher struct {
	products []Product
	names    []string   // lowercased full names
	words    [][]string // lowercased name words
}

// NewMatcher indexes the given products for fuzzy name search. The matcher
// keeps a reference to the slice; callers must not mutate it afterwards.
func NewMatcher(products []Product) *Matcher {
	m := &Matcher{
		products: products,
		names:    make([]string, len(products)),
		words:    make([][]string, len(products)),
	}
	for i := range products {
		m.names[i] = strings.ToLower(products[i].Name)
		m.words[i] = strings.Fields(m.names[i])
	}
	return m
}

// Search returns the products whose name approximately matches the query,
// ranked best-first with ties kept in original list order. An empty or
// whitespace-only query (or one with no usable tokens) returns the full
// list in original order.
func (m *Matcher) Search(query string) []Product {
	terms := searchTerms(query)
	if len(terms) == 0 {
		result := make([]Product, len(m.products))
		copy(result, m.products)
		return result
	}

	type scored struct {
		index int
		score float64
	}
	var hits []scored
	for i := range m.products {
		total := 0.0
		matched := true
		for _, term := range terms {
			s, ok := m.scoreTerm(term, i)
			if !ok {
				matched = false
				break
			}
			total += s
		}
		if matched {
			hits = append(hits, scored{index: i, score: total / float64(len(terms))})
		}
	}

	sort.SliceStable(hits, func(a, b int) bool { return hits[a].score < hits[b].score })

	result := make([]Product, len(hits))
	for i, h := range hits {
		result[i] = m.products[h.index]
	}
	return result
}

// scoreTerm scores one query term against product i. Lower is better:
// a substring hit scores 0, an edit-distance hit scores its normalized
// distance, and a scattered subsequence hit scores the threshold itself.
func (m *Matcher) scoreTerm(term string, i int) (float64, bool) {
	if strings.Contains(m.names[i], term) {
		return 0, true
	}

	best := 1.0
	for _, w := range m.words[i] {
		d := fuzzy.LevenshteinDistance(term, w)
		longest := utf8.RuneCountInString(term)
		if l := utf8.RuneCountInString(w); l > longest {
			longest = l
		}
		if longest == 0 {
			continue
		}
		if n := float64(d) / float64(longest); n < best {
			best = n
		}
	}
	if best <= matchThreshold {
		return best, true
	}

	// Scattered match: the term's characters appear in order somewhere in
	// the full name, not necessarily contiguously.
	if fuzzy.MatchNormalizedFold(term, m.names[i]) {
		return matchThreshold, true
	}
	return 0, false
}

// searchTerms normalizes a raw query into lowercase tokens, dropping tokens
// shorter than minMatchLength.
func searchTerms(query string) []string {
	var terms []string
	for _, t := range strings.Fields(strings.ToLower(strings.TrimSpace(query))) {
		if utf8.RuneCountInString(t) >= minMatchLength {
			terms = append(terms, t)
		}
	}
	return terms
}
