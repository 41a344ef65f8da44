package geo

import (
	"sort"
	"strings"
)

// Match is the result of a city lookup.
type Match struct {
	City      string
	StateID   string
	StateName string
	Zip       string
	Score     float64
}

// FindCityMatch resolves a candidate city name against the table, using the
// optional state and zip context. Exact matches score 1.0; otherwise the
// best fuzzy candidate at or above threshold wins. Candidates are scanned in
// sorted key order so equal scores resolve the same way on every run.
func (t *Table) FindCityMatch(text, state, zip string, threshold float64) (Match, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" || len(t.citiesByName) == 0 {
		return Match{}, false
	}

	if state != "" {
		if id, ok := t.StateID(state); ok {
			state = id
		} else {
			state = strings.ToUpper(strings.TrimSpace(state))
		}
	}

	// Zip context wins when it names the same city.
	if zip != "" {
		if row, ok := t.ByZip(zip); ok && row.Name == text {
			return Match{City: row.Name, StateID: row.StateID, StateName: row.StateName, Zip: zip, Score: 1}, true
		}
	}

	if state != "" {
		if row, ok := t.ByCityState(text, state); ok {
			return Match{City: row.Name, StateID: row.StateID, StateName: row.StateName, Zip: row.Zips[0], Score: 1}, true
		}
	}

	keys := make([]string, 0, len(t.citiesByName))
	suffix := "_" + strings.ToLower(state)
	for key := range t.citiesByName {
		if state == "" || strings.HasSuffix(key, suffix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var best Match
	found := false
	for _, key := range keys {
		row := t.citiesByName[key]
		score := Ratio(text, row.Name)
		if score >= threshold && score > best.Score {
			best = Match{City: row.Name, StateID: row.StateID, StateName: row.StateName, Zip: row.Zips[0], Score: score}
			found = true
		}
	}
	return best, found
}
