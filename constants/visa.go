package constants

import "strings"

// Visas maps lowercase visa/authorization mentions to the canonical label
// stored on the work_authorization field.
var Visas = map[string]string{
	"h1b":                       "H1B",
	"h-1b":                      "H1B",
	"h1":                        "H1B",
	"h-1":                       "H1B",
	"h4":                        "H4",
	"h-4":                       "H4",
	"l1":                        "L1",
	"l-1":                       "L1",
	"l2":                        "L2",
	"l-2":                       "L2",
	"f1":                        "F1",
	"f-1":                       "F1",
	"j1":                        "J1",
	"j-1":                       "J1",
	"b1":                        "B1",
	"b-1":                       "B1",
	"e3":                        "E3",
	"e-3":                       "E3",
	"tn":                        "TN",
	"opt":                       "OPT",
	"cpt":                       "CPT",
	"ead":                       "EAD",
	"gc":                        "Green Card",
	"green card":                "Green Card",
	"permanent resident":        "Green Card",
	"lawful permanent resident": "Green Card",
	"citizen":                   "US Citizen",
	"us citizen":                "US Citizen",
	"usc":                       "US Citizen",
}

// TaxTerms lists recognized engagement/tax terms, longest-first so compound
// forms win over their substrings ("contract to hire" before "contract").
var TaxTerms = []string{
	"contract to hire", "corp to corp", "corp-to-corp", "full time",
	"permanent", "contract", "hourly", "salary",
	"c2h", "c2c", "1099", "w-2", "w2",
}

// States maps lowercase state names to USPS codes.
var States = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT", "delaware": "DE",
	"florida": "FL", "georgia": "GA", "hawaii": "HI", "idaho": "ID",
	"illinois": "IL", "indiana": "IN", "iowa": "IA", "kansas": "KS",
	"kentucky": "KY", "louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN", "mississippi": "MS",
	"missouri": "MO", "montana": "MT", "nebraska": "NE", "nevada": "NV",
	"new hampshire": "NH", "new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH", "oklahoma": "OK",
	"oregon": "OR", "pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC",
	"south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT",
	"vermont": "VT", "virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY", "district of columbia": "DC",
}

// StateCodes is the set of valid USPS codes, derived from States.
var StateCodes = func() map[string]struct{} {
	m := make(map[string]struct{}, len(States))
	for _, code := range States {
		m[code] = struct{}{}
	}
	return m
}()

// NormalizeState returns the USPS code for a state name or code, or "" if
// the input is not a US state.
func NormalizeState(s string) string {
	s = strings.TrimSpace(s)
	if code, ok := States[strings.ToLower(s)]; ok {
		return code
	}
	upper := strings.ToUpper(s)
	if _, ok := StateCodes[upper]; ok {
		return upper
	}
	return ""
}

// visaMentions is checked in order so that compound mentions win and the
// result is deterministic regardless of map iteration.
var visaMentions = []struct{ mention, label string }{
	{"green card", "Green Card"},
	{"permanent resident", "Green Card"},
	{"gc", "Green Card"},
	{"citizen", "US Citizen"},
	{"h-1", "H1B"},
	{"h1", "H1B"},
	{"h-4", "H4"},
	{"h4", "H4"},
	{"l-1", "L1"},
	{"l1", "L1"},
	{"l-2", "L2"},
	{"l2", "L2"},
	{"ead", "EAD"},
	{"opt", "OPT"},
	{"cpt", "CPT"},
	{"tn", "TN"},
	{"e-3", "E3"},
	{"e3", "E3"},
}

// NormalizeVisa returns the canonical authorization label for a raw mention,
// or "" when the mention is not a known visa/authorization term.
func NormalizeVisa(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if label, ok := Visas[raw]; ok {
		return label
	}
	// Substring forms inside free text ("currently on an h1 visa").
	for _, v := range visaMentions {
		if strings.Contains(raw, v.mention) {
			return v.label
		}
	}
	return ""
}
