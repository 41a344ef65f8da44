// Package geo holds the city/state/zip reference table used by the location
// extractors: exact lookups by "city_st" key and zip code, plus fuzzy city
// matching. The table is immutable after load and safe for concurrent reads.
package geo

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed us_cities.csv
var defaultCities []byte

// City is one reference row.
type City struct {
	Name      string   // lowercase
	StateID   string   // USPS code, upper
	StateName string
	Zips      []string
}

// Table is the loaded reference data.
type Table struct {
	citiesByName map[string]*City  // "city_st" (lowercase) -> row
	zipCodes     map[string]*City  // zip -> first row claiming it
	stateNames   map[string]string // lowercase state name or code -> USPS code
}

// Load parses a cities CSV with header city,state_id,state_name,zips where
// zips is a space-separated list. Rows with missing fields are skipped.
func Load(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("geo: read header: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, need := range []string{"city", "state_id", "state_name", "zips"} {
		if _, ok := col[need]; !ok {
			return nil, fmt.Errorf("geo: missing column %q", need)
		}
	}

	t := &Table{
		citiesByName: make(map[string]*City),
		zipCodes:     make(map[string]*City),
		stateNames:   make(map[string]string),
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("geo: read row: %w", err)
		}
		city := strings.ToLower(strings.TrimSpace(rec[col["city"]]))
		stateID := strings.ToUpper(strings.TrimSpace(rec[col["state_id"]]))
		stateName := strings.TrimSpace(rec[col["state_name"]])
		zips := strings.Fields(rec[col["zips"]])
		if city == "" || stateID == "" || stateName == "" || len(zips) == 0 {
			continue
		}

		t.stateNames[strings.ToLower(stateName)] = stateID
		t.stateNames[strings.ToLower(stateID)] = stateID

		row := &City{Name: city, StateID: stateID, StateName: stateName, Zips: zips}
		key := city + "_" + strings.ToLower(stateID)
		if _, ok := t.citiesByName[key]; !ok {
			t.citiesByName[key] = row
		}
		for _, z := range zips {
			if _, ok := t.zipCodes[z]; !ok {
				t.zipCodes[z] = row
			}
		}
	}
	return t, nil
}

// LoadFile loads a cities CSV from disk.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geo: open cities file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Default loads the embedded starter dataset.
func Default() (*Table, error) {
	return Load(strings.NewReader(string(defaultCities)))
}

// Len returns the number of distinct city/state rows.
func (t *Table) Len() int {
	return len(t.citiesByName)
}

// ByZip returns the city claiming a zip code.
func (t *Table) ByZip(zip string) (*City, bool) {
	c, ok := t.zipCodes[strings.TrimSpace(zip)]
	return c, ok
}

// ByCityState returns the row for an exact city + USPS code pair.
func (t *Table) ByCityState(city, stateID string) (*City, bool) {
	key := strings.ToLower(strings.TrimSpace(city)) + "_" + strings.ToLower(strings.TrimSpace(stateID))
	c, ok := t.citiesByName[key]
	return c, ok
}

// StateID resolves a state name or code to the USPS code.
func (t *Table) StateID(s string) (string, bool) {
	id, ok := t.stateNames[strings.ToLower(strings.TrimSpace(s))]
	return id, ok
}
