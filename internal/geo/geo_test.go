package geo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = `city,state_id,state_name,zips
New York,NY,New York,10001 10002
Newark,NJ,New Jersey,07101 07102
Austin,TX,Texas,73301 78701
Aurora,CO,Colorado,80010
Aurora,IL,Illinois,60502
`

func testTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := Load(strings.NewReader(testCSV))
	require.NoError(t, err)
	return tbl
}

func TestLoad(t *testing.T) {
	tbl := testTable(t)
	assert.Equal(t, 5, tbl.Len())

	row, ok := tbl.ByZip("10001")
	require.True(t, ok)
	assert.Equal(t, "new york", row.Name)
	assert.Equal(t, "NY", row.StateID)

	id, ok := tbl.StateID("texas")
	require.True(t, ok)
	assert.Equal(t, "TX", id)
	id, ok = tbl.StateID("tx")
	require.True(t, ok)
	assert.Equal(t, "TX", id)
}

func TestLoadRejectsMissingColumns(t *testing.T) {
	_, err := Load(strings.NewReader("city,state_id\nNew York,NY\n"))
	assert.Error(t, err)
}

func TestRatio(t *testing.T) {
	assert.InDelta(t, 1.0, Ratio("austin", "austin"), 1e-9)
	assert.InDelta(t, 0.0, Ratio("abc", "xyz"), 1e-9)
	// difflib.SequenceMatcher(None, "new york", "newark").ratio() == 2*5/14
	assert.InDelta(t, 10.0/14.0, Ratio("new york", "newark"), 1e-9)
	assert.InDelta(t, 1.0, Ratio("", ""), 1e-9)
}

func TestFindCityMatchExact(t *testing.T) {
	tbl := testTable(t)

	m, ok := tbl.FindCityMatch("New York", "NY", "", 0.8)
	require.True(t, ok)
	assert.Equal(t, "new york", m.City)
	assert.Equal(t, 1.0, m.Score)

	// State name resolves to its code before lookup.
	m, ok = tbl.FindCityMatch("Austin", "Texas", "", 0.8)
	require.True(t, ok)
	assert.Equal(t, "TX", m.StateID)
}

func TestFindCityMatchZipContext(t *testing.T) {
	tbl := testTable(t)
	m, ok := tbl.FindCityMatch("new york", "", "10002", 0.8)
	require.True(t, ok)
	assert.Equal(t, 1.0, m.Score)
	assert.Equal(t, "10002", m.Zip)
}

func TestFindCityMatchFuzzy(t *testing.T) {
	tbl := testTable(t)

	m, ok := tbl.FindCityMatch("Austn", "TX", "", 0.8)
	require.True(t, ok)
	assert.Equal(t, "austin", m.City)
	assert.Less(t, m.Score, 1.0)
	assert.GreaterOrEqual(t, m.Score, 0.8)

	_, ok = tbl.FindCityMatch("Zzzzz", "", "", 0.8)
	assert.False(t, ok)
}

func TestFindCityMatchStateFilter(t *testing.T) {
	tbl := testTable(t)

	// Two states have an Aurora; the state context disambiguates.
	m, ok := tbl.FindCityMatch("Aurora", "IL", "", 0.8)
	require.True(t, ok)
	assert.Equal(t, "IL", m.StateID)

	// Without context the scan order is sorted, so the result is stable.
	m, ok = tbl.FindCityMatch("Aurora", "", "", 0.8)
	require.True(t, ok)
	assert.Equal(t, "CO", m.StateID)
}

func TestDefaultDataset(t *testing.T) {
	tbl, err := Default()
	require.NoError(t, err)
	row, ok := tbl.ByZip("10001")
	require.True(t, ok)
	assert.Equal(t, "new york", row.Name)
	assert.Greater(t, tbl.Len(), 50)
}
