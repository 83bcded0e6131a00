package abbrev_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paymax/internal/abbrev"
)

const sampleCatalog = `{
	"version": 1,
	"abbreviations": [
		{"code": "BPAY", "description": "Basic Pay", "category": "basic_pay", "polarity": "credit"},
		{"code": "DA", "description": "Dearness Allowance", "category": "allowance", "polarity": "credit"},
		{"code": "DSOP", "description": "DSOP Fund", "category": "fund", "polarity": "debit"},
		{"code": "ITAX", "description": "Income Tax", "category": "tax", "polarity": "debit"},
		{"code": "AGIF", "description": "Army Group Insurance Fund", "category": "insurance", "polarity": "debit"},
		{"code": "MSP", "description": "Military Service Pay", "category": "basic_pay", "polarity": "credit"}
	],
	"component_names": {
		"bpay": "Basic Pay",
		"basic pay": "Basic Pay",
		"da": "Dearness Allowance",
		"tpta": "Transport Allowance",
		"dsop": "DSOP Fund",
		"itax": "Income Tax",
		"agif": "Army Group Insurance Fund",
		"msp": "Military Service Pay"
	}
}`

func sampleResolver(t *testing.T) *abbrev.Resolver {
	t.Helper()
	catalog, err := abbrev.ParseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)
	return abbrev.NewResolver(catalog)
}

func TestParseCatalog_Valid(t *testing.T) {
	catalog, err := abbrev.ParseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.Version)
	assert.Equal(t, 6, catalog.Len())

	a := catalog.ByCode("DSOP")
	require.NotNil(t, a)
	assert.Equal(t, "DSOP Fund", a.Description)

	assert.NotNil(t, catalog.ByDescription("income tax"))
	assert.Nil(t, catalog.ByCode("NOPE"))
}

func TestParseCatalog_VersionZeroRejected(t *testing.T) {
	_, err := abbrev.ParseCatalog([]byte(`{"version": 0, "abbreviations": []}`))
	require.Error(t, err)

	var loadErr *abbrev.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Reason, "version")
}

func TestParseCatalog_EmptyVersionOneIsValid(t *testing.T) {
	catalog, err := abbrev.ParseCatalog([]byte(`{"version": 1, "abbreviations": []}`))
	require.NoError(t, err)
	assert.Equal(t, 0, catalog.Len())
	assert.Nil(t, catalog.ByCode("DSOP"))
}

func TestParseCatalog_Malformed(t *testing.T) {
	cases := map[string]string{
		"not JSON":         `{{`,
		"missing version":  `{"abbreviations": []}`,
		"bad category":     `{"version": 1, "abbreviations": [{"code": "X", "description": "x", "category": "sideways"}]}`,
		"bad polarity":     `{"version": 1, "abbreviations": [{"code": "X", "description": "x", "category": "tax", "polarity": "up"}]}`,
		"empty code":       `{"version": 1, "abbreviations": [{"code": "", "description": "x", "category": "tax"}]}`,
		"wrong value type": `{"version": "one", "abbreviations": []}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := abbrev.ParseCatalog([]byte(doc))
			var loadErr *abbrev.LoadError
			assert.ErrorAs(t, err, &loadErr)
		})
	}
}

func TestEmptyCatalog(t *testing.T) {
	catalog := abbrev.EmptyCatalog()
	assert.Equal(t, 1, catalog.Version)
	assert.Equal(t, 0, catalog.Len())

	r := abbrev.NewResolver(catalog)
	assert.Nil(t, r.Match("DSOP"))
	assert.Equal(t, abbrev.SideUnknown, r.SideFor("DSOP"))
	assert.Equal(t, "Dsop Fund", r.Normalize("dsop fund"))
}

func TestResolver_Match(t *testing.T) {
	r := sampleResolver(t)

	require.NotNil(t, r.Match("DSOP"))
	// Lower-cased codes resolve through the upper-cased lookup.
	require.NotNil(t, r.Match("dsop"))
	// Descriptions resolve case-insensitively.
	require.NotNil(t, r.Match("income tax"))
	assert.Nil(t, r.Match("XYZZY"))
	assert.Nil(t, r.Match("  "))
}

func TestResolver_SideFor(t *testing.T) {
	r := sampleResolver(t)

	assert.Equal(t, abbrev.SideEarning, r.SideFor("BPAY"))
	assert.Equal(t, abbrev.SideEarning, r.SideFor("Military Service Pay"))
	assert.Equal(t, abbrev.SideDeduction, r.SideFor("DSOP"))
	assert.Equal(t, abbrev.SideDeduction, r.SideFor("agif"))
	assert.Equal(t, abbrev.SideUnknown, r.SideFor("MYSTERY"))
}

func TestResolver_Normalize(t *testing.T) {
	r := sampleResolver(t)

	// Exact mapping.
	assert.Equal(t, "Basic Pay", r.Normalize("BPAY"))
	assert.Equal(t, "DSOP Fund", r.Normalize("dsop"))
	// Longest substring key wins: "tpta" (4) beats "da" (2).
	assert.Equal(t, "Transport Allowance", r.Normalize("TPTA DA"))
	// Unmapped names fall back to Title Case.
	assert.Equal(t, "Special Duty Pay", r.Normalize("SPECIAL DUTY PAY"))
	assert.Equal(t, "", r.Normalize("   "))
}

func TestResolver_NormalizeIsIdempotent(t *testing.T) {
	r := sampleResolver(t)

	for _, raw := range []string{"BPAY", "da", "DSOP Fund", "special duty pay"} {
		once := r.Normalize(raw)
		assert.Equal(t, once, r.Normalize(once), "normalizing %q twice", raw)
	}
}

func TestLoader_FreshnessWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o644))

	loader := abbrev.NewLoader(path, time.Hour)
	catalog, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, 6, catalog.Len())

	// Corrupt the file. A fresh cached catalog must keep serving.
	require.NoError(t, os.WriteFile(path, []byte(`{{`), 0o644))
	cached, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, 6, cached.Len())

	// Reload bypasses freshness and surfaces the corruption.
	_, err = loader.Reload()
	var loadErr *abbrev.LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestLoader_MissingFile(t *testing.T) {
	loader := abbrev.NewLoader(filepath.Join(t.TempDir(), "nope.json"), time.Hour)
	_, err := loader.Load()
	var loadErr *abbrev.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTracker(t *testing.T) {
	tr := abbrev.NewTracker()
	tr.Record("SPCDO", 100)
	tr.Record("SPCDO", 120)
	tr.Record("SPCDO", 140)
	tr.Record("RH12", 50)

	assert.Equal(t, 2, tr.Len())

	frequent := tr.Candidates(2)
	require.Len(t, frequent, 1)
	assert.Equal(t, "SPCDO", frequent[0].Code)
	assert.Equal(t, 3, frequent[0].Count)
	assert.Equal(t, []float64{100, 120, 140}, frequent[0].Values)

	all := tr.Candidates(1)
	require.Len(t, all, 2)
	// Frequency descending, code ascending on ties.
	assert.Equal(t, "SPCDO", all[0].Code)
	assert.Equal(t, "RH12", all[1].Code)
}
