package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genz-dashboard/models"
	"genz-dashboard/utils"
)

func newTestLogger() *utils.Logger { return utils.Discard() }

var profileHeaders = []string{
	" province ", "gender", "birth_year", "employment_status",
	"avg_monthly_income", "avg_monthly_expense", "main_fintech_app",
}

func sampleProfile() models.RawTable {
	return models.RawTable{
		Headers: profileHeaders,
		Rows: [][]string{
			{"Jawa Barat", "Perempuan", "2003", "Pelajar", "Rp 2.000.000", "Rp 1.000.000", "GoPay"},
			{"Jawa Barat", "Laki-laki", "2001.0", "Bekerja", "Rp 4.000.000", "Rp 3.000.000", "OVO"},
			{"DKI Jakarta", "Perempuan", "2000", "Bekerja", "Rp 6.000.000", "", "GoPay"},
			{"Bali", "Perempuan", "", "Pelajar", "", "", "DANA"},
		},
	}
}

func sampleRegional() models.RawTable {
	return models.RawTable{
		Headers: []string{
			"Provinsi", "Jumlah Dana yang Diberikan (Rp miliar)", "TWP 90%",
			"Outstanding Pinjaman (Rp miliar)", "PDRB (Ribu Rp)",
			"Jumlah Penerima Pinjaman (akun)", "Urbanisasi (%)",
		},
		Rows: [][]string{
			{"Jawa Barat", "1.234,5", "2,5", "500", "45.000.000", "1000", "72,5"},
			{"DKI Jakarta", "3000", "1,2", "900", "120.000.000", "2000", "100"},
			{"Bali", "", "1", "1", "1", "1", "1"},
			{"", "10", "1", "1", "1", "1", "1"},
		},
	}
}

// surveyHeaders lays out every catalog item as its own column after the
// demographic columns.
func surveyHeaders() []string {
	headers := []string{"Timestamp", "Province of Origin", "Year of Birth"}
	for _, item := range Catalog {
		headers = append(headers, item.Text)
	}
	return headers
}

// surveyRow answers every literacy item with lit and every other item with beh.
func surveyRow(province, lit, beh string) []string {
	row := []string{"2024-01-01", province, "2003"}
	for _, item := range Catalog {
		if item.Category == CategoryLiteracy {
			row = append(row, lit)
		} else {
			row = append(row, beh)
		}
	}
	return row
}

func sampleLiteracy() models.RawTable {
	return models.RawTable{
		Headers: surveyHeaders(),
		Rows: [][]string{
			surveyRow("Jawa Barat", "4", "2"),
			surveyRow("DKI Jakarta", "3", "3"),
			surveyRow("DKI Jakarta ", "1", "1"),
		},
	}
}

func TestCleanProfile(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := sampleProfile()

	records, present := c.CleanProfile(raw)

	require.Len(t, records, len(raw.Rows), "profile cleaning keeps every row")
	assert.Equal(t, "Jawa Barat", records[0].Province)
	assert.Equal(t, models.Num(2000000), records[0].AvgMonthlyIncome)
	assert.Equal(t, int64(2001), records[1].BirthYear.Int64)
	assert.True(t, records[1].BirthYear.Valid)
	assert.False(t, records[2].AvgMonthlyExpense.Valid)
	assert.False(t, records[3].BirthYear.Valid)
	assert.Len(t, present, len(profileColumns))
}

func TestCleanProfileMissingOptionalColumn(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := models.RawTable{
		Headers: []string{"province", "gender"},
		Rows:    [][]string{{"Aceh", "Perempuan"}},
	}

	records, present := c.CleanProfile(raw)

	require.Len(t, records, 1)
	assert.Equal(t, "", records[0].MainFintechApp)
	assert.False(t, records[0].AvgMonthlyIncome.Valid)
	assert.True(t, present[ColProvince])
	assert.False(t, present[ColMainFintechApp])
}

func TestCleanRegional(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := sampleRegional()

	records := c.CleanRegional(raw)

	require.Len(t, records, 2)
	assert.LessOrEqual(t, len(records), len(raw.Rows))
	for _, r := range records {
		assert.NotEmpty(t, r.Province)
		assert.True(t, r.LoanAmountBillion.Valid)
	}

	jabar := records[0]
	assert.Equal(t, "Jawa Barat", jabar.Province)
	assert.Equal(t, models.Num(1234.5), jabar.LoanAmountBillion)
	assert.Equal(t, models.Num(2.5), jabar.TWP90)
	assert.Equal(t, models.Num(45000000), jabar.PDRBThousandRp)
	assert.Equal(t, models.Num(72.5), jabar.UrbanizationRate)
	assert.False(t, jabar.PopulationThousand.Valid, "absent column stays missing")
}

func TestCleanLiteracy(t *testing.T) {
	c := NewCleaner(newTestLogger())

	records, litMatch, behMatch := c.CleanLiteracy(sampleLiteracy())

	assert.Equal(t, 18, litMatch.Matched())
	assert.Equal(t, 30, behMatch.Matched())
	require.Len(t, records, 3)

	r := records[0]
	assert.Equal(t, "Jawa Barat", r.Province)
	assert.InDelta(t, 4.0, r.AvgLiteracyScore.Float64, 1e-9)
	assert.InDelta(t, 2.0, r.AvgBehaviorScore.Float64, 1e-9)
	assert.InDelta(t, 2.75, r.LiteracyScore.Float64, 1e-9)
	assert.Equal(t, models.Num(4), r.Scores["lit_metrics"])
	assert.Equal(t, models.Num(2), r.Scores["dec_obsess"])

	assert.Equal(t, "DKI Jakarta ", records[2].Province, "province values are not trimmed")
}

func TestCleanLiteracyCoercesScores(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := sampleLiteracy()
	row := surveyRow("Aceh", "4", "2")
	row[3] = "5"   // out of range
	row[4] = "abc" // not a number
	row[5] = "3,0"
	row[6] = "NaN"
	row[7] = "nan"
	row[8] = "Inf"
	row[9] = "-inf"
	raw.Rows = [][]string{row}

	records, _, _ := c.CleanLiteracy(raw)

	require.Len(t, records, 1)
	r := records[0]
	for i, item := range Catalog[:7] {
		if i == 2 {
			assert.Equal(t, models.Num(3), r.Scores[item.ID])
			continue
		}
		assert.False(t, r.Scores[item.ID].Valid, "answer %q of %s", row[3+i], item.ID)
	}
	// one answer of 3 and eleven of 4 remain
	require.True(t, r.AvgLiteracyScore.Valid)
	assert.InDelta(t, (3+11*4.0)/12, r.AvgLiteracyScore.Float64, 1e-9)
	assert.False(t, math.IsNaN(r.LiteracyScore.Float64))
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		raw   string
		want  float64
		valid bool
	}{
		{"1", 1, true},
		{" 4 ", 4, true},
		{"2,5", 2.5, true},
		{"3.0", 3, true},
		{"0", 0, false},
		{"4.01", 0, false},
		{"NaN", 0, false},
		{"nan", 0, false},
		{"Inf", 0, false},
		{"-Inf", 0, false},
		{"", 0, false},
		{"setuju", 0, false},
	}

	for _, tt := range tests {
		got := parseScore(tt.raw)
		if got.Valid != tt.valid {
			t.Errorf("parseScore(%q).Valid = %v; want %v", tt.raw, got.Valid, tt.valid)
			continue
		}
		if tt.valid && got.Float64 != tt.want {
			t.Errorf("parseScore(%q) = %v; want %v", tt.raw, got.Float64, tt.want)
		}
	}
}

func TestRowMeanSkipsNaNAnswers(t *testing.T) {
	cols := []itemColumn{{id: "a", idx: 0}, {id: "b", idx: 1}}

	got := rowMean([]string{"nan", "3"}, cols)

	assert.Equal(t, models.Num(3), got)
	assert.False(t, rowMean([]string{"NaN", "NaN"}, cols).Valid)
}

func TestCleanLiteracyWithoutItems(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := models.RawTable{
		Headers: []string{"Province of Origin", "Year of Birth"},
		Rows:    [][]string{{"Aceh", "2003"}},
	}

	records, litMatch, behMatch := c.CleanLiteracy(raw)

	require.Len(t, records, 1)
	assert.Zero(t, litMatch.Matched())
	assert.Zero(t, behMatch.Matched())
	assert.False(t, records[0].LiteracyScore.Valid)
}

func TestCleanIsStableAcrossRuns(t *testing.T) {
	c := NewCleaner(newTestLogger())
	src := Sources{Profile: sampleProfile(), Literacy: sampleLiteracy(), Regional: sampleRegional()}

	first := c.Clean(src)
	second := c.Clean(src)

	assert.Equal(t, first, second)
	assert.True(t, first.HasProfileColumn(ColGender))
}
