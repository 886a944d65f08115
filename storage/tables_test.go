package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genz-dashboard/models"
)

func sampleReport() *models.Report {
	return &models.Report{
		GeneratedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Filter:      models.Filter{Province: models.AllFilter, Gender: models.AllFilter},
		Stats: models.QuickStats{
			Respondents: 3,
			MeanIncome:  models.Num(2500000),
		},
		Sections: map[string]models.SectionStatus{
			models.SectionLiteracy: models.SectionSufficient,
			models.SectionBehavior: models.SectionInsufficient,
		},
		ByProvince: []models.GroupCount{{Group: "Jawa Barat", Count: 2}, {Group: "Bali", Count: 1}},
		ByGender:   []models.GroupCount{{Group: "Perempuan", Count: 3}},
		IncomeExpenseByProvince: []models.IncomeExpense{
			{Province: "Jawa Barat", Income: models.Num(3000000), Expense: models.Num(1000000)},
			{Province: "Bali", Expense: models.Num(500000)},
		},
		Literacy: models.SectionInsight{
			Status: models.SectionSufficient,
			Aspects: []models.AspectScore{
				{ItemID: "lit_metrics", Text: "I am able to understand numbers and financial metrics", Translation: "Pemahaman angka", Mean: 3.5, N: 3},
			},
		},
		PDRBOutstanding: []models.RegionalRecord{
			{Province: "Jawa Barat", LoanAmountBillion: models.Num(1234.5), PDRBThousandRp: models.Num(45000000)},
		},
		ProfileRegional: []models.ProfileRegionalRow{
			{Province: "Jawa Barat", PDRBThousandRp: 45000000, AvgMonthlyIncome: 3000000},
		},
		LiteracyRegional: []models.LiteracyRegionalRow{
			{Province: "Jawa Barat", LiteracyScore: 2.75, TWP90: 2.5},
		},
		IncomeExpensePoints: []models.IncomeExpensePoint{
			{Gender: "Perempuan", Income: 3000000, Expense: 1000000},
		},
		PDRBIncome: []models.PDRBIncome{
			{Province: "Jawa Barat", PDRBThousandRp: 45000000, MeanIncome: 3000000, N: 2},
		},
		UrbanizationLoanTrend: &models.LinearFit{Slope: 64.2, Intercept: -3420, N: 2},
	}
}

func TestReportTablesShape(t *testing.T) {
	tables := ReportTables("run-1", sampleReport())

	names := make([]string, len(tables))
	for i, tbl := range tables {
		names[i] = tbl.Name
		require.NotEmpty(t, tbl.Columns)
		assert.Equal(t, "run_id", tbl.Columns[0].Name, tbl.Name)
		for _, row := range tbl.Rows {
			assert.Len(t, row, len(tbl.Columns), tbl.Name)
			assert.Equal(t, "run-1", row[0], tbl.Name)
		}
	}
	assert.Equal(t, []string{
		"quick_stats", "respondents_by_province", "respondents_by_gender",
		"respondents_by_employment", "fintech_usage", "income_expense_by_province",
		"expense_by_gender", "income_expense_points", "literacy_aspects", "behavior_aspects",
		"regional_pdrb_outstanding", "regional_urbanization_loan",
		"join_pdrb_income", "pdrb_income_by_province", "join_literacy_credit_risk",
		"trend_lines", "section_status",
	}, names)
}

func TestReportTablesMissingValuesAreNil(t *testing.T) {
	tables := ReportTables("run-1", sampleReport())

	quick := tables[0]
	require.Len(t, quick.Rows, 1)
	assert.Nil(t, quick.Rows[0][4], "mean_age")
	assert.Equal(t, 2500000.0, quick.Rows[0][5])

	income := tables[5]
	require.Len(t, income.Rows, 2)
	assert.Nil(t, income.Rows[1][2])
	assert.Equal(t, 500000.0, income.Rows[1][3])

	sections := tables[len(tables)-1]
	assert.Equal(t, []any{"run-1", models.SectionBehavior, "insufficient"}, sections.Rows[0])
	assert.Equal(t, []any{"run-1", models.SectionLiteracy, "sufficient"}, sections.Rows[1])
}

func TestReportTablesDerivedViews(t *testing.T) {
	byName := map[string]Table{}
	for _, tbl := range ReportTables("run-1", sampleReport()) {
		byName[tbl.Name] = tbl
	}

	assert.Equal(t, [][]any{{"run-1", "Jawa Barat", 45000000.0, 3000000.0, 2}},
		byName["pdrb_income_by_province"].Rows)
	assert.Equal(t, [][]any{{"run-1", "Perempuan", 3000000.0, 1000000.0}},
		byName["income_expense_points"].Rows)
	// The income trend was not fitted, so only one row.
	assert.Equal(t, [][]any{{"run-1", "urbanization_vs_loan", 64.2, -3420.0, 2}},
		byName["trend_lines"].Rows)
}

func TestSQLForDialects(t *testing.T) {
	tbl := Table{
		Name:    "respondents_by_gender",
		Columns: cols("gender", typeText, "respondents", typeInteger, "share", typeReal),
		Rows:    [][]any{{"r", "Perempuan", 2, 0.5}, {"r", "Laki-laki", 1, nil}},
	}

	assert.Equal(t,
		`CREATE TABLE "respondents_by_gender" ("run_id" TEXT, "gender" TEXT, "respondents" BIGINT, "share" DOUBLE PRECISION)`,
		createTableSQL(postgresDialect, tbl))
	assert.Equal(t,
		`CREATE TABLE "respondents_by_gender" ("run_id" TEXT, "gender" TEXT, "respondents" INTEGER, "share" REAL)`,
		createTableSQL(sqliteDialect, tbl))

	query, args := insertBatchSQL(postgresDialect, tbl, tbl.Rows)
	assert.Equal(t,
		`INSERT INTO "respondents_by_gender" ("run_id","gender","respondents","share") VALUES ($1,$2,$3,$4),($5,$6,$7,$8)`,
		query)
	assert.Equal(t, []any{"r", "Perempuan", 2, 0.5, "r", "Laki-laki", 1, nil}, args)
}
