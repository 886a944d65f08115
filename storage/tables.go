package storage

import (
	"database/sql"
	"sort"

	"genz-dashboard/models"
)

// Column types shared by the SQL sinks.
const (
	typeText    = "TEXT"
	typeReal    = "REAL"
	typeInteger = "INTEGER"
)

// Column describes one exported column.
type Column struct {
	Name string
	Type string
}

// Table is one derived table flattened for export. Cells are string,
// float64, int or nil for a missing value.
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]any
}

// ColumnNames returns the column names in order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

func cols(pairs ...string) []Column {
	out := []Column{{Name: "run_id", Type: typeText}}
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Column{Name: pairs[i], Type: pairs[i+1]})
	}
	return out
}

func nullable(v sql.NullFloat64) any {
	if !v.Valid {
		return nil
	}
	return v.Float64
}

// ReportTables flattens every derived table of r. Each row starts with runID.
func ReportTables(runID string, r *models.Report) []Table {
	tables := []Table{
		{
			Name:    "quick_stats",
			Columns: cols("province_filter", typeText, "gender_filter", typeText, "respondents", typeInteger, "mean_age", typeReal, "mean_income", typeReal, "mean_expense", typeReal),
			Rows: [][]any{{runID, r.Filter.Province, r.Filter.Gender, r.Stats.Respondents,
				nullable(r.Stats.MeanAge), nullable(r.Stats.MeanIncome), nullable(r.Stats.MeanExpense)}},
		},
		countTable("respondents_by_province", "province", runID, r.ByProvince),
		countTable("respondents_by_gender", "gender", runID, r.ByGender),
		countTable("respondents_by_employment", "employment_status", runID, r.ByEmployment),
		countTable("fintech_usage", "main_fintech_app", runID, r.ByFintech),
		incomeExpenseTable(runID, r.IncomeExpenseByProvince),
		expenseByGenderTable(runID, r.ExpenseByGender),
		incomeExpensePointsTable(runID, r.IncomeExpensePoints),
		aspectTable("literacy_aspects", runID, r.Literacy.Aspects),
		aspectTable("behavior_aspects", runID, r.Behavior.Aspects),
		regionalTable("regional_pdrb_outstanding", runID, r.PDRBOutstanding),
		regionalTable("regional_urbanization_loan", runID, r.UrbanizationLoan),
		profileRegionalTable(runID, r.ProfileRegional),
		pdrbIncomeTable(runID, r.PDRBIncome),
		literacyRegionalTable(runID, r.LiteracyRegional),
		trendTable(runID, r),
		sectionTable(runID, r.Sections),
	}
	return tables
}

func countTable(name, group, runID string, counts []models.GroupCount) Table {
	t := Table{Name: name, Columns: cols(group, typeText, "respondents", typeInteger)}
	for _, c := range counts {
		t.Rows = append(t.Rows, []any{runID, c.Group, c.Count})
	}
	return t
}

func incomeExpenseTable(runID string, rows []models.IncomeExpense) Table {
	t := Table{
		Name:    "income_expense_by_province",
		Columns: cols("province", typeText, "avg_monthly_income", typeReal, "avg_monthly_expense", typeReal),
	}
	for _, row := range rows {
		t.Rows = append(t.Rows, []any{runID, row.Province, nullable(row.Income), nullable(row.Expense)})
	}
	return t
}

func expenseByGenderTable(runID string, means []models.GroupMean) Table {
	t := Table{
		Name:    "expense_by_gender",
		Columns: cols("gender", typeText, "avg_monthly_expense", typeReal, "respondents", typeInteger),
	}
	for _, m := range means {
		t.Rows = append(t.Rows, []any{runID, m.Group, m.Mean, m.N})
	}
	return t
}

func aspectTable(name, runID string, aspects []models.AspectScore) Table {
	t := Table{
		Name: name,
		Columns: cols("item_id", typeText, "item_text", typeText, "translation", typeText,
			"mean_score", typeReal, "respondents", typeInteger),
	}
	for _, a := range aspects {
		t.Rows = append(t.Rows, []any{runID, a.ItemID, a.Text, a.Translation, a.Mean, a.N})
	}
	return t
}

func regionalTable(name, runID string, rows []models.RegionalRecord) Table {
	t := Table{
		Name: name,
		Columns: cols("province", typeText, "active_loan_accounts", typeReal, "loan_amount_billion", typeReal,
			"lender_accounts", typeReal, "twp_90", typeReal, "borrowers", typeReal, "outstanding_billion", typeReal,
			"population_thousand", typeReal, "pdrb_thousand_rp", typeReal, "urbanization_rate", typeReal),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{runID, r.Province,
			nullable(r.ActiveLoanAccounts), nullable(r.LoanAmountBillion), nullable(r.LenderAccounts),
			nullable(r.TWP90), nullable(r.Borrowers), nullable(r.OutstandingBillion),
			nullable(r.PopulationThousand), nullable(r.PDRBThousandRp), nullable(r.UrbanizationRate)})
	}
	return t
}

func profileRegionalTable(runID string, rows []models.ProfileRegionalRow) Table {
	t := Table{
		Name:    "join_pdrb_income",
		Columns: cols("province", typeText, "pdrb_thousand_rp", typeReal, "avg_monthly_income", typeReal),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{runID, r.Province, r.PDRBThousandRp, r.AvgMonthlyIncome})
	}
	return t
}

func pdrbIncomeTable(runID string, rows []models.PDRBIncome) Table {
	t := Table{
		Name: "pdrb_income_by_province",
		Columns: cols("province", typeText, "pdrb_thousand_rp", typeReal, "mean_monthly_income", typeReal,
			"respondents", typeInteger),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{runID, r.Province, r.PDRBThousandRp, r.MeanIncome, r.N})
	}
	return t
}

func incomeExpensePointsTable(runID string, points []models.IncomeExpensePoint) Table {
	t := Table{
		Name:    "income_expense_points",
		Columns: cols("gender", typeText, "monthly_income", typeReal, "monthly_expense", typeReal),
	}
	for _, p := range points {
		t.Rows = append(t.Rows, []any{runID, p.Gender, p.Income, p.Expense})
	}
	return t
}

// trendTable lists the fitted trend lines. A trend that could not be fitted
// has no row.
func trendTable(runID string, r *models.Report) Table {
	t := Table{
		Name:    "trend_lines",
		Columns: cols("trend", typeText, "slope", typeReal, "intercept", typeReal, "points", typeInteger),
	}
	for _, tr := range []struct {
		name string
		fit  *models.LinearFit
	}{
		{"income_vs_expense", r.IncomeExpenseTrend},
		{"urbanization_vs_loan", r.UrbanizationLoanTrend},
	} {
		if tr.fit == nil {
			continue
		}
		t.Rows = append(t.Rows, []any{runID, tr.name, tr.fit.Slope, tr.fit.Intercept, tr.fit.N})
	}
	return t
}

func literacyRegionalTable(runID string, rows []models.LiteracyRegionalRow) Table {
	t := Table{
		Name: "join_literacy_credit_risk",
		Columns: cols("province", typeText, "literacy_score", typeReal, "twp_90", typeReal,
			"outstanding_billion", typeReal),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{runID, r.Province, r.LiteracyScore, r.TWP90, nullable(r.OutstandingBillion)})
	}
	return t
}

func sectionTable(runID string, sections map[string]models.SectionStatus) Table {
	t := Table{Name: "section_status", Columns: cols("section", typeText, "status", typeText)}
	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t.Rows = append(t.Rows, []any{runID, name, string(sections[name])})
	}
	return t
}
