package models

import (
	"database/sql"
	"time"
)

// SectionStatus gates whether a dependent dashboard section can be rendered.
type SectionStatus string

const (
	SectionSufficient   SectionStatus = "sufficient"
	SectionInsufficient SectionStatus = "insufficient"
)

// Section names used as keys of Report.Sections.
const (
	SectionGender           = "gender"
	SectionEmployment       = "employment"
	SectionFintech          = "fintech"
	SectionLiteracy         = "literacy"
	SectionBehavior         = "behavior"
	SectionPDRBOutstanding  = "pdrb_outstanding"
	SectionUrbanizationLoan = "urbanization_loan"
	SectionIncomeExpense    = "income_expense"
	SectionPDRBIncome       = "pdrb_income"
	SectionLiteracyRisk     = "literacy_credit_risk"
)

// AllFilter is the selector value meaning "no restriction".
const AllFilter = "Semua"

// Filter narrows the profile table the way the dashboard sidebar does.
type Filter struct {
	Province string
	Gender   string
}

// GroupCount is the number of records sharing one group value.
type GroupCount struct {
	Group string
	Count int
}

// GroupMean is a mean over the non-missing values of one group.
type GroupMean struct {
	Group string
	Mean  float64
	N     int
}

// IncomeExpense holds the mean income and expense of one province. Either
// side is missing when the province has no values for it.
type IncomeExpense struct {
	Province string
	Income   sql.NullFloat64
	Expense  sql.NullFloat64
}

// QuickStats are the headline statistic cards.
type QuickStats struct {
	Respondents int
	MeanAge     sql.NullFloat64
	MeanIncome  sql.NullFloat64
	MeanExpense sql.NullFloat64
}

// IncomeExpensePoint is one respondent carrying both an income and an
// expense.
type IncomeExpensePoint struct {
	Gender  string
	Income  float64
	Expense float64
}

// LinearFit is an ordinary least squares line y = Slope*x + Intercept.
type LinearFit struct {
	Slope     float64
	Intercept float64
	N         int
}

// At evaluates the line at x.
func (f LinearFit) At(x float64) float64 {
	return f.Slope*x + f.Intercept
}

// AspectScore is the mean answer to one survey item across respondents.
type AspectScore struct {
	ItemID      string
	Text        string
	Translation string
	Mean        float64
	N           int
}

// SectionInsight summarizes one survey section (literacy or behavior).
type SectionInsight struct {
	Status  SectionStatus
	Matched int
	Average sql.NullFloat64
	Aspects []AspectScore
	Top     *AspectScore
	Lowest  *AspectScore
	TopNote string
	LowNote string
}

// ProfileRegionalRow is one respondent joined to their province's PDRB.
type ProfileRegionalRow struct {
	Province         string
	PDRBThousandRp   float64
	AvgMonthlyIncome float64
}

// PDRBIncome compares a province's PDRB with the mean income of its joined
// respondents.
type PDRBIncome struct {
	Province       string
	PDRBThousandRp float64
	MeanIncome     float64
	N              int
}

// LiteracyRegionalRow is one respondent's literacy score joined to their
// province's credit-risk indicator.
type LiteracyRegionalRow struct {
	Province           string
	LiteracyScore      float64
	TWP90              float64
	OutstandingBillion sql.NullFloat64
}

// Report holds every derived table consumed by the presentation layer.
type Report struct {
	GeneratedAt time.Time
	Filter      Filter
	Stats       QuickStats

	Sections map[string]SectionStatus

	ByProvince   []GroupCount
	ByGender     []GroupCount
	ByEmployment []GroupCount
	ByFintech    []GroupCount
	TopProvince  string

	IncomeExpenseByProvince []IncomeExpense
	ExpenseByGender         []GroupMean

	// Present values of the filtered profile, in table order.
	IncomeValues  []float64
	ExpenseValues []float64

	IncomeExpensePoints []IncomeExpensePoint
	IncomeExpenseTrend  *LinearFit

	Literacy SectionInsight
	Behavior SectionInsight

	PDRBOutstanding  []RegionalRecord
	UrbanizationLoan []RegionalRecord
	// UrbanizationLoanTrend fits loan amount against urbanization rate.
	UrbanizationLoanTrend *LinearFit
	ProfileRegional       []ProfileRegionalRow
	PDRBIncome            []PDRBIncome
	LiteracyRegional      []LiteracyRegionalRow
}

// Sufficient reports whether the named section has enough data to render.
func (r *Report) Sufficient(section string) bool {
	return r.Sections[section] == SectionSufficient
}
