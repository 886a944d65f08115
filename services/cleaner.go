package services

import (
	"database/sql"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"genz-dashboard/models"
	"genz-dashboard/utils"
)

// Canonical profile columns.
const (
	ColProvince          = "province"
	ColGender            = "gender"
	ColBirthYear         = "birth_year"
	ColEmploymentStatus  = "employment_status"
	ColAvgMonthlyIncome  = "avg_monthly_income"
	ColAvgMonthlyExpense = "avg_monthly_expense"
	ColMainFintechApp    = "main_fintech_app"
)

var profileColumns = []string{
	ColProvince, ColGender, ColBirthYear, ColEmploymentStatus,
	ColAvgMonthlyIncome, ColAvgMonthlyExpense, ColMainFintechApp,
}

// Likert bounds of every survey item.
const (
	minItemScore = 1
	maxItemScore = 4
)

// Cleaner turns the raw source tables into canonical tables.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean runs every dataset through its cleaning steps. Missing optional
// columns only leave the dependent fields empty; cleaning never fails.
func (c *Cleaner) Clean(src Sources) models.Dataset {
	profile, present := c.CleanProfile(src.Profile)
	literacy, litMatch, behMatch := c.CleanLiteracy(src.Literacy)
	regional := c.CleanRegional(src.Regional)

	return models.Dataset{
		Profile:        profile,
		Literacy:       literacy,
		Regional:       regional,
		ProfileColumns: present,
		LiteracyMatch:  litMatch,
		BehaviorMatch:  behMatch,
	}
}

// CleanProfile normalizes the profile headers and parses the currency and
// birth year columns. It also reports which canonical columns were present.
func (c *Cleaner) CleanProfile(raw models.RawTable) ([]models.ProfileRecord, map[string]bool) {
	t := NormalizeColumns(raw)

	idx := make(map[string]int, len(profileColumns))
	present := make(map[string]bool, len(profileColumns))
	for _, col := range profileColumns {
		i := findColumn(t.Headers, col)
		idx[col] = i
		if i >= 0 {
			present[col] = true
		} else {
			c.logger.Warn("[cleaner] Profile column %q not found; dependent sections disabled", col)
		}
	}

	result := make([]models.ProfileRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		result = append(result, models.ProfileRecord{
			Province:          text(models.Cell(row, idx[ColProvince])),
			Gender:            text(models.Cell(row, idx[ColGender])),
			BirthYear:         parseYear(models.Cell(row, idx[ColBirthYear])),
			EmploymentStatus:  text(models.Cell(row, idx[ColEmploymentStatus])),
			AvgMonthlyIncome:  NormalizeCurrency(models.Cell(row, idx[ColAvgMonthlyIncome])),
			AvgMonthlyExpense: NormalizeCurrency(models.Cell(row, idx[ColAvgMonthlyExpense])),
			MainFintechApp:    text(models.Cell(row, idx[ColMainFintechApp])),
		})
	}

	c.logger.Info("[cleaner] Profile: %d respondents", len(result))
	return result, present
}

// CleanRegional renames the Indonesian indicator headers, parses every
// numeric column and drops rows without a province or a loan amount.
func (c *Cleaner) CleanRegional(raw models.RawTable) []models.RegionalRecord {
	t := RenameColumns(LowerColumns(raw), regionalRenames)

	col := func(name string) int {
		i := t.Index(name)
		if i < 0 {
			c.logger.Warn("[cleaner] Regional column %q not found", name)
		}
		return i
	}
	var (
		province    = col("province")
		activeLoans = col("active_loan_accounts")
		loanAmount  = col("loan_amount_billion")
		lenders     = col("lender_accounts")
		twp90       = col("twp_90")
		borrowers   = col("borrowers")
		outstanding = col("outstanding_billion")
		population  = col("population_thousand")
		pdrb        = col("pdrb_thousand_rp")
		urbanRate   = col("urbanization_rate")
	)

	result := make([]models.RegionalRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		r := models.RegionalRecord{
			Province:           text(models.Cell(row, province)),
			ActiveLoanAccounts: CleanNumeric(models.Cell(row, activeLoans)),
			LoanAmountBillion:  CleanNumeric(models.Cell(row, loanAmount)),
			LenderAccounts:     CleanNumeric(models.Cell(row, lenders)),
			TWP90:              CleanNumeric(models.Cell(row, twp90)),
			Borrowers:          CleanNumeric(models.Cell(row, borrowers)),
			OutstandingBillion: CleanNumeric(models.Cell(row, outstanding)),
			PopulationThousand: CleanNumeric(models.Cell(row, population)),
			PDRBThousandRp:     CleanNumeric(models.Cell(row, pdrb)),
			UrbanizationRate:   CleanNumeric(models.Cell(row, urbanRate)),
		}
		if r.Province == "" || !r.LoanAmountBillion.Valid {
			c.logger.Debug("[cleaner] Dropping regional row without province or loan amount: %q", r.Province)
			continue
		}
		result = append(result, r)
	}

	c.logger.Info("[cleaner] Regional: cleaned %d → %d provinces (dropped %d)",
		len(t.Rows), len(result), len(t.Rows)-len(result))
	return result
}

// CleanLiteracy matches survey item columns, coerces the answers to scores
// and computes the per-respondent mean scores.
func (c *Cleaner) CleanLiteracy(raw models.RawTable) ([]models.LiteracyRecord, models.ItemMatch, models.ItemMatch) {
	t := RenameColumns(NormalizeColumns(raw), literacyRenames)

	litMatch := MatchItemColumns(t.Headers, models.SectionLiteracy, ItemsIn(CategoryLiteracy))
	behMatch := MatchItemColumns(t.Headers, models.SectionBehavior, ItemsIn(CategoryBehavior, CategoryDecision))
	c.logger.Info("[cleaner] Literacy items matched: %d/%d, behavior items matched: %d/%d",
		litMatch.Matched(), len(litMatch.Items), behMatch.Matched(), len(behMatch.Items))

	province := t.Index("province")
	if province < 0 {
		c.logger.Warn("[cleaner] Literacy column %q not found; regional join disabled", "Province of Origin")
	}

	litCols := columnIndexes(t, litMatch)
	behCols := columnIndexes(t, behMatch)
	allCols := mergeColumns(litCols, behCols)

	result := make([]models.LiteracyRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		scores := make(map[string]sql.NullFloat64, len(litCols)+len(behCols))
		for _, ic := range allCols {
			scores[ic.id] = parseScore(models.Cell(row, ic.idx))
		}
		result = append(result, models.LiteracyRecord{
			Province:         text(models.Cell(row, province)),
			Scores:           scores,
			AvgLiteracyScore: rowMean(row, litCols),
			AvgBehaviorScore: rowMean(row, behCols),
			LiteracyScore:    rowMean(row, allCols),
		})
	}

	c.logger.Info("[cleaner] Literacy: %d respondents", len(result))
	return result, litMatch, behMatch
}

type itemColumn struct {
	id  string
	idx int
}

// columnIndexes resolves the matched items to column positions in catalog
// order. Items sharing a column are kept so each gets its own score.
func columnIndexes(t models.RawTable, m models.ItemMatch) []itemColumn {
	cols := make([]itemColumn, 0, m.Matched())
	for _, id := range m.MatchedIDs() {
		cols = append(cols, itemColumn{id: id, idx: t.Index(m.Columns[id])})
	}
	return cols
}

func mergeColumns(groups ...[]itemColumn) []itemColumn {
	var all []itemColumn
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}

// rowMean averages the distinct columns of cols, ignoring missing answers.
func rowMean(row []string, cols []itemColumn) sql.NullFloat64 {
	seen := make(map[int]bool, len(cols))
	values := make([]sql.NullFloat64, 0, len(cols))
	for _, ic := range cols {
		if seen[ic.idx] {
			continue
		}
		seen[ic.idx] = true
		values = append(values, parseScore(models.Cell(row, ic.idx)))
	}
	return Mean(values)
}

// parseScore coerces one answer to a Likert score. Non-numeric, NaN or out
// of range answers are missing.
func parseScore(raw string) sql.NullFloat64 {
	v := strings.TrimSpace(raw)
	if v == "" {
		return models.Missing()
	}
	f, err := cast.ToFloat64E(strings.ReplaceAll(v, ",", "."))
	// NaN compares false both ways.
	if err != nil || !(f >= minItemScore && f <= maxItemScore) {
		return models.Missing()
	}
	return models.Num(f)
}

// parseYear reads a birth year such as "2003" or "2003.0".
func parseYear(raw string) sql.NullInt64 {
	v := strings.TrimSpace(raw)
	if v == "" {
		return sql.NullInt64{}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != float64(int64(f)) {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(f), Valid: true}
}

// text returns raw unchanged unless it is blank, in which case it is "".
// Values are not trimmed: province names join by exact match.
func text(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return raw
}
