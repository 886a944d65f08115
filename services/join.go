package services

import (
	"sort"

	"genz-dashboard/models"
)

// JoinProfileRegional left-joins the regional table onto the profile table by
// exact province name and keeps the rows carrying both a PDRB value and an
// income. Rows are ordered by PDRB, highest first.
func JoinProfileRegional(regional []models.RegionalRecord, profile []models.ProfileRecord) []models.ProfileRegionalRow {
	byProvince := make(map[string][]int)
	for i, p := range profile {
		byProvince[p.Province] = append(byProvince[p.Province], i)
	}

	var rows []models.ProfileRegionalRow
	for _, r := range regional {
		if !r.PDRBThousandRp.Valid {
			continue
		}
		for _, i := range byProvince[r.Province] {
			income := profile[i].AvgMonthlyIncome
			if !income.Valid {
				continue
			}
			rows = append(rows, models.ProfileRegionalRow{
				Province:         r.Province,
				PDRBThousandRp:   r.PDRBThousandRp.Float64,
				AvgMonthlyIncome: income.Float64,
			})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].PDRBThousandRp > rows[j].PDRBThousandRp
	})
	return rows
}

// JoinLiteracyRegional left-joins the regional table onto the literacy table
// by exact province name and keeps the rows carrying both a literacy score and
// a TWP 90 value. Rows are ordered by literacy score, lowest first.
func JoinLiteracyRegional(regional []models.RegionalRecord, literacy []models.LiteracyRecord) []models.LiteracyRegionalRow {
	byProvince := make(map[string][]int)
	for i, l := range literacy {
		byProvince[l.Province] = append(byProvince[l.Province], i)
	}

	var rows []models.LiteracyRegionalRow
	for _, r := range regional {
		if !r.TWP90.Valid {
			continue
		}
		for _, i := range byProvince[r.Province] {
			score := literacy[i].LiteracyScore
			if !score.Valid {
				continue
			}
			rows = append(rows, models.LiteracyRegionalRow{
				Province:           r.Province,
				LiteracyScore:      score.Float64,
				TWP90:              r.TWP90.Float64,
				OutstandingBillion: r.OutstandingBillion,
			})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].LiteracyScore < rows[j].LiteracyScore
	})
	return rows
}

// RegionalWithAll returns the regional rows where every selected indicator is
// present, in table order.
func RegionalWithAll(regional []models.RegionalRecord, fields ...func(models.RegionalRecord) bool) []models.RegionalRecord {
	var out []models.RegionalRecord
	for _, r := range regional {
		keep := true
		for _, has := range fields {
			if !has(r) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, r)
		}
	}
	return out
}

// Presence checks for RegionalWithAll.
func HasPDRB(r models.RegionalRecord) bool         { return r.PDRBThousandRp.Valid }
func HasOutstanding(r models.RegionalRecord) bool  { return r.OutstandingBillion.Valid }
func HasBorrowers(r models.RegionalRecord) bool    { return r.Borrowers.Valid }
func HasUrbanization(r models.RegionalRecord) bool { return r.UrbanizationRate.Valid }
func HasLoanAmount(r models.RegionalRecord) bool   { return r.LoanAmountBillion.Valid }

// PDRBIncomeByProvince collapses joined rows to one row per province with the
// mean income of its respondents, keeping the PDRB order of rows.
func PDRBIncomeByProvince(rows []models.ProfileRegionalRow) []models.PDRBIncome {
	pos := make(map[string]int)
	var (
		out  []models.PDRBIncome
		sums []float64
	)
	for _, r := range rows {
		i, ok := pos[r.Province]
		if !ok {
			i = len(out)
			pos[r.Province] = i
			out = append(out, models.PDRBIncome{Province: r.Province, PDRBThousandRp: r.PDRBThousandRp})
			sums = append(sums, 0)
		}
		sums[i] += r.AvgMonthlyIncome
		out[i].N++
	}
	for i := range out {
		out[i].MeanIncome = sums[i] / float64(out[i].N)
	}
	return out
}

// IncomeExpensePoints lists the respondents carrying both an income and an
// expense, in table order.
func IncomeExpensePoints(profile []models.ProfileRecord) []models.IncomeExpensePoint {
	var out []models.IncomeExpensePoint
	for _, p := range profile {
		if !p.AvgMonthlyIncome.Valid || !p.AvgMonthlyExpense.Valid {
			continue
		}
		out = append(out, models.IncomeExpensePoint{
			Gender:  p.Gender,
			Income:  p.AvgMonthlyIncome.Float64,
			Expense: p.AvgMonthlyExpense.Float64,
		})
	}
	return out
}
