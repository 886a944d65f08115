package services

import (
	"database/sql"
	"sort"

	"genz-dashboard/models"
)

// Mean is the arithmetic mean of the present values; missing when none are.
func Mean(values []sql.NullFloat64) sql.NullFloat64 {
	var (
		sum float64
		n   int
	)
	for _, v := range values {
		if !v.Valid {
			continue
		}
		sum += v.Float64
		n++
	}
	if n == 0 {
		return models.Missing()
	}
	return models.Num(sum / float64(n))
}

// CountBy counts profile records per non-empty key, largest first. Equal
// counts keep the order in which the keys first appeared.
func CountBy(profile []models.ProfileRecord, key func(models.ProfileRecord) string) []models.GroupCount {
	pos := make(map[string]int)
	var counts []models.GroupCount
	for _, p := range profile {
		k := key(p)
		if k == "" {
			continue
		}
		i, ok := pos[k]
		if !ok {
			i = len(counts)
			pos[k] = i
			counts = append(counts, models.GroupCount{Group: k})
		}
		counts[i].Count++
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// MeanBy averages value per non-empty key over present values only, largest
// mean first with ties in first-seen order. Keys without a single present
// value are left out.
func MeanBy(profile []models.ProfileRecord, key func(models.ProfileRecord) string,
	value func(models.ProfileRecord) sql.NullFloat64) []models.GroupMean {
	pos := make(map[string]int)
	var (
		means []models.GroupMean
		sums  []float64
	)
	for _, p := range profile {
		k, v := key(p), value(p)
		if k == "" || !v.Valid {
			continue
		}
		i, ok := pos[k]
		if !ok {
			i = len(means)
			pos[k] = i
			means = append(means, models.GroupMean{Group: k})
			sums = append(sums, 0)
		}
		sums[i] += v.Float64
		means[i].N++
	}
	for i := range means {
		means[i].Mean = sums[i] / float64(means[i].N)
	}
	sort.SliceStable(means, func(i, j int) bool {
		return means[i].Mean > means[j].Mean
	})
	return means
}

// Key selectors for the profile group-bys.
func ByProvince(p models.ProfileRecord) string         { return p.Province }
func ByGender(p models.ProfileRecord) string           { return p.Gender }
func ByEmploymentStatus(p models.ProfileRecord) string { return p.EmploymentStatus }
func ByFintechApp(p models.ProfileRecord) string       { return p.MainFintechApp }

// Value selectors for the profile means.
func Income(p models.ProfileRecord) sql.NullFloat64  { return p.AvgMonthlyIncome }
func Expense(p models.ProfileRecord) sql.NullFloat64 { return p.AvgMonthlyExpense }

// Values returns the present values selected from profile, in table order.
func Values(profile []models.ProfileRecord, value func(models.ProfileRecord) sql.NullFloat64) []float64 {
	var out []float64
	for _, p := range profile {
		if v := value(p); v.Valid {
			out = append(out, v.Float64)
		}
	}
	return out
}

// FitLine computes the least squares line through the points (xs[i], ys[i]).
// It reports false with fewer than two points or when every x is equal.
func FitLine(xs, ys []float64) (models.LinearFit, bool) {
	n := len(xs)
	if n != len(ys) || n < 2 {
		return models.LinearFit{}, false
	}
	var sx, sy, sxx, sxy float64
	for i := range xs {
		sx += xs[i]
		sy += ys[i]
		sxx += xs[i] * xs[i]
		sxy += xs[i] * ys[i]
	}
	fn := float64(n)
	denom := fn*sxx - sx*sx
	if denom == 0 {
		return models.LinearFit{}, false
	}
	slope := (fn*sxy - sx*sy) / denom
	return models.LinearFit{Slope: slope, Intercept: (sy - slope*sx) / fn, N: n}, true
}
