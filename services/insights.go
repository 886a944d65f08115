package services

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"genz-dashboard/models"
	"genz-dashboard/utils"
)

// DefaultReferenceYear is the year respondent ages are computed against.
const DefaultReferenceYear = 2025

// InsightService derives every dashboard table from a cleaned Dataset.
type InsightService struct {
	logger        *utils.Logger
	referenceYear int
	minMatched    int
}

// NewInsightService creates an InsightService. Non-positive arguments fall
// back to DefaultReferenceYear and MinMatchedItems.
func NewInsightService(logger *utils.Logger, referenceYear, minMatched int) *InsightService {
	if referenceYear <= 0 {
		referenceYear = DefaultReferenceYear
	}
	if minMatched <= 0 {
		minMatched = MinMatchedItems
	}
	return &InsightService{logger: logger, referenceYear: referenceYear, minMatched: minMatched}
}

// FilterOptions are the selector values offered for the profile filter.
type FilterOptions struct {
	Provinces []string
	Genders   []string
}

// Options lists the distinct non-empty provinces and genders in first-seen
// order, each preceded by models.AllFilter.
func Options(profile []models.ProfileRecord) FilterOptions {
	opts := FilterOptions{
		Provinces: []string{models.AllFilter},
		Genders:   []string{models.AllFilter},
	}
	seenProv := map[string]bool{}
	seenGender := map[string]bool{}
	for _, p := range profile {
		if p.Province != "" && !seenProv[p.Province] {
			seenProv[p.Province] = true
			opts.Provinces = append(opts.Provinces, p.Province)
		}
		if p.Gender != "" && !seenGender[p.Gender] {
			seenGender[p.Gender] = true
			opts.Genders = append(opts.Genders, p.Gender)
		}
	}
	return opts
}

// Filter returns the profile records matching f as a new slice. An empty or
// models.AllFilter selector matches everything.
func Filter(profile []models.ProfileRecord, f models.Filter) []models.ProfileRecord {
	out := make([]models.ProfileRecord, 0, len(profile))
	for _, p := range profile {
		if !selected(f.Province, p.Province) || !selected(f.Gender, p.Gender) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func selected(want, got string) bool {
	return want == "" || want == models.AllFilter || want == got
}

// Stats computes the headline statistic cards.
func (s *InsightService) Stats(profile []models.ProfileRecord) models.QuickStats {
	ages := make([]sql.NullFloat64, 0, len(profile))
	incomes := make([]sql.NullFloat64, 0, len(profile))
	expenses := make([]sql.NullFloat64, 0, len(profile))
	for _, p := range profile {
		if p.BirthYear.Valid {
			ages = append(ages, models.Num(float64(s.referenceYear)-float64(p.BirthYear.Int64)))
		}
		incomes = append(incomes, p.AvgMonthlyIncome)
		expenses = append(expenses, p.AvgMonthlyExpense)
	}
	return models.QuickStats{
		Respondents: len(profile),
		MeanAge:     Mean(ages),
		MeanIncome:  Mean(incomes),
		MeanExpense: Mean(expenses),
	}
}

// IncomeExpenseByProvince averages income and expense per province. A
// province appears when it has at least one present value; provinces are
// ordered by mean income, highest first, those without income last.
func IncomeExpenseByProvince(profile []models.ProfileRecord) []models.IncomeExpense {
	income := MeanBy(profile, ByProvince, Income)
	expense := MeanBy(profile, ByProvince, Expense)

	incomeOf := make(map[string]float64, len(income))
	for _, g := range income {
		incomeOf[g.Group] = g.Mean
	}
	expenseOf := make(map[string]float64, len(expense))
	for _, g := range expense {
		expenseOf[g.Group] = g.Mean
	}

	var out []models.IncomeExpense
	seen := map[string]bool{}
	for _, p := range profile {
		if p.Province == "" || seen[p.Province] {
			continue
		}
		inc, hasInc := incomeOf[p.Province]
		exp, hasExp := expenseOf[p.Province]
		if !hasInc && !hasExp {
			continue
		}
		seen[p.Province] = true
		row := models.IncomeExpense{Province: p.Province}
		if hasInc {
			row.Income = models.Num(inc)
		}
		if hasExp {
			row.Expense = models.Num(exp)
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Income, out[j].Income
		if a.Valid != b.Valid {
			return a.Valid
		}
		return a.Float64 > b.Float64
	})
	return out
}

// AspectScores averages every matched item over the respondents, highest
// first. Items nobody answered are left out.
func AspectScores(literacy []models.LiteracyRecord, m models.ItemMatch) []models.AspectScore {
	var aspects []models.AspectScore
	for _, id := range m.MatchedIDs() {
		values := make([]sql.NullFloat64, 0, len(literacy))
		n := 0
		for _, r := range literacy {
			v := r.Scores[id]
			if v.Valid {
				n++
			}
			values = append(values, v)
		}
		mean := Mean(values)
		if !mean.Valid {
			continue
		}
		item, _ := itemByID(id)
		aspects = append(aspects, models.AspectScore{
			ItemID:      id,
			Text:        item.Text,
			Translation: item.Label(),
			Mean:        mean.Float64,
			N:           n,
		})
	}
	sort.SliceStable(aspects, func(i, j int) bool {
		return aspects[i].Mean > aspects[j].Mean
	})
	return aspects
}

// Section summarizes one survey section. score selects the per-respondent
// section score averaged into SectionInsight.Average.
func (s *InsightService) Section(literacy []models.LiteracyRecord, m models.ItemMatch,
	score func(models.LiteracyRecord) sql.NullFloat64) models.SectionInsight {
	insight := models.SectionInsight{
		Status:  m.Status(s.minMatched),
		Matched: m.Matched(),
	}
	if insight.Status == models.SectionInsufficient {
		s.logger.Warn("[insights] %s section: only %d of %d items matched (need %d)",
			m.Section, m.Matched(), len(m.Items), s.minMatched)
		return insight
	}

	scores := make([]sql.NullFloat64, 0, len(literacy))
	for _, r := range literacy {
		scores = append(scores, score(r))
	}
	insight.Average = Mean(scores)
	insight.Aspects = AspectScores(literacy, m)

	if len(insight.Aspects) > 0 {
		top := insight.Aspects[0]
		low := insight.Aspects[len(insight.Aspects)-1]
		insight.Top, insight.Lowest = &top, &low
		insight.TopNote = TopAspectNote(top.Mean)
		insight.LowNote = LowAspectNote(low.Mean)
	}
	return insight
}

// TopAspectNote interprets the mean of the strongest aspect.
func TopAspectNote(mean float64) string {
	switch {
	case mean >= 3.5:
		return "menunjukkan bahwa responden memiliki pemahaman yang sangat baik dalam aspek ini."
	case mean >= 2.8:
		return "menggambarkan bahwa responden cukup memahami aspek ini, meski masih bisa ditingkatkan."
	default:
		return "menunjukkan bahwa pemahaman responden dalam aspek ini masih perlu diperkuat."
	}
}

// LowAspectNote interprets the mean of the weakest aspect.
func LowAspectNote(mean float64) string {
	switch {
	case mean <= 2:
		return "menandakan bahwa aspek ini merupakan kelemahan utama yang memerlukan peningkatan signifikan."
	case mean <= 2.8:
		return "menunjukkan bahwa pemahaman responden di aspek ini masih terbatas."
	default:
		return "menandakan tingkat pemahaman yang sedang pada aspek ini."
	}
}

// Generate builds the full report. The filter narrows the profile views only;
// the survey sections and the regional joins always use the whole tables.
func (s *InsightService) Generate(ds models.Dataset, f models.Filter) *models.Report {
	filtered := Filter(ds.Profile, f)
	s.logger.Info("[insights] Filter province=%q gender=%q: %d of %d respondents",
		orAll(f.Province), orAll(f.Gender), len(filtered), len(ds.Profile))

	r := &models.Report{
		GeneratedAt: time.Now(),
		Filter:      f,
		Stats:       s.Stats(filtered),
		Sections:    make(map[string]models.SectionStatus),

		ByProvince:   CountBy(filtered, ByProvince),
		ByGender:     CountBy(filtered, ByGender),
		ByEmployment: CountBy(filtered, ByEmploymentStatus),
		ByFintech:    CountBy(filtered, ByFintechApp),

		IncomeExpenseByProvince: IncomeExpenseByProvince(filtered),
		ExpenseByGender:         MeanBy(filtered, ByGender, Expense),
		IncomeValues:            Values(filtered, Income),
		ExpenseValues:           Values(filtered, Expense),
		IncomeExpensePoints:     IncomeExpensePoints(filtered),

		Literacy: s.Section(ds.Literacy, ds.LiteracyMatch, func(l models.LiteracyRecord) sql.NullFloat64 {
			return l.AvgLiteracyScore
		}),
		Behavior: s.Section(ds.Literacy, ds.BehaviorMatch, func(l models.LiteracyRecord) sql.NullFloat64 {
			return l.AvgBehaviorScore
		}),

		PDRBOutstanding:  RegionalWithAll(ds.Regional, HasPDRB, HasOutstanding, HasBorrowers, HasUrbanization),
		UrbanizationLoan: RegionalWithAll(ds.Regional, HasUrbanization, HasLoanAmount),
		ProfileRegional:  JoinProfileRegional(ds.Regional, ds.Profile),
		LiteracyRegional: JoinLiteracyRegional(ds.Regional, ds.Literacy),
	}
	if len(r.ByProvince) > 0 {
		r.TopProvince = r.ByProvince[0].Group
	}
	r.PDRBIncome = PDRBIncomeByProvince(r.ProfileRegional)
	r.IncomeExpenseTrend = incomeExpenseTrend(r.IncomeExpensePoints)
	r.UrbanizationLoanTrend = urbanizationLoanTrend(r.UrbanizationLoan)

	r.Sections[models.SectionGender] = status(ds.HasProfileColumn(ColGender) && len(r.ByGender) > 0)
	r.Sections[models.SectionEmployment] = status(ds.HasProfileColumn(ColEmploymentStatus) && len(r.ByEmployment) > 0)
	r.Sections[models.SectionFintech] = status(ds.HasProfileColumn(ColMainFintechApp) && len(r.ByFintech) > 0)
	r.Sections[models.SectionLiteracy] = r.Literacy.Status
	r.Sections[models.SectionBehavior] = r.Behavior.Status
	r.Sections[models.SectionIncomeExpense] = status(len(r.IncomeExpensePoints) > 0)
	r.Sections[models.SectionPDRBOutstanding] = status(len(r.PDRBOutstanding) > 0)
	r.Sections[models.SectionUrbanizationLoan] = status(len(r.UrbanizationLoan) > 0)
	r.Sections[models.SectionPDRBIncome] = status(len(r.ProfileRegional) > 0)
	r.Sections[models.SectionLiteracyRisk] = status(len(r.LiteracyRegional) > 0)

	for _, name := range sortedSections(r.Sections) {
		if r.Sections[name] == models.SectionInsufficient {
			s.logger.Warn("[insights] Section %q has insufficient data", name)
		}
	}
	return r
}

func incomeExpenseTrend(points []models.IncomeExpensePoint) *models.LinearFit {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.Income, p.Expense
	}
	if fit, ok := FitLine(xs, ys); ok {
		return &fit
	}
	return nil
}

func urbanizationLoanTrend(rows []models.RegionalRecord) *models.LinearFit {
	xs := make([]float64, len(rows))
	ys := make([]float64, len(rows))
	for i, r := range rows {
		xs[i], ys[i] = r.UrbanizationRate.Float64, r.LoanAmountBillion.Float64
	}
	if fit, ok := FitLine(xs, ys); ok {
		return &fit
	}
	return nil
}

func status(ok bool) models.SectionStatus {
	if ok {
		return models.SectionSufficient
	}
	return models.SectionInsufficient
}

func sortedSections(m map[string]models.SectionStatus) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func orAll(s string) string {
	if s == "" {
		return models.AllFilter
	}
	return s
}

// Print writes the report to stdout as a terminal dashboard.
func (s *InsightService) Print(r *models.Report) {
	sep := strings.Repeat("═", 64)
	thin := strings.Repeat("─", 64)
	heading := func(title string) {
		fmt.Printf("\033[1;33m  %s\033[0m\n", title)
		fmt.Printf("  %s\n", thin)
	}
	notEnough := func() {
		fmt.Printf("  \033[33mData tidak cukup untuk bagian ini.\033[0m\n\n")
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  DASHBOARD ANALISIS FINANSIAL GENERASI Z DI INDONESIA\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	heading(fmt.Sprintf("Ringkasan (provinsi: %s | jenis kelamin: %s)", orAll(r.Filter.Province), orAll(r.Filter.Gender)))
	fmt.Printf("  Jumlah responden      : \033[1m%d\033[0m\n", r.Stats.Respondents)
	fmt.Printf("  Rata-rata usia        : \033[1m%s\033[0m\n", formatValue(r.Stats.MeanAge, "%.1f"))
	fmt.Printf("  Pendapatan rata-rata  : \033[1;32m%s\033[0m\n", formatRupiah(r.Stats.MeanIncome))
	fmt.Printf("  Pengeluaran rata-rata : \033[1;32m%s\033[0m\n", formatRupiah(r.Stats.MeanExpense))
	fmt.Println()

	heading("Distribusi Responden per Provinsi")
	if len(r.ByProvince) == 0 {
		notEnough()
	} else {
		printCounts(r.ByProvince)
		fmt.Printf("  Provinsi dengan responden terbanyak: \033[1m%s\033[0m\n\n", r.TopProvince)
	}

	heading("Komposisi Jenis Kelamin")
	if !r.Sufficient(models.SectionGender) {
		notEnough()
	} else {
		printCounts(r.ByGender)
		fmt.Println()
	}

	heading("Distribusi Status Pekerjaan")
	if !r.Sufficient(models.SectionEmployment) {
		notEnough()
	} else {
		printCounts(r.ByEmployment)
		fmt.Println()
	}

	heading("Pendapatan dan Pengeluaran Rata-rata per Provinsi")
	if len(r.IncomeExpenseByProvince) == 0 {
		notEnough()
	} else {
		for _, row := range r.IncomeExpenseByProvince {
			fmt.Printf("  %-28s %20s %20s\n", truncate(row.Province, 26),
				formatRupiah(row.Income), formatRupiah(row.Expense))
		}
		fmt.Println()
	}

	heading("Rata-rata Pengeluaran per Gender")
	if len(r.ExpenseByGender) == 0 {
		notEnough()
	} else {
		for _, g := range r.ExpenseByGender {
			fmt.Printf("  %-28s %20s\n", truncate(g.Group, 26), formatRupiah(models.Num(g.Mean)))
		}
		fmt.Println()
	}

	heading("Hubungan Pendapatan vs Pengeluaran")
	if !r.Sufficient(models.SectionIncomeExpense) {
		notEnough()
	} else {
		fmt.Printf("  %d responden dengan pendapatan dan pengeluaran\n", len(r.IncomeExpensePoints))
		printTrend(r.IncomeExpenseTrend, "pengeluaran per rupiah pendapatan")
		fmt.Println()
	}

	heading("Penggunaan E-Wallet Utama")
	if !r.Sufficient(models.SectionFintech) {
		notEnough()
	} else {
		printCounts(r.ByFintech)
		fmt.Println()
	}

	printSection("Analisis Literasi Keuangan", r.Literacy, heading, notEnough)
	printSection("Analisis Perilaku & Pengambilan Keputusan Keuangan", r.Behavior, heading, notEnough)

	heading("Indikator Regional: PDRB vs Outstanding Pinjaman")
	if !r.Sufficient(models.SectionPDRBOutstanding) {
		notEnough()
	} else {
		fmt.Printf("  %-28s %16s %16s %12s %10s\n", "Provinsi", "PDRB (ribu Rp)", "Outstanding (M)", "Peminjam", "Urban %")
		for _, row := range r.PDRBOutstanding {
			fmt.Printf("  %-28s %16.0f %16.2f %12.0f %10.1f\n", truncate(row.Province, 26),
				row.PDRBThousandRp.Float64, row.OutstandingBillion.Float64,
				row.Borrowers.Float64, row.UrbanizationRate.Float64)
		}
		fmt.Println()
	}

	heading("Indikator Regional: Urbanisasi vs Dana yang Diberikan")
	if !r.Sufficient(models.SectionUrbanizationLoan) {
		notEnough()
	} else {
		for _, row := range r.UrbanizationLoan {
			fmt.Printf("  %-28s urbanisasi %6.1f%%  dana Rp %.2f miliar\n", truncate(row.Province, 26),
				row.UrbanizationRate.Float64, row.LoanAmountBillion.Float64)
		}
		printTrend(r.UrbanizationLoanTrend, "miliar Rp per poin urbanisasi")
		fmt.Println()
	}

	heading("Integrasi: PDRB vs Pendapatan Rata-rata Gen Z")
	if !r.Sufficient(models.SectionPDRBIncome) {
		notEnough()
	} else {
		for _, row := range r.PDRBIncome {
			fmt.Printf("  %-28s PDRB %14.0f ribu Rp  pendapatan %20s (%d)\n", truncate(row.Province, 26),
				row.PDRBThousandRp, formatRupiah(models.Num(row.MeanIncome)), row.N)
		}
		fmt.Println()
	}

	heading("Integrasi: Literasi vs Risiko Kredit (TWP 90%)")
	if !r.Sufficient(models.SectionLiteracyRisk) {
		notEnough()
	} else {
		for _, row := range r.LiteracyRegional {
			fmt.Printf("  %-28s skor %.2f  TWP90 %.2f%%\n", truncate(row.Province, 26), row.LiteracyScore, row.TWP90)
		}
		fmt.Println()
	}

	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)
}

func printSection(title string, in models.SectionInsight, heading func(string), notEnough func()) {
	heading(title)
	if in.Status != models.SectionSufficient || in.Top == nil {
		fmt.Printf("  \033[33mKolom tidak lengkap ditemukan dalam dataset (%d item cocok).\033[0m\n\n", in.Matched)
		return
	}
	fmt.Printf("  Rata-rata skor: \033[1m%s\033[0m dari 4\n", formatValue(in.Average, "%.2f"))
	for _, a := range in.Aspects {
		fmt.Printf("  %-56s %.2f\n", truncate(a.Translation, 54), a.Mean)
	}
	fmt.Printf("  Aspek tertinggi: %s (\033[1m%.2f\033[0m), %s\n", in.Top.Translation, in.Top.Mean, in.TopNote)
	fmt.Printf("  Aspek terendah : %s (\033[1m%.2f\033[0m), %s\n\n", in.Lowest.Translation, in.Lowest.Mean, in.LowNote)
}

func printTrend(fit *models.LinearFit, unit string) {
	if fit == nil {
		return
	}
	fmt.Printf("  Tren linear: kemiringan %.4f %s (n=%d)\n", fit.Slope, unit, fit.N)
}

func printCounts(counts []models.GroupCount) {
	most := counts[0].Count
	for _, c := range counts {
		width := c.Count
		if most > 40 {
			width = c.Count * 40 / most
		}
		fmt.Printf("  %-28s %s (%d)\n", truncate(c.Group, 26), strings.Repeat("█", width), c.Count)
	}
}

func formatValue(v sql.NullFloat64, format string) string {
	if !v.Valid {
		return "-"
	}
	return fmt.Sprintf(format, v.Float64)
}

// formatRupiah renders 1500000 as "Rp 1.500.000".
func formatRupiah(v sql.NullFloat64) string {
	if !v.Valid {
		return "-"
	}
	digits := fmt.Sprintf("%.0f", v.Float64)
	neg := strings.HasPrefix(digits, "-")
	digits = strings.TrimPrefix(digits, "-")

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	if neg {
		return "Rp -" + b.String()
	}
	return "Rp " + b.String()
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}
