// Package charts renders the dashboard's derived tables as PNG charts.
package charts

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"genz-dashboard/models"
	"genz-dashboard/utils"
)

var (
	navy      = color.RGBA{R: 30, G: 60, B: 114, A: 255}
	lightBlue = color.RGBA{R: 93, G: 173, B: 226, A: 255}
	green     = color.RGBA{R: 39, G: 174, B: 96, A: 255}
	red       = color.RGBA{R: 231, G: 76, B: 60, A: 255}
	teal      = color.RGBA{R: 22, G: 160, B: 133, A: 255}

	// palette colors series that have no fixed color, such as genders.
	palette = []color.Color{
		navy,
		red,
		green,
		color.RGBA{R: 243, G: 156, B: 18, A: 255},
		color.RGBA{R: 142, G: 68, B: 173, A: 255},
	}
)

// Renderer writes one PNG per chart into a directory.
type Renderer struct {
	dir    string
	logger *utils.Logger
}

// NewRenderer creates the output directory if needed.
func NewRenderer(dir string, logger *utils.Logger) (*Renderer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("charts: create output dir: %w", err)
	}
	return &Renderer{dir: dir, logger: logger}, nil
}

type chart struct {
	file    string
	section string
	build   func(*models.Report) (*plot.Plot, vg.Length, vg.Length, error)
}

var charts = []chart{
	{"respondents_by_province.png", "", provinceChart},
	{"gender_composition.png", models.SectionGender, genderChart},
	{"employment_status.png", models.SectionEmployment, employmentChart},
	{"income_expense_histogram.png", "", incomeExpenseHistogram},
	{"income_expense_by_province.png", "", incomeExpenseChart},
	{"expense_by_gender.png", models.SectionGender, expenseByGenderChart},
	{"fintech_usage.png", models.SectionFintech, fintechChart},
	{"income_vs_expense.png", models.SectionIncomeExpense, incomeVsExpenseChart},
	{"literacy_aspects.png", models.SectionLiteracy, literacyChart},
	{"behavior_aspects.png", models.SectionBehavior, behaviorChart},
	{"pdrb_outstanding.png", models.SectionPDRBOutstanding, pdrbOutstandingChart},
	{"urbanization_loan.png", models.SectionUrbanizationLoan, urbanizationLoanChart},
	{"pdrb_income.png", models.SectionPDRBIncome, pdrbIncomeChart},
	{"literacy_credit_risk.png", models.SectionLiteracyRisk, literacyRiskChart},
}

// errNoData marks a chart with nothing to draw.
var errNoData = errors.New("no data")

// RenderAll draws every chart whose section has enough data and returns the
// written file paths. Charts without data are skipped, not failed.
func (rd *Renderer) RenderAll(r *models.Report) ([]string, error) {
	var written []string
	for _, c := range charts {
		if c.section != "" && !r.Sufficient(c.section) {
			rd.logger.Warn("[charts] Skipping %s: insufficient data", c.file)
			continue
		}
		p, w, h, err := c.build(r)
		if errors.Is(err, errNoData) {
			rd.logger.Warn("[charts] Skipping %s: no rows", c.file)
			continue
		}
		if err != nil {
			return written, fmt.Errorf("charts: build %s: %w", c.file, err)
		}
		path := filepath.Join(rd.dir, c.file)
		if err := p.Save(w, h, path); err != nil {
			return written, fmt.Errorf("charts: save %s: %w", c.file, err)
		}
		written = append(written, path)
	}
	rd.logger.Info("[charts] Rendered %d charts into %s", len(written), rd.dir)
	return written, nil
}

func provinceChart(r *models.Report) (*plot.Plot, vg.Length, vg.Length, error) {
	if len(r.ByProvince) == 0 {
		return nil, 0, 0, errNoData
	}
	p := plot.New()
	p.Title.Text = "Sebaran Responden Gen Z per Provinsi"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Y.Label.Text = "Jumlah Responden"

	values := make(plotter.Values, len(r.ByProvince))
	labels := make([]string, len(r.ByProvince))
	for i, c := range r.ByProvince {
		values[i] = float64(c.Count)
		labels[i] = c.Group
	}

	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return nil, 0, 0, err
	}
	bars.Color = navy
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	rotatedNominalX(p, labels)

	return p, widthFor(len(labels)), 8 * vg.Inch, nil
}

func incomeExpenseChart(r *models.Report) (*plot.Plot, vg.Length, vg.Length, error) {
	var (
		income, expense plotter.Values
		labels          []string
	)
	for _, row := range r.IncomeExpenseByProvince {
		if !row.Income.Valid || !row.Expense.Valid {
			continue
		}
		income = append(income, row.Income.Float64)
		expense = append(expense, row.Expense.Float64)
		labels = append(labels, row.Province)
	}
	if len(labels) == 0 {
		return nil, 0, 0, errNoData
	}

	p := plot.New()
	p.Title.Text = "Pendapatan dan Pengeluaran Rata-rata per Provinsi"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Y.Label.Text = "Nilai (Rupiah)"

	w := vg.Points(12)
	incBars, err := plotter.NewBarChart(income, w)
	if err != nil {
		return nil, 0, 0, err
	}
	incBars.Color = navy
	incBars.LineStyle.Width = vg.Length(0)
	incBars.Offset = -w / 2

	expBars, err := plotter.NewBarChart(expense, w)
	if err != nil {
		return nil, 0, 0, err
	}
	expBars.Color = lightBlue
	expBars.LineStyle.Width = vg.Length(0)
	expBars.Offset = w / 2

	p.Add(incBars, expBars)
	p.Legend.Add("Pendapatan Rata-rata", incBars)
	p.Legend.Add("Pengeluaran Rata-rata", expBars)
	p.Legend.Top = true
	rotatedNominalX(p, labels)

	return p, widthFor(len(labels)), 9 * vg.Inch, nil
}

func literacyChart(r *models.Report) (*plot.Plot, vg.Length, vg.Length, error) {
	return aspectChart("Rata-rata Skor per Aspek Literasi Keuangan", r.Literacy.Aspects, navy)
}

func behaviorChart(r *models.Report) (*plot.Plot, vg.Length, vg.Length, error) {
	return aspectChart("Rata-rata Skor per Aspek Perilaku & Keputusan Keuangan", r.Behavior.Aspects, green)
}

// aspectChart draws horizontal bars, the highest aspect at the top.
func aspectChart(title string, aspects []models.AspectScore, c color.Color) (*plot.Plot, vg.Length, vg.Length, error) {
	if len(aspects) == 0 {
		return nil, 0, 0, errNoData
	}
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Skor (1-4)"
	p.X.Min = 0
	p.X.Max = 4

	n := len(aspects)
	values := make(plotter.Values, n)
	labels := make([]string, n)
	for i, a := range aspects {
		values[n-1-i] = a.Mean
		labels[n-1-i] = shorten(a.Translation, 60)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(14))
	if err != nil {
		return nil, 0, 0, err
	}
	bars.Horizontal = true
	bars.Color = c
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalY(labels...)

	return p, 14 * vg.Inch, vg.Length(n)*0.45*vg.Inch + 2*vg.Inch, nil
}

func pdrbOutstandingChart(r *models.Report) (*plot.Plot, vg.Length, vg.Length, error) {
	if len(r.PDRBOutstanding) == 0 {
		return nil, 0, 0, errNoData
	}
	p := plot.New()
	p.Title.Text = "PDRB vs Outstanding Pinjaman"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "PDRB (Ribu Rp)"
	p.Y.Label.Text = "Outstanding Pinjaman (Rp miliar)"

	points := make(plotter.XYs, len(r.PDRBOutstanding))
	labels := make([]string, len(r.PDRBOutstanding))
	for i, row := range r.PDRBOutstanding {
		points[i].X = row.PDRBThousandRp.Float64
		points[i].Y = row.OutstandingBillion.Float64
		labels[i] = row.Province
	}
	if err := addLabelledScatter(p, points, labels, navy); err != nil {
		return nil, 0, 0, err
	}
	p.Add(plotter.NewGrid())

	return p, 14 * vg.Inch, 10 * vg.Inch, nil
}

func literacyRiskChart(r *models.Report) (*plot.Plot, vg.Length, vg.Length, error) {
	if len(r.LiteracyRegional) == 0 {
		return nil, 0, 0, errNoData
	}
	p := plot.New()
	p.Title.Text = "Literasi vs Risiko Kredit (TWP 90%)"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Skor Literasi (1-4)"
	p.Y.Label.Text = "TWP 90 (%)"

	points := make(plotter.XYs, len(r.LiteracyRegional))
	for i, row := range r.LiteracyRegional {
		points[i].X = row.LiteracyScore
		points[i].Y = row.TWP90
	}
	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return nil, 0, 0, err
	}
	scatter.GlyphStyle.Color = red
	scatter.GlyphStyle.Radius = vg.Points(4)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(scatter, plotter.NewGrid())

	return p, 12 * vg.Inch, 8 * vg.Inch, nil
}

func addLabelledScatter(p *plot.Plot, points plotter.XYs, labels []string, c color.Color) error {
	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Color = c
	scatter.GlyphStyle.Radius = vg.Points(5)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(scatter)

	names, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: labels})
	if err != nil {
		return err
	}
	p.Add(names)
	return nil
}

func rotatedNominalX(p *plot.Plot, labels []string) {
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 3
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XRight
}

// widthFor sizes a bar chart to its number of categories.
func widthFor(n int) vg.Length {
	w := vg.Length(n) * 0.5 * vg.Inch
	if w < 10*vg.Inch {
		return 10 * vg.Inch
	}
	return w
}

func shorten(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}

func genderChart(r *models.Report) (*plot.Plot, vg.Length, vg.Length, error) {
	return countChart("Proporsi Jenis Kelamin", r.ByGender, lightBlue)
}

func employmentChart(r *models.Report) (*plot.Plot, vg.Length, vg.Length, error) {
	return countChart("Distribusi Status Pekerjaan", r.ByEmployment, teal)
}

// countChart draws one vertical bar per group, in the order given.
func countChart(title string, counts []models.GroupCount, c color.Color) (*plot.Plot, vg.Length, vg.Length, error) {
	if len(counts) == 0 {
		return nil, 0, 0, errNoData
	}
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Y.Label.Text = "Jumlah Responden"

	values := make(plotter.Values, len(counts))
	labels := make([]string, len(counts))
	for i, g := range counts {
		values[i] = float64(g.Count)
		labels[i] = g.Group
	}
	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return nil, 0, 0, err
	}
	bars.Color = c
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	rotatedNominalX(p, labels)

	return p, widthFor(len(labels)), 7 * vg.Inch, nil
}

func fintechChart(r *models.Report) (*plot.Plot, vg.Length, vg.Length, error) {
	n := len(r.ByFintech)
	if n == 0 {
		return nil, 0, 0, errNoData
	}
	p := plot.New()
	p.Title.Text = "Distribusi Penggunaan E-Wallet Utama"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Jumlah Responden"

	values := make(plotter.Values, n)
	labels := make([]string, n)
	for i, g := range r.ByFintech {
		values[n-1-i] = float64(g.Count)
		labels[n-1-i] = g.Group
	}
	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return nil, 0, 0, err
	}
	bars.Horizontal = true
	bars.Color = navy
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalY(labels...)

	return p, 10 * vg.Inch, vg.Length(n)*0.4*vg.Inch + 2*vg.Inch, nil
}

func expenseByGenderChart(r *models.Report) (*plot.Plot, vg.Length, vg.Length, error) {
	if len(r.ExpenseByGender) == 0 {
		return nil, 0, 0, errNoData
	}
	p := plot.New()
	p.Title.Text = "Rata-rata Pengeluaran Bulanan per Gender"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Y.Label.Text = "Rata-rata Pengeluaran (Rp)"

	values := make(plotter.Values, len(r.ExpenseByGender))
	labels := make([]string, len(r.ExpenseByGender))
	for i, g := range r.ExpenseByGender {
		values[i] = g.Mean
		labels[i] = g.Group
	}
	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return nil, 0, 0, err
	}
	bars.Color = navy
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)

	return p, 8 * vg.Inch, 6 * vg.Inch, nil
}

// incomeExpenseHistogram overlays the income and expense distributions.
func incomeExpenseHistogram(r *models.Report) (*plot.Plot, vg.Length, vg.Length, error) {
	if len(r.IncomeValues) == 0 && len(r.ExpenseValues) == 0 {
		return nil, 0, 0, errNoData
	}
	p := plot.New()
	p.Title.Text = "Distribusi Pendapatan & Pengeluaran"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Jumlah (Pendapatan / Pengeluaran)"
	p.Y.Label.Text = "Frekuensi"
	p.Legend.Top = true

	series := []struct {
		name   string
		values []float64
		fill   color.Color
	}{
		{"Pendapatan", r.IncomeValues, color.RGBA{R: 30, G: 60, B: 114, A: 190}},
		{"Pengeluaran", r.ExpenseValues, color.RGBA{R: 231, G: 76, B: 60, A: 190}},
	}
	for _, sr := range series {
		if len(sr.values) == 0 {
			continue
		}
		h, err := plotter.NewHist(plotter.Values(sr.values), histogramBins)
		if err != nil {
			return nil, 0, 0, err
		}
		h.FillColor = sr.fill
		h.LineStyle.Width = vg.Length(0)
		p.Add(h)
		p.Legend.Add(sr.name, h)
	}

	return p, 12 * vg.Inch, 7 * vg.Inch, nil
}

const histogramBins = 20

// incomeVsExpenseChart plots one scatter series per gender with the overall
// linear trend.
func incomeVsExpenseChart(r *models.Report) (*plot.Plot, vg.Length, vg.Length, error) {
	if len(r.IncomeExpensePoints) == 0 {
		return nil, 0, 0, errNoData
	}
	p := plot.New()
	p.Title.Text = "Hubungan Pendapatan vs Pengeluaran"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Pendapatan Bulanan (Rp)"
	p.Y.Label.Text = "Pengeluaran Bulanan (Rp)"
	p.Legend.Top = true

	var order []string
	byGender := map[string]plotter.XYs{}
	for _, pt := range r.IncomeExpensePoints {
		g := pt.Gender
		if g == "" {
			g = "Tidak diketahui"
		}
		if _, ok := byGender[g]; !ok {
			order = append(order, g)
		}
		byGender[g] = append(byGender[g], plotter.XY{X: pt.Income, Y: pt.Expense})
	}

	minX, maxX := r.IncomeExpensePoints[0].Income, r.IncomeExpensePoints[0].Income
	for i, g := range order {
		scatter, err := plotter.NewScatter(byGender[g])
		if err != nil {
			return nil, 0, 0, err
		}
		scatter.GlyphStyle.Color = palette[i%len(palette)]
		scatter.GlyphStyle.Radius = vg.Points(4)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)
		p.Legend.Add(g, scatter)
		for _, xy := range byGender[g] {
			minX = math.Min(minX, xy.X)
			maxX = math.Max(maxX, xy.X)
		}
	}
	if err := addTrend(p, r.IncomeExpenseTrend, minX, maxX); err != nil {
		return nil, 0, 0, err
	}
	p.Add(plotter.NewGrid())

	return p, 12 * vg.Inch, 8 * vg.Inch, nil
}

func urbanizationLoanChart(r *models.Report) (*plot.Plot, vg.Length, vg.Length, error) {
	if len(r.UrbanizationLoan) == 0 {
		return nil, 0, 0, errNoData
	}
	p := plot.New()
	p.Title.Text = "Urbanisasi vs Dana yang Diberikan"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Urbanisasi (%)"
	p.Y.Label.Text = "Dana Diberikan (Rp miliar)"

	points := make(plotter.XYs, len(r.UrbanizationLoan))
	labels := make([]string, len(r.UrbanizationLoan))
	minX, maxX := math.Inf(1), math.Inf(-1)
	for i, row := range r.UrbanizationLoan {
		points[i].X = row.UrbanizationRate.Float64
		points[i].Y = row.LoanAmountBillion.Float64
		labels[i] = row.Province
		minX = math.Min(minX, points[i].X)
		maxX = math.Max(maxX, points[i].X)
	}
	if err := addLabelledScatter(p, points, labels, teal); err != nil {
		return nil, 0, 0, err
	}
	if err := addTrend(p, r.UrbanizationLoanTrend, minX, maxX); err != nil {
		return nil, 0, 0, err
	}
	p.Add(plotter.NewGrid())

	return p, 14 * vg.Inch, 10 * vg.Inch, nil
}

// pdrbIncomeChart puts PDRB and mean respondent income side by side per
// province, highest PDRB first.
func pdrbIncomeChart(r *models.Report) (*plot.Plot, vg.Length, vg.Length, error) {
	if len(r.PDRBIncome) == 0 {
		return nil, 0, 0, errNoData
	}
	p := plot.New()
	p.Title.Text = "Integrasi: PDRB vs Pendapatan Rata-rata Gen Z"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Y.Label.Text = "Nilai"
	p.Legend.Top = true

	pdrb := make(plotter.Values, len(r.PDRBIncome))
	income := make(plotter.Values, len(r.PDRBIncome))
	labels := make([]string, len(r.PDRBIncome))
	for i, row := range r.PDRBIncome {
		pdrb[i] = row.PDRBThousandRp
		income[i] = row.MeanIncome
		labels[i] = row.Province
	}

	w := vg.Points(12)
	pdrbBars, err := plotter.NewBarChart(pdrb, w)
	if err != nil {
		return nil, 0, 0, err
	}
	pdrbBars.Color = navy
	pdrbBars.LineStyle.Width = vg.Length(0)
	pdrbBars.Offset = -w / 2

	incBars, err := plotter.NewBarChart(income, w)
	if err != nil {
		return nil, 0, 0, err
	}
	incBars.Color = lightBlue
	incBars.LineStyle.Width = vg.Length(0)
	incBars.Offset = w / 2

	p.Add(pdrbBars, incBars)
	p.Legend.Add("PDRB (Ribu Rp)", pdrbBars)
	p.Legend.Add("Pendapatan Rata-rata (Rp)", incBars)
	rotatedNominalX(p, labels)

	return p, widthFor(len(labels)), 9 * vg.Inch, nil
}

// addTrend draws fit between minX and maxX. A nil fit draws nothing.
func addTrend(p *plot.Plot, fit *models.LinearFit, minX, maxX float64) error {
	if fit == nil || minX >= maxX {
		return nil
	}
	line, err := plotter.NewLine(plotter.XYs{
		{X: minX, Y: fit.At(minX)},
		{X: maxX, Y: fit.At(maxX)},
	})
	if err != nil {
		return err
	}
	line.Color = red
	line.Width = vg.Points(2)
	line.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	p.Add(line)
	p.Legend.Add("Tren (OLS)", line)
	return nil
}
