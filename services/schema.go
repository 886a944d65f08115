package services

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"genz-dashboard/models"
)

// MinMatchedItems is the fewest matched survey items a section needs before
// its analysis runs. Below it the section reports insufficient data.
const MinMatchedItems = 10

// regionalRenames maps known regional indicator headers to canonical names.
// Keys are compared with headerKey, so casing and spacing variants collapse.
var regionalRenames = map[string]string{
	"provinsi": "province",
	"jumlah rekening penerima pinjaman aktif (entitas)": "active_loan_accounts",
	"jumlah dana yang diberikan (rp miliar)":            "loan_amount_billion",
	"jumlah rekening pemberi pinjaman (akun)":           "lender_accounts",
	"twp 90%":                                           "twp_90",
	"jumlah penerima pinjaman (akun)":                   "borrowers",
	"outstanding pinjaman (rp miliar)":                  "outstanding_billion",
	"jumlah penduduk (ribu)":                            "population_thousand",
	"pdrb (ribu rp)":                                    "pdrb_thousand_rp",
	"urbanisasi (%)":                                    "urbanization_rate",
}

// literacyRenames maps the literacy survey's demographic headers.
var literacyRenames = map[string]string{
	"province of origin": "province",
	"year of birth":      "year_of_birth",
}

// NormalizeHeader folds compatibility characters (non-breaking spaces, full
// width forms), trims and collapses internal whitespace runs to one space.
func NormalizeHeader(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}

// headerKey is the comparison form of a header or item text.
func headerKey(s string) string {
	return strings.ToLower(NormalizeHeader(s))
}

// NormalizeColumns returns a copy of t with every header normalized.
// Applying it twice gives the same headers as applying it once.
func NormalizeColumns(t models.RawTable) models.RawTable {
	headers := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = NormalizeHeader(h)
	}
	return t.WithHeaders(headers)
}

// LowerColumns returns a copy of t with normalized, lower-cased headers.
func LowerColumns(t models.RawTable) models.RawTable {
	headers := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = headerKey(h)
	}
	return t.WithHeaders(headers)
}

// RenameColumns returns a copy of t where each header whose key appears in
// renames is replaced by its canonical name. Other headers are kept as is.
func RenameColumns(t models.RawTable, renames map[string]string) models.RawTable {
	byKey := make(map[string]string, len(renames))
	for from, to := range renames {
		byKey[headerKey(from)] = to
	}

	headers := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		if to, ok := byKey[headerKey(h)]; ok {
			headers[i] = to
			continue
		}
		headers[i] = h
	}
	return t.WithHeaders(headers)
}

// MatchItemColumns finds the source column answering each item. A header
// matches when the item text is a substring of it after normalization; the
// first matching header in table order wins.
func MatchItemColumns(headers []string, section string, items []Item) models.ItemMatch {
	keys := make([]string, len(headers))
	for i, h := range headers {
		keys[i] = headerKey(h)
	}

	m := models.ItemMatch{
		Section: section,
		Items:   make([]string, 0, len(items)),
		Columns: make(map[string]string),
	}
	for _, item := range items {
		m.Items = append(m.Items, item.ID)
		want := headerKey(item.Text)
		if want == "" {
			continue
		}
		for i, key := range keys {
			if strings.Contains(key, want) {
				m.Columns[item.ID] = headers[i]
				break
			}
		}
	}
	return m
}

// findColumn returns the index of the first header whose key equals name's key.
func findColumn(headers []string, name string) int {
	want := headerKey(name)
	for i, h := range headers {
		if headerKey(h) == want {
			return i
		}
	}
	return -1
}
