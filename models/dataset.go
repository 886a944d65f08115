package models

import "database/sql"

// RawTable holds one source file exactly as it was read: the header row and
// every data row as raw cells. Tables are treated as immutable once built;
// transformations return a new table.
type RawTable struct {
	Path    string
	Headers []string
	Rows    [][]string
}

// Index returns the position of the header equal to name, or -1.
func (t RawTable) Index(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the cell at column idx of row, or "" when the column is
// unknown or the row is shorter than the header.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// WithHeaders returns a copy of t carrying the given headers. Rows are shared
// because no stage writes into them.
func (t RawTable) WithHeaders(headers []string) RawTable {
	return RawTable{Path: t.Path, Headers: headers, Rows: t.Rows}
}

// Num wraps a present numeric value.
func Num(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

// Missing returns the single representation of an absent numeric value.
func Missing() sql.NullFloat64 {
	return sql.NullFloat64{}
}

// ProfileRecord is one survey respondent from the demographic/financial
// profile dataset.
type ProfileRecord struct {
	Province          string
	Gender            string
	BirthYear         sql.NullInt64
	EmploymentStatus  string
	AvgMonthlyIncome  sql.NullFloat64
	AvgMonthlyExpense sql.NullFloat64
	MainFintechApp    string
}

// LiteracyRecord is one respondent's literacy and behavior answers. Scores is
// keyed by catalog item ID and only holds matched items.
type LiteracyRecord struct {
	Province         string
	Scores           map[string]sql.NullFloat64
	AvgLiteracyScore sql.NullFloat64
	AvgBehaviorScore sql.NullFloat64
	LiteracyScore    sql.NullFloat64
}

// RegionalRecord holds one province's economic and P2P lending indicators.
type RegionalRecord struct {
	Province           string
	ActiveLoanAccounts sql.NullFloat64
	LoanAmountBillion  sql.NullFloat64
	LenderAccounts     sql.NullFloat64
	TWP90              sql.NullFloat64
	Borrowers          sql.NullFloat64
	OutstandingBillion sql.NullFloat64
	PopulationThousand sql.NullFloat64
	PDRBThousandRp     sql.NullFloat64
	UrbanizationRate   sql.NullFloat64
}

// ItemMatch records which source column answers each survey item of one
// analysis section.
type ItemMatch struct {
	Section string
	// Items lists the catalog item IDs considered, in catalog order.
	Items []string
	// Columns maps a matched item ID to its source header.
	Columns map[string]string
}

// Matched returns the number of items that found a column.
func (m ItemMatch) Matched() int {
	return len(m.Columns)
}

// MatchedIDs returns the matched item IDs in catalog order.
func (m ItemMatch) MatchedIDs() []string {
	ids := make([]string, 0, len(m.Columns))
	for _, id := range m.Items {
		if _, ok := m.Columns[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Status reports whether enough items matched to run the section.
func (m ItemMatch) Status(threshold int) SectionStatus {
	if m.Matched() < threshold {
		return SectionInsufficient
	}
	return SectionSufficient
}

// Dataset is the set of canonical tables produced by one cleaning run.
type Dataset struct {
	Profile  []ProfileRecord
	Literacy []LiteracyRecord
	Regional []RegionalRecord

	// ProfileColumns lists the canonical profile columns present in the source.
	ProfileColumns map[string]bool

	LiteracyMatch ItemMatch
	BehaviorMatch ItemMatch
}

// HasProfileColumn reports whether the profile source carried the column.
func (d Dataset) HasProfileColumn(name string) bool {
	return d.ProfileColumns[name]
}
