package services

import (
	"database/sql"
	"regexp"
	"strconv"
	"strings"

	"genz-dashboard/models"
)

var (
	// rupiahRegexp matches the currency token in any case.
	rupiahRegexp = regexp.MustCompile(`(?i)rp`)
	// rangeRegexp splits "1000000-2000000" and "1000000–2000000".
	rangeRegexp = regexp.MustCompile(`[-–]`)
	// nonNumericRegexp drops everything except digits, separators and sign.
	nonNumericRegexp = regexp.MustCompile(`[^0-9.,\-]`)
)

// NormalizeCurrency converts Indonesian Rupiah text such as "Rp 1.500.000" or
// "1.000.000 - 2.000.000" into a value. Ranges resolve to their midpoint.
// Anything else that is not a plain digit string is missing.
func NormalizeCurrency(raw string) sql.NullFloat64 {
	v := rupiahRegexp.ReplaceAllString(raw, "")
	v = strings.NewReplacer(".", "", ",", "").Replace(v)
	v = strings.Join(strings.Fields(v), "")
	if v == "" {
		return models.Missing()
	}

	if rangeRegexp.MatchString(v) {
		parts := rangeRegexp.Split(v, -1)
		if len(parts) != 2 || !isDigits(parts[0]) || !isDigits(parts[1]) {
			return models.Missing()
		}
		lo, errLo := strconv.ParseFloat(parts[0], 64)
		hi, errHi := strconv.ParseFloat(parts[1], 64)
		if errLo != nil || errHi != nil {
			return models.Missing()
		}
		return models.Num((lo + hi) / 2)
	}

	if !isDigits(v) {
		return models.Missing()
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return models.Missing()
	}
	return models.Num(n)
}

// CleanNumeric parses regional indicator text. A comma is a decimal point and
// dots before it are thousand separators; repeated dots are thousand
// separators except a last one that does not start a three-digit group.
//
//	"1.234.567" → 1234567
//	"1.234,5"   → 1234.5
//	"12,5"      → 12.5
//	"3.75"      → 3.75
func CleanNumeric(raw string) sql.NullFloat64 {
	v := nonNumericRegexp.ReplaceAllString(raw, "")
	if v == "" {
		return models.Missing()
	}

	if strings.Contains(v, ",") {
		v = strings.ReplaceAll(v, ".", "")
		v = strings.ReplaceAll(v, ",", ".")
	}

	if strings.Count(v, ".") > 1 {
		last := strings.LastIndex(v, ".")
		frac := v[last+1:]
		v = strings.ReplaceAll(v[:last], ".", "")
		if len(frac) == 3 {
			v += frac
		} else {
			v += "." + frac
		}
	}

	if strings.LastIndex(v, "-") > 0 {
		return models.Missing()
	}
	if v == "" || v == "-" || v == "." || v == "-." {
		return models.Missing()
	}

	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return models.Missing()
	}
	return models.Num(n)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
