package tabular

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmatsui/bookkeeping-service/internal/apperr"
)

// Column aliases recognized in the header row. Japanese bank statement
// headers are accepted alongside the English ones.
var (
	dateAliases        = []string{"date", "transaction date", "取引日"}
	descriptionAliases = []string{"description", "摘要"}
	incomeAliases      = []string{"income", "deposit", "inflow", "入金金額"}
	expenseAliases     = []string{"expense", "withdrawal", "outflow", "出金金額"}
)

const (
	dateLayoutHyphen = "2006-01-02"
	dateLayoutSlash  = "2006/01/02"
)

// lookup returns the value for the first matching alias, case-insensitively.
func lookup(rec map[string]string, aliases []string) string {
	for key, val := range rec {
		k := strings.ToLower(strings.TrimSpace(key))
		for _, alias := range aliases {
			if k == alias {
				return val
			}
		}
	}
	return ""
}

// parseDate normalizes a textual date to YYYY-MM-DD. The second return
// is false when the value is empty or unparseable; such rows are
// skipped per the lenient-skip policy.
func parseDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if t, err := time.Parse(dateLayoutHyphen, s); err == nil {
		return t.Format(dateLayoutHyphen), true
	}
	if t, err := time.Parse(dateLayoutSlash, s); err == nil {
		return t.Format(dateLayoutHyphen), true
	}
	return "", false
}

// parseAmount parses an amount cell. Thousands separators are stripped,
// blank cells mean zero, anything else non-numeric is a parse error.
func parseAmount(field, s string) (int64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s amount %q is not a number", apperr.ErrParse, field, s)
	}
	return n, nil
}

// rowFromRecord applies the normalization rules to one header→value
// mapping. The second return is false when the row is skipped.
func rowFromRecord(rec map[string]string) (Row, bool, error) {
	date, ok := parseDate(lookup(rec, dateAliases))
	if !ok {
		return Row{}, false, nil
	}

	income, err := parseAmount("income", lookup(rec, incomeAliases))
	if err != nil {
		return Row{}, false, err
	}
	expense, err := parseAmount("expense", lookup(rec, expenseAliases))
	if err != nil {
		return Row{}, false, err
	}
	if income > 0 && expense > 0 {
		return Row{}, false, fmt.Errorf("%w: row %s has both income and expense", apperr.ErrParse, date)
	}

	return Row{
		Date:        date,
		Description: strings.TrimSpace(lookup(rec, descriptionAliases)),
		Income:      income,
		Expense:     expense,
	}, true, nil
}

// excelEpoch is day zero of the 1900 date system.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// excelSerialDate converts a native spreadsheet date cell (days since
// the 1900 epoch) to YYYY-MM-DD.
func excelSerialDate(serial float64) string {
	return excelEpoch.AddDate(0, 0, int(serial)).Format(dateLayoutHyphen)
}
