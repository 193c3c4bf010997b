package tabular

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmatsui/bookkeeping-service/internal/apperr"
)

func TestCSVParser_Parse(t *testing.T) {
	csv := "date,description,deposit,withdrawal\n" +
		"2024-01-05,ATM,0,3000\n" +
		"2024/01/06,Deposit,5000,0\n"

	p := &CSVParser{}
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2024-01-05", rows[0].Date)
	assert.Equal(t, "ATM", rows[0].Description)
	assert.Equal(t, int64(0), rows[0].Income)
	assert.Equal(t, int64(3000), rows[0].Expense)

	// Slash-form date is normalized.
	assert.Equal(t, "2024-01-06", rows[1].Date)
	assert.Equal(t, int64(5000), rows[1].Income)
}

func TestCSVParser_JapaneseHeaders(t *testing.T) {
	csv := "取引日,摘要,入金金額,出金金額\n" +
		"2024-03-01,振込 ヤマダ,120000,\n"

	p := &CSVParser{}
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "振込 ヤマダ", rows[0].Description)
	assert.Equal(t, int64(120000), rows[0].Income)
	assert.Equal(t, int64(0), rows[0].Expense)
}

func TestCSVParser_SkipsUnparseableDates(t *testing.T) {
	csv := "date,description,deposit,withdrawal\n" +
		",missing date,100,0\n" +
		"not-a-date,bad date,100,0\n" +
		"2024-02-01,kept,100,0\n"

	p := &CSVParser{}
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "kept", rows[0].Description)
}

func TestCSVParser_ThousandsSeparators(t *testing.T) {
	csv := "date,description,deposit,withdrawal\n" +
		"2024-01-10,big one,\"1,234,567\",\n"

	p := &CSVParser{}
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1234567), rows[0].Income)
}

func TestCSVParser_BlankAmountsAreZero(t *testing.T) {
	csv := "date,description,deposit,withdrawal\n" +
		"2024-01-10,no amounts,,\n"

	p := &CSVParser{}
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Zero(t, rows[0].Income)
	assert.Zero(t, rows[0].Expense)
}

func TestCSVParser_MalformedAmount(t *testing.T) {
	csv := "date,description,deposit,withdrawal\n" +
		"2024-01-10,bad,abc,\n"

	p := &CSVParser{}
	_, err := p.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrParse))
	assert.Contains(t, err.Error(), "line 2")
}

func TestCSVParser_BothAmountsPositive(t *testing.T) {
	csv := "date,description,deposit,withdrawal\n" +
		"2024-01-10,both,100,200\n"

	p := &CSVParser{}
	_, err := p.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrParse))
}

func TestCSVParser_UTF8BOM(t *testing.T) {
	csv := "\xEF\xBB\xBFdate,description,deposit,withdrawal\n" +
		"2024-01-05,bom,0,500\n"

	p := &CSVParser{}
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(500), rows[0].Expense)
}

func TestCSVParser_TrimsDescription(t *testing.T) {
	csv := "date,description,deposit,withdrawal\n" +
		"2024-01-05,  padded  ,0,500\n"

	p := &CSVParser{}
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, "padded", rows[0].Description)
}

func TestCSVParser_EmptyFile(t *testing.T) {
	p := &CSVParser{}
	rows, err := p.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestCSVParser_HeaderOnly(t *testing.T) {
	p := &CSVParser{}
	rows, err := p.Parse(strings.NewReader("date,description,deposit,withdrawal\n"))
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestCSVParser_PreservesFileOrder(t *testing.T) {
	csv := "date,description,deposit,withdrawal\n" +
		"2024-01-03,third,0,3\n" +
		"2024-01-01,first,0,1\n" +
		"2024-01-02,second,0,2\n"

	p := &CSVParser{}
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "third", rows[0].Description)
	assert.Equal(t, "first", rows[1].Description)
	assert.Equal(t, "second", rows[2].Description)
}

func TestRegistry_Extensions(t *testing.T) {
	r := DefaultRegistry()
	require.NotNil(t, r.Get("csv"))
	require.NotNil(t, r.Get("xlsx"))
	require.NotNil(t, r.Get("xls"))
	assert.NotNil(t, r.Get("CSV"))
	assert.Nil(t, r.Get("pdf"))
}
