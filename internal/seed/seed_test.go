package seed

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmatsui/bookkeeping-service/internal/apperr"
	"github.com/dmatsui/bookkeeping-service/internal/repository"
	"github.com/dmatsui/bookkeeping-service/internal/testutil"
)

const validChart = `
categories:
  - name: Ordinary Deposit
  - name: Sales Revenue
accounts:
  - name: Main Bank
    offset_category: Ordinary Deposit
  - name: Petty Cash
    offset_category: Ordinary Deposit
    visible: false
`

func TestParse(t *testing.T) {
	chart, err := Parse(strings.NewReader(validChart))
	require.NoError(t, err)
	assert.Len(t, chart.Categories, 2)
	assert.Len(t, chart.Accounts, 2)
	assert.Equal(t, "Ordinary Deposit", chart.Accounts[0].OffsetCategory)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse(strings.NewReader("categories: [what"))
	assert.True(t, errors.Is(err, apperr.ErrParse))
}

func TestParse_MissingOffsetCategory(t *testing.T) {
	_, err := Parse(strings.NewReader("accounts:\n  - name: Main Bank\n"))
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestApply(t *testing.T) {
	repo := repository.NewRepository(testutil.OpenDB(t))
	chart, err := Parse(strings.NewReader(validChart))
	require.NoError(t, err)

	require.NoError(t, Apply(repo, 1, chart))

	categories, err := repo.ListCategories(1)
	require.NoError(t, err)
	assert.Len(t, categories, 2)

	account, err := repo.FindAccountByName(1, "Main Bank")
	require.NoError(t, err)
	assert.True(t, account.IsVisible)
	assert.Equal(t, categories[0].ID, account.OffsetCategoryID)

	// The invisible account is excluded from the form options.
	visible, err := repo.ListVisibleAccounts(1)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Main Bank", visible[0].Name)
}

func TestApply_UnknownOffsetCategoryRollsBack(t *testing.T) {
	repo := repository.NewRepository(testutil.OpenDB(t))
	chart, err := Parse(strings.NewReader(`
categories:
  - name: Ordinary Deposit
accounts:
  - name: Main Bank
    offset_category: Missing
`))
	require.NoError(t, err)

	err = Apply(repo, 1, chart)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	// The categories inserted before the failure are rolled back too.
	categories, listErr := repo.ListCategories(1)
	require.NoError(t, listErr)
	assert.Empty(t, categories)
}
