package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalBalanceSidesAreExclusiveAndExhaustive(t *testing.T) {
	for _, accountType := range AccountTypes {
		debit := accountType.IsDebitNormal()
		credit := accountType.IsCreditNormal()
		assert.NotEqual(t, debit, credit, "type %s must be exactly one of debit/credit normal", accountType)
	}

	assert.True(t, AccountTypeAsset.IsDebitNormal())
	assert.True(t, AccountTypeExpense.IsDebitNormal())
	assert.True(t, AccountTypeLiability.IsCreditNormal())
	assert.True(t, AccountTypeEquity.IsCreditNormal())
	assert.True(t, AccountTypeRevenue.IsCreditNormal())
}

func TestCategoryPartitionIsTotalAndDisjoint(t *testing.T) {
	seen := map[AccountCategory]AccountType{}
	total := 0
	for _, accountType := range AccountTypes {
		for _, category := range CategoriesFor(accountType) {
			owner, dup := seen[category]
			assert.False(t, dup, "category %s appears under both %s and %s", category, owner, accountType)
			seen[category] = accountType
			total++
		}
	}
	assert.Equal(t, 12, total)
}

func TestParseAccountTypeRoundTrip(t *testing.T) {
	for _, accountType := range AccountTypes {
		parsed, ok := ParseAccountType(accountType.String())
		require.True(t, ok)
		assert.Equal(t, accountType, parsed)
	}
}

func TestParseAccountCategoryRoundTrip(t *testing.T) {
	for _, accountType := range AccountTypes {
		for _, category := range CategoriesFor(accountType) {
			parsed, ok := ParseAccountCategory(category.String())
			require.True(t, ok)
			assert.Equal(t, category, parsed)
		}
	}
}

func TestParseAccountTypeIsCaseInsensitive(t *testing.T) {
	for _, input := range []string{"asset", "ASSET", "Asset"} {
		parsed, ok := ParseAccountType(input)
		require.True(t, ok, "input %q", input)
		assert.Equal(t, AccountTypeAsset, parsed)
	}

	_, ok := ParseAccountType("bogus")
	assert.False(t, ok)
}

func TestParseAccountCategoryRejectsUnknownTokens(t *testing.T) {
	parsed, ok := ParseAccountCategory("current_liability")
	require.True(t, ok)
	assert.Equal(t, CategoryCurrentLiability, parsed)

	_, ok = ParseAccountCategory("IMAGINARY_ASSET")
	assert.False(t, ok)
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory(AccountTypeAsset, CategoryCurrentAsset))
	assert.False(t, ValidCategory(AccountTypeAsset, CategoryOperatingRevenue))
	assert.False(t, ValidCategory(AccountTypeRevenue, CategoryCurrentAsset))
}

func TestCategoriesForReturnsACopy(t *testing.T) {
	first := CategoriesFor(AccountTypeEquity)
	first[0] = CategoryCurrentAsset
	second := CategoriesFor(AccountTypeEquity)
	assert.Equal(t, CategoryOwnerEquity, second[0])
}
