package accounts

import "strings"

// AccountType classifies chart-of-accounts nodes. The canonical tokens are
// the single source of truth for display and persistence encoding.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// AccountTypes lists all account types in display order.
var AccountTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeEquity,
	AccountTypeRevenue,
	AccountTypeExpense,
}

// ParseAccountType matches text against the canonical tokens, case-insensitively.
func ParseAccountType(s string) (AccountType, bool) {
	switch AccountType(strings.ToUpper(s)) {
	case AccountTypeAsset:
		return AccountTypeAsset, true
	case AccountTypeLiability:
		return AccountTypeLiability, true
	case AccountTypeEquity:
		return AccountTypeEquity, true
	case AccountTypeRevenue:
		return AccountTypeRevenue, true
	case AccountTypeExpense:
		return AccountTypeExpense, true
	}
	return "", false
}

func (t AccountType) String() string { return string(t) }

// IsDebitNormal reports whether the balance grows with debit entries.
func (t AccountType) IsDebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// IsCreditNormal reports whether the balance grows with credit entries.
func (t AccountType) IsCreditNormal() bool {
	return t == AccountTypeLiability || t == AccountTypeEquity || t == AccountTypeRevenue
}

// AccountCategory refines an AccountType. Each category belongs to exactly
// one type; see CategoriesFor.
type AccountCategory string

const (
	CategoryCurrentAsset        AccountCategory = "CURRENT_ASSET"
	CategoryFixedAsset          AccountCategory = "FIXED_ASSET"
	CategoryOtherAsset          AccountCategory = "OTHER_ASSET"
	CategoryCurrentLiability    AccountCategory = "CURRENT_LIABILITY"
	CategoryLongTermLiability   AccountCategory = "LONG_TERM_LIABILITY"
	CategoryOtherLiability      AccountCategory = "OTHER_LIABILITY"
	CategoryOwnerEquity         AccountCategory = "OWNER_EQUITY"
	CategoryRetainedEarnings    AccountCategory = "RETAINED_EARNINGS"
	CategoryOperatingRevenue    AccountCategory = "OPERATING_REVENUE"
	CategoryNonOperatingRevenue AccountCategory = "NON_OPERATING_REVENUE"
	CategoryOperatingExpense    AccountCategory = "OPERATING_EXPENSE"
	CategoryNonOperatingExpense AccountCategory = "NON_OPERATING_EXPENSE"
)

var categoryPartition = map[AccountType][]AccountCategory{
	AccountTypeAsset:     {CategoryCurrentAsset, CategoryFixedAsset, CategoryOtherAsset},
	AccountTypeLiability: {CategoryCurrentLiability, CategoryLongTermLiability, CategoryOtherLiability},
	AccountTypeEquity:    {CategoryOwnerEquity, CategoryRetainedEarnings},
	AccountTypeRevenue:   {CategoryOperatingRevenue, CategoryNonOperatingRevenue},
	AccountTypeExpense:   {CategoryOperatingExpense, CategoryNonOperatingExpense},
}

// ParseAccountCategory matches text against the canonical tokens, case-insensitively.
func ParseAccountCategory(s string) (AccountCategory, bool) {
	c := AccountCategory(strings.ToUpper(s))
	for _, group := range categoryPartition {
		for _, valid := range group {
			if c == valid {
				return c, true
			}
		}
	}
	return "", false
}

func (c AccountCategory) String() string { return string(c) }

// CategoriesFor returns the fixed ordered set of categories valid for a type.
func CategoriesFor(t AccountType) []AccountCategory {
	group := categoryPartition[t]
	out := make([]AccountCategory, len(group))
	copy(out, group)
	return out
}

// ValidCategory reports whether category belongs to the group matching t.
func ValidCategory(t AccountType, c AccountCategory) bool {
	for _, valid := range categoryPartition[t] {
		if c == valid {
			return true
		}
	}
	return false
}
