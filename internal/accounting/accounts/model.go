package accounts

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is a chart-of-accounts node. Balance only ever changes through
// AdjustBalance or the store's atomic increment, never by direct assignment.
type Account struct {
	ID          uuid.UUID
	Code        string
	Name        string
	Description *string
	Type        AccountType
	Category    AccountCategory
	Subcategory *string
	IsActive    bool
	ParentID    *uuid.UUID
	Balance     decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewAccountInput carries the caller-supplied attributes for a new account.
// Type/category compatibility is the service's responsibility; the entity
// stays a plain value holder.
type NewAccountInput struct {
	Code        string
	Name        string
	Description *string
	Type        AccountType
	Category    AccountCategory
	Subcategory *string
	ParentID    *uuid.UUID
}

// NewAccount constructs an account with a fresh identity, zero balance and
// active status. CreatedAt and UpdatedAt start equal.
func NewAccount(in NewAccountInput) Account {
	now := time.Now().UTC()
	return Account{
		ID:          uuid.New(),
		Code:        in.Code,
		Name:        in.Name,
		Description: in.Description,
		Type:        in.Type,
		Category:    in.Category,
		Subcategory: in.Subcategory,
		IsActive:    true,
		ParentID:    in.ParentID,
		Balance:     decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// AdjustBalance adds a signed amount to the balance using exact decimal
// arithmetic. Negative balances are permitted.
func (a *Account) AdjustBalance(amount decimal.Decimal) {
	a.Balance = a.Balance.Add(amount)
	a.UpdatedAt = time.Now().UTC()
}

// ToggleActive flips the lifecycle flag.
func (a *Account) ToggleActive() {
	a.IsActive = !a.IsActive
	a.UpdatedAt = time.Now().UTC()
}

// ApplyUpdate replaces the mutable descriptive and classification fields as a
// batch. The caller must have validated type/category compatibility and
// parent resolvability beforehand.
func (a *Account) ApplyUpdate(in NewAccountInput) {
	a.Code = in.Code
	a.Name = in.Name
	a.Description = in.Description
	a.Type = in.Type
	a.Category = in.Category
	a.Subcategory = in.Subcategory
	a.ParentID = in.ParentID
	a.UpdatedAt = time.Now().UTC()
}

// IsDebitNormal reports whether this account grows with debit entries.
func (a *Account) IsDebitNormal() bool { return a.Type.IsDebitNormal() }

// IsCreditNormal reports whether this account grows with credit entries.
func (a *Account) IsCreditNormal() bool { return a.Type.IsCreditNormal() }
