package accounts

import "time"

// AccountView is the flat, string-serializable projection handed to clients:
// identities as textual UUIDs, timestamps as RFC3339, balance as its
// canonical decimal string.
type AccountView struct {
	ID          string  `json:"id"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	AccountType string  `json:"account_type"`
	Category    string  `json:"category"`
	Subcategory *string `json:"subcategory,omitempty"`
	IsActive    bool    `json:"is_active"`
	ParentID    *string `json:"parent_id,omitempty"`
	Balance     string  `json:"balance"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// NewAccountView projects an account entity into its view form.
func NewAccountView(a Account) AccountView {
	view := AccountView{
		ID:          a.ID.String(),
		Code:        a.Code,
		Name:        a.Name,
		Description: a.Description,
		AccountType: a.Type.String(),
		Category:    a.Category.String(),
		Subcategory: a.Subcategory,
		IsActive:    a.IsActive,
		Balance:     a.Balance.String(),
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   a.UpdatedAt.Format(time.RFC3339),
	}
	if a.ParentID != nil {
		parent := a.ParentID.String()
		view.ParentID = &parent
	}
	return view
}

// NewAccountViews projects a slice of accounts, preserving order.
func NewAccountViews(accounts []Account) []AccountView {
	views := make([]AccountView, len(accounts))
	for i, a := range accounts {
		views[i] = NewAccountView(a)
	}
	return views
}
