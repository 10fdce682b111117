package accounts

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/minibooks/minibooks/internal/shared"
)

// AccountRequest is the loosely-typed payload for create and update commands.
// All classification fields arrive as strings and are parsed here, at the
// boundary where user-facing validation failures are produced.
type AccountRequest struct {
	Code        string  `json:"code" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
	AccountType string  `json:"account_type" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Subcategory *string `json:"subcategory,omitempty"`
	ParentID    string  `json:"parent_id,omitempty"`
}

// Service is the command facade over the account store. It owns all
// Validation and NotFound failures; the repository only ever reports
// Database and Conflict failures.
type Service struct {
	repo     Repository
	cache    *ListCache
	validate *validator.Validate
}

// NewService wires the facade. cache may be nil when caching is disabled.
func NewService(repo Repository, cache *ListCache) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func parseID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, shared.ValidationError("Invalid " + field + ": " + err.Error())
	}
	return id, nil
}

// parseRequest turns an AccountRequest into a constructor input, producing a
// Validation failure naming the offending field on any parse miss. An empty
// parent string means no parent.
func (s *Service) parseRequest(ctx context.Context, req AccountRequest) (NewAccountInput, error) {
	if err := s.validate.Struct(req); err != nil {
		return NewAccountInput{}, shared.ValidationError(err.Error())
	}

	accountType, ok := ParseAccountType(req.AccountType)
	if !ok {
		return NewAccountInput{}, shared.ValidationError("Invalid account type")
	}
	category, ok := ParseAccountCategory(req.Category)
	if !ok {
		return NewAccountInput{}, shared.ValidationError("Invalid account category")
	}
	if !ValidCategory(accountType, category) {
		return NewAccountInput{}, shared.ValidationError(
			"Category " + category.String() + " is not valid for account type " + accountType.String())
	}

	var parentID *uuid.UUID
	if req.ParentID != "" {
		id, err := parseID(req.ParentID, "parent account ID")
		if err != nil {
			return NewAccountInput{}, err
		}
		parent, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return NewAccountInput{}, err
		}
		if parent == nil {
			return NewAccountInput{}, shared.ValidationError("Parent account does not exist")
		}
		parentID = &id
	}

	return NewAccountInput{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Type:        accountType,
		Category:    category,
		Subcategory: req.Subcategory,
		ParentID:    parentID,
	}, nil
}

// List returns every account sorted by code, through the read-through cache.
func (s *Service) List(ctx context.Context) ([]AccountView, error) {
	if s.cache == nil {
		accounts, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		return NewAccountViews(accounts), nil
	}
	return s.cache.Fetch(ctx, func(ctx context.Context) ([]AccountView, error) {
		accounts, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		return NewAccountViews(accounts), nil
	})
}

// Get looks up one account. Absence yields (nil, nil), not a failure.
func (s *Service) Get(ctx context.Context, rawID string) (*AccountView, error) {
	id, err := parseID(rawID, "account ID")
	if err != nil {
		return nil, err
	}
	account, err := s.repo.FindByID(ctx, id)
	if err != nil || account == nil {
		return nil, err
	}
	view := NewAccountView(*account)
	return &view, nil
}

// GetByCode looks up one account by its human-facing code. Codes are not
// unique; the first match by storage order wins.
func (s *Service) GetByCode(ctx context.Context, code string) (*AccountView, error) {
	if code == "" {
		return nil, shared.ValidationError("Account code is required")
	}
	account, err := s.repo.FindByCode(ctx, code)
	if err != nil || account == nil {
		return nil, err
	}
	view := NewAccountView(*account)
	return &view, nil
}

// Create validates and persists a new account with zero balance and active
// status.
func (s *Service) Create(ctx context.Context, req AccountRequest) (*AccountView, error) {
	input, err := s.parseRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	account := NewAccount(input)
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	view := NewAccountView(account)
	return &view, nil
}

// Update fetches, mutates in memory and writes back. A second concurrent
// update to the same identity can lose this write; that window is a
// documented property of the facade, not of the store.
func (s *Service) Update(ctx context.Context, rawID string, req AccountRequest) (*AccountView, error) {
	id, err := parseID(rawID, "account ID")
	if err != nil {
		return nil, err
	}
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, shared.NotFoundError("Account")
	}
	input, err := s.parseRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	account.ApplyUpdate(input)
	if err := s.repo.Update(ctx, *account); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	view := NewAccountView(*account)
	return &view, nil
}

// Delete removes an account unconditionally. Deleting an id that does not
// exist succeeds.
func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID, "account ID")
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// ToggleStatus flips the active flag via read-modify-write.
func (s *Service) ToggleStatus(ctx context.Context, rawID string) (*AccountView, error) {
	id, err := parseID(rawID, "account ID")
	if err != nil {
		return nil, err
	}
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, shared.NotFoundError("Account")
	}
	account.ToggleActive()
	if err := s.repo.Update(ctx, *account); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	view := NewAccountView(*account)
	return &view, nil
}

// AdjustBalance applies a signed amount atomically at the storage layer and
// returns the refreshed account.
func (s *Service) AdjustBalance(ctx context.Context, rawID, rawAmount string) (*AccountView, error) {
	id, err := parseID(rawID, "account ID")
	if err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return nil, shared.ValidationError("Invalid amount: " + err.Error())
	}
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, shared.NotFoundError("Account")
	}
	if err := s.repo.IncrementBalance(ctx, id, amount); err != nil {
		return nil, err
	}
	account, err = s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, shared.NotFoundError("Account")
	}
	s.invalidate(ctx)
	view := NewAccountView(*account)
	return &view, nil
}

// Roots returns top-level accounts sorted by code.
func (s *Service) Roots(ctx context.Context) ([]AccountView, error) {
	accounts, err := s.repo.FindRoots(ctx)
	if err != nil {
		return nil, err
	}
	return NewAccountViews(accounts), nil
}

// Children returns the direct children of one account, sorted by code.
func (s *Service) Children(ctx context.Context, rawParentID string) ([]AccountView, error) {
	id, err := parseID(rawParentID, "parent account ID")
	if err != nil {
		return nil, err
	}
	accounts, err := s.repo.FindChildren(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewAccountViews(accounts), nil
}

// CategoryOptions returns the canonical category tokens valid for a type,
// for UI pickers.
func (s *Service) CategoryOptions(accountType string) ([]string, error) {
	t, ok := ParseAccountType(accountType)
	if !ok {
		return nil, shared.ValidationError("Invalid account type")
	}
	categories := CategoriesFor(t)
	tokens := make([]string, len(categories))
	for i, c := range categories {
		tokens[i] = c.String()
	}
	return tokens, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
