package accounts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/minibooks/minibooks/internal/shared"
)

// Repository is the durable account store. Lookups that miss return
// (nil, nil); absence is a normal outcome, not an error.
type Repository interface {
	FindAll(ctx context.Context) ([]Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByCode(ctx context.Context, code string) (*Account, error)
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]Account, error)
	FindRoots(ctx context.Context) ([]Account, error)
	Create(ctx context.Context, account Account) error
	Update(ctx context.Context, account Account) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository wraps a shared connection pool. The wrapper is stateless and
// safe to construct per call.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const accountColumns = `id, code, name, description, account_type, category, subcategory, is_active, parent_id, balance::text, created_at, updated_at`

func scanAccount(row pgx.Row) (Account, error) {
	var (
		a           Account
		accountType string
		category    string
		balance     string
	)
	err := row.Scan(&a.ID, &a.Code, &a.Name, &a.Description, &accountType, &category,
		&a.Subcategory, &a.IsActive, &a.ParentID, &balance, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return Account{}, err
	}
	if t, ok := ParseAccountType(accountType); ok {
		a.Type = t
	}
	if c, ok := ParseAccountCategory(category); ok {
		a.Category = c
	}
	a.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return Account{}, err
	}
	return a, nil
}

func (r *repository) queryMany(ctx context.Context, sql string, args ...any) ([]Account, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, shared.DatabaseError(err)
	}
	defer rows.Close()

	accounts := []Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, shared.DatabaseError(err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.DatabaseError(err)
	}
	return accounts, nil
}

func (r *repository) queryOne(ctx context.Context, sql string, args ...any) (*Account, error) {
	a, err := scanAccount(r.pool.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, shared.DatabaseError(err)
	}
	return &a, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Account, error) {
	return r.queryMany(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY code`)
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	return r.queryOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

func (r *repository) FindByCode(ctx context.Context, code string) (*Account, error) {
	return r.queryOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE code = $1`, code)
}

func (r *repository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]Account, error) {
	return r.queryMany(ctx, `SELECT `+accountColumns+` FROM accounts WHERE parent_id = $1 ORDER BY code`, parentID)
}

func (r *repository) FindRoots(ctx context.Context) ([]Account, error) {
	return r.queryMany(ctx, `SELECT `+accountColumns+` FROM accounts WHERE parent_id IS NULL ORDER BY code`)
}

func (r *repository) Create(ctx context.Context, a Account) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO accounts
			(id, code, name, description, account_type, category, subcategory,
			is_active, parent_id, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		a.ID, a.Code, a.Name, a.Description, a.Type.String(), a.Category.String(),
		a.Subcategory, a.IsActive, a.ParentID, a.Balance.String(), a.CreatedAt, a.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return shared.ConflictError("account " + a.ID.String() + " already exists")
	}
	if err != nil {
		return shared.DatabaseError(err)
	}
	return nil
}

// Update replaces all mutable fields of the row matching the account's id.
// Zero rows affected is not an error; callers confirm existence first.
func (r *repository) Update(ctx context.Context, a Account) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET code = $2, name = $3, description = $4, account_type = $5, category = $6,
			subcategory = $7, is_active = $8, parent_id = $9, balance = $10, updated_at = $11
		WHERE id = $1`,
		a.ID, a.Code, a.Name, a.Description, a.Type.String(), a.Category.String(),
		a.Subcategory, a.IsActive, a.ParentID, a.Balance.String(), a.UpdatedAt)
	if err != nil {
		return shared.DatabaseError(err)
	}
	return nil
}

// Delete is idempotent: removing an id that never existed succeeds.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id); err != nil {
		return shared.DatabaseError(err)
	}
	return nil
}

// IncrementBalance adds the signed amount server-side so concurrent
// adjustments to the same account never lose an update.
func (r *repository) IncrementBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET balance = balance + $2::numeric, updated_at = NOW()
		WHERE id = $1`,
		id, amount.String())
	if err != nil {
		return shared.DatabaseError(err)
	}
	return nil
}
