package accounts

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/minibooks/minibooks/internal/shared"
)

// Runs against a real database when PG_TEST_DSN is set; the accounts table
// must exist (migrations/0001_accounts.sql).
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("PG_TEST_DSN")
	if dsn == "" {
		t.Skip("PG_TEST_DSN not set")
	}
	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func createTestAccount(t *testing.T, repo Repository, code string, parentID *uuid.UUID) Account {
	t.Helper()
	account := NewAccount(NewAccountInput{
		Code:     code,
		Name:     "Account " + code,
		Type:     AccountTypeAsset,
		Category: CategoryCurrentAsset,
		ParentID: parentID,
	})
	require.NoError(t, repo.Create(context.Background(), account))
	t.Cleanup(func() {
		_ = repo.Delete(context.Background(), account.ID)
	})
	return account
}

func TestRepositoryRoundTrip(t *testing.T) {
	repo := NewRepository(testPool(t))
	ctx := context.Background()

	created := createTestAccount(t, repo, "T1000", nil)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.Code, found.Code)
	assert.Equal(t, AccountTypeAsset, found.Type)
	assert.Equal(t, CategoryCurrentAsset, found.Category)
	assert.True(t, found.Balance.IsZero())

	missing, err := repo.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepositoryCreateConflict(t *testing.T) {
	repo := NewRepository(testPool(t))
	ctx := context.Background()

	account := createTestAccount(t, repo, "T1001", nil)

	err := repo.Create(ctx, account)
	require.Error(t, err)
	assert.Equal(t, shared.CodeConflict, shared.AsError(err).Code)
}

func TestRepositoryHierarchy(t *testing.T) {
	repo := NewRepository(testPool(t))
	ctx := context.Background()

	parent := createTestAccount(t, repo, "T2000", nil)
	childB := createTestAccount(t, repo, "T2200", &parent.ID)
	childA := createTestAccount(t, repo, "T2100", &parent.ID)

	children, err := repo.FindChildren(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, childA.ID, children[0].ID)
	assert.Equal(t, childB.ID, children[1].ID)

	roots, err := repo.FindRoots(ctx)
	require.NoError(t, err)
	for _, root := range roots {
		assert.Nil(t, root.ParentID)
	}
}

func TestRepositoryIncrementBalanceConcurrently(t *testing.T) {
	repo := NewRepository(testPool(t))
	ctx := context.Background()

	account := createTestAccount(t, repo, "T3000", nil)

	const workers = 20
	amount := decimal.RequireFromString("1.25")

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			return repo.IncrementBalance(ctx, account.ID, amount)
		})
	}
	require.NoError(t, g.Wait())

	found, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	want := amount.Mul(decimal.NewFromInt(workers))
	assert.True(t, found.Balance.Equal(want), "got %s want %s", found.Balance, want)
	assert.True(t, found.UpdatedAt.After(account.UpdatedAt))
}

func TestRepositoryDeleteIsIdempotent(t *testing.T) {
	repo := NewRepository(testPool(t))
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx, uuid.New()))
}
