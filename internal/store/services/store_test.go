package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/jhowson/creditstore/internal/common"
	"github.com/jhowson/creditstore/internal/logging"
	"github.com/jhowson/creditstore/internal/store/registry"
	"github.com/jhowson/creditstore/internal/store/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// brokenRepo delegates loads to a memory repository but fails every save.
type brokenRepo struct {
	*storage.MemoryRepository
}

func (r *brokenRepo) SaveAccounts(context.Context, []storage.AccountRecord) error {
	return errors.New("disk on fire")
}

func newTestService(t *testing.T, repo storage.Repository) (*StoreService, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	return NewStoreService(registry.New(), repo, log), &buf
}

func seedRepo() *storage.MemoryRepository {
	return storage.NewMemoryRepository(
		[]storage.AccountRecord{
			{Username: "alice", Password: "secret", Balance: decimal.RequireFromString("100.00")},
		},
		[]storage.ProductRecord{
			{Name: "Red Shirt", Price: decimal.RequireFromString("19.99"), ImageRef: "shirt1.png", Description: "a red shirt"},
			{Name: "Hat", Price: decimal.RequireFromString("12.50"), ImageRef: "hat.png", Description: "shirt accessory"},
		},
	)
}

func TestStoreService_Load(t *testing.T) {
	svc, _ := newTestService(t, seedRepo())
	svc.Load(context.Background())

	require.Len(t, svc.Catalog(), 2)

	sess, err := svc.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	require.Equal(t, "$100.00", sess.Account().BalanceString())
}

func TestStoreService_Load_MissingDataIsWarningOnly(t *testing.T) {
	repo := storage.NewFileRepository("no-such-accounts.txt", "no-such-products.txt")
	svc, buf := newTestService(t, repo)

	svc.Load(context.Background())

	require.Empty(t, svc.Catalog())
	require.Contains(t, buf.String(), "product data was not read")
	require.Contains(t, buf.String(), "account data was not read")
}

func TestStoreService_Load_SkipsBadRecords(t *testing.T) {
	repo := storage.NewMemoryRepository(
		[]storage.AccountRecord{
			{Username: "alice", Password: "a", Balance: decimal.Zero},
			{Username: "alice", Password: "b", Balance: decimal.Zero}, // duplicate
		},
		[]storage.ProductRecord{
			{Name: "Bad", Price: decimal.NewFromInt(-1), ImageRef: "x.png"}, // negative price
			{Name: "Good", Price: decimal.NewFromInt(1), ImageRef: "y.png"},
		},
	)
	svc, buf := newTestService(t, repo)
	svc.Load(context.Background())

	require.Len(t, svc.Catalog(), 1)
	require.Equal(t, "Good", svc.Catalog()[0].Name())

	sess, err := svc.Login(context.Background(), "alice", "a")
	require.NoError(t, err)
	require.Equal(t, "alice", sess.Username())

	require.Contains(t, buf.String(), "skipping product record")
	require.Contains(t, buf.String(), "skipping account record")
}

func TestStoreService_Register_Persists(t *testing.T) {
	repo := seedRepo()
	svc, _ := newTestService(t, repo)
	ctx := context.Background()
	svc.Load(ctx)

	account, err := svc.Register(ctx, "bob", "hunter2")
	require.NoError(t, err)
	require.Equal(t, "$0.00", account.BalanceString())

	saved, err := repo.LoadAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	require.Equal(t, "bob", saved[1].Username)
	require.Equal(t, "hunter2", saved[1].Password)
}

func TestStoreService_Register_Duplicate(t *testing.T) {
	svc, _ := newTestService(t, seedRepo())
	ctx := context.Background()
	svc.Load(ctx)

	_, err := svc.Register(ctx, "alice", "p2")
	require.ErrorIs(t, err, common.ErrDuplicateUsername)
}

func TestStoreService_Login(t *testing.T) {
	svc, _ := newTestService(t, seedRepo())
	ctx := context.Background()
	svc.Load(ctx)

	_, err := svc.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, common.ErrAuthenticationFailed)

	_, err = svc.Login(ctx, "nobody", "secret")
	require.ErrorIs(t, err, common.ErrAuthenticationFailed)

	sess, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	require.Equal(t, "alice", sess.Username())
}

func TestStoreService_Checkout_PersistsNewBalance(t *testing.T) {
	repo := seedRepo()
	svc, _ := newTestService(t, repo)
	ctx := context.Background()
	svc.Load(ctx)

	sess, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	shirt, err := svc.Product(0)
	require.NoError(t, err)
	sess.Account().Cart().AddItem(shirt)

	order, err := svc.Checkout(ctx, sess, "secret")
	require.NoError(t, err)
	require.Equal(t, "$27.79", order.TotalString()) // 19.99 + 7.80 shipping

	saved, err := repo.LoadAccounts(ctx)
	require.NoError(t, err)
	require.Equal(t, "72.21", saved[0].Balance.StringFixed(2))
}

func TestStoreService_Checkout_SaveFailureDoesNotRollBack(t *testing.T) {
	repo := &brokenRepo{MemoryRepository: seedRepo()}
	svc, buf := newTestService(t, repo)
	ctx := context.Background()
	svc.Load(ctx)

	sess, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	shirt, err := svc.Product(0)
	require.NoError(t, err)

	order, err := svc.BuyProduct(ctx, sess, shirt, "secret")
	require.ErrorIs(t, err, common.ErrPersistenceFailure)
	require.NotNil(t, order)

	// The purchase stays committed in memory; the failed save is a warning
	// plus a signal the caller can match.
	require.Equal(t, "$80.01", sess.Account().BalanceString())
	require.Len(t, sess.Account().Orders(), 1)
	require.Contains(t, buf.String(), "account data was not written")
	require.Contains(t, buf.String(), "disk on fire")
}

func TestStoreService_Register_SaveFailureIsSignaled(t *testing.T) {
	repo := &brokenRepo{MemoryRepository: seedRepo()}
	svc, buf := newTestService(t, repo)
	ctx := context.Background()
	svc.Load(ctx)

	account, err := svc.Register(ctx, "bob", "hunter2")
	require.ErrorIs(t, err, common.ErrPersistenceFailure)
	require.NotNil(t, account)

	// The account exists despite the failed save.
	sess, err := svc.Login(ctx, "bob", "hunter2")
	require.NoError(t, err)
	require.Equal(t, "bob", sess.Username())
	require.Contains(t, buf.String(), "account data was not written")
}

func TestStoreService_AddCredit_SaveFailureIsSignaled(t *testing.T) {
	repo := &brokenRepo{MemoryRepository: seedRepo()}
	svc, _ := newTestService(t, repo)
	ctx := context.Background()
	svc.Load(ctx)

	sess, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	err = svc.AddCredit(ctx, sess, decimal.NewFromInt(10))
	require.ErrorIs(t, err, common.ErrPersistenceFailure)
	require.Equal(t, "$110.00", sess.Account().BalanceString())
}

func TestStoreService_Checkout_FailedPurchaseDoesNotPersist(t *testing.T) {
	repo := seedRepo()
	svc, _ := newTestService(t, repo)
	ctx := context.Background()
	svc.Load(ctx)

	sess, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	shirt, err := svc.Product(0)
	require.NoError(t, err)
	sess.Account().Cart().AddItem(shirt)

	_, err = svc.Checkout(ctx, sess, "wrong")
	require.ErrorIs(t, err, common.ErrAuthenticationFailed)

	saved, err := repo.LoadAccounts(ctx)
	require.NoError(t, err)
	require.Equal(t, "100.00", saved[0].Balance.StringFixed(2))
}

func TestStoreService_NilSessionRejected(t *testing.T) {
	svc, _ := newTestService(t, seedRepo())
	ctx := context.Background()
	svc.Load(ctx)

	shirt, err := svc.Product(0)
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, nil, "pw")
	require.ErrorIs(t, err, common.ErrAuthenticationFailed)
	_, err = svc.BuyProduct(ctx, nil, shirt, "pw")
	require.ErrorIs(t, err, common.ErrAuthenticationFailed)
	err = svc.AddCredit(ctx, nil, decimal.NewFromInt(1))
	require.ErrorIs(t, err, common.ErrAuthenticationFailed)
	err = svc.ChangePassword(ctx, nil, "a", "b")
	require.ErrorIs(t, err, common.ErrAuthenticationFailed)
}

func TestStoreService_AddCreditAndChangePassword_Persist(t *testing.T) {
	repo := seedRepo()
	svc, _ := newTestService(t, repo)
	ctx := context.Background()
	svc.Load(ctx)

	sess, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	require.NoError(t, svc.AddCredit(ctx, sess, decimal.RequireFromString("25.50")))
	require.ErrorIs(t, svc.AddCredit(ctx, sess, decimal.NewFromInt(-1)), common.ErrInvalidArgument)

	require.NoError(t, svc.ChangePassword(ctx, sess, "secret", "better"))

	saved, err := repo.LoadAccounts(ctx)
	require.NoError(t, err)
	require.Equal(t, "125.50", saved[0].Balance.StringFixed(2))
	require.Equal(t, "better", saved[0].Password)
}

func TestStoreService_Search(t *testing.T) {
	svc, _ := newTestService(t, seedRepo())
	svc.Load(context.Background())

	results := svc.Search("shirt")
	require.Len(t, results, 2)
	require.Equal(t, "Red Shirt", results[0].Name())
	require.Equal(t, "Hat", results[1].Name()) // description-only match ranks last
}
