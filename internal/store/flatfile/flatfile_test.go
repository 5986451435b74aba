package flatfile_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/shopsight/internal/account"
	"github.com/MrJamesThe3rd/shopsight/internal/matching"
	"github.com/MrJamesThe3rd/shopsight/internal/record"
	"github.com/MrJamesThe3rd/shopsight/internal/store/flatfile"
)

func testSale(id int, product string, amount int64) record.Sale {
	return record.Sale{
		ID:          id,
		Product:     product,
		Quantity:    1,
		UnitPrice:   decimal.NewFromInt(amount),
		TotalAmount: decimal.NewFromInt(amount),
		Cost:        decimal.Zero,
		Profit:      decimal.NewFromInt(amount),
		Customer:    "N/A",
		Date:        record.NewDate(2025, 6, 1),
	}
}

func TestRecordStore_AppendAndGet(t *testing.T) {
	db, err := flatfile.Open(t.TempDir())
	require.NoError(t, err)

	store := flatfile.NewRecordStore(db)
	ctx := context.Background()

	got, err := store.GetSales(ctx, "asha")
	require.NoError(t, err)
	assert.Empty(t, got)

	first := testSale(1, "Rice 5kg", 240)
	second := testSale(2, "Soap", 10)

	require.NoError(t, store.AppendSale(ctx, "asha", first))
	require.NoError(t, store.AppendSale(ctx, "asha", second))
	require.NoError(t, store.AppendSale(ctx, "juma", testSale(1, "Paint 5L", 90)))

	got, err = store.GetSales(ctx, "asha")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first, got[0])
	assert.Equal(t, second, got[1])

	// accounts are isolated from each other
	other, err := store.GetSales(ctx, "juma")
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, "Paint 5L", other[0].Product)
}

func TestRecordStore_Replace(t *testing.T) {
	db, err := flatfile.Open(t.TempDir())
	require.NoError(t, err)

	store := flatfile.NewRecordStore(db)
	ctx := context.Background()

	require.NoError(t, store.AppendSale(ctx, "asha", testSale(1, "Rice 5kg", 240)))

	updated := []record.Sale{
		testSale(1, "Rice 5kg", 240),
		testSale(2, "Soap", 10),
		testSale(3, "Cooking Oil", 18),
	}
	require.NoError(t, store.ReplaceSales(ctx, "asha", updated))

	got, err := store.GetSales(ctx, "asha")
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestRecordStore_PersistsAcrossHandles(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	db, err := flatfile.Open(dir)
	require.NoError(t, err)
	require.NoError(t, flatfile.NewRecordStore(db).AppendDebt(ctx, "asha", record.Debt{
		ID:     1,
		Debtor: "Juma Hardware",
		Amount: decimal.NewFromInt(250),
		Type:   record.DebtReceivable,
		Status: record.DebtPending,
	}))

	reopened, err := flatfile.Open(dir)
	require.NoError(t, err)

	got, err := flatfile.NewRecordStore(reopened).GetDebts(ctx, "asha")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Juma Hardware", got[0].Debtor)
	assert.Equal(t, record.DebtPending, got[0].Status)
}

func TestAccountStore(t *testing.T) {
	db, err := flatfile.Open(t.TempDir())
	require.NoError(t, err)

	store := flatfile.NewAccountStore(db)
	ctx := context.Background()

	_, err = store.GetAccount(ctx, "asha")
	assert.ErrorIs(t, err, account.ErrNotFound)

	acc := &account.Account{
		Username:     "asha",
		PasswordHash: "$2a$10$fake",
		Role:         account.RoleUser,
		BusinessName: "Asha General Store",
		BusinessType: account.BusinessRetailShop,
		CreatedAt:    time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.CreateAccount(ctx, acc))

	err = store.CreateAccount(ctx, acc)
	assert.ErrorIs(t, err, account.ErrExists)

	got, err := store.GetAccount(ctx, "asha")
	require.NoError(t, err)
	assert.Equal(t, acc, got)

	require.NoError(t, store.CreateAccount(ctx, &account.Account{
		Username: "juma",
		Role:     account.RoleUser,
	}))

	all, err := store.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "asha", all[0].Username)
	assert.Equal(t, "juma", all[1].Username)
}

func TestAliasStore(t *testing.T) {
	db, err := flatfile.Open(t.TempDir())
	require.NoError(t, err)

	store := flatfile.NewAliasStore(db)
	ctx := context.Background()

	got, err := store.ListAliases(ctx, "asha")
	require.NoError(t, err)
	assert.Empty(t, got)

	alias := matching.Alias{
		Pattern:   "rice",
		Product:   "Rice 5kg",
		CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.SaveAlias(ctx, "asha", alias))

	got, err = store.ListAliases(ctx, "asha")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, alias, got[0])
}
