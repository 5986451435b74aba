package flatfile

import (
	"context"

	"github.com/MrJamesThe3rd/shopsight/internal/record"
)

const (
	salesFile     = "sales.json"
	inventoryFile = "inventory.json"
	ordersFile    = "orders.json"
	debtsFile     = "debts.json"
)

// RecordStore keeps each record collection in its own file, preserving
// insertion order per account.
type RecordStore struct {
	db *DB
}

func NewRecordStore(db *DB) *RecordStore {
	return &RecordStore{db: db}
}

func (s *RecordStore) GetSales(ctx context.Context, username string) ([]record.Sale, error) {
	return getList[record.Sale](s.db, salesFile, username)
}

func (s *RecordStore) AppendSale(ctx context.Context, username string, sale record.Sale) error {
	return appendItem(s.db, salesFile, username, sale)
}

func (s *RecordStore) ReplaceSales(ctx context.Context, username string, sales []record.Sale) error {
	return replaceList(s.db, salesFile, username, sales)
}

func (s *RecordStore) GetInventory(ctx context.Context, username string) ([]record.InventoryItem, error) {
	return getList[record.InventoryItem](s.db, inventoryFile, username)
}

func (s *RecordStore) AppendInventoryItem(ctx context.Context, username string, item record.InventoryItem) error {
	return appendItem(s.db, inventoryFile, username, item)
}

func (s *RecordStore) ReplaceInventory(ctx context.Context, username string, items []record.InventoryItem) error {
	return replaceList(s.db, inventoryFile, username, items)
}

func (s *RecordStore) GetOrders(ctx context.Context, username string) ([]record.Order, error) {
	return getList[record.Order](s.db, ordersFile, username)
}

func (s *RecordStore) AppendOrder(ctx context.Context, username string, order record.Order) error {
	return appendItem(s.db, ordersFile, username, order)
}

func (s *RecordStore) ReplaceOrders(ctx context.Context, username string, orders []record.Order) error {
	return replaceList(s.db, ordersFile, username, orders)
}

func (s *RecordStore) GetDebts(ctx context.Context, username string) ([]record.Debt, error) {
	return getList[record.Debt](s.db, debtsFile, username)
}

func (s *RecordStore) AppendDebt(ctx context.Context, username string, debt record.Debt) error {
	return appendItem(s.db, debtsFile, username, debt)
}

func (s *RecordStore) ReplaceDebts(ctx context.Context, username string, debts []record.Debt) error {
	return replaceList(s.db, debtsFile, username, debts)
}
