package postgres

import (
	"context"
	"database/sql"

	"github.com/MrJamesThe3rd/shopsight/internal/record"
)

type RecordStore struct {
	db *sql.DB
}

func NewRecordStore(db *sql.DB) *RecordStore {
	return &RecordStore{db: db}
}

func (s *RecordStore) GetSales(ctx context.Context, username string) ([]record.Sale, error) {
	return getRecords[record.Sale](ctx, s.db, username, string(record.CollectionSales))
}

func (s *RecordStore) AppendSale(ctx context.Context, username string, sale record.Sale) error {
	return appendRecord(ctx, s.db, username, string(record.CollectionSales), sale)
}

func (s *RecordStore) ReplaceSales(ctx context.Context, username string, sales []record.Sale) error {
	return replaceRecords(ctx, s.db, username, string(record.CollectionSales), sales)
}

func (s *RecordStore) GetInventory(ctx context.Context, username string) ([]record.InventoryItem, error) {
	return getRecords[record.InventoryItem](ctx, s.db, username, string(record.CollectionInventory))
}

func (s *RecordStore) AppendInventoryItem(ctx context.Context, username string, item record.InventoryItem) error {
	return appendRecord(ctx, s.db, username, string(record.CollectionInventory), item)
}

func (s *RecordStore) ReplaceInventory(ctx context.Context, username string, items []record.InventoryItem) error {
	return replaceRecords(ctx, s.db, username, string(record.CollectionInventory), items)
}

func (s *RecordStore) GetOrders(ctx context.Context, username string) ([]record.Order, error) {
	return getRecords[record.Order](ctx, s.db, username, string(record.CollectionOrders))
}

func (s *RecordStore) AppendOrder(ctx context.Context, username string, order record.Order) error {
	return appendRecord(ctx, s.db, username, string(record.CollectionOrders), order)
}

func (s *RecordStore) ReplaceOrders(ctx context.Context, username string, orders []record.Order) error {
	return replaceRecords(ctx, s.db, username, string(record.CollectionOrders), orders)
}

func (s *RecordStore) GetDebts(ctx context.Context, username string) ([]record.Debt, error) {
	return getRecords[record.Debt](ctx, s.db, username, string(record.CollectionDebts))
}

func (s *RecordStore) AppendDebt(ctx context.Context, username string, debt record.Debt) error {
	return appendRecord(ctx, s.db, username, string(record.CollectionDebts), debt)
}

func (s *RecordStore) ReplaceDebts(ctx context.Context, username string, debts []record.Debt) error {
	return replaceRecords(ctx, s.db, username, string(record.CollectionDebts), debts)
}
