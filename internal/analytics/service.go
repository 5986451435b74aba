package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/shopsight/internal/record"
)

// Service runs the engine against an account's persisted records. Every call
// recomputes from the store; nothing is cached.
type Service struct {
	records *record.Service
	engine  *Engine
}

func NewService(records *record.Service, engine *Engine) *Service {
	return &Service{records: records, engine: engine}
}

type snapshot struct {
	sales     []record.Sale
	inventory []record.InventoryItem
	orders    []record.Order
	debts     []record.Debt
}

func (s *Service) load(ctx context.Context, username string) (*snapshot, error) {
	sales, err := s.records.Sales(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("loading sales: %w", err)
	}

	inventory, err := s.records.Inventory(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("loading inventory: %w", err)
	}

	orders, err := s.records.Orders(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("loading orders: %w", err)
	}

	debts, err := s.records.Debts(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("loading debts: %w", err)
	}

	return &snapshot{sales: sales, inventory: inventory, orders: orders, debts: debts}, nil
}

// Metrics returns the account's aggregate figures, or nil when it has no
// sales yet.
func (s *Service) Metrics(ctx context.Context, username string) (*Metrics, error) {
	snap, err := s.load(ctx, username)
	if err != nil {
		return nil, err
	}

	return s.engine.Compute(snap.sales, snap.inventory, snap.orders, snap.debts), nil
}

func (s *Service) Insights(ctx context.Context, username string) ([]Insight, error) {
	snap, err := s.load(ctx, username)
	if err != nil {
		return nil, err
	}

	m := s.engine.Compute(snap.sales, snap.inventory, snap.orders, snap.debts)

	return s.engine.Insights(m, snap.sales, snap.inventory), nil
}

func (s *Service) Products(ctx context.Context, username string) ([]ProductStat, error) {
	sales, err := s.records.Sales(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("loading sales: %w", err)
	}

	return ProductPerformance(sales), nil
}

func (s *Service) Projection(ctx context.Context, username string) (decimal.Decimal, error) {
	sales, err := s.records.Sales(ctx, username)
	if err != nil {
		return decimal.Zero, fmt.Errorf("loading sales: %w", err)
	}

	return s.engine.PredictMonthlyRevenue(sales), nil
}

func (s *Service) Daily(ctx context.Context, username string, p Period) ([]DailyStat, error) {
	sales, err := s.records.Sales(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("loading sales: %w", err)
	}

	return DailyRevenue(FilterSalesByPeriod(sales, p, time.Now())), nil
}
