package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/shopsight/internal/record"
)

// Service writes a business's record collections as CSV downloads.
type Service struct {
	records *record.Service
}

func NewService(records *record.Service) *Service {
	return &Service{records: records}
}

// Filename returns the suggested download name for a collection export,
// e.g. "sales_20250607.csv".
func Filename(c record.Collection) string {
	return fmt.Sprintf("%s_%s.csv", c, time.Now().Format("20060102"))
}

// WriteCSV writes the named collection of a business as CSV. Money columns
// use two decimal places, dates are ISO, and an empty collection still gets
// its header row.
func (s *Service) WriteCSV(ctx context.Context, username string, c record.Collection, w io.Writer) error {
	cw := csv.NewWriter(w)

	var err error

	switch c {
	case record.CollectionSales:
		err = s.writeSales(ctx, username, cw)
	case record.CollectionInventory:
		err = s.writeInventory(ctx, username, cw)
	case record.CollectionOrders:
		err = s.writeOrders(ctx, username, cw)
	case record.CollectionDebts:
		err = s.writeDebts(ctx, username, cw)
	default:
		return fmt.Errorf("unknown collection %q", c)
	}

	if err != nil {
		return err
	}

	cw.Flush()

	return cw.Error()
}

// ExportFile writes the collection to a file under dir and returns its path.
func (s *Service) ExportFile(ctx context.Context, username string, c record.Collection, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, Filename(c))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := s.WriteCSV(ctx, username, c, f); err != nil {
		return "", err
	}

	return path, nil
}

func (s *Service) writeSales(ctx context.Context, username string, cw *csv.Writer) error {
	sales, err := s.records.Sales(ctx, username)
	if err != nil {
		return fmt.Errorf("listing sales: %w", err)
	}

	header := []string{"id", "product", "quantity", "unit_price", "total_amount", "cost", "profit", "customer", "date"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, sale := range sales {
		row := []string{
			strconv.Itoa(sale.ID),
			sale.Product,
			strconv.Itoa(sale.Quantity),
			money(sale.UnitPrice),
			money(sale.TotalAmount),
			money(sale.Cost),
			money(sale.Profit),
			sale.Customer,
			sale.Date.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) writeInventory(ctx context.Context, username string, cw *csv.Writer) error {
	items, err := s.records.Inventory(ctx, username)
	if err != nil {
		return fmt.Errorf("listing inventory: %w", err)
	}

	header := []string{"id", "name", "quantity", "unit_price", "category", "reorder_level", "supplier", "notes", "added_date"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, item := range items {
		row := []string{
			strconv.Itoa(item.ID),
			item.Name,
			strconv.Itoa(item.Quantity),
			money(item.UnitPrice),
			string(item.Category),
			strconv.Itoa(item.ReorderLevel),
			item.Supplier,
			item.Notes,
			item.AddedDate.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) writeOrders(ctx context.Context, username string, cw *csv.Writer) error {
	orders, err := s.records.Orders(ctx, username)
	if err != nil {
		return fmt.Errorf("listing orders: %w", err)
	}

	header := []string{"id", "description", "amount", "customer", "status", "order_date", "due_date", "notes"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, order := range orders {
		row := []string{
			strconv.Itoa(order.ID),
			order.Description,
			money(order.Amount),
			order.Customer,
			string(order.Status),
			order.OrderDate.String(),
			order.DueDate.String(),
			order.Notes,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) writeDebts(ctx context.Context, username string, cw *csv.Writer) error {
	debts, err := s.records.Debts(ctx, username)
	if err != nil {
		return fmt.Errorf("listing debts: %w", err)
	}

	header := []string{"id", "debtor", "amount", "type", "status", "debt_date", "due_date", "notes"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, debt := range debts {
		row := []string{
			strconv.Itoa(debt.ID),
			debt.Debtor,
			money(debt.Amount),
			string(debt.Type),
			string(debt.Status),
			debt.DebtDate.String(),
			debt.DueDate.String(),
			debt.Notes,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
