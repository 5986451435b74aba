// Package admin aggregates platform-wide figures across every registered
// business for the admin dashboard.
package admin

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/shopsight/internal/account"
	"github.com/MrJamesThe3rd/shopsight/internal/record"
)

// Overview summarizes the whole platform.
type Overview struct {
	Businesses      int `json:"businesses"`
	SalesRecords    int `json:"sales_records"`
	RegisteredToday int `json:"registered_today"`
	RegisteredWeek  int `json:"registered_this_week"`
}

// Business is one row of the admin's business list. Admin accounts are not
// listed.
type Business struct {
	Username     string               `json:"username"`
	BusinessName string               `json:"business_name"`
	BusinessType account.BusinessType `json:"business_type"`
	Sales        int                  `json:"sales"`
	Revenue      decimal.Decimal      `json:"revenue"`
	Registered   time.Time            `json:"registered"`
}

type Service struct {
	accounts *account.Service
	records  *record.Service
}

func NewService(accounts *account.Service, records *record.Service) *Service {
	return &Service{accounts: accounts, records: records}
}

// Businesses lists every non-admin account with its sales count and revenue,
// ordered by username.
func (s *Service) Businesses(ctx context.Context) ([]Business, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	var businesses []Business

	for _, acc := range accounts {
		if acc.Role == account.RoleAdmin {
			continue
		}

		sales, err := s.records.Sales(ctx, acc.Username)
		if err != nil {
			return nil, fmt.Errorf("loading sales for %s: %w", acc.Username, err)
		}

		revenue := decimal.Zero
		for _, sale := range sales {
			revenue = revenue.Add(sale.TotalAmount)
		}

		businesses = append(businesses, Business{
			Username:     acc.Username,
			BusinessName: acc.BusinessName,
			BusinessType: acc.BusinessType,
			Sales:        len(sales),
			Revenue:      revenue,
			Registered:   acc.CreatedAt,
		})
	}

	return businesses, nil
}

// Overview computes the platform totals from the business list.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	businesses, err := s.Businesses(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	o := &Overview{Businesses: len(businesses)}

	for _, b := range businesses {
		o.SalesRecords += b.Sales

		if age := now.Sub(b.Registered); age < 24*time.Hour {
			o.RegisteredToday++
		}

		if age := now.Sub(b.Registered); age < 7*24*time.Hour {
			o.RegisteredWeek++
		}
	}

	return o, nil
}

// WriteCSV writes the business list as a CSV download.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer) error {
	businesses, err := s.Businesses(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)

	header := []string{"username", "business_name", "business_type", "sales", "revenue", "registered"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, b := range businesses {
		row := []string{
			b.Username,
			b.BusinessName,
			string(b.BusinessType),
			strconv.Itoa(b.Sales),
			b.Revenue.StringFixed(2),
			b.Registered.Format(time.DateOnly),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

// Filename returns the suggested download name for the business list.
func Filename() string {
	return fmt.Sprintf("businesses_%s.csv", time.Now().Format("20060102"))
}
