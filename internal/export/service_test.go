package export_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/shopsight/internal/export"
	"github.com/MrJamesThe3rd/shopsight/internal/record"
)

func newTestService(t *testing.T) (*export.Service, *record.MockStore) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	store := record.NewMockStore(ctrl)

	return export.NewService(record.NewService(store)), store
}

func TestService_WriteCSV_Sales(t *testing.T) {
	svc, store := newTestService(t)

	sales := []record.Sale{
		{
			ID:          1,
			Product:     "Rice 5kg",
			Quantity:    4,
			UnitPrice:   decimal.NewFromInt(60),
			TotalAmount: decimal.NewFromInt(240),
			Cost:        decimal.NewFromInt(180),
			Profit:      decimal.NewFromInt(60),
			Customer:    "Asha",
			Date:        record.NewDate(2025, time.June, 1),
		},
		{
			ID:          2,
			Product:     "Cooking Oil, 1L",
			Quantity:    2,
			UnitPrice:   decimal.NewFromInt(150),
			TotalAmount: decimal.NewFromInt(300),
			Cost:        decimal.NewFromInt(240),
			Profit:      decimal.NewFromInt(60),
			Customer:    "N/A",
			Date:        record.NewDate(2025, time.June, 2),
		},
	}

	store.EXPECT().GetSales(gomock.Any(), "asha").Return(sales, nil)

	var buf bytes.Buffer
	err := svc.WriteCSV(context.Background(), "asha", record.CollectionSales, &buf)
	require.NoError(t, err)

	want := `id,product,quantity,unit_price,total_amount,cost,profit,customer,date
1,Rice 5kg,4,60.00,240.00,180.00,60.00,Asha,2025-06-01
2,"Cooking Oil, 1L",2,150.00,300.00,240.00,60.00,N/A,2025-06-02
`
	assert.Equal(t, want, buf.String())
}

func TestService_WriteCSV_EmptyCollection(t *testing.T) {
	svc, store := newTestService(t)

	store.EXPECT().GetDebts(gomock.Any(), "asha").Return(nil, nil)

	var buf bytes.Buffer
	err := svc.WriteCSV(context.Background(), "asha", record.CollectionDebts, &buf)
	require.NoError(t, err)

	assert.Equal(t, "id,debtor,amount,type,status,debt_date,due_date,notes\n", buf.String())
}

func TestService_WriteCSV_UnknownCollection(t *testing.T) {
	svc, _ := newTestService(t)

	var buf bytes.Buffer
	err := svc.WriteCSV(context.Background(), "asha", record.Collection("users"), &buf)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown collection")
}

func TestService_ExportFile(t *testing.T) {
	svc, store := newTestService(t)

	orders := []record.Order{
		{
			ID:          1,
			Description: "Wedding cake",
			Amount:      decimal.NewFromInt(2500),
			Customer:    "Juma",
			Status:      record.OrderPending,
			OrderDate:   record.NewDate(2025, time.June, 5),
			DueDate:     record.NewDate(2025, time.June, 20),
		},
	}

	store.EXPECT().GetOrders(gomock.Any(), "asha").Return(orders, nil)

	dir := filepath.Join(t.TempDir(), "exports")
	path, err := svc.ExportFile(context.Background(), "asha", record.CollectionOrders, dir)
	require.NoError(t, err)
	assert.Equal(t, export.Filename(record.CollectionOrders), filepath.Base(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,description,amount,customer,status,order_date,due_date,notes", lines[0])
	assert.Equal(t, "1,Wedding cake,2500.00,Juma,pending,2025-06-05,2025-06-20,", lines[1])
}

func TestFilename(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^sales_\d{8}\.csv$`), export.Filename(record.CollectionSales))
	assert.Regexp(t, regexp.MustCompile(`^inventory_\d{8}\.csv$`), export.Filename(record.CollectionInventory))
}
