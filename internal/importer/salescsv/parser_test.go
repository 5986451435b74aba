package salescsv_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/shopsight/internal/importer/salescsv"
	"github.com/MrJamesThe3rd/shopsight/internal/record"
)

func date(y, m, d int) record.Date {
	return record.NewDate(y, time.Month(m), d)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParser_Ledger(t *testing.T) {
	csv := `id,product,quantity,unit_price,total_amount,cost,profit,customer,date
1,Rice 5kg,4,60,240,180,60,Asha,2025-06-01
2,Cooking Oil,2,150,300,240,60,N/A,2025-06-02
3,Candles,3,40,120,100,20,,2025-06-03
`

	p := salescsv.NewParser()
	sales, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, sales, 3)

	assert.Equal(t, "Rice 5kg", sales[0].Product)
	assert.Equal(t, 4, sales[0].Quantity)
	assert.True(t, sales[0].UnitPrice.Equal(dec("60")), sales[0].UnitPrice)
	assert.True(t, sales[0].CostPerUnit.Equal(dec("45")), sales[0].CostPerUnit)
	assert.Equal(t, "Asha", sales[0].Customer)
	assert.Equal(t, date(2025, 6, 1), sales[0].Date)

	assert.Equal(t, "Cooking Oil", sales[1].Product)
	assert.True(t, sales[1].CostPerUnit.Equal(dec("120")), sales[1].CostPerUnit)
	assert.Equal(t, "N/A", sales[1].Customer)
	assert.Equal(t, date(2025, 6, 2), sales[1].Date)

	// Uneven total cost is split per unit at 4 decimal places.
	assert.True(t, sales[2].CostPerUnit.Equal(dec("33.3333")), sales[2].CostPerUnit)
	assert.Empty(t, sales[2].Customer)
}

func TestParser_Spreadsheet(t *testing.T) {
	csv := `Suma Stores - weekly sales
Prepared by,Suma

Date,Product,Quantity,Unit Price,Cost Per Unit,Customer
07-06-2025,Soap,10,25,18,Walk-in
08/06/2025,Batteries AA,5,30,20,
`

	p := salescsv.NewParser()
	sales, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, sales, 2)

	assert.Equal(t, "Soap", sales[0].Product)
	assert.Equal(t, 10, sales[0].Quantity)
	assert.True(t, sales[0].UnitPrice.Equal(dec("25")), sales[0].UnitPrice)
	assert.True(t, sales[0].CostPerUnit.Equal(dec("18")), sales[0].CostPerUnit)
	assert.Equal(t, "Walk-in", sales[0].Customer)
	assert.Equal(t, date(2025, 6, 7), sales[0].Date)

	assert.Equal(t, "Batteries AA", sales[1].Product)
	assert.True(t, sales[1].CostPerUnit.Equal(dec("20")), sales[1].CostPerUnit)
	assert.Empty(t, sales[1].Customer)
	assert.Equal(t, date(2025, 6, 8), sales[1].Date)
}

func TestParser_Windows1252Encoding(t *testing.T) {
	utf8CSV := "date,product,quantity,unit_price\n2025-06-01,Café Mix,2,120\n"

	encoder := charmap.Windows1252.NewEncoder()
	legacyBytes, err := encoder.Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	p := salescsv.NewParser()
	sales, err := p.Parse(bytes.NewReader(legacyBytes))
	require.NoError(t, err)
	require.Len(t, sales, 1)

	assert.Equal(t, "Café Mix", sales[0].Product)
}

func TestParser_DifferentColumnOrder(t *testing.T) {
	csv := `quantity,customer,product,unit_price,date,extra
3,,Sugar 1kg,42,2025-06-03,ignored
`

	p := salescsv.NewParser()
	sales, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, sales, 1)

	assert.Equal(t, "Sugar 1kg", sales[0].Product)
	assert.Equal(t, 3, sales[0].Quantity)
	assert.True(t, sales[0].UnitPrice.Equal(dec("42")), sales[0].UnitPrice)
}

func TestParser_EmptyFile(t *testing.T) {
	p := salescsv.NewParser()
	_, err := p.Parse(strings.NewReader(""))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no matching sales layout")
}

func TestParser_HeaderOnly(t *testing.T) {
	csv := `date,product,quantity,unit_price`

	p := salescsv.NewParser()
	sales, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestParser_MissingProduct(t *testing.T) {
	csv := `date,product,quantity,unit_price
2025-06-01,,3,10
`

	p := salescsv.NewParser()
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "product")
}

func TestParser_MissingCostColumn(t *testing.T) {
	csv := `date,product,quantity,unit_price
2025-06-01,Soap,2,25
`

	p := salescsv.NewParser()
	sales, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, sales, 1)

	assert.True(t, sales[0].CostPerUnit.IsZero())
}

func TestParser_ThousandsSeparators(t *testing.T) {
	csv := `date,product,quantity,unit_price
2025-06-01,Generator,1,"12,500.00"
`

	p := salescsv.NewParser()
	sales, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, sales, 1)

	assert.True(t, sales[0].UnitPrice.Equal(dec("12500")), sales[0].UnitPrice)
}

func TestParser_SkipsFooterRows(t *testing.T) {
	csv := `date,product,quantity,unit_price
2025-06-01,Soap,2,25
Total,,,50
`

	p := salescsv.NewParser()
	sales, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, sales, 1)
}

func TestParser_SkipsBadQuantities(t *testing.T) {
	csv := `date,product,quantity,unit_price
2025-06-01,Soap,two,25
2025-06-02,Soap,0,25
2025-06-03,Soap,3,25
`

	p := salescsv.NewParser()
	sales, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, sales, 1)

	assert.Equal(t, date(2025, 6, 3), sales[0].Date)
}
