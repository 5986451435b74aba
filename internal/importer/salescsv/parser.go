package salescsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/shopsight/internal/encoding"
	"github.com/MrJamesThe3rd/shopsight/internal/record"
)

// Parser reads sales CSV files and produces sale params. It auto-detects
// which layout (ledger export, spreadsheet) is being used by matching column
// headers against known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]record.SaleParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, colMap, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching sales layout found: expected ledger or spreadsheet columns")
	}

	return parseRows(profile, colMap, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// idx returns the index of a column, or -1 when the header lacks it.
func (c colIndex) idx(name string) int {
	i, ok := c[name]
	if !ok {
		return -1
	}

	return i
}

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// matchesProfile checks if all required columns of a profile are present.
func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts sale params from data rows using the matched profile.
// headerRowNum is the 0-based index of the header in the original file (for error messages).
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]record.SaleParams, error) {
	dateIdx := cols[p.DateCol]
	productIdx := cols[p.ProductCol]
	qtyIdx := cols[p.QuantityCol]
	priceIdx := cols[p.PriceCol]
	costIdx := cols.idx(p.CostCol)
	customerIdx := cols.idx(p.CustomerCol)

	var sales []record.SaleParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		date, ok := parseDate(row, dateIdx)
		if !ok {
			continue
		}

		product := cellValue(row, productIdx)
		if product == "" {
			return nil, fmt.Errorf("row %d: missing product", rowNum)
		}

		qty, ok := parseQuantity(cellValue(row, qtyIdx))
		if !ok {
			continue
		}

		price, err := parseAmount(cellValue(row, priceIdx))
		if err != nil || price.IsNegative() {
			continue
		}

		sales = append(sales, record.SaleParams{
			Product:     product,
			Quantity:    qty,
			UnitPrice:   price,
			CostPerUnit: parseCost(p, row, costIdx, qty),
			Customer:    cellValue(row, customerIdx),
			Date:        date,
		})
	}

	return sales, nil
}

// dateFormats are tried in order. Ledger exports carry ISO dates,
// spreadsheets commonly day-first ones.
var dateFormats = []string{"2006-01-02", "02-01-2006", "02/01/2006"}

// parseDate tries to parse a date from the given cell index.
// Returns false for empty cells or unparseable values (footer rows, etc).
func parseDate(row []string, idx int) (record.Date, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return record.Date{}, false
	}

	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return record.DateOf(t), true
		}
	}

	return record.Date{}, false
}

// parseQuantity accepts positive whole quantities. Anything else marks the
// row as noise (totals, subheadings) and the row is skipped.
func parseQuantity(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}

	return n, true
}

// parseCost reads the optional cost column. Missing or unparseable costs
// yield zero rather than dropping the row.
func parseCost(p *Profile, row []string, costIdx, qty int) decimal.Decimal {
	s := cellValue(row, costIdx)
	if s == "" {
		return decimal.Zero
	}

	cost, err := parseAmount(s)
	if err != nil || cost.IsNegative() {
		return decimal.Zero
	}

	if p.CostMode == costTotal {
		return cost.DivRound(decimal.NewFromInt(int64(qty)), 4)
	}

	return cost
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
