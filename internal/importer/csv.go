package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"numis_go/internal/domain"

	"github.com/shopspring/decimal"
)

// ExportColumns is the fixed header order for collection exports. The names
// are the canonical field names, so an exported file re-imports through
// NormalizeRow without a mapping step.
var ExportColumns = []string{
	"title", "year", "country", "value", "unit", "mint", "mint_mark",
	"condition", "type", "series", "status", "format", "region", "storage",
	"quantity", "purchase_date", "purchase_price", "current_value", "notes",
}

// ReadRows parses delimited input with a header line into one Row per
// record, the shape NormalizeRow expects.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(rows)+1, err)
		}
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ExportCSV writes the collection in ExportColumns order. Absent optional
// fields export as empty cells and come back absent on re-import.
func ExportCSV(w io.Writer, coins []domain.Coin) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportColumns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := range coins {
		if err := cw.Write(exportRecord(&coins[i])); err != nil {
			return fmt.Errorf("writing coin %d: %w", coins[i].ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func exportRecord(c *domain.Coin) []string {
	year := ""
	if c.Year != nil {
		year = strconv.Itoa(*c.Year)
	}
	return []string{
		c.Title,
		year,
		c.Country,
		formatNullDecimal(c.Value),
		c.Unit,
		c.Mint,
		c.MintMark,
		c.Condition,
		c.Type,
		c.Series,
		c.Status,
		c.Format,
		c.Region,
		c.Storage,
		strconv.Itoa(c.Quantity),
		domain.FormatDate(c.PurchaseDate),
		formatNullDecimal(c.PurchasePrice),
		formatNullDecimal(c.CurrentValue),
		c.Notes,
	}
}

func formatNullDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
