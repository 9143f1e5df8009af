// Package importer converts loosely-typed external rows (CSV dictionaries
// with inconsistent column names) into validated coin payloads.
package importer

import (
	"fmt"
	"strconv"
	"strings"

	"numis_go/internal/domain"

	"github.com/shopspring/decimal"
)

// Row is one source record: column name to raw text value.
type Row map[string]string

// Result summarizes a bulk import. Errors holds one human-readable message
// per rejected row.
type Result struct {
	Imported int
	Failed   int
	Errors   []string
}

// headerAliases maps historical column names onto the canonical schema.
// Earlier exports used a combined "denomination" column and a "grading"
// scale; both are still accepted.
var headerAliases = map[string]string{
	"mintmark":  "mint_mark",
	"grading":   "condition",
	"grade":     "condition",
	"location":  "storage",
	"comments":  "notes",
	"date":      "purchase_date",
	"price":     "purchase_price",
	"value_now": "current_value",
}

// foldHeader normalizes a column name: case-insensitive, spaces and dashes
// treated as underscores, known aliases rewritten.
func foldHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	if canonical, ok := headerAliases[h]; ok {
		return canonical
	}
	return h
}

// NormalizeRow maps a source row onto a validated Coin. Coercion is
// deliberately lenient: a year or price that fails to parse becomes absent
// and the row still imports. Only Entity Model validation (missing title,
// negative money) rejects a row.
func NormalizeRow(row Row) (domain.Coin, error) {
	fields := make(map[string]string, len(row))
	for k, v := range row {
		key := foldHeader(k)
		val := strings.TrimSpace(v)
		// An alias and its canonical column can both appear; a blank cell
		// never overrides a filled one.
		if val == "" && fields[key] != "" {
			continue
		}
		fields[key] = val
	}

	coin := domain.Coin{
		Title:     fields["title"],
		Country:   fields["country"],
		Unit:      fields["unit"],
		Mint:      fields["mint"],
		MintMark:  fields["mint_mark"],
		Status:    fields["status"],
		Condition: fields["condition"],
		Type:      fields["type"],
		Series:    fields["series"],
		Storage:   fields["storage"],
		Format:    fields["format"],
		Region:    fields["region"],
		Notes:     fields["notes"],
	}

	if y, err := strconv.Atoi(fields["year"]); err == nil {
		coin.Year = &y
	}

	coin.Quantity = 1
	if q, err := strconv.Atoi(fields["quantity"]); err == nil {
		coin.Quantity = q
	}

	coin.Value = parseNullDecimal(fields["value"])
	coin.PurchasePrice = parseNullDecimal(fields["purchase_price"])
	coin.CurrentValue = parseNullDecimal(fields["current_value"])
	coin.PurchaseDate = domain.ParseDate(fields["purchase_date"])

	// Deprecated combined column, e.g. "25 Cent". Explicit value/unit
	// columns win when both appear.
	if d := fields["denomination"]; d != "" && !coin.Value.Valid && coin.Unit == "" {
		coin.Value, coin.Unit = splitDenomination(d)
	}

	if err := domain.NormalizeCoin(&coin); err != nil {
		return domain.Coin{}, err
	}
	return coin, nil
}

// splitDenomination separates "25 Cent" into numeric value and unit. A
// denomination with no leading number ("Half Dollar") goes to the unit
// wholesale.
func splitDenomination(d string) (decimal.NullDecimal, string) {
	parts := strings.Fields(d)
	if len(parts) == 0 {
		return decimal.NullDecimal{}, ""
	}
	if v, err := decimal.NewFromString(strings.TrimPrefix(parts[0], "$")); err == nil {
		return decimal.NewNullDecimal(v), strings.Join(parts[1:], " ")
	}
	return decimal.NullDecimal{}, strings.Join(parts, " ")
}

func parseNullDecimal(s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	s = strings.TrimPrefix(s, "$")
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(v)
}

// RowLabel identifies a row in error messages: its title when present,
// otherwise its 1-based position.
func RowLabel(row Row, index int) string {
	for k, v := range row {
		if foldHeader(k) == "title" && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return fmt.Sprintf("row %d", index+1)
}
