package domain

import (
	"strings"
	"time"
)

// dateLayout is the only accepted wire format for dates.
const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string. Anything unparseable yields nil
// rather than an error; imported rows with odd dates keep their other
// fields instead of failing the row.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// FormatDate renders a date in the wire format, empty string for absent.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// NormalizeCoin trims and validates a coin in place so every entry path
// (add dialog, edit, bulk import) stores the same shape:
//
//   - blank-string fields become empty (absent), never "  "
//   - quantity below 1 is coerced to 1
//   - title must be non-empty
//   - monetary fields must be non-negative when present
func NormalizeCoin(c *Coin) error {
	c.Title = strings.TrimSpace(c.Title)
	c.Country = strings.TrimSpace(c.Country)
	c.Unit = strings.TrimSpace(c.Unit)
	c.Mint = strings.TrimSpace(c.Mint)
	c.MintMark = strings.TrimSpace(c.MintMark)
	c.Status = strings.TrimSpace(c.Status)
	c.Condition = strings.TrimSpace(c.Condition)
	c.Type = strings.TrimSpace(c.Type)
	c.Series = strings.TrimSpace(c.Series)
	c.Storage = strings.TrimSpace(c.Storage)
	c.Format = strings.TrimSpace(c.Format)
	c.Region = strings.TrimSpace(c.Region)
	c.Notes = strings.TrimSpace(c.Notes)

	if c.Title == "" {
		return &ValidationError{Field: "title", Reason: "title is required"}
	}

	if c.Quantity < 1 {
		c.Quantity = 1
	}

	if c.Value.Valid && c.Value.Decimal.IsNegative() {
		return &ValidationError{Field: "value", Reason: "face value cannot be negative"}
	}
	if c.PurchasePrice.Valid && c.PurchasePrice.Decimal.IsNegative() {
		return &ValidationError{Field: "purchase_price", Reason: "purchase price cannot be negative"}
	}
	if c.CurrentValue.Valid && c.CurrentValue.Decimal.IsNegative() {
		return &ValidationError{Field: "current_value", Reason: "current value cannot be negative"}
	}

	return nil
}

// NormalizeImage validates an image attachment. An empty side defaults to
// obverse, matching what the add dialog preselects.
func NormalizeImage(img *CoinImage) error {
	img.ImagePath = strings.TrimSpace(img.ImagePath)
	img.Side = strings.TrimSpace(img.Side)

	if img.ImagePath == "" {
		return &ValidationError{Field: "image_path", Reason: "image path is required"}
	}
	switch img.Side {
	case "":
		img.Side = SideObverse
	case SideObverse, SideReverse:
	default:
		return &ValidationError{Field: "side", Reason: "side must be obverse or reverse"}
	}
	return nil
}

// NormalizeGoal validates a collecting goal.
func NormalizeGoal(g *Goal) error {
	g.Title = strings.TrimSpace(g.Title)
	g.Description = strings.TrimSpace(g.Description)

	if g.Title == "" {
		return &ValidationError{Field: "title", Reason: "title is required"}
	}
	if g.Target < 1 {
		return &ValidationError{Field: "target", Reason: "target must be at least 1"}
	}
	return nil
}
