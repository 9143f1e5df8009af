package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CoinPatch is a partial update: nil fields are left untouched. Optional
// monetary fields use NullDecimal so a patch can also clear them; the two
// Clear flags cover the remaining optional fields.
type CoinPatch struct {
	Title     *string
	Year      *int
	Country   *string
	Value     *decimal.NullDecimal
	Unit      *string
	Mint      *string
	MintMark  *string
	Status    *string
	Condition *string
	Type      *string
	Series    *string
	Storage   *string
	Format    *string
	Region    *string
	Quantity  *int
	Notes     *string

	PurchaseDate  *time.Time
	PurchasePrice *decimal.NullDecimal
	CurrentValue  *decimal.NullDecimal

	ClearYear         bool
	ClearPurchaseDate bool
}

// Apply copies the supplied fields onto c. The result still needs to pass
// NormalizeCoin before being persisted.
func (p *CoinPatch) Apply(c *Coin) {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Year != nil {
		c.Year = p.Year
	}
	if p.ClearYear {
		c.Year = nil
	}
	if p.Country != nil {
		c.Country = *p.Country
	}
	if p.Value != nil {
		c.Value = *p.Value
	}
	if p.Unit != nil {
		c.Unit = *p.Unit
	}
	if p.Mint != nil {
		c.Mint = *p.Mint
	}
	if p.MintMark != nil {
		c.MintMark = *p.MintMark
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.Condition != nil {
		c.Condition = *p.Condition
	}
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.Series != nil {
		c.Series = *p.Series
	}
	if p.Storage != nil {
		c.Storage = *p.Storage
	}
	if p.Format != nil {
		c.Format = *p.Format
	}
	if p.Region != nil {
		c.Region = *p.Region
	}
	if p.Quantity != nil {
		c.Quantity = *p.Quantity
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	if p.PurchaseDate != nil {
		c.PurchaseDate = p.PurchaseDate
	}
	if p.ClearPurchaseDate {
		c.PurchaseDate = nil
	}
	if p.PurchasePrice != nil {
		c.PurchasePrice = *p.PurchasePrice
	}
	if p.CurrentValue != nil {
		c.CurrentValue = *p.CurrentValue
	}
}
