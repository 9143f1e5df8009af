package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coin statuses as shown in the collection table.
const (
	StatusOwned   = "owned"
	StatusWanted  = "wanted"
	StatusOrdered = "ordered"
)

// Image side designators.
const (
	SideObverse = "obverse"
	SideReverse = "reverse"
)

// Coin is a single catalog entry. Quantity > 1 means the entry stands for
// several identical physical coins. Value and Unit together form the
// denomination ("25 Cent"); Condition is the grading scale text (XF, VF);
// Type is the issue category (Regular Issue, Commemorative, Bullion);
// Region is the continent-like grouping the world map uses.
type Coin struct {
	ID        uint                `gorm:"primaryKey" json:"id"`
	Title     string              `gorm:"not null" json:"title"`
	Year      *int                `json:"year,omitempty"`
	Country   string              `gorm:"index" json:"country"`
	Value     decimal.NullDecimal `json:"value,omitempty"`
	Unit      string              `json:"unit"`
	Mint      string              `json:"mint"`
	MintMark  string              `json:"mint_mark"`
	Status    string              `gorm:"index" json:"status"`
	Condition string              `json:"condition"`
	Type      string              `json:"type"`
	Series    string              `json:"series"`
	Storage   string              `json:"storage"`
	Format    string              `json:"format"`
	Region    string              `json:"region"`
	Quantity  int                 `gorm:"default:1" json:"quantity"`

	PurchaseDate  *time.Time          `json:"purchase_date,omitempty"`
	PurchasePrice decimal.NullDecimal `json:"purchase_price,omitempty"`
	CurrentValue  decimal.NullDecimal `json:"current_value,omitempty"`
	Notes         string              `json:"notes"`

	Images []CoinImage `gorm:"constraint:OnDelete:CASCADE" json:"images,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Denomination renders the face value as displayed in the table,
// e.g. "25 Cent". Either half may be missing.
func (c *Coin) Denomination() string {
	switch {
	case c.Value.Valid && c.Unit != "":
		return c.Value.Decimal.String() + " " + c.Unit
	case c.Value.Valid:
		return c.Value.Decimal.String()
	default:
		return c.Unit
	}
}

// CoinImage is one photograph of a coin. Images are owned exclusively by
// their coin and are removed when the coin is deleted.
type CoinImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	CoinID    uint   `gorm:"not null;index" json:"coin_id"`
	ImagePath string `gorm:"not null" json:"image_path"`
	Side      string `gorm:"default:obverse" json:"side"`
}

// Goal is a user-defined collecting target. Progress against Target is
// computed by the caller from current collection counts, never stored.
type Goal struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Target      int    `gorm:"not null" json:"target"`
}

// ChangeEvent describes a mutation of the collection, published to UI
// collaborators so open views can refresh. Kind is one of coin_created,
// coin_updated, coin_deleted, image_added, image_removed, goals_saved.
type ChangeEvent struct {
	Kind string `json:"kind"`
	ID   uint   `json:"id,omitempty"`
}

// Notifier receives change events after successful store mutations.
type Notifier interface {
	CollectionChanged(ev ChangeEvent)
}
