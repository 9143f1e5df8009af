// Package query derives filtered views and aggregates from an in-memory
// coin list. Nothing here touches the store or mutates its input; consumers
// fetch the full collection and pass it in.
package query

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"numis_go/internal/domain"

	"github.com/shopspring/decimal"
)

// FieldAllFields is the wildcard search scope: the text must appear in any
// of title, country, year or denomination/type.
const FieldAllFields = "All Fields"

// Value range bands as offered by the filter dropdown. Band boundaries are
// inclusive at both ends, so a coin worth exactly $10 matches both
// "Under $10" and "$10 - $50".
const (
	BandUnder10  = "Under $10"
	Band10To50   = "$10 - $50"
	Band50To100  = "$50 - $100"
	Band100To500 = "$100 - $500"
	BandOver500  = "Over $500"
)

type valueBand struct {
	min decimal.Decimal
	max *decimal.Decimal // nil means unbounded
}

func newBand(min int64, max *int64) valueBand {
	b := valueBand{min: decimal.NewFromInt(min)}
	if max != nil {
		m := decimal.NewFromInt(*max)
		b.max = &m
	}
	return b
}

func intPtr(v int64) *int64 { return &v }

var valueBands = map[string]valueBand{
	BandUnder10:  newBand(0, intPtr(10)),
	Band10To50:   newBand(10, intPtr(50)),
	Band50To100:  newBand(50, intPtr(100)),
	Band100To500: newBand(100, intPtr(500)),
	BandOver500:  newBand(500, nil),
}

// searchAccessors maps a search-field token onto its string representation.
// Field names are resolved through this table instead of reflection, so an
// unknown token is an error up front rather than a surprise at match time.
var searchAccessors = map[string]func(*domain.Coin) string{
	"title":        func(c *domain.Coin) string { return c.Title },
	"year":         yearText,
	"country":      func(c *domain.Coin) string { return c.Country },
	"denomination": func(c *domain.Coin) string { return c.Denomination() },
	"unit":         func(c *domain.Coin) string { return c.Unit },
	"mint":         func(c *domain.Coin) string { return c.Mint },
	"mint_mark":    func(c *domain.Coin) string { return c.MintMark },
	"status":       func(c *domain.Coin) string { return c.Status },
	"condition":    func(c *domain.Coin) string { return c.Condition },
	"type":         func(c *domain.Coin) string { return c.Type },
	"series":       func(c *domain.Coin) string { return c.Series },
	"storage":      func(c *domain.Coin) string { return c.Storage },
	"format":       func(c *domain.Coin) string { return c.Format },
	"region":       func(c *domain.Coin) string { return c.Region },
	"notes":        func(c *domain.Coin) string { return c.Notes },
}

func yearText(c *domain.Coin) string {
	if c.Year == nil {
		return ""
	}
	return strconv.Itoa(*c.Year)
}

// Criteria is a set of filters combined with logical AND. Zero values mean
// "no filter": empty SearchText matches everything, empty Condition and
// ValueRange are wildcards.
type Criteria struct {
	SearchText  string
	SearchField string // FieldAllFields or a searchAccessors token
	Condition   string // exact, case-sensitive match
	ValueRange  string // one of the Band constants
}

// Filter returns the coins matching every active criterion, preserving the
// input's relative order. The input slice is never modified.
func Filter(coins []domain.Coin, c Criteria) ([]domain.Coin, error) {
	match, err := compile(c)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Coin, 0, len(coins))
	for i := range coins {
		if match(&coins[i]) {
			out = append(out, coins[i])
		}
	}
	return out, nil
}

// compile validates the criteria and builds the predicate. Validation
// happens here, once, so an unknown search field or band never half-applies
// a filter.
func compile(c Criteria) (func(*domain.Coin) bool, error) {
	var textMatch func(*domain.Coin) bool
	if c.SearchText != "" {
		needle := strings.ToLower(c.SearchText)
		if c.SearchField == "" || c.SearchField == FieldAllFields {
			textMatch = func(coin *domain.Coin) bool {
				return strings.Contains(strings.ToLower(coin.Title), needle) ||
					strings.Contains(strings.ToLower(coin.Country), needle) ||
					strings.Contains(yearText(coin), needle) ||
					strings.Contains(strings.ToLower(coin.Denomination()), needle) ||
					strings.Contains(strings.ToLower(coin.Type), needle)
			}
		} else {
			accessor, ok := searchAccessors[fieldToken(c.SearchField)]
			if !ok {
				return nil, &domain.ValidationError{Field: "search_field", Reason: "unknown field " + c.SearchField}
			}
			textMatch = func(coin *domain.Coin) bool {
				return strings.Contains(strings.ToLower(accessor(coin)), needle)
			}
		}
	}

	var band *valueBand
	if c.ValueRange != "" {
		b, ok := valueBands[c.ValueRange]
		if !ok {
			return nil, &domain.ValidationError{Field: "value_range", Reason: "unknown range " + c.ValueRange}
		}
		band = &b
	}

	return func(coin *domain.Coin) bool {
		if textMatch != nil && !textMatch(coin) {
			return false
		}
		if c.Condition != "" && coin.Condition != c.Condition {
			return false
		}
		if band != nil {
			v := decimal.Zero // absent current value counts as 0
			if coin.CurrentValue.Valid {
				v = coin.CurrentValue.Decimal
			}
			if v.LessThan(band.min) {
				return false
			}
			if band.max != nil && v.GreaterThan(*band.max) {
				return false
			}
		}
		return true
	}, nil
}

// fieldToken folds a UI label ("Mint Mark") into an accessor key.
func fieldToken(field string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(field)), " ", "_")
}

// CategoryCount is one bucket of an aggregate, in first-seen order.
type CategoryCount struct {
	Category string
	Count    int
}

// AggregateBy counts coins per value of the named field, for the country,
// type, region and series charts and the world map. Coins with the field
// absent are skipped, not bucketed as unknown.
func AggregateBy(coins []domain.Coin, field string) ([]CategoryCount, error) {
	accessor, ok := searchAccessors[fieldToken(field)]
	if !ok {
		return nil, &domain.ValidationError{Field: "field", Reason: "unknown field " + field}
	}

	index := make(map[string]int)
	var out []CategoryCount
	for i := range coins {
		v := accessor(&coins[i])
		if v == "" {
			continue
		}
		if at, seen := index[v]; seen {
			out[at].Count++
		} else {
			index[v] = len(out)
			out = append(out, CategoryCount{Category: v, Count: 1})
		}
	}
	return out, nil
}

// TopN returns the n largest buckets, count descending, ties broken
// alphabetically so chart output is stable between refreshes.
func TopN(agg []CategoryCount, n int) []CategoryCount {
	out := make([]CategoryCount, len(agg))
	copy(out, agg)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}

// ValueSource selects which monetary field a timeline accumulates.
type ValueSource int

const (
	SourceCurrentValue ValueSource = iota
	SourcePurchasePrice
)

// TimelinePoint is one step of the cumulative collection value.
type TimelinePoint struct {
	Date  time.Time
	Total decimal.Decimal
}

// Timeline orders coins by purchase date and accumulates a running value
// total. Coins without a purchase date are excluded here but still count in
// every other aggregate.
func Timeline(coins []domain.Coin, source ValueSource) []TimelinePoint {
	dated := make([]*domain.Coin, 0, len(coins))
	for i := range coins {
		if coins[i].PurchaseDate != nil {
			dated = append(dated, &coins[i])
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].PurchaseDate.Before(*dated[j].PurchaseDate)
	})

	out := make([]TimelinePoint, 0, len(dated))
	total := decimal.Zero
	for _, c := range dated {
		v := c.CurrentValue
		if source == SourcePurchasePrice {
			v = c.PurchasePrice
		}
		if v.Valid {
			total = total.Add(v.Decimal)
		}
		out = append(out, TimelinePoint{Date: *c.PurchaseDate, Total: total})
	}
	return out
}

// Summary holds the dashboard stat cards.
type Summary struct {
	CoinCount      int             // catalog entries
	TotalQuantity  int             // physical coins, quantity-weighted
	EstimatedValue decimal.Decimal // sum of current values
	Countries      int             // distinct countries represented
}

// Summarize computes the dashboard overview from the full collection.
func Summarize(coins []domain.Coin) Summary {
	s := Summary{CoinCount: len(coins), EstimatedValue: decimal.Zero}
	countries := make(map[string]struct{})
	for i := range coins {
		s.TotalQuantity += coins[i].Quantity
		if coins[i].CurrentValue.Valid {
			s.EstimatedValue = s.EstimatedValue.Add(coins[i].CurrentValue.Decimal)
		}
		if coins[i].Country != "" {
			countries[coins[i].Country] = struct{}{}
		}
	}
	s.Countries = len(countries)
	return s
}

// RecentAdditions returns up to n coins, most recent purchase first. Coins
// without a purchase date sort as oldest, matching the dashboard list.
func RecentAdditions(coins []domain.Coin, n int) []domain.Coin {
	out := make([]domain.Coin, len(coins))
	copy(out, coins)
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].PurchaseDate, out[j].PurchaseDate
		switch {
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return di.After(*dj)
		}
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}
