package query

import (
	"testing"
	"time"

	"numis_go/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(v float64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromFloat(v))
}

func date(s string) *time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return &t
}

func sampleCoins() []domain.Coin {
	y1921, y2002, y1937 := 1921, 2002, 1937
	return []domain.Coin{
		{ID: 1, Title: "Morgan Dollar", Year: &y1921, Country: "United States", Unit: "Dollar", Condition: "XF", Type: "Regular Issue", CurrentValue: money(45), PurchaseDate: date("2020-03-10"), PurchasePrice: money(38)},
		{ID: 2, Title: "2 Euro Commemorative", Year: &y2002, Country: "France", Value: money(2), Unit: "Euro", Condition: "MS", Type: "Commemorative", CurrentValue: money(5), PurchaseDate: date("2021-07-01"), PurchasePrice: money(3)},
		{ID: 3, Title: "Buffalo Nickel", Year: &y1937, Country: "United States", Unit: "Cent", Condition: "VF", Type: "Regular Issue", CurrentValue: money(60)},
		{ID: 4, Title: "Franc", Country: "France", Unit: "Franc", Condition: "XF", Type: "Regular Issue"},
	}
}

func TestFilterIdentity(t *testing.T) {
	coins := sampleCoins()

	got, err := Filter(coins, Criteria{SearchField: FieldAllFields})
	require.NoError(t, err)
	require.Len(t, got, len(coins))
	for i := range coins {
		assert.Equal(t, coins[i].ID, got[i].ID, "order must be preserved")
	}
}

func TestFilterAllFieldsText(t *testing.T) {
	coins := sampleCoins()

	testCases := []struct {
		name    string
		text    string
		wantIDs []uint
	}{
		{"matches country case-insensitively", "france", []uint{2, 4}},
		{"matches title substring", "nickel", []uint{3}},
		{"matches year as text", "1921", []uint{1}},
		{"matches denomination", "euro", []uint{2}},
		{"matches type", "commemorative", []uint{2}},
		{"no hits", "doubloon", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Filter(coins, Criteria{SearchText: tc.text, SearchField: FieldAllFields})
			require.NoError(t, err)
			assert.Equal(t, tc.wantIDs, ids(got))
		})
	}
}

func TestFilterScopedField(t *testing.T) {
	coins := sampleCoins()

	got, err := Filter(coins, Criteria{SearchText: "united", SearchField: "Country"})
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 3}, ids(got))

	// Scoped search does not fall through to other fields
	got, err = Filter(coins, Criteria{SearchText: "morgan", SearchField: "Country"})
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = Filter(coins, Criteria{SearchText: "x", SearchField: "Weight"})
	assert.True(t, domain.IsValidation(err), "unknown field must fail up front")
}

func TestFilterAndComposition(t *testing.T) {
	y := 1950
	coins := []domain.Coin{
		{ID: 1, Title: "A", Year: &y, Country: "France", CurrentValue: money(5)},
		{ID: 2, Title: "B", Year: &y, Country: "France", CurrentValue: money(60)},
	}

	got, err := Filter(coins, Criteria{SearchText: "France", SearchField: FieldAllFields, ValueRange: BandUnder10})
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, ids(got))
}

func TestFilterCondition(t *testing.T) {
	coins := sampleCoins()

	got, err := Filter(coins, Criteria{Condition: "XF"})
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 4}, ids(got))

	// Exact and case-sensitive
	got, err = Filter(coins, Criteria{Condition: "xf"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFilterValueBands(t *testing.T) {
	coins := []domain.Coin{
		{ID: 1, Title: "Cheap", CurrentValue: money(3)},
		{ID: 2, Title: "Boundary", CurrentValue: money(10)},
		{ID: 3, Title: "Mid", CurrentValue: money(45)},
		{ID: 4, Title: "Priceless"}, // absent value counts as 0
		{ID: 5, Title: "Bullion", CurrentValue: money(700)},
	}

	got, err := Filter(coins, Criteria{ValueRange: BandUnder10})
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 4}, ids(got))

	got, err = Filter(coins, Criteria{ValueRange: Band10To50})
	require.NoError(t, err)
	// A coin worth exactly $10 sits in both adjacent bands: boundaries are
	// inclusive at both ends.
	assert.Equal(t, []uint{2, 3}, ids(got))

	got, err = Filter(coins, Criteria{ValueRange: BandOver500})
	require.NoError(t, err)
	assert.Equal(t, []uint{5}, ids(got))

	_, err = Filter(coins, Criteria{ValueRange: "Over $9000"})
	assert.True(t, domain.IsValidation(err))
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	coins := sampleCoins()
	before := ids(coins)

	_, err := Filter(coins, Criteria{SearchText: "france", SearchField: FieldAllFields})
	require.NoError(t, err)
	assert.Equal(t, before, ids(coins))
}

func TestAggregateBy(t *testing.T) {
	coins := sampleCoins()

	agg, err := AggregateBy(coins, "country")
	require.NoError(t, err)
	assert.Equal(t, []CategoryCount{
		{Category: "United States", Count: 2},
		{Category: "France", Count: 2},
	}, agg)

	total := 0
	for _, b := range agg {
		total += b.Count
	}
	assert.Equal(t, 4, total, "sums to coins with a non-absent country")

	// Absent values are excluded, not bucketed
	agg, err = AggregateBy(coins, "year")
	require.NoError(t, err)
	assert.Len(t, agg, 3)

	_, err = AggregateBy(coins, "weight")
	assert.True(t, domain.IsValidation(err))
}

func TestTopN(t *testing.T) {
	agg := []CategoryCount{
		{Category: "Germany", Count: 3},
		{Category: "France", Count: 7},
		{Category: "Austria", Count: 3},
		{Category: "Spain", Count: 1},
	}

	top := TopN(agg, 3)
	assert.Equal(t, []CategoryCount{
		{Category: "France", Count: 7},
		{Category: "Austria", Count: 3}, // tie broken alphabetically
		{Category: "Germany", Count: 3},
	}, top)

	// n larger than input returns everything
	assert.Len(t, TopN(agg, 10), 4)
	// input untouched
	assert.Equal(t, "Germany", agg[0].Category)
}

func TestTimeline(t *testing.T) {
	coins := sampleCoins()

	points := Timeline(coins, SourceCurrentValue)
	require.Len(t, points, 2, "dateless coins are excluded")

	assert.Equal(t, *date("2020-03-10"), points[0].Date)
	assert.True(t, points[0].Total.Equal(decimal.NewFromInt(45)))
	assert.Equal(t, *date("2021-07-01"), points[1].Date)
	assert.True(t, points[1].Total.Equal(decimal.NewFromInt(50)), "running sum accumulates")

	points = Timeline(coins, SourcePurchasePrice)
	require.Len(t, points, 2)
	assert.True(t, points[1].Total.Equal(decimal.NewFromInt(41)))
}

func TestSummarize(t *testing.T) {
	coins := sampleCoins()
	coins[0].Quantity = 3
	for i := 1; i < len(coins); i++ {
		coins[i].Quantity = 1
	}

	s := Summarize(coins)
	assert.Equal(t, 4, s.CoinCount)
	assert.Equal(t, 6, s.TotalQuantity)
	assert.Equal(t, 2, s.Countries)
	assert.True(t, s.EstimatedValue.Equal(decimal.NewFromInt(110)))
}

func TestRecentAdditions(t *testing.T) {
	coins := sampleCoins()

	recent := RecentAdditions(coins, 2)
	require.Len(t, recent, 2)
	assert.Equal(t, uint(2), recent[0].ID)
	assert.Equal(t, uint(1), recent[1].ID)

	// Dateless coins sort last
	all := RecentAdditions(coins, 10)
	assert.Nil(t, all[len(all)-1].PurchaseDate)
}

func ids(coins []domain.Coin) []uint {
	if len(coins) == 0 {
		return nil
	}
	out := make([]uint, len(coins))
	for i := range coins {
		out[i] = coins[i].ID
	}
	return out
}
