package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalizeCoin(t *testing.T) {
	t.Run("trims blank fields", func(t *testing.T) {
		c := Coin{Title: "  Morgan Dollar ", Country: "   ", Unit: " Dollar "}

		if err := NormalizeCoin(&c); err != nil {
			t.Fatalf("NormalizeCoin failed: %v", err)
		}
		if c.Title != "Morgan Dollar" {
			t.Errorf("title = %q", c.Title)
		}
		if c.Country != "" {
			t.Errorf("blank country should normalize to empty, got %q", c.Country)
		}
		if c.Unit != "Dollar" {
			t.Errorf("unit = %q", c.Unit)
		}
	})

	t.Run("rejects empty title", func(t *testing.T) {
		c := Coin{Title: "   "}
		err := NormalizeCoin(&c)
		if !IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("coerces quantity below 1", func(t *testing.T) {
		c := Coin{Title: "Wheat Penny", Quantity: 0}
		if err := NormalizeCoin(&c); err != nil {
			t.Fatalf("NormalizeCoin failed: %v", err)
		}
		if c.Quantity != 1 {
			t.Errorf("quantity = %d, want 1", c.Quantity)
		}

		c = Coin{Title: "Wheat Penny", Quantity: -3}
		NormalizeCoin(&c)
		if c.Quantity != 1 {
			t.Errorf("negative quantity = %d, want 1", c.Quantity)
		}
	})

	t.Run("rejects negative money", func(t *testing.T) {
		c := Coin{
			Title:        "Buffalo Nickel",
			CurrentValue: decimal.NewNullDecimal(decimal.NewFromInt(-5)),
		}
		if err := NormalizeCoin(&c); !IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("keeps valid quantity", func(t *testing.T) {
		c := Coin{Title: "State Quarter", Quantity: 4}
		NormalizeCoin(&c)
		if c.Quantity != 4 {
			t.Errorf("quantity = %d, want 4", c.Quantity)
		}
	})
}

func TestParseDate(t *testing.T) {
	if d := ParseDate("2021-06-15"); d == nil {
		t.Fatal("expected parsed date")
	} else if d.Year() != 2021 || int(d.Month()) != 6 || d.Day() != 15 {
		t.Errorf("parsed %v", d)
	}

	// Lenient policy: bad input is absent, not an error
	for _, bad := range []string{"", "  ", "15/06/2021", "June 15, 2021", "2021-13-40"} {
		if d := ParseDate(bad); d != nil {
			t.Errorf("ParseDate(%q) = %v, want nil", bad, d)
		}
	}
}

func TestNormalizeImage(t *testing.T) {
	t.Run("defaults side to obverse", func(t *testing.T) {
		img := CoinImage{ImagePath: "/tmp/coin.png"}
		if err := NormalizeImage(&img); err != nil {
			t.Fatalf("NormalizeImage failed: %v", err)
		}
		if img.Side != SideObverse {
			t.Errorf("side = %q", img.Side)
		}
	})

	t.Run("rejects unknown side", func(t *testing.T) {
		img := CoinImage{ImagePath: "/tmp/coin.png", Side: "edge"}
		if err := NormalizeImage(&img); !IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("rejects missing path", func(t *testing.T) {
		img := CoinImage{Side: SideReverse}
		if err := NormalizeImage(&img); !IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestNormalizeGoal(t *testing.T) {
	g := Goal{Title: " Complete State Quarters ", Target: 50}
	if err := NormalizeGoal(&g); err != nil {
		t.Fatalf("NormalizeGoal failed: %v", err)
	}
	if g.Title != "Complete State Quarters" {
		t.Errorf("title = %q", g.Title)
	}

	if err := NormalizeGoal(&Goal{Title: "x", Target: 0}); !IsValidation(err) {
		t.Error("expected validation error for zero target")
	}
	if err := NormalizeGoal(&Goal{Target: 10}); !IsValidation(err) {
		t.Error("expected validation error for empty title")
	}
}

func TestCoinDenomination(t *testing.T) {
	v := decimal.NewNullDecimal(decimal.NewFromInt(25))
	c := Coin{Title: "Quarter", Value: v, Unit: "Cent"}
	if got := c.Denomination(); got != "25 Cent" {
		t.Errorf("Denomination() = %q", got)
	}

	c = Coin{Title: "Euro", Unit: "Euro"}
	if got := c.Denomination(); got != "Euro" {
		t.Errorf("Denomination() = %q", got)
	}

	c = Coin{Title: "Odd", Value: v}
	if got := c.Denomination(); got != "25" {
		t.Errorf("Denomination() = %q", got)
	}
}
