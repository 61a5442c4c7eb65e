package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	pkgerrors "github.com/solbazaar/solbazaar-backend/pkg/errors"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

func tier(t *testing.T, position int, rangeStr, percent string) models.DiscountTier {
	t.Helper()
	min, max, err := ParseTierRange(rangeStr)
	if err != nil {
		t.Fatalf("parse tier range %q: %v", rangeStr, err)
	}
	return models.DiscountTier{
		Position:        position,
		RangeMin:        min,
		RangeMax:        max,
		DiscountPercent: dec(t, percent),
	}
}

func TestParseTierRange(t *testing.T) {
	min, max, err := ParseTierRange("0-10000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !min.Equal(decimal.Zero) {
		t.Fatalf("unexpected min %s", min)
	}
	if max == nil || !max.Equal(dec(t, "10000")) {
		t.Fatalf("unexpected max %v", max)
	}

	min, max, err = ParseTierRange("30000+")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !min.Equal(dec(t, "30000")) {
		t.Fatalf("unexpected min %s", min)
	}
	if max != nil {
		t.Fatalf("expected open-ended band, got max %s", max)
	}
}

func TestParseTierRangeMalformed(t *testing.T) {
	cases := []string{"", "abc", "10000", "10-5", "-5-100", "10--20", "10000$"}
	for _, raw := range cases {
		_, _, err := ParseTierRange(raw)
		if err == nil {
			t.Errorf("expected error for %q", raw)
			continue
		}
		appErr := pkgerrors.As(err)
		if appErr == nil || appErr.Code() != pkgerrors.CodeConfiguration {
			t.Errorf("expected configuration error for %q, got %v", raw, err)
		}
	}
}

func TestDiscountPercentFirstMatchingTierWins(t *testing.T) {
	// The 10% band is listed first and also covers 15000; the deeper 25%
	// band must not be selected.
	cfg := &models.DiscountConfig{
		WarrantyDiscountPercent: decimal.Zero,
		Tiers: []models.DiscountTier{
			tier(t, 0, "0-20000", "10"),
			tier(t, 1, "10000-30000", "25"),
		},
	}

	pct, err := DiscountPercent(cfg, dec(t, "15000"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pct.Equal(dec(t, "10")) {
		t.Fatalf("expected first matching band 10%%, got %s", pct)
	}
}

func TestDiscountPercentWarrantyTakesMax(t *testing.T) {
	cfg := &models.DiscountConfig{
		WarrantyDiscountPercent: dec(t, "10"),
		Tiers: []models.DiscountTier{
			tier(t, 0, "0-10000", "5"),
		},
	}

	price := dec(t, "5000")

	pct, err := DiscountPercent(cfg, price, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pct.Equal(dec(t, "10")) {
		t.Fatalf("expected warranty percent 10, got %s", pct)
	}
	if got := DiscountedPrice(price, pct); got.String() != "4500" {
		t.Fatalf("expected 4500, got %s", got)
	}

	// Without a warranty only the tier percent applies.
	pct, err = DiscountPercent(cfg, price, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pct.Equal(dec(t, "5")) {
		t.Fatalf("expected tier percent 5, got %s", pct)
	}
}

func TestDiscountPercentWarrantyDoesNotLowerTier(t *testing.T) {
	cfg := &models.DiscountConfig{
		WarrantyDiscountPercent: dec(t, "5"),
		Tiers: []models.DiscountTier{
			tier(t, 0, "0-50000", "15"),
		},
	}

	pct, err := DiscountPercent(cfg, dec(t, "20000"), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pct.Equal(dec(t, "15")) {
		t.Fatalf("expected tier percent 15 to win over smaller warranty percent, got %s", pct)
	}
}

func TestDiscountPercentNoMatchingTier(t *testing.T) {
	cfg := &models.DiscountConfig{
		WarrantyDiscountPercent: dec(t, "10"),
		Tiers: []models.DiscountTier{
			tier(t, 0, "0-1000", "5"),
		},
	}

	pct, err := DiscountPercent(cfg, dec(t, "5000"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pct.IsZero() {
		t.Fatalf("expected zero discount outside all bands, got %s", pct)
	}

	// A warranty-backed listing still earns the warranty discount.
	pct, err = DiscountPercent(cfg, dec(t, "5000"), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pct.Equal(dec(t, "10")) {
		t.Fatalf("expected warranty percent 10, got %s", pct)
	}
}

func TestDiscountPercentZeroTiers(t *testing.T) {
	cfg := &models.DiscountConfig{
		WarrantyDiscountPercent: decimal.Zero,
	}

	pct, err := DiscountPercent(cfg, dec(t, "5000"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pct.IsZero() {
		t.Fatalf("expected zero discount with no tiers, got %s", pct)
	}
}

func TestDiscountPercentBoundsInclusive(t *testing.T) {
	cfg := &models.DiscountConfig{
		WarrantyDiscountPercent: decimal.Zero,
		Tiers: []models.DiscountTier{
			tier(t, 0, "1000-2000", "5"),
		},
	}

	for _, price := range []string{"1000", "2000"} {
		pct, err := DiscountPercent(cfg, dec(t, price), false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !pct.Equal(dec(t, "5")) {
			t.Fatalf("expected boundary price %s inside band, got %s", price, pct)
		}
	}

	for _, price := range []string{"999.99", "2000.01"} {
		pct, err := DiscountPercent(cfg, dec(t, price), false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !pct.IsZero() {
			t.Fatalf("expected price %s outside band, got %s", price, pct)
		}
	}
}

func TestValidateConfigRejectsBadPercent(t *testing.T) {
	cfg := &models.DiscountConfig{
		WarrantyDiscountPercent: dec(t, "120"),
	}
	err := ValidateConfig(cfg)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeConfiguration {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestDiscountedPriceRoundsToCents(t *testing.T) {
	got := DiscountedPrice(dec(t, "99.99"), dec(t, "7.5"))
	if got.String() != "92.49" {
		t.Fatalf("expected 92.49, got %s", got)
	}

	got = DiscountedPrice(dec(t, "12000"), dec(t, "10"))
	if got.String() != "10800" {
		t.Fatalf("expected 10800, got %s", got)
	}
}

func TestFormatTierRangeRoundTrips(t *testing.T) {
	for _, raw := range []string{"0-10000", "30000+"} {
		min, max, err := ParseTierRange(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got := FormatTierRange(min, max); got != raw {
			t.Fatalf("expected %q, got %q", raw, got)
		}
	}
}
