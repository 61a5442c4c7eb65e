package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	pkgerrors "github.com/solbazaar/solbazaar-backend/pkg/errors"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
)

var oneHundred = decimal.NewFromInt(100)

// ParseTierRange parses an admin-supplied price band. Two forms are accepted:
//
//	"0-10000"  closed band, both bounds inclusive
//	"30000+"   open-ended band, lower bound inclusive
func ParseTierRange(raw string) (decimal.Decimal, *decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, nil, pkgerrors.New(pkgerrors.CodeConfiguration, "tier range is required")
	}

	if strings.HasSuffix(trimmed, "+") {
		min, err := decimal.NewFromString(strings.TrimSuffix(trimmed, "+"))
		if err != nil {
			return decimal.Zero, nil, pkgerrors.Wrap(pkgerrors.CodeConfiguration, err, fmt.Sprintf("invalid tier range %q", raw))
		}
		if min.IsNegative() {
			return decimal.Zero, nil, pkgerrors.New(pkgerrors.CodeConfiguration, fmt.Sprintf("tier range %q has negative lower bound", raw))
		}
		return min, nil, nil
	}

	parts := strings.SplitN(trimmed, "-", 2)
	if len(parts) != 2 {
		return decimal.Zero, nil, pkgerrors.New(pkgerrors.CodeConfiguration, fmt.Sprintf("invalid tier range %q (expected \"min-max\" or \"min+\")", raw))
	}

	min, err := decimal.NewFromString(strings.TrimSpace(parts[0]))
	if err != nil {
		return decimal.Zero, nil, pkgerrors.Wrap(pkgerrors.CodeConfiguration, err, fmt.Sprintf("invalid tier range %q", raw))
	}
	max, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return decimal.Zero, nil, pkgerrors.Wrap(pkgerrors.CodeConfiguration, err, fmt.Sprintf("invalid tier range %q", raw))
	}
	if min.IsNegative() {
		return decimal.Zero, nil, pkgerrors.New(pkgerrors.CodeConfiguration, fmt.Sprintf("tier range %q has negative lower bound", raw))
	}
	if max.LessThan(min) {
		return decimal.Zero, nil, pkgerrors.New(pkgerrors.CodeConfiguration, fmt.Sprintf("tier range %q has max below min", raw))
	}
	return min, &max, nil
}

// FormatTierRange renders a tier band back into its admin-facing string form.
func FormatTierRange(min decimal.Decimal, max *decimal.Decimal) string {
	if max == nil {
		return min.String() + "+"
	}
	return min.String() + "-" + max.String()
}

func validPercent(pct decimal.Decimal) bool {
	return !pct.IsNegative() && pct.LessThanOrEqual(oneHundred)
}

// ValidateConfig checks the structural invariants of a discount configuration.
func ValidateConfig(cfg *models.DiscountConfig) error {
	if cfg == nil {
		return pkgerrors.New(pkgerrors.CodeConfiguration, "discount configuration missing")
	}
	if !validPercent(cfg.WarrantyDiscountPercent) {
		return pkgerrors.New(pkgerrors.CodeConfiguration, "warranty discount percent must be between 0 and 100")
	}
	for _, tier := range cfg.Tiers {
		if tier.RangeMin.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeConfiguration, fmt.Sprintf("tier %d has negative lower bound", tier.Position))
		}
		if tier.RangeMax != nil && tier.RangeMax.LessThan(tier.RangeMin) {
			return pkgerrors.New(pkgerrors.CodeConfiguration, fmt.Sprintf("tier %d has max below min", tier.Position))
		}
		if !validPercent(tier.DiscountPercent) {
			return pkgerrors.New(pkgerrors.CodeConfiguration, fmt.Sprintf("tier %d discount percent must be between 0 and 100", tier.Position))
		}
	}
	return nil
}

// tierMatches reports whether price falls inside the tier band, bounds inclusive.
func tierMatches(tier models.DiscountTier, price decimal.Decimal) bool {
	if price.LessThan(tier.RangeMin) {
		return false
	}
	if tier.RangeMax != nil && price.GreaterThan(*tier.RangeMax) {
		return false
	}
	return true
}

// DiscountPercent selects the effective discount for a listing. Tiers are
// scanned in admin-supplied order and the first band containing the price
// wins, even when a later band offers a deeper discount. A warranty-backed
// listing gets the larger of the tier percent and the warranty percent.
func DiscountPercent(cfg *models.DiscountConfig, price decimal.Decimal, hasWarranty bool) (decimal.Decimal, error) {
	if err := ValidateConfig(cfg); err != nil {
		return decimal.Zero, err
	}

	tierPct := decimal.Zero
	for _, tier := range cfg.Tiers {
		if tierMatches(tier, price) {
			tierPct = tier.DiscountPercent
			break
		}
	}

	if hasWarranty && cfg.WarrantyDiscountPercent.GreaterThan(tierPct) {
		return cfg.WarrantyDiscountPercent, nil
	}
	return tierPct, nil
}

// DiscountedPrice applies the percent discount and rounds to cents.
func DiscountedPrice(price, percent decimal.Decimal) decimal.Decimal {
	factor := oneHundred.Sub(percent).Div(oneHundred)
	return price.Mul(factor).Round(2)
}

// PriceFor computes the cached discounted price for a listing under cfg.
func PriceFor(cfg *models.DiscountConfig, price decimal.Decimal, hasWarranty bool) (decimal.Decimal, error) {
	pct, err := DiscountPercent(cfg, price, hasWarranty)
	if err != nil {
		return decimal.Zero, err
	}
	return DiscountedPrice(price, pct), nil
}
