package pricing

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/kolade-dev/vendorhub-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

// Tier is a quantity band mapped to a per-unit price. A nil MaxQty means the
// band is unbounded above.
type Tier struct {
	MinQty         int
	MaxQty         *int
	UnitPriceCents int64
}

// Split is the two-way division of a gross amount between merchant and
// platform. The two shares always sum back to the gross exactly.
type Split struct {
	MerchantEarningsCents int64
	PlatformFeeCents      int64
}

var (
	oneHundred = decimal.NewFromInt(100)
)

// ResolveUnitPrice maps a purchase quantity to the correct unit price.
//
// Tiers are scanned in stored order and the first band containing the
// quantity wins; overlapping bands are a merchant data-entry error and the
// first-match policy keeps resolution deterministic. A band whose MaxQty is
// below its MinQty can never match and falls through silently. When nothing
// matches, the base price applies.
func ResolveUnitPrice(tiers []Tier, quantity int, basePriceCents int64) (int64, error) {
	if quantity < 1 {
		return 0, errors.New(errors.CodeValidation, fmt.Sprintf("quantity must be at least 1, got %d", quantity))
	}

	for _, tier := range tiers {
		if quantity < tier.MinQty {
			continue
		}
		if tier.MaxQty != nil && quantity > *tier.MaxQty {
			continue
		}
		return tier.UnitPriceCents, nil
	}
	return basePriceCents, nil
}

// SplitEarnings divides a gross amount using the merchant's retained
// percentage (92 means the merchant keeps 92%).
//
// The platform share is computed by multiplication and the merchant share by
// subtraction, so the two always reconcile to the gross with no drift.
func SplitEarnings(grossCents int64, commissionRatePercent decimal.Decimal) (Split, error) {
	if grossCents < 0 {
		return Split{}, errors.New(errors.CodeValidation, fmt.Sprintf("gross amount must not be negative, got %d", grossCents))
	}
	if commissionRatePercent.IsNegative() || commissionRatePercent.GreaterThan(oneHundred) {
		return Split{}, errors.New(errors.CodeValidation, fmt.Sprintf("commission rate %s outside [0,100]", commissionRatePercent))
	}

	platformRate := oneHundred.Sub(commissionRatePercent)
	platformFee := decimal.NewFromInt(grossCents).
		Mul(platformRate).
		Div(oneHundred).
		Round(0).
		IntPart()

	return Split{
		MerchantEarningsCents: grossCents - platformFee,
		PlatformFeeCents:      platformFee,
	}, nil
}

// ValidateTiers checks every band for basic sanity and reports all problems
// at once. Overlapping bands are allowed; resolution order disambiguates.
func ValidateTiers(tiers []Tier) error {
	var combined error
	for i, tier := range tiers {
		if tier.MinQty < 1 {
			combined = multierr.Append(combined, fmt.Errorf("tier %d: min quantity must be at least 1, got %d", i, tier.MinQty))
		}
		if tier.MaxQty != nil && *tier.MaxQty < tier.MinQty {
			combined = multierr.Append(combined, fmt.Errorf("tier %d: max quantity %d below min quantity %d", i, *tier.MaxQty, tier.MinQty))
		}
		if tier.UnitPriceCents < 0 {
			combined = multierr.Append(combined, fmt.Errorf("tier %d: unit price must not be negative, got %d", i, tier.UnitPriceCents))
		}
	}
	if combined != nil {
		return errors.Wrap(errors.CodeValidation, combined, "invalid price tiers").
			WithDetails(errorStrings(combined))
	}
	return nil
}

// TierInput is the boundary form of a tier as submitted by form-backed
// clients, which may carry numeric fields as strings. A nil MaxQty means
// unbounded above.
type TierInput struct {
	MinQty         any
	MaxQty         any
	UnitPriceCents any
}

// NormalizeTiers coerces boundary tier records into typed bands, parsing
// string-typed numerics once up front instead of letting them leak into
// comparisons. All coercion problems are reported together, then the parsed
// bands go through ValidateTiers.
func NormalizeTiers(inputs []TierInput) ([]Tier, error) {
	tiers := make([]Tier, 0, len(inputs))
	var combined error
	for i, input := range inputs {
		tier := Tier{}

		minQty, err := coerceInt(input.MinQty)
		if err != nil {
			combined = multierr.Append(combined, fmt.Errorf("tier %d: min quantity %v", i, err))
		} else {
			tier.MinQty = minQty
		}

		if input.MaxQty != nil {
			maxQty, err := coerceInt(input.MaxQty)
			if err != nil {
				combined = multierr.Append(combined, fmt.Errorf("tier %d: max quantity %v", i, err))
			} else {
				tier.MaxQty = &maxQty
			}
		}

		unitPrice, err := coerceInt64(input.UnitPriceCents)
		if err != nil {
			combined = multierr.Append(combined, fmt.Errorf("tier %d: unit price %v", i, err))
		} else {
			tier.UnitPriceCents = unitPrice
		}

		tiers = append(tiers, tier)
	}
	if combined != nil {
		return nil, errors.Wrap(errors.CodeValidation, combined, "invalid price tiers").
			WithDetails(errorStrings(combined))
	}
	if err := ValidateTiers(tiers); err != nil {
		return nil, err
	}
	return tiers, nil
}

func coerceInt(v any) (int, error) {
	n, err := coerceInt64(v)
	return int(n), err
}

func coerceInt64(v any) (int64, error) {
	switch val := v.(type) {
	case nil:
		return 0, fmt.Errorf("is missing")
	case int:
		return int64(val), nil
	case int64:
		return val, nil
	case float64:
		if val != float64(int64(val)) {
			return 0, fmt.Errorf("%v is not a whole number", val)
		}
		return int64(val), nil
	case json.Number:
		return coerceNumericString(val.String())
	case string:
		return coerceNumericString(val)
	}
	return 0, fmt.Errorf("has unsupported type %T", v)
}

func coerceNumericString(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not numeric", s)
	}
	return n, nil
}

func errorStrings(err error) []string {
	all := multierr.Errors(err)
	out := make([]string, 0, len(all))
	for _, e := range all {
		out = append(out, e.Error())
	}
	return out
}
