package cartledger

import (
	"fmt"
	"strings"

	"github.com/kolade-dev/vendorhub-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// LineItem is one cart entry. ID is the caller's identity key; adds sharing
// an ID merge into a single line.
type LineItem struct {
	ID             string
	Title          string
	UnitPriceCents int64
	Quantity       int
}

// Totals is the derived ledger view over a cart.
type Totals struct {
	SubtotalCents int64
	TaxCents      int64
	TotalCents    int64
}

// AddItem merges the new item into an existing line with the same ID, or
// appends it. The input slice is never mutated.
func AddItem(cart []LineItem, item LineItem) ([]LineItem, error) {
	if strings.TrimSpace(item.ID) == "" {
		return nil, errors.New(errors.CodeValidation, "line item id is required")
	}
	if item.Quantity < 1 {
		return nil, errors.New(errors.CodeValidation, fmt.Sprintf("quantity must be at least 1, got %d", item.Quantity))
	}
	if item.UnitPriceCents < 0 {
		return nil, errors.New(errors.CodeValidation, fmt.Sprintf("unit price must not be negative, got %d", item.UnitPriceCents))
	}

	next := cloneCart(cart)
	for i := range next {
		if next[i].ID == item.ID {
			next[i].Quantity += item.Quantity
			return next, nil
		}
	}
	return append(next, item), nil
}

// IncreaseQuantity bumps the matching line by one. Unknown ids are a no-op.
func IncreaseQuantity(cart []LineItem, itemID string) []LineItem {
	next := cloneCart(cart)
	for i := range next {
		if next[i].ID == itemID {
			next[i].Quantity++
			break
		}
	}
	return next
}

// DecreaseQuantity lowers the matching line by one but never below one.
// Removal is a separate explicit operation. Unknown ids are a no-op.
func DecreaseQuantity(cart []LineItem, itemID string) []LineItem {
	next := cloneCart(cart)
	for i := range next {
		if next[i].ID == itemID {
			if next[i].Quantity > 1 {
				next[i].Quantity--
			}
			break
		}
	}
	return next
}

// RemoveItem drops the first line matching itemID. Removing an absent id is
// tolerated without error.
func RemoveItem(cart []LineItem, itemID string) []LineItem {
	next := make([]LineItem, 0, len(cart))
	removed := false
	for _, line := range cart {
		if !removed && line.ID == itemID {
			removed = true
			continue
		}
		next = append(next, line)
	}
	return next
}

// ComputeTotals derives subtotal, tax and grand total from the cart. The
// total is not clamped when the discount exceeds subtotal plus tax; callers
// decide how to present a negative balance.
func ComputeTotals(cart []LineItem, taxRate decimal.Decimal, discountCents int64) (Totals, error) {
	if taxRate.IsNegative() {
		return Totals{}, errors.New(errors.CodeValidation, fmt.Sprintf("tax rate must not be negative, got %s", taxRate))
	}
	if discountCents < 0 {
		return Totals{}, errors.New(errors.CodeValidation, fmt.Sprintf("discount must not be negative, got %d", discountCents))
	}

	var subtotal int64
	for _, line := range cart {
		subtotal += line.UnitPriceCents * int64(line.Quantity)
	}

	tax := decimal.NewFromInt(subtotal).Mul(taxRate).Round(0).IntPart()

	return Totals{
		SubtotalCents: subtotal,
		TaxCents:      tax,
		TotalCents:    subtotal + tax - discountCents,
	}, nil
}

func cloneCart(cart []LineItem) []LineItem {
	next := make([]LineItem, len(cart))
	copy(next, cart)
	return next
}
