package withdrawal

import (
	"github.com/Trebetta/Trebetta-Wallet-Core/providers/trebetta"
	"github.com/shopspring/decimal"
)

// FeeFor scans the server-supplied rules in order and returns the fee of the
// first interval containing amount. No match means fee 0: the preview fails
// open, the withdrawal itself does not.
func FeeFor(rules []trebetta.FeeRule, amount decimal.Decimal) decimal.Decimal {
	for _, rule := range rules {
		if amount.LessThan(rule.Min) {
			continue
		}
		if rule.Max != nil && amount.GreaterThan(*rule.Max) {
			continue
		}
		return rule.Fee
	}
	return decimal.Zero
}

// ReceiveAmount is the "you will receive" figure, clamped at zero. Strictly a
// preview: the server's returned fee is the source of truth.
func ReceiveAmount(amount, fee decimal.Decimal) decimal.Decimal {
	receive := amount.Sub(fee)
	if receive.IsNegative() {
		return decimal.Zero
	}
	return receive
}

// MinimumWithdrawal derives the floor from the lowest positive rule minimum,
// falling back to the configured default when the rules carry none.
func MinimumWithdrawal(rules []trebetta.FeeRule, fallback decimal.Decimal) decimal.Decimal {
	minimum := decimal.Zero
	for _, rule := range rules {
		if rule.Min.IsPositive() && (minimum.IsZero() || rule.Min.LessThan(minimum)) {
			minimum = rule.Min
		}
	}
	if minimum.IsZero() {
		return fallback
	}
	return minimum
}
