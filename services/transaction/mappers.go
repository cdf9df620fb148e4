package transaction

import (
	"time"

	"github.com/Trebetta/Trebetta-Wallet-Core/providers/trebetta"
	"github.com/Trebetta/Trebetta-Wallet-Core/utils"
)

var typeTitles = map[string]string{
	trebetta.TransactionDeposit:    "Deposit",
	trebetta.TransactionWithdrawal: "Withdrawal",
	trebetta.TransactionBet:        "Pool entry",
	trebetta.TransactionPayout:     "Payout",
}

func ToDisplayRow(record trebetta.TransactionRecord, now time.Time) DisplayRow {
	title, ok := typeTitles[record.Type]
	if !ok {
		title = "Transaction"
	}

	amount := utils.FormatNairaDetailed(record.Amount)
	switch record.Type {
	case trebetta.TransactionDeposit, trebetta.TransactionPayout:
		amount = "+" + amount
	case trebetta.TransactionWithdrawal, trebetta.TransactionBet:
		amount = "-" + amount
	}

	return DisplayRow{
		Title:     title,
		Amount:    amount,
		Status:    record.Status,
		Reference: record.Reference,
		When:      utils.TimeAgo(record.CreatedAt, now),
	}
}

// IsSettled reports whether a record reached a credited terminal state. The
// backend is inconsistent between "success" and "completed" so both count.
func IsSettled(record trebetta.TransactionRecord) bool {
	switch record.Status {
	case trebetta.StatusSuccess, trebetta.StatusCompleted:
		return true
	}
	return false
}
