package wallet

import (
	"github.com/Trebetta/Trebetta-Wallet-Core/providers/trebetta"
	"github.com/shopspring/decimal"
)

// WalletModel is the last-known balance snapshot. It always originates from
// a successful server fetch; nothing in the client ever computes a balance.
type WalletModel struct {
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

func ToWalletModel(wallet *trebetta.Wallet) *WalletModel {
	return &WalletModel{
		Balance:  wallet.Balance,
		Currency: wallet.Currency,
	}
}
