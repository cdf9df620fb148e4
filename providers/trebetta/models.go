package trebetta

import (
	"time"

	"github.com/shopspring/decimal"
)

// Response is the conventional API envelope on every Trebetta endpoint.
type Response[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Wallet is the server-owned balance snapshot.
type Wallet struct {
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

// BankDetails identifies a settlement account (ours for deposits, the
// user's for withdrawals).
type BankDetails struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
}

// PendingDeposit is a deposit that has been initiated but not yet settled.
type PendingDeposit struct {
	Amount     decimal.Decimal `json:"amount"`
	Reference  string          `json:"reference"`
	Bank       *BankDetails    `json:"bank,omitempty"`
	ExpiresAt  time.Time       `json:"expires_at"`
	SenderName string          `json:"sender_name,omitempty"`
	SenderBank string          `json:"sender_bank,omitempty"`
	HostedLink string          `json:"hosted_link,omitempty"`
}

// FeeRule maps a withdrawal amount interval to a flat fee. A nil Max means
// the interval is unbounded above.
type FeeRule struct {
	Min decimal.Decimal  `json:"min"`
	Max *decimal.Decimal `json:"max"`
	Fee decimal.Decimal  `json:"fee"`
}

// SavedBankAccount is a user-scoped destination account kept server-side to
// pre-fill withdrawal forms.
type SavedBankAccount struct {
	ID            int64     `json:"id"`
	BankCode      string    `json:"bank_code"`
	AccountNumber string    `json:"account_number"`
	AccountName   string    `json:"account_name"`
	CreatedAt     time.Time `json:"created_at"`
}

// TransactionRecord is a server-owned history row. It is rendered, never
// mutated client-side.
type TransactionRecord struct {
	ID        int64           `json:"id"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	Reference string          `json:"reference"`
	Provider  string          `json:"provider"`
	CreatedAt time.Time       `json:"created_at"`
}

// Transaction types.
const (
	TransactionDeposit    = "deposit"
	TransactionWithdrawal = "withdrawal"
	TransactionBet        = "bet"
	TransactionPayout     = "payout"
)

// Transaction statuses.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusSuccess    = "success"
	StatusFailed     = "failed"
	StatusCancelled  = "cancelled"
)

// ResolvedAccount is the answer from the NUBAN name-resolution endpoint.
type ResolvedAccount struct {
	AccountName string `json:"account_name"`
}

type InitiateDepositRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	SenderName string          `json:"sender_name,omitempty"`
	SenderBank string          `json:"sender_bank,omitempty"`
}

type InstantDepositRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// InstantDeposit carries the hosted checkout link for the provider flow.
type InstantDeposit struct {
	PaymentLink string `json:"payment_link"`
}

type ResolveAccountRequest struct {
	AccountNumber string `json:"account_number"`
	BankCode      string `json:"bank_code"`
}

type InitiateWithdrawalRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	BankCode      string          `json:"bank_code"`
	BankName      string          `json:"bank_name"`
	AccountNumber string          `json:"account_number"`
	AccountName   string          `json:"account_name"`
	PIN           string          `json:"pin"`
	SaveAccount   bool            `json:"save_account"`
}

// WithdrawalInitiated is returned once a withdrawal is accepted and an OTP
// has been dispatched.
type WithdrawalInitiated struct {
	Reference string          `json:"reference"`
	ExpiresAt time.Time       `json:"expires_at"`
	Fee       decimal.Decimal `json:"fee"`
	Bank      *BankDetails    `json:"bank,omitempty"`
}

type ConfirmWithdrawalRequest struct {
	Reference string `json:"reference"`
	OTP       string `json:"otp"`
}
