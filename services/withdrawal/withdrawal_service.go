package withdrawal

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Trebetta/Trebetta-Wallet-Core/providers/trebetta"
	"github.com/Trebetta/Trebetta-Wallet-Core/services/monitoring/logging"
	"github.com/Trebetta/Trebetta-Wallet-Core/services/wallet"
	"github.com/Trebetta/Trebetta-Wallet-Core/utils"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// State is the withdrawal flow position.
type State int

const (
	StateForm State = iota
	StateSubmitting
	StateAwaitingOTP
	StateConfirming
	StateConfirmed
	StateFailed
)

// Client is the slice of the API client the withdrawal flow needs.
type Client interface {
	GetFeeRules(ctx context.Context) ([]trebetta.FeeRule, error)
	InitiateWithdrawal(ctx context.Context, request trebetta.InitiateWithdrawalRequest) (*trebetta.WithdrawalInitiated, error)
	ConfirmWithdrawal(ctx context.Context, reference, otp string) error
	ListSavedAccounts(ctx context.Context) ([]trebetta.SavedBankAccount, error)
	DeleteSavedAccount(ctx context.Context, id int64) error
}

// Form is the withdrawal sheet input. The PIN is wiped as soon as an
// initiation attempt resolves, success or not.
type Form struct {
	Amount        decimal.Decimal
	BankID        string `validate:"required"`
	AccountNumber string `validate:"required,len=10,numeric"`
	AccountName   string `validate:"required"`
	PIN           string `validate:"required,len=4,numeric"`
	SaveAccount   bool
}

// WithdrawalService drives form → initiate → awaiting-otp → confirm. The
// wallet cache is only refreshed after a successful OTP confirmation.
type WithdrawalService struct {
	client      Client
	wallets     *wallet.WalletService
	logger      *logging.Logger
	validate    *validator.Validate
	minFallback decimal.Decimal

	mu         sync.Mutex
	state      State
	submitting bool
	feeRules   []trebetta.FeeRule
	otp        *OTPSession
}

func NewWithdrawalService(client Client, wallets *wallet.WalletService, logger *logging.Logger, minFallback decimal.Decimal) *WithdrawalService {
	return &WithdrawalService{
		client:      client,
		wallets:     wallets,
		logger:      logger,
		validate:    validator.New(),
		minFallback: minFallback,
		state:       StateForm,
	}
}

// LoadFeeRules fetches the fee tiers. Failure is soft: the preview degrades
// to ₦0 and the flow stays usable.
func (s *WithdrawalService) LoadFeeRules(ctx context.Context) {
	rules, err := s.client.GetFeeRules(ctx)
	if err != nil {
		s.logger.Error("fee rules unavailable", err)
		return
	}

	s.mu.Lock()
	s.feeRules = rules
	s.mu.Unlock()
}

// FeePreview recomputes the fee and "you receive" figures for an amount.
func (s *WithdrawalService) FeePreview(amount decimal.Decimal) (fee, receive decimal.Decimal) {
	s.mu.Lock()
	rules := s.feeRules
	s.mu.Unlock()

	fee = FeeFor(rules, amount)
	return fee, ReceiveAmount(amount, fee)
}

// Minimum is the smallest accepted withdrawal amount.
func (s *WithdrawalService) Minimum() decimal.Decimal {
	s.mu.Lock()
	rules := s.feeRules
	s.mu.Unlock()

	return MinimumWithdrawal(rules, s.minFallback)
}

// Initiate validates the form and submits the withdrawal. On success the
// flow moves to awaiting-otp and the returned session drives confirmation.
// Every validation failure happens before any network call.
func (s *WithdrawalService) Initiate(ctx context.Context, form *Form) (*OTPSession, error) {
	minimum := s.Minimum()
	if form.Amount.LessThan(minimum) {
		return nil, fmt.Errorf("minimum withdrawal is %s: %w", utils.FormatNaira(minimum), ErrBelowMinimum)
	}

	bank, ok := trebetta.BankByID(form.BankID)
	if !ok {
		return nil, ErrBankRequired
	}

	if !utils.IsNUBAN(form.AccountNumber) {
		return nil, ErrAccountNumberInvalid
	}

	if strings.TrimSpace(form.AccountName) == "" {
		return nil, ErrAccountNameRequired
	}

	if !utils.IsPIN(form.PIN) {
		return nil, ErrPINInvalid
	}

	if err := s.validate.Struct(form); err != nil {
		return nil, ErrFormIncomplete
	}

	if err := s.beginSubmit(); err != nil {
		return nil, err
	}
	defer s.endSubmit()

	request := trebetta.InitiateWithdrawalRequest{
		Amount:        form.Amount,
		BankCode:      bank.Code,
		BankName:      bank.Name,
		AccountNumber: form.AccountNumber,
		AccountName:   form.AccountName,
		PIN:           form.PIN,
		SaveAccount:   form.SaveAccount,
	}

	// The PIN is transmitted once and never retained.
	form.PIN = ""

	initiated, err := s.client.InitiateWithdrawal(ctx, request)
	if err != nil {
		s.setState(StateForm)
		return nil, err
	}

	session := &OTPSession{
		Reference: initiated.Reference,
		ExpiresAt: initiated.ExpiresAt,
		Fee:       initiated.Fee,
		client:    s.client,
	}

	s.mu.Lock()
	s.otp = session
	s.state = StateAwaitingOTP
	s.mu.Unlock()

	return session, nil
}

// OTP returns the open confirmation session, if any.
func (s *WithdrawalService) OTP() *OTPSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.otp
}

// ConfirmOTP submits the code for the open session. Success finalizes the
// flow and refreshes the wallet cache; failure keeps the session open for
// retry.
func (s *WithdrawalService) ConfirmOTP(ctx context.Context, code string) error {
	s.mu.Lock()
	session := s.otp
	if session == nil {
		s.mu.Unlock()
		return ErrNoOTPSession
	}
	s.state = StateConfirming
	s.mu.Unlock()

	if err := session.Confirm(ctx, code); err != nil {
		s.setState(StateAwaitingOTP)
		return err
	}

	s.mu.Lock()
	s.otp = nil
	s.state = StateConfirmed
	s.mu.Unlock()

	// Balance moves server-side once the withdrawal is processing; pull the
	// new truth rather than computing it.
	if err := s.wallets.Refresh(ctx); err != nil {
		s.logger.Error("post-withdrawal balance refresh failed", err)
	}

	return nil
}

// Abandon marks an expired or given-up confirmation as failed; the remedy is
// a fresh withdrawal.
func (s *WithdrawalService) Abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.otp = nil
	s.state = StateFailed
}

// Reset returns the flow to a blank form.
func (s *WithdrawalService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.otp = nil
	s.state = StateForm
}

func (s *WithdrawalService) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SavedAccounts lists destinations kept server-side for pre-filling.
func (s *WithdrawalService) SavedAccounts(ctx context.Context) ([]trebetta.SavedBankAccount, error) {
	accounts, err := s.client.ListSavedAccounts(ctx)
	if err != nil {
		s.logger.Error("saved accounts unavailable", err)
		return nil, err
	}
	return accounts, nil
}

func (s *WithdrawalService) DeleteSavedAccount(ctx context.Context, id int64) error {
	return s.client.DeleteSavedAccount(ctx, id)
}

// SavedAccountRow is a render-ready saved destination for the picker sheet.
type SavedAccountRow struct {
	ID            int64
	BankName      string
	BankLogo      string
	AccountNumber string
	AccountName   string
}

// SavedAccountRows maps saved destinations into picker rows, resolving bank
// name and logo from the directory. Unknown codes fall back to the raw code
// and the default logo.
func SavedAccountRows(accounts []trebetta.SavedBankAccount) []SavedAccountRow {
	rows := make([]SavedAccountRow, 0, len(accounts))
	for _, account := range accounts {
		bankName := account.BankCode
		if bank, ok := trebetta.BankByCode(account.BankCode); ok {
			bankName = bank.Name
		}
		rows = append(rows, SavedAccountRow{
			ID:            account.ID,
			BankName:      bankName,
			BankLogo:      trebetta.GetBankLogoByCode(account.BankCode),
			AccountNumber: account.AccountNumber,
			AccountName:   account.AccountName,
		})
	}
	return rows
}

// Prefill copies a saved destination into the form. The PIN is never
// prefilled.
func (s *WithdrawalService) Prefill(form *Form, account trebetta.SavedBankAccount) {
	if bank, ok := trebetta.BankByCode(account.BankCode); ok {
		form.BankID = bank.ID
	}
	form.AccountNumber = account.AccountNumber
	form.AccountName = account.AccountName
}

func (s *WithdrawalService) beginSubmit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return ErrSubmissionInFlight
	}
	s.submitting = true
	s.state = StateSubmitting
	return nil
}

func (s *WithdrawalService) endSubmit() {
	s.mu.Lock()
	s.submitting = false
	s.mu.Unlock()
}

func (s *WithdrawalService) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
