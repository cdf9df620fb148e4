package deposit

import (
	"context"
	"strings"
	"sync"

	"github.com/Trebetta/Trebetta-Wallet-Core/providers/trebetta"
	"github.com/Trebetta/Trebetta-Wallet-Core/services/monitoring/logging"
	"github.com/Trebetta/Trebetta-Wallet-Core/services/session"
	"github.com/shopspring/decimal"
)

// State is the deposit sheet position. Failures always return to StateForm
// with no partial mutation.
type State int

const (
	StateForm State = iota
	StateSubmitting
	StateResult   // manual flow: bank transfer instructions on screen
	StateRedirect // instant flow: hand the payment link to the shell for a full-page redirect
	StateNoData   // initiation succeeded but response was unusable: contact support
)

// Client is the slice of the API client the deposit flow needs.
type Client interface {
	InitiateDeposit(ctx context.Context, request trebetta.InitiateDepositRequest) (*trebetta.PendingDeposit, error)
	InitiateInstantDeposit(ctx context.Context, amount decimal.Decimal) (*trebetta.InstantDeposit, error)
}

// DepositService drives the two funding flows: manual bank transfer (returns
// settlement instructions, then the monitor polls) and instant provider
// checkout (returns a hosted link for immediate redirect). The wallet cache
// is never touched here; balance moves only after server-side settlement.
type DepositService struct {
	client     Client
	session    *session.Store
	monitor    *Monitor
	logger     *logging.Logger
	minInstant decimal.Decimal

	mu         sync.Mutex
	state      State
	submitting bool
	result     *trebetta.PendingDeposit
}

func NewDepositService(client Client, store *session.Store, monitor *Monitor, logger *logging.Logger, minInstant decimal.Decimal) *DepositService {
	return &DepositService{
		client:     client,
		session:    store,
		monitor:    monitor,
		logger:     logger,
		minInstant: minInstant,
		state:      StateForm,
	}
}

// InitiateManual validates and submits a manual bank-transfer deposit. On
// success the returned pending deposit is snapshotted and handed to the
// monitor.
func (d *DepositService) InitiateManual(ctx context.Context, amount decimal.Decimal, senderName, senderBank string) (*trebetta.PendingDeposit, error) {
	senderName = strings.TrimSpace(senderName)
	senderBank = strings.TrimSpace(senderBank)

	// All validation happens before any network call.
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if len(senderName) < 2 {
		return nil, ErrSenderNameRequired
	}
	if len(senderBank) < 2 {
		return nil, ErrSenderBankRequired
	}

	if err := d.beginSubmit(); err != nil {
		return nil, err
	}
	defer d.endSubmit()

	created, err := d.client.InitiateDeposit(ctx, trebetta.InitiateDepositRequest{
		Amount:     amount,
		SenderName: senderName,
		SenderBank: senderBank,
	})
	if err != nil {
		d.setState(StateForm)
		return nil, err
	}

	d.mu.Lock()
	d.result = created
	d.state = StateResult
	d.mu.Unlock()

	if err := d.session.SnapshotPendingDeposit(created); err != nil {
		d.logger.Error("pending deposit snapshot failed", err)
	}
	if d.monitor != nil {
		d.monitor.Track(ctx, created)
	}

	return created, nil
}

// InitiateInstant validates and starts a provider checkout, returning the
// hosted payment link for a full-page redirect.
func (d *DepositService) InitiateInstant(ctx context.Context, amount decimal.Decimal) (string, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return "", ErrInvalidAmount
	}
	if amount.LessThan(d.minInstant) {
		return "", ErrBelowInstantMinimum
	}

	if err := d.beginSubmit(); err != nil {
		return "", err
	}
	defer d.endSubmit()

	instant, err := d.client.InitiateInstantDeposit(ctx, amount)
	if err != nil {
		d.setState(StateForm)
		return "", err
	}

	if instant == nil || instant.PaymentLink == "" {
		d.setState(StateNoData)
		return "", ErrNoPaymentLink
	}

	d.setState(StateRedirect)
	return instant.PaymentLink, nil
}

func (d *DepositService) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Result is the pending deposit shown on the instruction screen, if any.
func (d *DepositService) Result() *trebetta.PendingDeposit {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.result
}

// Dismiss returns the sheet to the form. The pending deposit itself stays
// tracked by the monitor until settled or replaced.
func (d *DepositService) Dismiss() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = StateForm
	d.result = nil
}

func (d *DepositService) beginSubmit() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.submitting {
		return ErrSubmissionInFlight
	}
	d.submitting = true
	d.state = StateSubmitting
	return nil
}

func (d *DepositService) endSubmit() {
	d.mu.Lock()
	d.submitting = false
	d.mu.Unlock()
}

func (d *DepositService) setState(state State) {
	d.mu.Lock()
	d.state = state
	d.mu.Unlock()
}
