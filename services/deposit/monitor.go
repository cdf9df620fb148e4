package deposit

import (
	"context"
	"sync"
	"time"

	"github.com/Trebetta/Trebetta-Wallet-Core/providers/trebetta"
	"github.com/Trebetta/Trebetta-Wallet-Core/services/monitoring/logging"
	"github.com/Trebetta/Trebetta-Wallet-Core/services/session"
	"github.com/Trebetta/Trebetta-Wallet-Core/services/transaction"
	"github.com/Trebetta/Trebetta-Wallet-Core/services/wallet"
	"github.com/Trebetta/Trebetta-Wallet-Core/utils"
	"github.com/shopspring/decimal"
)

// PendingClient is the slice of the API client the monitor needs.
type PendingClient interface {
	GetPendingDeposit(ctx context.Context) (*trebetta.PendingDeposit, error)
}

// Monitor owns the single polling task that watches a pending deposit until
// settlement. Tracking a new deposit cancels and replaces the running task;
// timers never stack.
type Monitor struct {
	client       PendingClient
	wallets      *wallet.WalletService
	transactions *transaction.TransactionService
	session      *session.Store
	logger       *logging.Logger
	interval     time.Duration
	onSettled    func(*trebetta.PendingDeposit)

	mu       sync.Mutex
	dep      *trebetta.PendingDeposit
	baseline decimal.Decimal
	latest   []trebetta.TransactionRecord
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewMonitor(client PendingClient, wallets *wallet.WalletService, transactions *transaction.TransactionService, store *session.Store, logger *logging.Logger, interval time.Duration) *Monitor {
	return &Monitor{
		client:       client,
		wallets:      wallets,
		transactions: transactions,
		session:      store,
		logger:       logger,
		interval:     interval,
	}
}

// SetOnSettled registers the settlement notification callback.
func (m *Monitor) SetOnSettled(fn func(*trebetta.PendingDeposit)) {
	m.mu.Lock()
	m.onSettled = fn
	m.mu.Unlock()
}

// Track starts polling for the given deposit, replacing any running task.
// Deposits without a server reference are not actionable and stop tracking.
func (m *Monitor) Track(ctx context.Context, dep *trebetta.PendingDeposit) {
	m.Stop()

	if dep == nil || dep.Reference == "" {
		return
	}

	baseline := decimal.Zero
	if current := m.wallets.Wallet(); current != nil {
		baseline = current.Balance
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	m.mu.Lock()
	m.dep = dep
	m.baseline = baseline
	m.cancel = cancel
	m.done = done
	m.mu.Unlock()

	// cancel is released when the task exits for any reason, not only Stop.
	go func() {
		defer cancel()
		m.run(runCtx, dep, baseline, done)
	}()
}

// Restore resumes tracking the pending deposit snapshotted in the session
// store, if one survived a restart.
func (m *Monitor) Restore(ctx context.Context) {
	if dep, ok := m.session.PendingDepositSnapshot(); ok {
		m.Track(ctx, dep)
	}
}

// Stop cancels the polling task and waits for it to exit.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	done := m.done
	m.cancel = nil
	m.done = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Pending returns the tracked deposit. The record survives expiry; only its
// actionability changes.
func (m *Monitor) Pending() *trebetta.PendingDeposit {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dep
}

func (m *Monitor) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancel != nil
}

// Expired reports whether the transfer window has passed. Polling continues
// regardless: confirmation can still arrive late.
func (m *Monitor) Expired(now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dep != nil && !m.dep.ExpiresAt.IsZero() && now.After(m.dep.ExpiresAt)
}

// ExpiryCountdown renders the remaining transfer window for display, e.g.
// "Closes in 25m". Empty when nothing is tracked or the deposit carries no
// window.
func (m *Monitor) ExpiryCountdown(now time.Time) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dep == nil || m.dep.ExpiresAt.IsZero() {
		return ""
	}
	return utils.FormatCountdown(m.dep.ExpiresAt.Sub(now))
}

// LatestTransactions is the history fetched on the last tick.
func (m *Monitor) LatestTransactions() []trebetta.TransactionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latest
}

func (m *Monitor) run(ctx context.Context, dep *trebetta.PendingDeposit, baseline decimal.Decimal, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if m.tick(ctx, dep, baseline) {
				return
			}
		}
	}
}

// tick runs one poll round and reports whether the monitor should stop.
func (m *Monitor) tick(ctx context.Context, dep *trebetta.PendingDeposit, baseline decimal.Decimal) bool {
	var (
		wg         sync.WaitGroup
		pending    *trebetta.PendingDeposit
		pendingErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		_ = m.wallets.Refresh(ctx)
	}()
	go func() {
		defer wg.Done()
		pending, pendingErr = m.client.GetPendingDeposit(ctx)
	}()
	go func() {
		defer wg.Done()
		records, err := m.transactions.List(ctx, 1, 20)
		if err != nil {
			return
		}
		m.mu.Lock()
		m.latest = records
		m.mu.Unlock()
	}()
	wg.Wait()

	if current := m.wallets.Wallet(); current != nil && current.Balance.GreaterThan(baseline) {
		m.settle(dep)
		return true
	}

	if pendingErr == nil && pending == nil {
		// Server no longer reports an active pending deposit.
		m.clearTracked()
		return true
	}

	return false
}

func (m *Monitor) settle(dep *trebetta.PendingDeposit) {
	m.session.ClearPendingDeposit()

	m.mu.Lock()
	m.dep = nil
	m.cancel = nil
	notify := m.onSettled
	m.mu.Unlock()

	if notify != nil {
		notify(dep)
	}
}

func (m *Monitor) clearTracked() {
	m.session.ClearPendingDeposit()

	m.mu.Lock()
	m.dep = nil
	m.cancel = nil
	m.mu.Unlock()
}
