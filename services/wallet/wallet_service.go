package wallet

import (
	"context"
	"sync"
	"time"

	"github.com/Trebetta/Trebetta-Wallet-Core/providers/trebetta"
	"github.com/Trebetta/Trebetta-Wallet-Core/services/monitoring/logging"
	"github.com/Trebetta/Trebetta-Wallet-Core/services/session"
)

// BalanceClient is the slice of the API client the cache needs.
type BalanceClient interface {
	GetBalance(ctx context.Context) (*trebetta.Wallet, error)
}

// WalletService is the single shared source of balance truth. The cached
// model is replaced whole on every refresh; a failed refresh leaves the
// balance "unknown" (nil), never partially updated.
type WalletService struct {
	client  BalanceClient
	session *session.Store
	logger  *logging.Logger

	mu          sync.RWMutex
	wallet      *WalletModel
	refreshing  bool
	subscribers map[int]func(*WalletModel)
	nextSubID   int
}

func NewWalletService(client BalanceClient, store *session.Store, logger *logging.Logger) *WalletService {
	return &WalletService{
		client:      client,
		session:     store,
		logger:      logger,
		subscribers: make(map[int]func(*WalletModel)),
	}
}

// Refresh fetches the balance and replaces the cached state. Failures are
// silent to consumers: the cache goes to nil and the error is returned only
// for callers that explicitly care. A refresh already in flight is not
// stacked.
func (w *WalletService) Refresh(ctx context.Context) error {
	w.mu.Lock()
	if w.refreshing {
		w.mu.Unlock()
		return ErrRefreshInFlight
	}
	w.refreshing = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.refreshing = false
		w.mu.Unlock()
	}()

	fetched, err := w.client.GetBalance(ctx)
	if err != nil {
		w.logger.Error("balance refresh failed", err)
		w.replace(nil)
		return err
	}

	w.replace(ToWalletModel(fetched))
	return nil
}

// InitFromSession refreshes only when an unexpired token is present,
// otherwise clears. Called once at application start.
func (w *WalletService) InitFromSession(ctx context.Context) error {
	if !w.session.TokenValid(time.Now()) {
		w.replace(nil)
		return ErrNoSession
	}
	return w.Refresh(ctx)
}

// Wallet returns a snapshot of the cached state. nil means "not yet known";
// consumers render a placeholder, never a computed value.
func (w *WalletService) Wallet() *WalletModel {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.wallet == nil {
		return nil
	}
	snapshot := *w.wallet
	return &snapshot
}

func (w *WalletService) Refreshing() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.refreshing
}

// Clear drops the cached balance, e.g. on logout or forced session expiry.
func (w *WalletService) Clear() {
	w.replace(nil)
}

// Subscribe registers an observer invoked after every state replacement.
// The returned function cancels the subscription.
func (w *WalletService) Subscribe(fn func(*WalletModel)) func() {
	w.mu.Lock()
	id := w.nextSubID
	w.nextSubID++
	w.subscribers[id] = fn
	w.mu.Unlock()

	return func() {
		w.mu.Lock()
		delete(w.subscribers, id)
		w.mu.Unlock()
	}
}

func (w *WalletService) replace(model *WalletModel) {
	w.mu.Lock()
	w.wallet = model
	observers := make([]func(*WalletModel), 0, len(w.subscribers))
	for _, fn := range w.subscribers {
		observers = append(observers, fn)
	}
	w.mu.Unlock()

	for _, fn := range observers {
		fn(model)
	}
}
