package withdrawal

import (
	"context"
	"sync"
	"time"

	"github.com/Trebetta/Trebetta-Wallet-Core/providers/trebetta"
	"github.com/Trebetta/Trebetta-Wallet-Core/utils"
)

// ResolveClient is the slice of the API client the resolver needs.
type ResolveClient interface {
	ResolveAccount(ctx context.Context, accountNumber, bankCode string) (*trebetta.ResolvedAccount, error)
}

// Resolver debounces NUBAN name lookups while the user is still typing.
// Each Request replaces the previously scheduled one; only a complete
// bank + 10-digit account number pair ever reaches the network.
type Resolver struct {
	client ResolveClient
	delay  time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func NewResolver(client ResolveClient, delay time.Duration) *Resolver {
	return &Resolver{
		client: client,
		delay:  delay,
	}
}

// Request schedules a resolution after the debounce window. fn receives the
// resolved account name, or an error when the field should unlock for manual
// entry. Resolution failure never blocks submission.
func (r *Resolver) Request(ctx context.Context, bankCode, accountNumber string, fn func(name string, err error)) {
	r.Cancel()

	if bankCode == "" || !utils.IsNUBAN(accountNumber) {
		return
	}

	r.mu.Lock()
	r.timer = time.AfterFunc(r.delay, func() {
		resolved, err := r.client.ResolveAccount(ctx, accountNumber, bankCode)
		if err != nil {
			fn("", err)
			return
		}
		if resolved == nil || resolved.AccountName == "" {
			fn("", ErrResolveFailed)
			return
		}
		fn(resolved.AccountName, nil)
	})
	r.mu.Unlock()
}

// Cancel drops any scheduled lookup, e.g. on sheet teardown.
func (r *Resolver) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
