package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Trebetta/Trebetta-Wallet-Core/providers/trebetta"
	"github.com/Trebetta/Trebetta-Wallet-Core/services/monitoring/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "state"), logging.NewLogger())
}

func token(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	assert.NoError(t, err)
	return signed
}

func TestTokenValid(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{name: "empty", token: "", want: false},
		{name: "garbage", token: "not-a-jwt", want: false},
		{name: "expired", token: token(t, jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()}), want: false},
		{name: "live", token: token(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}), want: true},
		{name: "no_exp_claim", token: token(t, jwt.MapClaims{"user_id": 1}), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			if tt.token != "" {
				s.SetToken(tt.token)
			}
			assert.Equal(t, tt.want, s.TokenValid(now))
		})
	}
}

func TestPendingDepositSnapshotRoundTrip(t *testing.T) {
	s := newStore(t)

	_, ok := s.PendingDepositSnapshot()
	assert.False(t, ok)

	dep := &trebetta.PendingDeposit{
		Amount:    decimal.NewFromInt(2000),
		Reference: "DEP-9",
		ExpiresAt: time.Now().Add(30 * time.Minute).UTC().Truncate(time.Second),
		Bank: &trebetta.BankDetails{
			BankName:      "Providus Bank",
			AccountNumber: "9900112233",
			AccountName:   "Trebetta Collections",
		},
	}
	assert.NoError(t, s.SnapshotPendingDeposit(dep))

	restored, ok := s.PendingDepositSnapshot()
	assert.True(t, ok)
	assert.Equal(t, "DEP-9", restored.Reference)
	assert.True(t, restored.Amount.Equal(dep.Amount))
	assert.Equal(t, "Providus Bank", restored.Bank.BankName)

	s.ClearPendingDeposit()
	_, ok = s.PendingDepositSnapshot()
	assert.False(t, ok)
}

func TestClearSessionKeepsTheme(t *testing.T) {
	s := newStore(t)
	s.SetToken("tok")
	s.SetHasTransactionPIN(true)
	s.SetTheme("dark")
	assert.NoError(t, s.SnapshotPendingDeposit(&trebetta.PendingDeposit{Reference: "X"}))

	s.ClearSession()

	assert.Empty(t, s.Token())
	assert.False(t, s.HasTransactionPIN())
	_, ok := s.PendingDepositSnapshot()
	assert.False(t, ok)
	assert.Equal(t, "dark", s.Theme())
}

func TestPersistAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state")
	logger := logging.NewLogger()

	s := NewStore(path, logger)
	s.SetToken("tok")
	s.SetTheme("dark")
	assert.NoError(t, s.Persist())

	restored := NewStore(path, logger)
	assert.NoError(t, restored.Load())
	assert.Equal(t, "tok", restored.Token())
	assert.Equal(t, "dark", restored.Theme())
}
