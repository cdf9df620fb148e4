package session

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Trebetta/Trebetta-Wallet-Core/providers/trebetta"
	"github.com/Trebetta/Trebetta-Wallet-Core/services/monitoring/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/patrickmn/go-cache"
)

// Storage keys. These mirror what the backend expects cleared on session
// expiry: token, user snapshot and session id go together.
const (
	KeyToken          = "trebetta_token"
	KeyUser           = "trebetta_user"
	KeySessionID      = "session_id"
	KeyHasPIN         = "trebetta_has_pin"
	KeyTheme          = "trebetta_theme"
	KeyPendingDeposit = "trebetta_pending_deposit"
)

// Store is the flat key-value session state: bearer token, "has transaction
// PIN" flag, theme preference and a serialized pending-deposit snapshot for
// restart survival. Values live in an in-memory cache and are persisted to a
// single state file on demand.
type Store struct {
	c      *cache.Cache
	path   string
	mu     sync.Mutex
	logger *logging.Logger
}

func NewStore(path string, logger *logging.Logger) *Store {
	return &Store{
		c:      cache.New(cache.NoExpiration, 0),
		path:   path,
		logger: logger,
	}
}

func (s *Store) SetToken(token string) {
	s.c.Set(KeyToken, token, cache.NoExpiration)
}

// Token returns the stored bearer token, or "" when logged out.
func (s *Store) Token() string {
	return s.getString(KeyToken)
}

// TokenValid reports whether a token is present and, when it carries an exp
// claim, not yet expired. The signature is never checked here; the server is
// the authority and rejects bad tokens with 401.
func (s *Store) TokenValid(now time.Time) bool {
	raw := s.Token()
	if raw == "" {
		return false
	}

	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return false
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}

	return exp.After(now)
}

func (s *Store) SetTheme(theme string) {
	s.c.Set(KeyTheme, theme, cache.NoExpiration)
}

func (s *Store) Theme() string {
	return s.getString(KeyTheme)
}

func (s *Store) SetHasTransactionPIN(has bool) {
	s.c.Set(KeyHasPIN, has, cache.NoExpiration)
}

func (s *Store) HasTransactionPIN() bool {
	val, found := s.c.Get(KeyHasPIN)
	if !found {
		return false
	}
	has, ok := val.(bool)
	return ok && has
}

// SnapshotPendingDeposit keeps the active pending deposit across restarts.
func (s *Store) SnapshotPendingDeposit(dep *trebetta.PendingDeposit) error {
	raw, err := json.Marshal(dep)
	if err != nil {
		return fmt.Errorf("could not snapshot pending deposit: %w", err)
	}
	s.c.Set(KeyPendingDeposit, string(raw), cache.NoExpiration)
	return nil
}

func (s *Store) PendingDepositSnapshot() (*trebetta.PendingDeposit, bool) {
	raw := s.getString(KeyPendingDeposit)
	if raw == "" {
		return nil, false
	}

	var dep trebetta.PendingDeposit
	if err := json.Unmarshal([]byte(raw), &dep); err != nil {
		s.logger.Error("corrupt pending deposit snapshot", err)
		return nil, false
	}
	return &dep, true
}

func (s *Store) ClearPendingDeposit() {
	s.c.Delete(KeyPendingDeposit)
}

// ClearSession removes every credential key. Invoked by the global 401 hook
// and on explicit logout; theme survives, it is a device preference.
func (s *Store) ClearSession() {
	s.c.Delete(KeyToken)
	s.c.Delete(KeyUser)
	s.c.Delete(KeySessionID)
	s.c.Delete(KeyHasPIN)
	s.c.Delete(KeyPendingDeposit)
}

// Persist writes the store to the configured state file.
func (s *Store) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.SaveFile(s.path)
}

// Load restores state from disk. A missing file is a fresh install, not an
// error.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.c.LoadFile(s.path); err != nil {
		s.logger.Info(fmt.Sprintf("no session state restored: %v", err))
	}
	return nil
}

func (s *Store) getString(key string) string {
	val, found := s.c.Get(key)
	if !found {
		return ""
	}
	str, ok := val.(string)
	if !ok {
		return ""
	}
	return str
}
