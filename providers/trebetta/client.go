package trebetta

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Trebetta/Trebetta-Wallet-Core/models"
	"github.com/Trebetta/Trebetta-Wallet-Core/providers"
	"github.com/Trebetta/Trebetta-Wallet-Core/services/monitoring/logging"
	"github.com/Trebetta/Trebetta-Wallet-Core/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletClient talks to the Trebetta wallet API. Every call carries the
// bearer token from the session store; a 401 on any call fires the
// provider-level unauthorized hook.
type WalletClient struct {
	providers.BaseProvider
	config *ClientConfig
}

type ClientConfig struct {
	APIBaseURL         string `mapstructure:"API_BASE_URL"`
	HTTPTimeoutSeconds int    `mapstructure:"HTTP_TIMEOUT_SECONDS"`
}

func NewWalletClient(token providers.TokenSource, logger *logging.Logger) *WalletClient {

	var c ClientConfig

	err := utils.LoadCustomConfig(utils.EnvPath, &c)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}

	if c.APIBaseURL == "" {
		c.APIBaseURL = "https://api.trebetta.com/api"
	}
	if c.HTTPTimeoutSeconds <= 0 {
		c.HTTPTimeoutSeconds = 15
	}

	return &WalletClient{
		BaseProvider: providers.BaseProvider{
			Name:    providers.Trebetta,
			BaseURL: c.APIBaseURL,
			Client: &http.Client{
				Timeout: time.Duration(c.HTTPTimeoutSeconds) * time.Second,
			},
			Token:  token,
			Logger: logger,
		},
		config: &c,
	}
}

// SetUnauthorizedHook registers the global 401 handler (session teardown).
func (c *WalletClient) SetUnauthorizedHook(hook providers.UnauthorizedHook) {
	c.OnUnauthorized = hook
}

func (c *WalletClient) GetBalance(ctx context.Context) (*Wallet, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	base.Path += "/wallet/balance"

	resp, err := c.MakeRequestWithContext(ctx, "GET", base.String(), nil, nil)
	if err != nil {
		return nil, err
	}

	wallet, err := parse[Wallet](resp)
	if err != nil {
		return nil, err
	}

	return &wallet, nil
}

func (c *WalletClient) ListTransactions(ctx context.Context, page, limit int) ([]TransactionRecord, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	base.Path += "/wallet/transactions"

	// Query params
	params := url.Values{}
	params.Add("page", strconv.Itoa(page))
	params.Add("limit", strconv.Itoa(limit))
	base.RawQuery = params.Encode()

	resp, err := c.MakeRequestWithContext(ctx, "GET", base.String(), nil, nil)
	if err != nil {
		return nil, err
	}

	return parse[[]TransactionRecord](resp)
}

// GetPendingDeposit returns the active pending deposit, or nil when the
// server reports none.
func (c *WalletClient) GetPendingDeposit(ctx context.Context) (*PendingDeposit, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	base.Path += "/wallet/deposit/pending"

	resp, err := c.MakeRequestWithContext(ctx, "GET", base.String(), nil, nil)
	if err != nil {
		return nil, err
	}

	return parse[*PendingDeposit](resp)
}

func (c *WalletClient) InitiateDeposit(ctx context.Context, request InitiateDepositRequest) (*PendingDeposit, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	base.Path += "/wallet/deposit/initiate"

	resp, err := c.MakeRequestWithContext(ctx, "POST", base.String(), request, idempotencyHeader())
	if err != nil {
		return nil, err
	}

	deposit, err := parse[PendingDeposit](resp)
	if err != nil {
		return nil, err
	}

	return &deposit, nil
}

func (c *WalletClient) InitiateInstantDeposit(ctx context.Context, amount decimal.Decimal) (*InstantDeposit, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	base.Path += "/wallet/deposit/flutterwave/initiate"

	request := InstantDepositRequest{Amount: amount}

	resp, err := c.MakeRequestWithContext(ctx, "POST", base.String(), request, idempotencyHeader())
	if err != nil {
		return nil, err
	}

	instant, err := parse[InstantDeposit](resp)
	if err != nil {
		return nil, err
	}

	return &instant, nil
}

func (c *WalletClient) GetFeeRules(ctx context.Context) ([]FeeRule, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	base.Path += "/wallet/fees"

	resp, err := c.MakeRequestWithContext(ctx, "GET", base.String(), nil, nil)
	if err != nil {
		return nil, err
	}

	return parse[[]FeeRule](resp)
}

func (c *WalletClient) ListSavedAccounts(ctx context.Context) ([]SavedBankAccount, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	base.Path += "/wallet/accounts"

	resp, err := c.MakeRequestWithContext(ctx, "GET", base.String(), nil, nil)
	if err != nil {
		return nil, err
	}

	return parse[[]SavedBankAccount](resp)
}

func (c *WalletClient) DeleteSavedAccount(ctx context.Context, id int64) error {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	base.Path += fmt.Sprintf("/wallet/accounts/%d", id)

	resp, err := c.MakeRequestWithContext(ctx, "DELETE", base.String(), nil, nil)
	if err != nil {
		return err
	}

	_, err = parse[json.RawMessage](resp)
	return err
}

func (c *WalletClient) ResolveAccount(ctx context.Context, accountNumber, bankCode string) (*ResolvedAccount, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	base.Path += "/bank/resolve"

	request := ResolveAccountRequest{
		AccountNumber: accountNumber,
		BankCode:      bankCode,
	}

	resp, err := c.MakeRequestWithContext(ctx, "POST", base.String(), request, nil)
	if err != nil {
		return nil, err
	}

	resolved, err := parse[ResolvedAccount](resp)
	if err != nil {
		return nil, err
	}

	return &resolved, nil
}

func (c *WalletClient) InitiateWithdrawal(ctx context.Context, request InitiateWithdrawalRequest) (*WithdrawalInitiated, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	base.Path += "/wallet/withdraw/initiate"

	resp, err := c.MakeRequestWithContext(ctx, "POST", base.String(), request, idempotencyHeader())
	if err != nil {
		return nil, err
	}

	initiated, err := parse[WithdrawalInitiated](resp)
	if err != nil {
		return nil, err
	}

	return &initiated, nil
}

func (c *WalletClient) ConfirmWithdrawal(ctx context.Context, reference, otp string) error {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	base.Path += "/wallet/withdraw/confirm"

	request := ConfirmWithdrawalRequest{
		Reference: reference,
		OTP:       otp,
	}

	resp, err := c.MakeRequestWithContext(ctx, "POST", base.String(), request, nil)
	if err != nil {
		return err
	}

	_, err = parse[json.RawMessage](resp)
	return err
}

// parse decodes the envelope and converts transport or envelope failures to
// an APIError carrying the server's message verbatim.
func parse[T any](resp *http.Response) (T, error) {
	var zero T
	defer resp.Body.Close()

	var envelope Response[T]
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&envelope); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return zero, models.NewAPIError(resp.StatusCode, "")
		}
		return zero, fmt.Errorf("error decoding response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !envelope.Status {
		return zero, models.NewAPIError(resp.StatusCode, envelope.Message)
	}

	return envelope.Data, nil
}

// idempotencyHeader guards funds-moving initiations against double submission.
func idempotencyHeader() map[string]string {
	return map[string]string{
		"Idempotency-Key": uuid.NewString(),
	}
}
