package trebetta

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Trebetta/Trebetta-Wallet-Core/models"
	"github.com/Trebetta/Trebetta-Wallet-Core/providers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newTestClient(serverURL string) *WalletClient {
	return &WalletClient{
		BaseProvider: providers.BaseProvider{
			Name:    providers.Trebetta,
			BaseURL: serverURL,
			Client:  &http.Client{Timeout: 5 * time.Second},
			Token:   func() string { return "test-token" },
		},
	}
}

func TestGetBalance(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func() *httptest.Server
		assert    func(t *testing.T, wallet *Wallet, err error)
	}{
		{
			name: "success",
			mockSetup: func() *httptest.Server {
				return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, http.MethodGet, r.Method)
					assert.Equal(t, "/wallet/balance", r.URL.Path)
					assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

					w.WriteHeader(http.StatusOK)
					json.NewEncoder(w).Encode(map[string]any{
						"status": true,
						"data":   map[string]any{"balance": 12500.5, "currency": "NGN"},
					})
				}))
			},
			assert: func(t *testing.T, wallet *Wallet, err error) {
				assert.NoError(t, err)
				assert.NotNil(t, wallet)
				assert.True(t, wallet.Balance.Equal(decimal.NewFromFloat(12500.5)))
				assert.Equal(t, "NGN", wallet.Currency)
			},
		},
		{
			name: "server_message_surfaced_verbatim",
			mockSetup: func() *httptest.Server {
				return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusBadRequest)
					json.NewEncoder(w).Encode(map[string]any{
						"status":  false,
						"message": "Wallet temporarily locked",
					})
				}))
			},
			assert: func(t *testing.T, wallet *Wallet, err error) {
				assert.Error(t, err)
				assert.Nil(t, wallet)

				var apiErr *models.APIError
				assert.True(t, errors.As(err, &apiErr))
				assert.Equal(t, "Wallet temporarily locked", apiErr.Message)
			},
		},
		{
			name: "envelope_status_false_on_200",
			mockSetup: func() *httptest.Server {
				return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusOK)
					json.NewEncoder(w).Encode(map[string]any{
						"status":  false,
						"message": "No wallet for user",
					})
				}))
			},
			assert: func(t *testing.T, wallet *Wallet, err error) {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "No wallet for user")
			},
		},
		{
			name: "network_error",
			mockSetup: func() *httptest.Server {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
				server.Close() // close right away to cause connection error
				return server
			},
			assert: func(t *testing.T, wallet *Wallet, err error) {
				assert.Error(t, err)
				assert.Nil(t, wallet)
			},
		},
		{
			name: "malformed_body",
			mockSetup: func() *httptest.Server {
				return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusOK)
					w.Write([]byte("<html>not json</html>"))
				}))
			},
			assert: func(t *testing.T, wallet *Wallet, err error) {
				assert.Error(t, err)
				assert.Nil(t, wallet)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := tt.mockSetup()
			defer server.Close()

			client := newTestClient(server.URL)
			wallet, err := client.GetBalance(context.Background())
			tt.assert(t, wallet, err)
		})
	}
}

func TestUnauthorizedHookFiresOn401(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"status": false, "message": "Unauthorized"})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	fired := make(chan struct{}, 1)
	client.SetUnauthorizedHook(func() { fired <- struct{}{} })

	_, err := client.GetBalance(context.Background())
	assert.Error(t, err)
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("unauthorized hook never fired")
	}

	var apiErr *models.APIError
	assert.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.Unauthorized())
}

func TestInitiateWithdrawalRequestShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/wallet/withdraw/initiate", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "5000", body["amount"])
		assert.Equal(t, "058", body["bank_code"])
		assert.Equal(t, "0123456789", body["account_number"])
		assert.Equal(t, "1234", body["pin"])
		assert.Equal(t, true, body["save_account"])

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data": map[string]any{
				"reference":  "WD-123",
				"expires_at": time.Now().Add(5 * time.Minute).UTC().Format(time.RFC3339),
				"fee":        50,
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	initiated, err := client.InitiateWithdrawal(context.Background(), InitiateWithdrawalRequest{
		Amount:        decimal.NewFromInt(5000),
		BankCode:      "058",
		BankName:      "GTBank",
		AccountNumber: "0123456789",
		AccountName:   "Jane Doe",
		PIN:           "1234",
		SaveAccount:   true,
	})

	assert.NoError(t, err)
	assert.Equal(t, "WD-123", initiated.Reference)
	assert.True(t, initiated.Fee.Equal(decimal.NewFromInt(50)))
}

func TestGetPendingDepositNull(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{"status": true, "data": nil})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	pending, err := client.GetPendingDeposit(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, pending)
}
