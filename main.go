package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Trebetta/Trebetta-Wallet-Core/providers"
	"github.com/Trebetta/Trebetta-Wallet-Core/providers/trebetta"
	"github.com/Trebetta/Trebetta-Wallet-Core/services/deposit"
	"github.com/Trebetta/Trebetta-Wallet-Core/services/monitoring/logging"
	"github.com/Trebetta/Trebetta-Wallet-Core/services/session"
	"github.com/Trebetta/Trebetta-Wallet-Core/services/transaction"
	"github.com/Trebetta/Trebetta-Wallet-Core/services/wallet"
	"github.com/Trebetta/Trebetta-Wallet-Core/utils"
)

var envPath string = "."

// Smoke harness: restores the session, initializes the wallet cache and dumps
// the balance and recent history. The flows themselves are driven by the
// embedding shell.
func main() {

	config, err := utils.LoadConfig(envPath)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}

	logger := logging.NewLogger()

	store := session.NewStore(config.StateFilePath, logger)
	_ = store.Load()

	client := trebetta.NewWalletClient(store.Token, logger)

	registry := providers.NewProviderService()
	registry.AddProvider(client)
	if p, ok := registry.GetProvider(providers.Trebetta); ok {
		logger.Info("Provider ready", p.GetName(), p.GetBaseURL())
	}

	wallets := wallet.NewWalletService(client, store, logger)
	transactions := transaction.NewTransactionService(client, logger)
	monitor := deposit.NewMonitor(client, wallets, transactions, store, logger,
		time.Duration(config.PollIntervalSeconds)*time.Second)

	client.SetUnauthorizedHook(func() {
		store.ClearSession()
		wallets.Clear()
		monitor.Stop()
	})

	ctx := context.Background()

	if err := wallets.InitFromSession(ctx); err != nil {
		fmt.Println("No active session; log in from the app shell first.")
		os.Exit(0)
	}

	monitor.Restore(ctx)

	if current := wallets.Wallet(); current != nil {
		fmt.Printf("Balance: %s %s\n", utils.FormatNairaDetailed(current.Balance), current.Currency)
	}

	records, err := transactions.List(ctx, 1, 10)
	if err == nil {
		for _, row := range transactions.Rows(records, time.Now()) {
			fmt.Printf("%-12s %12s  %-10s %s\n", row.Title, row.Amount, row.Status, row.When)
		}
	}
}
