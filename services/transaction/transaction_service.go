package transaction

import (
	"context"
	"time"

	"github.com/Trebetta/Trebetta-Wallet-Core/providers/trebetta"
	"github.com/Trebetta/Trebetta-Wallet-Core/services/monitoring/logging"
)

// HistoryClient is the slice of the API client the presenter needs.
type HistoryClient interface {
	ListTransactions(ctx context.Context, page, limit int) ([]trebetta.TransactionRecord, error)
}

// TransactionService fetches and presents the merged funds-movement history
// (deposits, withdrawals, pool entries, payouts).
type TransactionService struct {
	client HistoryClient
	logger *logging.Logger
}

func NewTransactionService(client HistoryClient, logger *logging.Logger) *TransactionService {
	return &TransactionService{
		client: client,
		logger: logger,
	}
}

func (t *TransactionService) List(ctx context.Context, page, limit int) ([]trebetta.TransactionRecord, error) {
	records, err := t.client.ListTransactions(ctx, page, limit)
	if err != nil {
		t.logger.Error("could not fetch transactions", err)
		return nil, err
	}
	return records, nil
}

// Rows maps records into render-ready lines.
func (t *TransactionService) Rows(records []trebetta.TransactionRecord, now time.Time) []DisplayRow {
	rows := make([]DisplayRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, ToDisplayRow(record, now))
	}
	return rows
}

// FindSettled locates a settled record for a deposit reference, used by the
// pending-deposit "check status" action.
func (t *TransactionService) FindSettled(records []trebetta.TransactionRecord, reference string) *trebetta.TransactionRecord {
	if reference == "" {
		return nil
	}
	for i := range records {
		if records[i].Reference == reference && IsSettled(records[i]) {
			return &records[i]
		}
	}
	return nil
}
