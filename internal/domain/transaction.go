package domain

import "time"

// TransactionType classifies a balance-affecting event.
type TransactionType string

// Supported transaction types.
const (
	TransactionDeposit  TransactionType = "DEPOSIT"
	TransactionWithdraw TransactionType = "WITHDRAW"
	TransactionTransfer TransactionType = "TRANSFER"
)

// Transaction is an immutable record of one balance-affecting event.
// It is written once alongside the balance mutation and never changed.
type Transaction struct {
	ID        int64           `json:"id"`
	AccountID int64           `json:"account_id"`
	Amount    string          `json:"amount"` // positive magnitude
	Type      TransactionType `json:"transaction_type"`
	Timestamp time.Time       `json:"timestamp"`
}

// TransferFundsParams is the input data for the transfer transaction.
type TransferFundsParams struct {
	FromAccountID int64  `json:"from_account_id"`
	ToAccountID   int64  `json:"to_account_id"`
	Amount        string `json:"amount"`
}

// TransferTxResult is the result of the transfer transaction.
// The TRANSFER record is attributed to the source account only.
type TransferTxResult struct {
	FromAccount Account     `json:"from_account"`
	ToAccount   Account     `json:"to_account"`
	Transaction Transaction `json:"transaction"`
}
