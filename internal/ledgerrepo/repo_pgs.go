// Package ledgerrepo manages repository layer of balance mutations.
//
// Every mutation runs inside a single database transaction so that the
// balance update(s) and the paired transaction record either all persist
// or none do.
package ledgerrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-fin/ledger-bank/internal/accountrepo"
	"github.com/go-fin/ledger-bank/internal/domain"
	"github.com/go-fin/ledger-bank/internal/transactionrepo"
	"github.com/go-fin/ledger-bank/pkg/errorspkg"

	"github.com/rs/zerolog"
)

// RepoPGS facilitates ledger repository layer logic.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns ledger RepoPGS with a connection to start transactions.
func NewRepoPGS(conn *sql.DB) *RepoPGS {
	return &RepoPGS{conn: conn}
}

// Deposit increases the account's balance and appends a DEPOSIT record
// within a single database transaction.
func (r *RepoPGS) Deposit(ctx context.Context, accountID int64, amount string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var account domain.Account

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return account, errorspkg.ErrInternal
	}
	defer rollback(ctx, tx)

	accountRepo := accountrepo.NewRepoPGS(tx)
	transactionRepo := transactionrepo.NewRepoPGS(tx)

	account, err = accountRepo.AddBalance(ctx, amount, accountID)
	if err != nil {
		return domain.Account{}, err
	}

	if _, err := transactionRepo.Create(ctx, accountID, amount, domain.TransactionDeposit); err != nil {
		return domain.Account{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, errorspkg.ErrInternal
	}

	return account, nil
}

// Withdraw decreases the account's balance and appends a WITHDRAW record
// within a single database transaction. The accounts_balance_check
// constraint rejects the commit when the balance would go negative.
func (r *RepoPGS) Withdraw(ctx context.Context, accountID int64, amount string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var account domain.Account

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return account, errorspkg.ErrInternal
	}
	defer rollback(ctx, tx)

	accountRepo := accountrepo.NewRepoPGS(tx)
	transactionRepo := transactionrepo.NewRepoPGS(tx)

	account, err = accountRepo.AddBalance(ctx, "-"+amount, accountID)
	if err != nil {
		return domain.Account{}, err
	}

	if _, err := transactionRepo.Create(ctx, accountID, amount, domain.TransactionWithdraw); err != nil {
		return domain.Account{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, errorspkg.ErrInternal
	}

	return account, nil
}

// TransferFunds moves money between two accounts.
//
// It updates both balances and appends a single TRANSFER record against
// the source account within one database transaction. A failure at any
// point rolls back all writes.
func (r *RepoPGS) TransferFunds(ctx context.Context, arg domain.TransferFundsParams) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}
	defer rollback(ctx, tx)

	accountRepo := accountrepo.NewRepoPGS(tx)
	transactionRepo := transactionrepo.NewRepoPGS(tx)

	var fromAccount, toAccount domain.Account
	// To avoid deadlocks execute statements in consistent id order
	if arg.FromAccountID < arg.ToAccountID {
		arg := addBalancesParams{
			account1ID: arg.FromAccountID,
			amount1:    "-" + arg.Amount,
			account2ID: arg.ToAccountID,
			amount2:    arg.Amount,
		}

		fromAccount, toAccount, err = addBalances(ctx, accountRepo, arg)
	} else {
		arg := addBalancesParams{
			account1ID: arg.ToAccountID,
			amount1:    arg.Amount,
			account2ID: arg.FromAccountID,
			amount2:    "-" + arg.Amount,
		}

		toAccount, fromAccount, err = addBalances(ctx, accountRepo, arg)
	}

	if err != nil {
		return result, err
	}

	result.FromAccount, result.ToAccount = fromAccount, toAccount

	result.Transaction, err = transactionRepo.Create(ctx, arg.FromAccountID, arg.Amount, domain.TransactionTransfer)
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.TransferTxResult{}, errorspkg.ErrInternal
	}

	return result, nil
}

// ListTransactions returns the account's transaction history, newest first.
func (r *RepoPGS) ListTransactions(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	return transactionrepo.NewRepoPGS(r.conn).ListByAccount(ctx, accountID)
}

type addBalancesParams struct {
	account1ID int64
	amount1    string
	account2ID int64
	amount2    string
}

func addBalances(ctx context.Context, r *accountrepo.RepoPGS, arg addBalancesParams) (domain.Account, domain.Account, error) {
	account1, err := r.AddBalance(ctx, arg.amount1, arg.account1ID)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	account2, err := r.AddBalance(ctx, arg.amount2, arg.account2ID)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	return account1, account2, nil
}

func rollback(ctx context.Context, tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		zerolog.Ctx(ctx).Error().Err(err).Send()
	}
}
