// Package ledgerservice manages business logic layer of balance mutations.
package ledgerservice

import (
	"context"

	"github.com/go-fin/ledger-bank/internal/accountdelivery"
	"github.com/go-fin/ledger-bank/internal/domain"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by ledger service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type Repo interface {
	Deposit(ctx context.Context, accountID int64, amount string) (domain.Account, error)
	Withdraw(ctx context.Context, accountID int64, amount string) (domain.Account, error)
	TransferFunds(ctx context.Context, arg domain.TransferFundsParams) (domain.TransferTxResult, error)
	ListTransactions(ctx context.Context, accountID int64) ([]domain.Transaction, error)
}

// Service facilitates ledger service layer logic.
type Service struct {
	repo           Repo
	accountService accountdelivery.Service
}

// New returns ledger service struct to manage balance mutation business logic.
func New(lr Repo, as accountdelivery.Service) *Service {
	return &Service{
		repo:           lr,
		accountService: as,
	}
}

func validAmount(ctx context.Context, amount string) (decimal.Decimal, error) {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return amountDecimal, domain.ErrInvalidAmount
	}

	if amountDecimal.LessThanOrEqual(decimal.Zero) {
		return amountDecimal, domain.ErrNegativeAmount
	}

	return amountDecimal, nil
}

// checkBalance verifies that the account exists and holds at least amount.
// The check is advisory; the database constraint remains the race-free guard.
func (s *Service) checkBalance(ctx context.Context, accountID int64, amount decimal.Decimal) error {
	l := zerolog.Ctx(ctx)

	account, err := s.accountService.Get(ctx, accountID)
	if err != nil {
		return err
	}

	balance, err := decimal.NewFromString(account.Balance)
	if err != nil {
		l.Error().Err(err).Send()
		return err
	}

	if balance.LessThan(amount) {
		return domain.ErrInsufficientBalance
	}

	return nil
}

// Deposit increases the account's balance by the given positive amount.
func (s *Service) Deposit(ctx context.Context, accountID int64, amount string) (domain.Account, error) {
	amountDecimal, err := validAmount(ctx, amount)
	if err != nil {
		return domain.Account{}, err
	}

	account, err := s.repo.Deposit(ctx, accountID, amountDecimal.String())
	if err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

// Withdraw decreases the account's balance by the given positive amount.
func (s *Service) Withdraw(ctx context.Context, accountID int64, amount string) (domain.Account, error) {
	amountDecimal, err := validAmount(ctx, amount)
	if err != nil {
		return domain.Account{}, err
	}

	if err := s.checkBalance(ctx, accountID, amountDecimal); err != nil {
		return domain.Account{}, err
	}

	account, err := s.repo.Withdraw(ctx, accountID, amountDecimal.String())
	if err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

// TransferFunds checks if the transfer request is valid and then executes it.
func (s *Service) TransferFunds(ctx context.Context, arg domain.TransferFundsParams) (domain.TransferTxResult, error) {
	amountDecimal, err := validAmount(ctx, arg.Amount)
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	if err := s.checkBalance(ctx, arg.FromAccountID, amountDecimal); err != nil {
		return domain.TransferTxResult{}, err
	}

	if _, err := s.accountService.Get(ctx, arg.ToAccountID); err != nil {
		return domain.TransferTxResult{}, err
	}

	result, err := s.repo.TransferFunds(ctx, arg)
	if err != nil {
		return result, err
	}

	return result, nil
}

// ListTransactions returns the account's transaction history, newest first.
// An unknown account simply has no history; deleted accounts keep theirs.
func (s *Service) ListTransactions(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	transactions, err := s.repo.ListTransactions(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return transactions, nil
}
