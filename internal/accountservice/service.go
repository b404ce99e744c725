// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/go-fin/ledger-bank/internal/domain"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, holderName, balance string) (domain.Account, error)
	Get(ctx context.Context, id int64) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Delete(ctx context.Context, id int64) error
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account business logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Create creates and returns an account for the given holder.
// A negative initial balance is rejected; zero is allowed.
func (s *Service) Create(ctx context.Context, holderName, initialBalance string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	balance, err := decimal.NewFromString(initialBalance)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Account{}, domain.ErrInvalidAmount
	}

	if balance.IsNegative() {
		return domain.Account{}, domain.ErrNegativeAmount
	}

	account, err := s.repo.Create(ctx, holderName, balance.String())
	if err != nil {
		return account, err
	}

	return account, nil
}

// Get returns the account for the given account ID.
func (s *Service) Get(ctx context.Context, id int64) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return account, err
	}

	return account, nil
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

// Delete removes the account with the given id.
// Deleting an absent account succeeds; the transaction history is kept.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
