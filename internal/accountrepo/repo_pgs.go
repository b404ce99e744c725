// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/go-fin/ledger-bank/internal/domain"
	"github.com/go-fin/ledger-bank/pkg/dbpkg"
	"github.com/go-fin/ledger-bank/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    accounts (holder_name, balance)
VALUES
    ($1, $2)
RETURNING id, holder_name, balance, created_at
`

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, holderName, balance string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, holderName, balance)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.HolderName,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrNegativeAmount
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT
	id, holder_name, balance, created_at
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.HolderName,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listQuery = `
SELECT
	id, holder_name, balance, created_at
FROM accounts
ORDER BY id
`

// List returns all accounts ordered by id.
func (r *RepoPGS) List(ctx context.Context) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.HolderName, &a.Balance, &a.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const deleteQuery = `
DELETE FROM accounts
WHERE id = $1
`

// Delete removes the account with the given id.
// Deleting an absent id is not an error. Transaction history is kept.
func (r *RepoPGS) Delete(ctx context.Context, id int64) error {
	l := zerolog.Ctx(ctx)

	if _, err := r.db.ExecContext(ctx, deleteQuery, id); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}

const addBalanceQuery = `
UPDATE accounts
SET balance = balance + $1
WHERE id = $2
RETURNING id, holder_name, balance, created_at
`

// AddBalance changes the account's balance and returns the changed account.
// The single UPDATE takes a row lock, so concurrent mutations of one
// account serialize; the accounts_balance_check constraint rejects any
// change that would drive the balance negative.
func (r *RepoPGS) AddBalance(ctx context.Context, amount string, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, addBalanceQuery, amount, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.HolderName,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientBalance
			}
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}
