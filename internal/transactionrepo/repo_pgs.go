// Package transactionrepo manages repository layer of transaction records.
package transactionrepo

import (
	"context"

	"github.com/go-fin/ledger-bank/internal/domain"
	"github.com/go-fin/ledger-bank/pkg/dbpkg"
	"github.com/go-fin/ledger-bank/pkg/errorspkg"

	"github.com/rs/zerolog"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transaction RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    transactions (account_id, amount, transaction_type)
VALUES
    ($1, $2, $3)
RETURNING id, account_id, amount, transaction_type, timestamp
`

// Create appends the transaction record and then returns it.
func (r *RepoPGS) Create(ctx context.Context, accountID int64, amount string, txType domain.TransactionType) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, accountID, amount, txType)

	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.AccountID,
		&t.Amount,
		&t.Type,
		&t.Timestamp,
	)

	if err != nil {
		l.Error().Err(err).Send()
		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const listQuery = `
SELECT id, account_id, amount, transaction_type, timestamp FROM transactions
WHERE account_id = $1
ORDER BY timestamp DESC, id DESC
`

// ListByAccount returns the account's transactions, most recent first.
func (r *RepoPGS) ListByAccount(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, accountID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID,
			&t.AccountID,
			&t.Amount,
			&t.Type,
			&t.Timestamp,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
