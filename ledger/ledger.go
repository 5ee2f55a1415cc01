// Package ledger owns the per-user token balance. All mutations go through
// its atomic operations; nothing else in the application writes the tokens
// column. The non-negative invariant holds at every observable time,
// including under concurrent deduction, because the authoritative check and
// the decrement share one transaction with a row lock.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/arcanum-go/apperror"
)

// Ledger provides balance operations over the users table.
type Ledger struct {
	db *pgxpool.Pool
}

// NewLedger creates a Ledger over the given pool.
func NewLedger(db *pgxpool.Pool) *Ledger {
	return &Ledger{db: db}
}

// GetBalance returns a user's current token balance. Reads outside any
// transaction are advisory only; commit decisions belong to DeductInTx.
func (l *Ledger) GetBalance(ctx context.Context, userID int64) (int64, error) {
	var tokens int64
	err := l.db.QueryRow(ctx, `SELECT tokens FROM users WHERE id = $1`, userID).Scan(&tokens)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperror.NewNotFoundError(fmt.Sprintf("user %d not found", userID), nil)
		}
		return 0, apperror.NewDatabaseError("failed to read token balance", err)
	}
	return tokens, nil
}

// Add atomically increments a user's balance and returns the new value.
// Used for the registration grant and top-ups.
func (l *Ledger) Add(ctx context.Context, userID, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, apperror.NewInternalError(fmt.Sprintf("token credit amount must be positive, got %d", amount), nil)
	}

	var newBalance int64
	err := l.db.QueryRow(ctx,
		`UPDATE users SET tokens = tokens + $1, updated_at = now() WHERE id = $2 RETURNING tokens`,
		amount, userID,
	).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperror.NewNotFoundError(fmt.Sprintf("user %d not found", userID), nil)
		}
		return 0, apperror.NewDatabaseError("failed to credit tokens", err)
	}
	return newBalance, nil
}

// DeductInTx performs the authoritative check-and-decrement inside the
// caller's transaction. The SELECT ... FOR UPDATE re-reads the balance under
// a row lock, so a concurrent transaction that committed after the caller's
// advisory check is observed here and the loser fails cleanly with
// InsufficientTokens. Works under READ COMMITTED; serializable isolation is
// not assumed.
func (l *Ledger) DeductInTx(ctx context.Context, tx pgx.Tx, userID, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, apperror.NewInternalError(fmt.Sprintf("token debit amount must be positive, got %d", amount), nil)
	}

	var current int64
	err := tx.QueryRow(ctx, `SELECT tokens FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperror.NewNotFoundError(fmt.Sprintf("user %d not found", userID), nil)
		}
		return 0, apperror.NewDatabaseError("failed to read token balance for deduction", err)
	}

	if current < amount {
		return 0, apperror.NewInsufficientTokensError(amount, current)
	}

	var newBalance int64
	err = tx.QueryRow(ctx,
		`UPDATE users SET tokens = tokens - $1, updated_at = now() WHERE id = $2 RETURNING tokens`,
		amount, userID,
	).Scan(&newBalance)
	if err != nil {
		return 0, apperror.NewDatabaseError("failed to deduct tokens", err)
	}
	return newBalance, nil
}
