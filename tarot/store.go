package tarot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/arcanum-go/apperror"
	"github.com/user/arcanum-go/db"
	"github.com/user/arcanum-go/deck"
	"github.com/user/arcanum-go/ledger"
)

// ReadingStore is the persistence collaborator of the reading transaction.
// CreateReadingAndDeduct is the only multi-statement atomic unit in the
// application.
type ReadingStore interface {
	// CreateReadingAndDeduct persists the reading and decrements the user's
	// balance by cost as one all-or-nothing unit. The balance is re-checked
	// inside the unit; on InsufficientTokens or NotFound, no reading row and
	// no balance change remain.
	CreateReadingAndDeduct(ctx context.Context, userID int64, cards []deck.DrawnCard, aiReading string, cost int64) (readingID string, remainingTokens int64, err error)

	GetReading(ctx context.Context, readingID string) (*Reading, error)
	ListReadings(ctx context.Context, userID int64, limit, offset int) ([]Reading, error)
	DeleteReading(ctx context.Context, userID int64, readingID string) error
	CountReadings(ctx context.Context, userID int64) (int64, error)
}

// PostgresReadingStore implements ReadingStore over pgx, delegating the
// balance decrement to the ledger inside the shared transaction.
type PostgresReadingStore struct {
	db     *pgxpool.Pool
	ledger *ledger.Ledger
}

// NewPostgresReadingStore creates a store over the given pool.
func NewPostgresReadingStore(pool *pgxpool.Pool, l *ledger.Ledger) *PostgresReadingStore {
	return &PostgresReadingStore{db: pool, ledger: l}
}

// CreateReadingAndDeduct implements ReadingStore. The ledger's deduction
// runs first so the user row lock is held before the insert; both effects
// commit together or not at all.
func (s *PostgresReadingStore) CreateReadingAndDeduct(ctx context.Context, userID int64, cards []deck.DrawnCard, aiReading string, cost int64) (string, int64, error) {
	cardsJSON, err := json.Marshal(cards)
	if err != nil {
		return "", 0, apperror.NewInternalError("failed to encode card snapshots", err)
	}

	readingID := uuid.NewString()
	var remaining int64

	err = db.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		newBalance, err := s.ledger.DeductInTx(ctx, tx, userID, cost)
		if err != nil {
			return err
		}
		remaining = newBalance

		_, err = tx.Exec(ctx,
			`INSERT INTO readings (id, user_id, cards, ai_reading) VALUES ($1, $2, $3, $4)`,
			readingID, userID, cardsJSON, aiReading,
		)
		if err != nil {
			return apperror.NewDatabaseError("failed to insert reading", err)
		}
		return nil
	})
	if err != nil {
		return "", 0, err
	}
	return readingID, remaining, nil
}

func scanReading(row pgx.Row) (*Reading, error) {
	var r Reading
	var cardsJSON []byte
	if err := row.Scan(&r.ID, &r.UserID, &cardsJSON, &r.AIReading, &r.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(cardsJSON, &r.Cards); err != nil {
		return nil, apperror.NewInternalError("failed to decode card snapshots", err)
	}
	return &r, nil
}

// GetReading implements ReadingStore.
func (s *PostgresReadingStore) GetReading(ctx context.Context, readingID string) (*Reading, error) {
	row := s.db.QueryRow(ctx,
		`SELECT id, user_id, cards, ai_reading, created_at FROM readings WHERE id = $1`,
		readingID,
	)
	reading, err := scanReading(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("reading %s not found", readingID), nil)
		}
		if _, ok := apperror.FromError(err); ok {
			return nil, err
		}
		return nil, apperror.NewDatabaseError("failed to get reading", err)
	}
	return reading, nil
}

// ListReadings implements ReadingStore, newest first.
func (s *PostgresReadingStore) ListReadings(ctx context.Context, userID int64, limit, offset int) ([]Reading, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, cards, ai_reading, created_at
		 FROM readings WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list readings", err)
	}
	defer rows.Close()

	readings := make([]Reading, 0)
	for rows.Next() {
		reading, err := scanReading(rows)
		if err != nil {
			if _, ok := apperror.FromError(err); ok {
				return nil, err
			}
			return nil, apperror.NewDatabaseError("failed to scan reading", err)
		}
		readings = append(readings, *reading)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to list readings", err)
	}
	return readings, nil
}

// DeleteReading implements ReadingStore; the userID scope keeps one user
// from deleting another's history.
func (s *PostgresReadingStore) DeleteReading(ctx context.Context, userID int64, readingID string) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM readings WHERE id = $1 AND user_id = $2`,
		readingID, userID,
	)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete reading", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("reading %s not found", readingID), nil)
	}
	return nil
}

// CountReadings implements ReadingStore.
func (s *PostgresReadingStore) CountReadings(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := s.db.QueryRow(ctx, `SELECT count(*) FROM readings WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, apperror.NewDatabaseError("failed to count readings", err)
	}
	return count, nil
}
