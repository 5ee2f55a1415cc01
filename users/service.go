// Package users provides user profile management and the token balance
// query endpoint.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/arcanum-go/apperror"
	"github.com/user/arcanum-go/ledger"
)

// UserService provides profile and balance operations. Balance reads go
// through the ledger so there is a single owner of the tokens column.
type UserService struct {
	db     *pgxpool.Pool
	ledger *ledger.Ledger
}

// NewUserService creates a new UserService.
func NewUserService(db *pgxpool.Pool, l *ledger.Ledger) *UserService {
	return &UserService{db: db, ledger: l}
}

// GetProfile returns a user's profile.
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*ProfileResponse, error) {
	var p ProfileResponse
	query := `SELECT id, username, email, tokens, created_at FROM users WHERE id = $1`
	err := s.db.QueryRow(ctx, query, userID).Scan(&p.ID, &p.Username, &p.Email, &p.Tokens, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user %d not found", userID), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user profile", err)
	}
	return &p, nil
}

// GetTokenBalance returns the user's current token balance.
func (s *UserService) GetTokenBalance(ctx context.Context, userID int64) (int64, error) {
	return s.ledger.GetBalance(ctx, userID)
}

// UpdateProfile applies the provided profile changes. Uniqueness conflicts
// on username or email surface as 409.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*ProfileResponse, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	if req.Username != nil && *req.Username != "" {
		setClauses = append(setClauses, fmt.Sprintf("username = $%d", argID))
		args = append(args, *req.Username)
		argID++
	}
	if req.Email != nil && *req.Email != "" {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", argID))
		args = append(args, strings.ToLower(*req.Email))
		argID++
	}

	if len(setClauses) == 0 {
		return s.GetProfile(ctx, userID)
	}

	setClauses = append(setClauses, "updated_at = now()")
	args = append(args, userID)

	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE id = $%d RETURNING id, username, email, tokens, created_at`,
		strings.Join(setClauses, ", "), argID,
	)

	var p ProfileResponse
	err := s.db.QueryRow(ctx, query, args...).Scan(&p.ID, &p.Username, &p.Email, &p.Tokens, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user %d not found", userID), nil)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "username") {
				return nil, apperror.NewConflictError("username already exists", nil)
			}
			if strings.Contains(pgErr.ConstraintName, "email") {
				return nil, apperror.NewConflictError("email already exists", nil)
			}
		}
		return nil, apperror.NewDatabaseError("failed to update user profile", err)
	}
	return &p, nil
}
