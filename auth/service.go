// Package auth handles authentication: registration, login, session token
// issue and verification, and the middleware that guards protected routes.
// The session credential is a signed JWT carried in an httpOnly cookie; its
// lifetime and the cookie max-age come from the same configuration value so
// neither can outlive the other.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/arcanum-go/apperror"
	"github.com/user/arcanum-go/config"
)

const (
	tokenIssuer = "arcanum"
	// pgUniqueViolation is the PostgreSQL unique constraint violation code.
	pgUniqueViolation = "23505"
)

// AuthService provides registration, login, and token operations.
type AuthService struct {
	db       *pgxpool.Pool
	cfg      config.AuthConfig
	validate *validator.Validate
}

// NewAuthService creates a new AuthService.
func NewAuthService(db *pgxpool.Pool, cfg config.AuthConfig) *AuthService {
	return &AuthService{
		db:       db,
		cfg:      cfg,
		validate: validator.New(),
	}
}

// Config exposes the auth settings the HTTP layer needs for cookies.
func (s *AuthService) Config() config.AuthConfig {
	return s.cfg
}

// Claims is the JWT payload of a session credential.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// Register creates a new user with the configured registration grant and
// returns the user plus a fresh session token.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*User, string, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperror.NewInternalError("failed to hash password", err)
	}

	user := &User{
		Username:       req.Username,
		Email:          strings.ToLower(req.Email),
		HashedPassword: string(hashedPassword),
		Tokens:         s.cfg.RegistrationGrant,
	}

	query := `INSERT INTO users (username, email, password, tokens)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at, updated_at`
	err = s.db.QueryRow(ctx, query, user.Username, user.Email, user.HashedPassword, user.Tokens).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "username") {
				return nil, "", apperror.NewConflictError("username already exists", nil)
			}
			if strings.Contains(pgErr.ConstraintName, "email") {
				return nil, "", apperror.NewConflictError("email already exists", nil)
			}
		}
		return nil, "", apperror.NewDatabaseError("failed to create user", err)
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	log.Info().Int64("user_id", user.ID).Int64("grant", user.Tokens).Msg("user registered")
	return user, token, nil
}

// Login authenticates by username and password and returns the user plus a
// fresh session token. Both a missing user and a wrong password yield the
// same credentials failure.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*User, string, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, "", err
	}

	var user User
	query := `SELECT id, username, email, password, tokens, created_at, updated_at
	          FROM users WHERE username = $1`
	err := s.db.QueryRow(ctx, query, req.Username).Scan(
		&user.ID, &user.Username, &user.Email, &user.HashedPassword,
		&user.Tokens, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", apperror.NewAuthError("invalid credentials", nil)
		}
		return nil, "", apperror.NewDatabaseError("failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, "", apperror.NewAuthError("invalid credentials", nil)
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// IssueToken signs a session credential for userID with the configured
// lifetime.
func (s *AuthService) IssueToken(userID int64) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", apperror.NewInternalError("failed to sign token", err)
	}
	return signed, nil
}

// VerifyToken validates a session credential and returns the acting user's
// ID. Every failure mode (missing, malformed, bad signature, expired) maps
// to the same classified auth failure.
func (s *AuthService) VerifyToken(tokenString string) (int64, error) {
	return verifyToken(s.cfg.JWTSecret, tokenString)
}

func verifyToken(secret, tokenString string) (int64, error) {
	if tokenString == "" {
		return 0, apperror.NewAuthError("authentication required", nil)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, apperror.NewAuthError("invalid or expired token", err)
	}
	if !token.Valid || claims.UserID == 0 {
		return 0, apperror.NewAuthError("invalid token", nil)
	}
	return claims.UserID, nil
}
