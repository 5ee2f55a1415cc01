package tarot

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/user/arcanum-go/aiclient"
	"github.com/user/arcanum-go/apperror"
	"github.com/user/arcanum-go/deck"
)

// BalanceReader is the advisory balance view the service consults before
// spending anything on generation.
type BalanceReader interface {
	GetBalance(ctx context.Context, userID int64) (int64, error)
}

// TarotService coordinates a reading: advisory balance check, card draw,
// interpretation generation, then the atomic deduct-and-persist commit.
// The generation call never runs inside the database transaction.
type TarotService struct {
	balances BalanceReader
	store    ReadingStore
	gen      aiclient.Generator
	selector *deck.Selector
	cost     int64
}

// NewTarotService wires the service's collaborators.
func NewTarotService(balances BalanceReader, store ReadingStore, gen aiclient.Generator, selector *deck.Selector, cost int64) *TarotService {
	return &TarotService{
		balances: balances,
		store:    store,
		gen:      gen,
		selector: selector,
		cost:     cost,
	}
}

func wrapGenerationError(err error) error {
	var genErr *aiclient.GenerationError
	if errors.As(err, &genErr) {
		switch genErr.Kind {
		case aiclient.KindTimeout:
			return apperror.NewExternalServiceError("reading generation timed out", genErr)
		case aiclient.KindInvalidResponse:
			return apperror.NewExternalServiceError("generation backend returned an unusable response", genErr)
		default:
			return apperror.NewExternalServiceError("generation backend request failed", genErr)
		}
	}
	return apperror.NewExternalServiceError("reading generation failed", err)
}

// GenerateReading performs a full three-card reading for the user. The
// balance is checked up front so a broke user never triggers a generation
// call; the authoritative check happens again inside the store's transaction,
// so two concurrent requests against a one-token balance cannot both commit.
func (s *TarotService) GenerateReading(ctx context.Context, userID int64) (*ReadingResult, error) {
	balance, err := s.balances.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balance < s.cost {
		return nil, apperror.NewInsufficientTokensError(s.cost, balance)
	}

	cards, err := s.selector.Draw(3, deck.DefaultPositions)
	if err != nil {
		return nil, err
	}

	prompt := buildReadingPrompt(cards)
	aiReading, err := s.gen.Generate(ctx, prompt, nil)
	if err != nil {
		return nil, wrapGenerationError(err)
	}

	readingID, remaining, err := s.store.CreateReadingAndDeduct(ctx, userID, cards, aiReading, s.cost)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("user_id", userID).
		Str("reading_id", readingID).
		Int64("remaining_tokens", remaining).
		Msg("Reading generated")

	return &ReadingResult{
		Reading:         cards,
		AIReading:       aiReading,
		RemainingTokens: remaining,
		ReadingID:       readingID,
	}, nil
}

// Chat answers a follow-up question about a previous reading. Chat is free;
// no balance is touched.
func (s *TarotService) Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, apperror.NewBadRequestError("message is required", nil)
	}

	prompt := buildChatPrompt(message, req.PreviousReading)
	response, err := s.gen.Generate(ctx, prompt, nil)
	if err != nil {
		return nil, wrapGenerationError(err)
	}
	return &ChatResult{Response: response}, nil
}

// ChatStream opens a streaming follow-up response. The caller owns the
// returned stream and must Close it.
func (s *TarotService) ChatStream(ctx context.Context, req *ChatRequest) (*aiclient.Stream, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, apperror.NewBadRequestError("message is required", nil)
	}

	prompt := buildChatPrompt(message, req.PreviousReading)
	stream, err := s.gen.Stream(ctx, prompt, nil)
	if err != nil {
		return nil, wrapGenerationError(err)
	}
	return stream, nil
}

// GetReading fetches one reading, scoped to its owner. A reading belonging
// to another user is reported as not found rather than forbidden.
func (s *TarotService) GetReading(ctx context.Context, userID int64, readingID string) (*Reading, error) {
	reading, err := s.store.GetReading(ctx, readingID)
	if err != nil {
		return nil, err
	}
	if reading.UserID != userID {
		return nil, apperror.NewNotFoundError("reading "+readingID+" not found", nil)
	}
	return reading, nil
}

// ListReadings returns the user's reading history, newest first.
func (s *TarotService) ListReadings(ctx context.Context, userID int64, limit, offset int) (*ReadingListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	readings, err := s.store.ListReadings(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.store.CountReadings(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ReadingListResponse{Readings: readings, Total: total}, nil
}

// DeleteReading removes one reading from the user's history. Spent tokens
// are not refunded.
func (s *TarotService) DeleteReading(ctx context.Context, userID int64, readingID string) error {
	return s.store.DeleteReading(ctx, userID, readingID)
}
