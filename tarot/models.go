package tarot

import (
	"time"

	"github.com/user/arcanum-go/deck"
)

// Reading is one persisted reading: three card snapshots plus the generated
// interpretation, tied to one user and one token deduction. Immutable once
// created.
type Reading struct {
	ID        string           `json:"id"`
	UserID    int64            `json:"userId"`
	Cards     []deck.DrawnCard `json:"cards"`
	AIReading string           `json:"aiReading"`
	CreatedAt time.Time        `json:"createdAt"`
}

// ReadingResult is the response to a successful reading request.
type ReadingResult struct {
	Reading         []deck.DrawnCard `json:"reading"`
	AIReading       string           `json:"aiReading"`
	RemainingTokens int64            `json:"remainingTokens"`
	ReadingID       string           `json:"readingId"`
}

// ChatRequest is the follow-up conversation payload.
type ChatRequest struct {
	Message         string `json:"message"`
	PreviousReading string `json:"previousReading"`
}

// ChatResult is the non-streamed chat response.
type ChatResult struct {
	Response string `json:"response"`
}

// ReadingListResponse is the reading history payload.
type ReadingListResponse struct {
	Readings []Reading `json:"readings"`
	Total    int64     `json:"total"`
}
