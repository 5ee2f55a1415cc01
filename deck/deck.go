// Package deck holds the static tarot card catalog and the card selector.
// The catalog is loaded once at process start and is read-only afterwards;
// drawn cards are snapshots, so later catalog edits never alter historical
// readings.
package deck

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"sync"

	"github.com/user/arcanum-go/apperror"
)

// Card is the static metadata for one catalog entry.
type Card struct {
	ID               string
	Definition       string
	AIInterpretation string
	PowerWord        string
}

// Deck maps a card name to its metadata.
type Deck map[string]Card

// DrawnCard is an immutable snapshot of one card in a reading, with the
// position label it was assigned.
type DrawnCard struct {
	ID               string `json:"id"`
	Position         string `json:"position"`
	Card             string `json:"card"`
	Definition       string `json:"definition"`
	AIInterpretation string `json:"aiInterpretation"`
	PowerWord        string `json:"powerWord"`
}

// DefaultPositions are the labels for a standard three-card spread.
var DefaultPositions = []string{"Past", "Present", "Future"}

var slugSpaces = regexp.MustCompile(`\s+`)

// slug derives a stable identifier for catalog entries that carry no
// explicit ID.
func slug(name string) string {
	return slugSpaces.ReplaceAllString(strings.ToLower(name), "-")
}

// Selector draws distinct cards from a deck. The random source is injected
// so tests can substitute a deterministic one.
type Selector struct {
	deck Deck
	// rand.Rand is not safe for concurrent use; draws from parallel
	// requests serialize on mu.
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector creates a Selector over deck using the given random source.
func NewSelector(deck Deck, rng *rand.Rand) *Selector {
	return &Selector{deck: deck, rng: rng}
}

// Draw selects count distinct cards uniformly at random and assigns position
// labels by index. When positions has fewer entries than count, the
// remaining picks get a synthesized "Position N" label. Fails when the deck
// holds fewer entries than count.
func (s *Selector) Draw(count int, positions []string) ([]DrawnCard, error) {
	if count <= 0 {
		return nil, apperror.NewInternalError("card count must be positive", nil)
	}
	names := make([]string, 0, len(s.deck))
	for name := range s.deck {
		names = append(names, name)
	}
	if len(names) < count {
		return nil, apperror.NewInternalError("deck has insufficient cards", nil)
	}

	// Map iteration order is already unspecified, but the shuffle is what
	// makes the choice uniform.
	s.mu.Lock()
	s.rng.Shuffle(len(names), func(i, j int) {
		names[i], names[j] = names[j], names[i]
	})
	s.mu.Unlock()

	drawn := make([]DrawnCard, 0, count)
	for i, name := range names[:count] {
		card := s.deck[name]
		id := card.ID
		if id == "" {
			id = slug(name)
		}
		position := ""
		if i < len(positions) {
			position = positions[i]
		}
		if position == "" {
			position = fmt.Sprintf("Position %d", i+1)
		}
		drawn = append(drawn, DrawnCard{
			ID:               id,
			Position:         position,
			Card:             name,
			Definition:       card.Definition,
			AIInterpretation: card.AIInterpretation,
			PowerWord:        card.PowerWord,
		})
	}
	return drawn, nil
}
