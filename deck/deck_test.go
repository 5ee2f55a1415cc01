package deck

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/arcanum-go/apperror"
)

func newTestSelector(d Deck, seed int64) *Selector {
	return NewSelector(d, rand.New(rand.NewSource(seed)))
}

func TestDefaultCatalog(t *testing.T) {
	d := Default()
	assert.Len(t, d, 70)

	for name, card := range d {
		assert.NotEmpty(t, card.Definition, "card %q", name)
		assert.NotEmpty(t, card.AIInterpretation, "card %q", name)
		assert.NotEmpty(t, card.PowerWord, "card %q", name)
	}

	fool, ok := d["The Fool"]
	require.True(t, ok)
	assert.Equal(t, "major-00", fool.ID)
}

func TestDrawDistinctCards(t *testing.T) {
	s := newTestSelector(Default(), 1)

	for i := 0; i < 50; i++ {
		cards, err := s.Draw(3, DefaultPositions)
		require.NoError(t, err)
		require.Len(t, cards, 3)

		seen := map[string]bool{}
		for _, c := range cards {
			assert.False(t, seen[c.Card], "duplicate card %q in one draw", c.Card)
			seen[c.Card] = true
			assert.NotEmpty(t, c.ID)
			assert.NotEmpty(t, c.Definition)
		}

		assert.Equal(t, "Past", cards[0].Position)
		assert.Equal(t, "Present", cards[1].Position)
		assert.Equal(t, "Future", cards[2].Position)
	}
}

func TestDrawPositionPadding(t *testing.T) {
	s := newTestSelector(Default(), 2)

	cards, err := s.Draw(5, []string{"Past", "Present", "Future"})
	require.NoError(t, err)
	require.Len(t, cards, 5)

	assert.Equal(t, "Position 4", cards[3].Position)
	assert.Equal(t, "Position 5", cards[4].Position)
}

func TestDrawDeckTooSmall(t *testing.T) {
	small := Deck{
		"Only Card": {Definition: "d", AIInterpretation: "a", PowerWord: "p"},
	}
	s := newTestSelector(small, 3)

	_, err := s.Draw(3, DefaultPositions)
	require.Error(t, err)
	_, ok := apperror.FromError(err)
	assert.True(t, ok)
}

func TestDrawInvalidCount(t *testing.T) {
	s := newTestSelector(Default(), 4)

	_, err := s.Draw(0, nil)
	require.Error(t, err)
	_, err = s.Draw(-1, nil)
	require.Error(t, err)
}

func TestDrawSlugFallback(t *testing.T) {
	d := Deck{
		"Ace of Wands Test": {Definition: "d", AIInterpretation: "a", PowerWord: "p"},
	}
	s := newTestSelector(d, 5)

	cards, err := s.Draw(1, nil)
	require.NoError(t, err)
	assert.Equal(t, "ace-of-wands-test", cards[0].ID)
	assert.Equal(t, "Position 1", cards[0].Position)
}

func TestDrawSnapshotImmutability(t *testing.T) {
	d := Deck{}
	for i := 0; i < 5; i++ {
		d[fmt.Sprintf("Card %d", i)] = Card{
			Definition:       "original definition",
			AIInterpretation: "original interpretation",
			PowerWord:        "original",
		}
	}
	s := newTestSelector(d, 6)

	cards, err := s.Draw(3, DefaultPositions)
	require.NoError(t, err)

	// Later catalog edits must not reach through to an earlier snapshot.
	for name := range d {
		d[name] = Card{Definition: "rewritten"}
	}
	for _, c := range cards {
		assert.Equal(t, "original definition", c.Definition)
	}
}

func TestDrawConcurrent(t *testing.T) {
	s := newTestSelector(Default(), 7)

	done := make(chan error, 20)
	for i := 0; i < 20; i++ {
		go func() {
			_, err := s.Draw(3, DefaultPositions)
			done <- err
		}()
	}
	for i := 0; i < 20; i++ {
		assert.NoError(t, <-done)
	}
}
