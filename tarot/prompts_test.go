package tarot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/user/arcanum-go/deck"
)

func TestBuildReadingPrompt(t *testing.T) {
	cards := []deck.DrawnCard{
		{Position: "Past", Card: "The Fool", Definition: "New beginnings"},
		{Position: "Present", Card: "The Magician", Definition: "Manifestation"},
		{Position: "Future", Card: "The Star", Definition: "Hope"},
	}

	prompt := buildReadingPrompt(cards)

	assert.Contains(t, prompt, "Past: The Fool - New beginnings")
	assert.Contains(t, prompt, "Present: The Magician - Manifestation")
	assert.Contains(t, prompt, "Future: The Star - Hope")
	assert.NotContains(t, prompt, "{cards}")
	assert.True(t, strings.HasPrefix(prompt, "You are an experienced Tarot reader"))
}

func TestBuildChatPrompt(t *testing.T) {
	prompt := buildChatPrompt("What does the Fool mean for me?", "Your reading spoke of beginnings.")

	assert.Contains(t, prompt, "Previous reading context: Your reading spoke of beginnings.")
	assert.Contains(t, prompt, "User question: What does the Fool mean for me?")
	assert.NotContains(t, prompt, "{previousReading}")
	assert.NotContains(t, prompt, "{userMessage}")
}

func TestBuildChatPromptWithoutPreviousReading(t *testing.T) {
	prompt := buildChatPrompt("Hello?", "")

	assert.Contains(t, prompt, "Previous reading context: No previous reading available")
}
