package tarot

import (
	"fmt"
	"strings"

	"github.com/user/arcanum-go/deck"
)

const readingPromptTemplate = `You are an experienced Tarot reader with deep knowledge of symbolism and interpretation.
Provide a detailed tarot reading based on the following cards:
{cards}
Consider the positions and their meanings carefully.
Include further insights and guidance for the querent.`

const chatPromptTemplate = `You are a wise Tarot mentor helping interpret the cards.
Previous reading context: {previousReading}
User question: {userMessage}
Provide guidance while maintaining the mystical and insightful nature of Tarot.`

// buildReadingPrompt renders the reading template with one line per drawn
// card.
func buildReadingPrompt(cards []deck.DrawnCard) string {
	lines := make([]string, 0, len(cards))
	for _, card := range cards {
		lines = append(lines, fmt.Sprintf("%s: %s - %s", card.Position, card.Card, card.Definition))
	}
	return strings.Replace(readingPromptTemplate, "{cards}", strings.Join(lines, "\n"), 1)
}

// buildChatPrompt renders the follow-up template.
func buildChatPrompt(userMessage, previousReading string) string {
	if previousReading == "" {
		previousReading = "No previous reading available"
	}
	prompt := strings.Replace(chatPromptTemplate, "{previousReading}", previousReading, 1)
	return strings.Replace(prompt, "{userMessage}", userMessage, 1)
}
