package deck

// Default returns the built-in card catalog. Entries without an explicit ID
// get a slug derived from the card name at draw time.
func Default() Deck {
	return Deck{
		// Major arcana
		"The Fool": {
			ID:               "major-00",
			Definition:       "New beginnings, spontaneity, and leap of faith",
			AIInterpretation: "Embrace unknown opportunities with optimistic curiosity",
			PowerWord:        "Beginnings",
		},
		"The Magician": {
			ID:               "major-01",
			Definition:       "Manifestation, resourcefulness, and personal power",
			AIInterpretation: "Channel your skills to create tangible results",
			PowerWord:        "Manifestation",
		},
		"The High Priestess": {
			ID:               "major-02",
			Definition:       "Intuition, mystery, and subconscious wisdom",
			AIInterpretation: "Trust your inner voice and explore hidden knowledge",
			PowerWord:        "Intuition",
		},
		"The Empress": {
			ID:               "major-03",
			Definition:       "Fertility, abundance, and nurturing energy",
			AIInterpretation: "Cultivate creativity and embrace natural growth",
			PowerWord:        "Abundance",
		},
		"The Emperor": {
			Definition:       "Structure, authority, and established power",
			AIInterpretation: "Implement strategic plans with disciplined leadership",
			PowerWord:        "Authority",
		},
		"The Hierophant": {
			Definition:       "Tradition, institutions, and spiritual guidance",
			AIInterpretation: "Seek wisdom through established systems and mentors",
			PowerWord:        "Tradition",
		},
		"The Lovers": {
			Definition:       "Harmony, relationships, and moral alignment",
			AIInterpretation: "Align actions with values in partnerships and choices",
			PowerWord:        "Harmony",
		},
		"The Chariot": {
			Definition:       "Willpower, determination, and controlled direction",
			AIInterpretation: "Focus your energy to overcome divided forces",
			PowerWord:        "Determination",
		},
		"Strength": {
			Definition:       "Courage, compassion, and inner fortitude",
			AIInterpretation: "Master challenges through patience and emotional control",
			PowerWord:        "Resilience",
		},
		"The Hermit": {
			Definition:       "Soul-searching, introspection, and inner guidance",
			AIInterpretation: "Withdraw to gain clarity and illuminate truth",
			PowerWord:        "Introspection",
		},
		"Wheel of Fortune": {
			Definition:       "Cycles, destiny, and turning points",
			AIInterpretation: "Adapt to changing circumstances with awareness",
			PowerWord:        "Momentum",
		},
		"Justice": {
			Definition:       "Fairness, truth, and karmic balance",
			AIInterpretation: "Seek equilibrium and take responsibility for actions",
			PowerWord:        "Equilibrium",
		},
		"The Hanged Man": {
			Definition:       "Sacrifice, new perspective, and surrender",
			AIInterpretation: "Embrace necessary pauses for paradigm shifts",
			PowerWord:        "Surrender",
		},
		"Death": {
			Definition:       "Transformation, endings, and rebirth",
			AIInterpretation: "Release the old to make space for new growth",
			PowerWord:        "Transformation",
		},
		"Temperance": {
			Definition:       "Balance, moderation, and alchemical fusion",
			AIInterpretation: "Find middle ground and blend opposing forces",
			PowerWord:        "Synthesis",
		},
		"The Devil": {
			Definition:       "Bondage, materialism, and shadow self",
			AIInterpretation: "Confront limiting beliefs and unhealthy attachments",
			PowerWord:        "Liberation",
		},
		"The Tower": {
			Definition:       "Upheaval, revelation, and sudden change",
			AIInterpretation: "Embrace necessary destruction for true foundation",
			PowerWord:        "Revolution",
		},
		"The Star": {
			Definition:       "Hope, inspiration, and spiritual guidance",
			AIInterpretation: "Renew faith and follow your inner light",
			PowerWord:        "Hope",
		},
		"The Moon": {
			Definition:       "Illusion, intuition, and subconscious",
			AIInterpretation: "Navigate uncertainty by trusting inner guidance",
			PowerWord:        "Perception",
		},
		"The Sun": {
			Definition:       "Vitality, success, and radiant joy",
			AIInterpretation: "Embrace optimism and express authentic self",
			PowerWord:        "Radiance",
		},
		"Judgement": {
			Definition:       "Awakening, renewal, and higher calling",
			AIInterpretation: "Answer your inner summons to transformation",
			PowerWord:        "Renewal",
		},
		"The World": {
			Definition:       "Completion, integration, and wholeness",
			AIInterpretation: "Celebrate achievements while preparing new cycles",
			PowerWord:        "Completion",
		},

		// Wands
		"Ace of Wands": {
			ID:               "wands-01",
			Definition:       "New opportunities, inspiration, and energy",
			AIInterpretation: "Act on creative impulses with passionate enthusiasm",
			PowerWord:        "Ignition",
		},
		"Two of Wands": {
			ID:               "wands-02",
			Definition:       "Future planning, ambition, personal power",
			AIInterpretation: "Map long-term goals while staying open to opportunities",
			PowerWord:        "Horizons",
		},
		"Three of Wands": {
			Definition:       "Expansion, foresight, prepared progress",
			AIInterpretation: "Leverage current success to build future opportunities",
			PowerWord:        "Vantage",
		},
		"Four of Wands": {
			Definition:       "Celebration, harmony, and homecoming",
			AIInterpretation: "Mark milestones and enjoy communal joy",
			PowerWord:        "Celebration",
		},
		"Five of Wands": {
			Definition:       "Competition, creative friction, challenges",
			AIInterpretation: "Channel competitive energy into collaborative improvement",
			PowerWord:        "Striving",
		},
		"Six of Wands": {
			Definition:       "Victory, recognition, public success",
			AIInterpretation: "Celebrate achievements while preparing for next challenges",
			PowerWord:        "Accolade",
		},
		"Seven of Wands": {
			Definition:       "Perseverance, defending position, standing ground",
			AIInterpretation: "Maintain conviction while remaining open to adaptation",
			PowerWord:        "Fortitude",
		},
		"Eight of Wands": {
			Definition:       "Swift movement, rapid progress, aligned action",
			AIInterpretation: "Capitalize on momentum while maintaining direction",
			PowerWord:        "Velocity",
		},
		"Nine of Wands": {
			Definition:       "Resilience, perseverance, and boundaries",
			AIInterpretation: "Stand your ground while conserving strength",
			PowerWord:        "Endurance",
		},
		"Ten of Wands": {
			Definition:       "Burden, overextension, heavy responsibility",
			AIInterpretation: "Prioritize essential loads and delegate when possible",
			PowerWord:        "Obligation",
		},
		"Page of Wands": {
			Definition:       "Creative exploration, new ventures, enthusiasm",
			AIInterpretation: "Nurture creative sparks into sustainable flames",
			PowerWord:        "Ignition",
		},
		"Knight of Wands": {
			Definition:       "Adventure, passion, impulsive action",
			AIInterpretation: "Balance fiery enthusiasm with strategic planning",
			PowerWord:        "Verve",
		},
		"Queen of Wands": {
			Definition:       "Vitality, confidence, charismatic leadership",
			AIInterpretation: "Radiate authentic energy to inspire others",
			PowerWord:        "Luminary",
		},
		"King of Wands": {
			Definition:       "Visionary leadership, entrepreneurial spirit, influence",
			AIInterpretation: "Direct creative fire into impactful leadership",
			PowerWord:        "Enterprise",
		},

		// Cups
		"Ace of Cups": {
			ID:               "cups-01",
			Definition:       "New emotional beginnings, love, and intuition",
			AIInterpretation: "Open your heart to new relationships and creativity",
			PowerWord:        "Receptivity",
		},
		"Two of Cups": {
			Definition:       "Partnership, emotional connection, mutual attraction",
			AIInterpretation: "Nurture meaningful bonds and embrace collaborative energy",
			PowerWord:        "Union",
		},
		"Four of Cups": {
			Definition:       "Apathy, contemplation, missed opportunities",
			AIInterpretation: "Re-engage with world by recognizing overlooked blessings",
			PowerWord:        "Reassessment",
		},
		"Six of Cups": {
			Definition:       "Nostalgia, childhood memories, innocence",
			AIInterpretation: "Learn from past experiences without becoming trapped in them",
			PowerWord:        "Remembrance",
		},
		"Seven of Cups": {
			Definition:       "Illusory choices, imagination, wishful thinking",
			AIInterpretation: "Ground fantasies in reality to make empowered choices",
			PowerWord:        "Discernment",
		},
		"Eight of Cups": {
			Definition:       "Transition, abandonment, spiritual quest",
			AIInterpretation: "Release emotional baggage to pursue deeper fulfillment",
			PowerWord:        "Departure",
		},
		"Nine of Cups": {
			Definition:       "Contentment, emotional satisfaction, wishes fulfilled",
			AIInterpretation: "Practice gratitude while maintaining growth mindset",
			PowerWord:        "Fulfillment",
		},
		"Ten of Cups": {
			Definition:       "Harmony, family bliss, emotional completion",
			AIInterpretation: "Cultivate loving environments that nurture collective joy",
			PowerWord:        "Wholeness",
		},
		"Page of Cups": {
			Definition:       "Creative beginnings, emotional messages, curiosity",
			AIInterpretation: "Welcome artistic inspiration and intuitive nudges",
			PowerWord:        "Receptivity",
		},
		"Knight of Cups": {
			Definition:       "Romantic pursuit, idealism, emotional depth",
			AIInterpretation: "Balance passionate energy with practical considerations",
			PowerWord:        "Adoration",
		},
		"Queen of Cups": {
			Definition:       "Emotional wisdom, compassion, psychic sensitivity",
			AIInterpretation: "Lead with empathy while maintaining healthy boundaries",
			PowerWord:        "Intimacy",
		},
		"King of Cups": {
			Definition:       "Emotional mastery, diplomacy, calm authority",
			AIInterpretation: "Channel deep feelings into constructive leadership",
			PowerWord:        "Equanimity",
		},

		// Swords
		"Two of Swords": {
			Definition:       "Stalemate, difficult decisions, mental blockage",
			AIInterpretation: "Cut through indecision with courageous clarity",
			PowerWord:        "Resolution",
		},
		"Four of Swords": {
			Definition:       "Rest, recuperation, mental pause",
			AIInterpretation: "Strategic withdrawal to regain cognitive strength",
			PowerWord:        "Rejuvenation",
		},
		"Five of Swords": {
			Definition:       "Conflict, defeat, hollow victory",
			AIInterpretation: "Choose ethical battles over petty competitions",
			PowerWord:        "Consequence",
		},
		"Six of Swords": {
			Definition:       "Transition, healing journey, moving forward",
			AIInterpretation: "Navigate necessary changes with gradual progress",
			PowerWord:        "Transition",
		},
		"Seven of Swords": {
			Definition:       "Deception, strategy, unconventional methods",
			AIInterpretation: "Assess motivations and protect your interests",
			PowerWord:        "Guile",
		},
		"Eight of Swords": {
			Definition:       "Self-limitation, perceived entrapment, anxiety",
			AIInterpretation: "Break mental prisons through courageous perspective shifts",
			PowerWord:        "Empowerment",
		},
		"Nine of Swords": {
			Definition:       "Nightmares, anxiety, mental anguish",
			AIInterpretation: "Transform worry into constructive problem-solving",
			PowerWord:        "Perspective",
		},
		"Page of Swords": {
			Definition:       "Mental agility, new ideas, intellectual curiosity",
			AIInterpretation: "Pursue truth while maintaining ethical boundaries",
			PowerWord:        "Inquiry",
		},
		"Knight of Swords": {
			Definition:       "Ruthless action, intellectual force, ambition",
			AIInterpretation: "Balance decisive action with compassionate consideration",
			PowerWord:        "Precision",
		},
		"Queen of Swords": {
			Definition:       "Clear boundaries, intellectual power, independence",
			AIInterpretation: "Combine critical thinking with emotional intelligence",
			PowerWord:        "Objectivity",
		},
		"King of Swords": {
			Definition:       "Mental authority, strategic thinking, truth-seeking",
			AIInterpretation: "Wield intellectual power with integrity and fairness",
			PowerWord:        "Arbiter",
		},

		// Pentacles
		"Two of Pentacles": {
			Definition:       "Adaptability, resource juggling, financial balance",
			AIInterpretation: "Maintain flexibility while managing priorities",
			PowerWord:        "Equilibrium",
		},
		"Three of Pentacles": {
			Definition:       "Collaboration, craftsmanship, teamwork",
			AIInterpretation: "Combine individual strengths for collective success",
			PowerWord:        "Synergy",
		},
		"Four of Pentacles": {
			Definition:       "Conservation, financial control, stability",
			AIInterpretation: "Find balance between security and generosity",
			PowerWord:        "Stewardship",
		},
		"Five of Pentacles": {
			Definition:       "Financial hardship, exclusion, material worry",
			AIInterpretation: "Seek community support and recognize non-material wealth",
			PowerWord:        "Support",
		},
		"Seven of Pentacles": {
			Definition:       "Long-term investment, patience, cultivation",
			AIInterpretation: "Evaluate progress and adjust strategies accordingly",
			PowerWord:        "Cultivation",
		},
		"Eight of Pentacles": {
			Definition:       "Skill development, craftsmanship, dedicated work",
			AIInterpretation: "Focus on quality and continuous improvement",
			PowerWord:        "Mastery",
		},
		"Nine of Pentacles": {
			Definition:       "Luxury, self-sufficiency, material comfort",
			AIInterpretation: "Enjoy abundance while maintaining independence",
			PowerWord:        "Autonomy",
		},
		"Page of Pentacles": {
			Definition:       "New opportunities, practical learning, manifestation",
			AIInterpretation: "Ground aspirations in actionable steps",
			PowerWord:        "Diligence",
		},
		"Knight of Pentacles": {
			Definition:       "Reliability, routine, methodical progress",
			AIInterpretation: "Combine consistency with strategic innovation",
			PowerWord:        "Dependability",
		},
		"Queen of Pentacles": {
			Definition:       "Practical nurturing, financial security, generosity",
			AIInterpretation: "Create abundance through grounded care",
			PowerWord:        "Sustenance",
		},
		"King of Pentacles": {
			Definition:       "Financial mastery, business acumen, stability",
			AIInterpretation: "Lead through practical wisdom and abundant mindset",
			PowerWord:        "Stewardship",
		},
	}
}
