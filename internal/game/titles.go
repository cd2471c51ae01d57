package game

import (
	"math"

	"github.com/astralisgame/astralis-backend/internal/types"
)

// Title is a cosmetic rank derived from lifetime XP, distinct from level.
// Ranges are ordered, non-overlapping, and cover [0, ∞).
type Title struct {
	Level       int    `json:"level"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	MinXP       int    `json:"minXp"`
	MaxXP       int    `json:"maxXp"`
	Description string `json:"description"`
}

var Titles = []Title{
	{1, "Curious Beginner", "🌱", 0, 249, "Your journey begins with the first question"},
	{2, "Thoughtful Learner", "📚", 250, 749, "Every conversation deepens your understanding"},
	{3, "Insightful Mind", "💭", 750, 1499, "Your questions reveal layers of meaning"},
	{4, "Philosopher", "🧠", 1500, 2999, "Wisdom flows through your words"},
	{5, "Master of Discourse", "👑", 3000, 7499, "Your insights illuminate the path for others"},
	{6, "Legendary Scholar", "⭐", 7500, math.MaxInt, "A seeker of infinite knowledge and understanding"},
}

// TitleFor returns the title range containing the given lifetime XP.
func TitleFor(totalXP int) Title {
	for _, t := range Titles {
		if totalXP >= t.MinXP && totalXP <= t.MaxXP {
			return t
		}
	}
	return Titles[0]
}

// NextTitle returns the first title above the given lifetime XP, or nil at
// the top rank.
func NextTitle(totalXP int) *Title {
	for i := range Titles {
		if Titles[i].MinXP > totalXP {
			return &Titles[i]
		}
	}
	return nil
}

// ApplyTitle recomputes the player's title from lifetime XP and reports
// whether it changed.
func ApplyTitle(p *types.Player) bool {
	t := TitleFor(p.TotalXPEarned)
	changed := p.Title != t.Name
	p.Title = t.Name
	p.TitleLevel = t.Level
	return changed
}
