package game

import (
	"time"

	"github.com/astralisgame/astralis-backend/internal/types"
)

// Badge is a one-way achievement: once its predicate holds it is appended to
// the player's badge set and never revoked, even if the condition later
// becomes false.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	predicate func(p *types.Player, now time.Time) bool
}

// BadgeDefinitions is the static badge table, in a fixed order so locked/
// earned listings are stable across requests.
var BadgeDefinitions = []Badge{
	{ID: "flame-on", Name: "🔥 Flame On", Description: "Achieve a 7-day streak",
		predicate: func(p *types.Player, _ time.Time) bool { return p.Streak >= 7 }},
	{ID: "big-brain", Name: "🧠 Big Brain", Description: "Earn 50+ XP in a single message",
		predicate: func(p *types.Player, _ time.Time) bool { return p.Statistics.HighestSingleMessageXP >= 50 }},
	{ID: "health-guardian", Name: "💚 Health Guardian", Description: "Maintain 80+ health for 7 days",
		predicate: func(p *types.Player, _ time.Time) bool { return p.Stats.Health >= 80 && p.Streak >= 7 }},
	{ID: "legendary", Name: "🌟 Legendary", Description: "Achieve a 30-day streak",
		predicate: func(p *types.Player, _ time.Time) bool { return p.Streak >= 30 }},
	{ID: "bibliophile", Name: "📚 Bibliophile", Description: "Earn 1,000 total XP",
		predicate: func(p *types.Player, _ time.Time) bool { return p.TotalXPEarned >= 1000 }},
	{ID: "tech-wizard", Name: "🤖 Tech Wizard", Description: "Send 20 technical questions",
		predicate: func(p *types.Player, _ time.Time) bool { return p.Statistics.TotalHighQualityMessages >= 20 }},
	{ID: "creative-genius", Name: "🎨 Creative Genius", Description: "Send 20 creative questions",
		predicate: func(p *types.Player, _ time.Time) bool { return p.Statistics.TotalHighQualityMessages >= 20 }},
	{ID: "consistent", Name: "🤝 Consistent", Description: "Reach level 10 with a 10-day streak",
		predicate: func(p *types.Player, _ time.Time) bool { return p.Level >= 10 && p.LongestStreak >= 10 }},
	{ID: "master", Name: "👑 Master", Description: "Reach level 50",
		predicate: func(p *types.Player, _ time.Time) bool { return p.Level >= 50 }},
	{ID: "quest-master", Name: "🎯 Quest Master", Description: "Complete all daily quests",
		predicate: func(p *types.Player, _ time.Time) bool { return p.Statistics.DailyQuestsCompletedTotal >= 5 }},
	{ID: "night-owl", Name: "🦉 Night Owl", Description: "Send a message between 11PM and 4AM",
		predicate: func(_ *types.Player, now time.Time) bool { h := now.Hour(); return h >= 23 || h <= 4 }},
	{ID: "early-bird", Name: "🌅 Early Bird", Description: "Send a message between 5AM and 9AM",
		predicate: func(_ *types.Player, now time.Time) bool { h := now.Hour(); return h >= 5 && h <= 9 }},
	{ID: "weekend-warrior", Name: "⚔️ Weekend Warrior", Description: "Active on a weekend",
		predicate: func(_ *types.Player, now time.Time) bool {
			d := now.Weekday()
			return d == time.Saturday || d == time.Sunday
		}},
	{ID: "social-butterfly", Name: "🦋 Social Butterfly", Description: "Send 100 total messages",
		predicate: func(p *types.Player, _ time.Time) bool { return p.Statistics.TotalMessages >= 100 }},
	{ID: "deep-thinker", Name: "🤔 Deep Thinker", Description: "Average XP per message > 20",
		predicate: func(p *types.Player, _ time.Time) bool { return p.Statistics.AverageXPPerMessage >= 20 }},
	{ID: "curiosity", Name: "🔍 Curiosity", Description: "Send 10 messages",
		predicate: func(p *types.Player, _ time.Time) bool { return p.Statistics.TotalMessages >= 10 }},
	{ID: "anomaly-initiate", Name: "🛰️ Anomaly Initiate", Description: "Complete your first quest",
		predicate: func(p *types.Player, _ time.Time) bool { return p.Statistics.QuestsCompleted >= 1 }},
	{ID: "anomaly-expert", Name: "🛸 Anomaly Expert", Description: "Complete 10 quests",
		predicate: func(p *types.Player, _ time.Time) bool { return p.Statistics.QuestsCompleted >= 10 }},
	{ID: "xp-titan", Name: "💎 XP Titan", Description: "Earn 5,000 total XP",
		predicate: func(p *types.Player, _ time.Time) bool { return p.TotalXPEarned >= 5000 }},
	{ID: "focus-master", Name: "🧘 Focus Master", Description: "Reach 100% Focus",
		predicate: func(p *types.Player, _ time.Time) bool { return p.Stats.Focus >= 100 }},
	{ID: "energy-surge", Name: "⚡ Energy Surge", Description: "Reach 100% Energy",
		predicate: func(p *types.Player, _ time.Time) bool { return p.Stats.Energy >= 100 }},
	{ID: "dedicated", Name: "📅 Dedicated", Description: "Maintain a 3-day streak",
		predicate: func(p *types.Player, _ time.Time) bool { return p.Streak >= 3 }},
	{ID: "level-ten", Name: "🎖️ Decurion", Description: "Reach Level 10",
		predicate: func(p *types.Player, _ time.Time) bool { return p.Level >= 10 }},
}

// EvaluateBadges re-checks only not-yet-earned badges and appends the newly
// true ones. The earned set never shrinks.
func (e *Engine) EvaluateBadges(p *types.Player, now time.Time) []Badge {
	newBadges := []Badge{}
	for _, b := range BadgeDefinitions {
		if p.HasBadge(b.ID) {
			continue
		}
		if b.predicate(p, now) {
			p.Badges = append(p.Badges, b.ID)
			newBadges = append(newBadges, b)
		}
	}
	return newBadges
}

// BadgeByID looks up a badge definition; ok is false for ids from stale
// client snapshots that no longer exist in the table.
func BadgeByID(id string) (Badge, bool) {
	for _, b := range BadgeDefinitions {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}
