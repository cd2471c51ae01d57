package types

import "time"

// DayFormat renders a timestamp as a calendar-day string. It mirrors the
// day strings browser clients have historically stored, so existing
// snapshots keep parsing.
const DayFormat = "Mon Jan 02 2006"

// GameState is the full client-owned state document.
type GameState struct {
	Player                 Player  `json:"player"`
	DailyQuests            []Quest `json:"dailyQuests"`
	WeeklyQuests           []Quest `json:"weeklyQuests"`
	LastQuestGenerationDay string  `json:"lastQuestGenerationDay"`
	LastWeeklyQuestGenDate string  `json:"lastWeeklyQuestGenDate"`
	// MessageCount is maintained by the client; it is carried through
	// unchanged so sync round-trips preserve the full document.
	MessageCount int `json:"messageCount"`
}

// DefaultStats are the documented fresh-player attribute values.
func DefaultStats() PlayerStats {
	return PlayerStats{
		Health:       100,
		Energy:       100,
		Focus:        50,
		Discipline:   50,
		Productivity: 50,
		Consistency:  50,
		Creativity:   50,
		Kindness:     50,
		Awareness:    50,
	}
}

// NewDefaultGameState returns the canonical starting state for a new player.
func NewDefaultGameState(now time.Time) *GameState {
	return &GameState{
		Player: Player{
			Name:            "Adventurer",
			PersonalityType: "Unknown",
			Language:        "en",
			Level:           1,
			XP:              0,
			TotalXPEarned:   0,
			Title:           "Curious Beginner",
			TitleLevel:      1,
			Stats:           DefaultStats(),
			Streak:          0,
			LongestStreak:   0,
			CurrentDay:      now.Day(),
			LastMessageDay:  now.Format(DayFormat),
			LastMessageTime: now.UnixMilli(),
			Badges:          []string{},
			Inventory:       []string{},
			UnlockedSkills:  []string{},
			Credits:         50,
			SkillPoints:     0,
			Statistics: PlayerStatistics{
				TotalDaysActive:      1,
				FavoriteQuestionType: "Analytical",
			},
		},
		DailyQuests:            []Quest{},
		WeeklyQuests:           []Quest{},
		LastQuestGenerationDay: now.Format(DayFormat),
		LastWeeklyQuestGenDate: now.Format(DayFormat),
	}
}

// Normalize repairs a possibly partial or stale snapshot in place. The
// client is the source of truth and may send documents missing whole
// sub-objects; those are reset to canonical defaults instead of rejected.
func (gs *GameState) Normalize(now time.Time) {
	p := &gs.Player

	if p.Name == "" {
		p.Name = "Adventurer"
	}
	if p.PersonalityType == "" {
		p.PersonalityType = "Unknown"
	}
	if p.Language == "" {
		p.Language = "en"
	}
	if p.Level < 1 {
		p.Level = 1
	}
	if p.Level > 100 {
		p.Level = 100
	}
	if p.XP < 0 {
		p.XP = 0
	}
	if p.TotalXPEarned < 0 {
		p.TotalXPEarned = 0
	}
	if p.Credits < 0 {
		p.Credits = 0
	}
	if p.SkillPoints < 0 {
		p.SkillPoints = 0
	}
	if (p.Stats == PlayerStats{}) {
		p.Stats = DefaultStats()
	}
	if p.Title == "" {
		p.Title = "Curious Beginner"
		p.TitleLevel = 1
	}
	if p.LastMessageDay == "" {
		p.LastMessageDay = now.Format(DayFormat)
	}
	if p.LastMessageTime == 0 {
		p.LastMessageTime = now.UnixMilli()
	}
	if p.Badges == nil {
		p.Badges = []string{}
	}
	if p.Inventory == nil {
		p.Inventory = []string{}
	}
	if p.UnlockedSkills == nil {
		p.UnlockedSkills = []string{}
	}
	if p.Statistics.TotalDaysActive < 1 {
		p.Statistics.TotalDaysActive = 1
	}
	if p.Statistics.FavoriteQuestionType == "" {
		p.Statistics.FavoriteQuestionType = "Analytical"
	}
	if gs.DailyQuests == nil {
		gs.DailyQuests = []Quest{}
	}
	if gs.WeeklyQuests == nil {
		gs.WeeklyQuests = []Quest{}
	}
	if gs.LastQuestGenerationDay == "" {
		gs.LastQuestGenerationDay = now.Format(DayFormat)
	}
	if gs.LastWeeklyQuestGenDate == "" {
		gs.LastWeeklyQuestGenDate = now.Format(DayFormat)
	}
}
