package types

// Player is the progression record for one account. The client holds the
// authoritative snapshot and echoes it back with every request, so every
// field must survive a JSON round trip under these exact keys.
type Player struct {
	PlayerID        string `json:"playerId"`
	Name            string `json:"name"`
	PersonalityType string `json:"personalityType"`
	Language        string `json:"language"`

	Level         int    `json:"level"`
	XP            int    `json:"xp"`
	TotalXPEarned int    `json:"totalXpEarned"`
	Title         string `json:"title"`
	TitleLevel    int    `json:"titleLevel"`

	Stats PlayerStats `json:"stats"`

	Streak             int    `json:"streak"`
	LongestStreak      int    `json:"longestStreak"`
	CurrentDay         int    `json:"currentDay"`
	LastMessageDay     string `json:"lastMessageDay"`
	LastMessageTime    int64  `json:"lastMessageTime"`
	LastMessageContent string `json:"lastMessageContent,omitempty"`

	Badges         []string `json:"badges"`
	Inventory      []string `json:"inventory"`
	UnlockedSkills []string `json:"unlockedSkills"`
	EquippedTheme  string   `json:"equippedTheme,omitempty"`

	Credits     int `json:"credits"`
	SkillPoints int `json:"skillPoints"`

	Statistics PlayerStatistics `json:"statistics"`
}

// PlayerStats are the nine named attributes, each clamped to [0,100] by the
// progression engine after every mutation.
type PlayerStats struct {
	Health       int `json:"health"`
	Energy       int `json:"energy"`
	Focus        int `json:"focus"`
	Discipline   int `json:"discipline"`
	Productivity int `json:"productivity"`
	Consistency  int `json:"consistency"`
	Creativity   int `json:"creativity"`
	Kindness     int `json:"kindness"`
	Awareness    int `json:"awareness"`
}

// PlayerStatistics are aggregate counters; all are monotone except the
// running average.
type PlayerStatistics struct {
	TotalMessages             int    `json:"totalMessages"`
	TotalXPEarned             int    `json:"totalXpEarned"`
	AverageXPPerMessage       int    `json:"averageXpPerMessage"`
	HighestSingleMessageXP    int    `json:"highestSingleMessageXp"`
	TotalHighQualityMessages  int    `json:"totalHighQualityMessages"`
	TotalDaysActive           int    `json:"totalDaysActive"`
	FavoriteQuestionType      string `json:"favoriteQuestionType"`
	QuestsCompleted           int    `json:"questsCompleted"`
	DailyQuestsCompletedTotal int    `json:"dailyQuestsCompletedTotal"`
}

// HasSkill reports whether the player unlocked the given skill. The engine
// consults unlocked-skill membership directly; there is no separate flags
// structure.
func (p *Player) HasSkill(skillID string) bool {
	for _, s := range p.UnlockedSkills {
		if s == skillID {
			return true
		}
	}
	return false
}

// HasBadge reports whether the badge id was already earned.
func (p *Player) HasBadge(badgeID string) bool {
	for _, b := range p.Badges {
		if b == badgeID {
			return true
		}
	}
	return false
}

// OwnsItem reports whether the item id is in the player's inventory.
func (p *Player) OwnsItem(itemID string) bool {
	for _, it := range p.Inventory {
		if it == itemID {
			return true
		}
	}
	return false
}
