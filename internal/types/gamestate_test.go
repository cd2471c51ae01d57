package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewDefaultGameState(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	gs := NewDefaultGameState(now)

	p := gs.Player
	if p.Level != 1 || p.XP != 0 || p.Credits != 50 {
		t.Fatalf("fresh player wrong: level=%d xp=%d credits=%d", p.Level, p.XP, p.Credits)
	}
	if p.Title != "Curious Beginner" {
		t.Fatalf("title got=%q", p.Title)
	}
	if p.Stats.Health != 100 || p.Stats.Energy != 100 || p.Stats.Focus != 50 {
		t.Fatalf("default stats wrong: %+v", p.Stats)
	}
	if p.LastMessageDay != now.Format(DayFormat) {
		t.Fatalf("last message day got=%q", p.LastMessageDay)
	}
	if p.Statistics.TotalDaysActive != 1 {
		t.Fatalf("days active want=1 got=%d", p.Statistics.TotalDaysActive)
	}
}

func TestNormalizeRepairsPartialSnapshot(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	gs := &GameState{}
	gs.Player.Level = -3
	gs.Player.Credits = -10

	gs.Normalize(now)

	p := gs.Player
	if p.Level != 1 || p.Credits != 0 {
		t.Fatalf("clamps failed: level=%d credits=%d", p.Level, p.Credits)
	}
	if p.Name != "Adventurer" || p.Language != "en" {
		t.Fatalf("identity defaults missing: name=%q lang=%q", p.Name, p.Language)
	}
	if p.Stats != DefaultStats() {
		t.Fatalf("empty stats not reset: %+v", p.Stats)
	}
	if p.Badges == nil || p.Inventory == nil || p.UnlockedSkills == nil {
		t.Fatal("nil collections not repaired")
	}
	if gs.DailyQuests == nil || gs.WeeklyQuests == nil {
		t.Fatal("nil quest sets not repaired")
	}
	if gs.LastQuestGenerationDay != now.Format(DayFormat) {
		t.Fatalf("generation day not seeded: %q", gs.LastQuestGenerationDay)
	}
}

func TestNormalizePreservesValidFields(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	gs := NewDefaultGameState(now)
	gs.Player.Name = "Neo"
	gs.Player.Level = 42
	gs.Player.Stats.Focus = 91

	gs.Normalize(now.AddDate(0, 0, 5))

	if gs.Player.Name != "Neo" || gs.Player.Level != 42 || gs.Player.Stats.Focus != 91 {
		t.Fatalf("valid fields overwritten: %+v", gs.Player)
	}
}

func TestGameStateJSONRoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	gs := NewDefaultGameState(now)
	gs.Player.PlayerID = "AB123456"
	gs.Player.EquippedTheme = "matrix_theme"

	raw, err := json.Marshal(gs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded GameState
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Player.PlayerID != "AB123456" {
		t.Fatalf("playerId lost: %q", decoded.Player.PlayerID)
	}
	if decoded.Player.EquippedTheme != "matrix_theme" {
		t.Fatalf("equippedTheme lost: %q", decoded.Player.EquippedTheme)
	}
	if decoded.Player.LastMessageTime != gs.Player.LastMessageTime {
		t.Fatal("lastMessageTime lost precision")
	}
}
