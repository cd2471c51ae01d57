package game

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/astralisgame/astralis-backend/internal/types"
)

var dailyQuestTemplates = []types.Quest{
	{Title: "Send 3 meaningful messages", Target: 3, Type: types.QuestMessages, XP: 50},
	{Title: "Ask a question with 10+ words", Target: 1, Type: types.QuestLongQuestion, XP: 40},
	{Title: "Maintain 70+ Focus during session", Target: 1, Type: types.QuestFocusMaintenance, XP: 45},
	{Title: "Earn 50+ XP in one message", Target: 1, Type: types.QuestHighXPMessage, XP: 60},
	{Title: "Send 5 messages in one day", Target: 5, Type: types.QuestVolume, XP: 75},
	{Title: "Ask a philosophical question", Target: 1, Type: types.QuestPhilosophical, XP: 35},
	{Title: "Build a 3-message conversation", Target: 3, Type: types.QuestStreak, XP: 55},
	{Title: "Reach 500+ character question", Target: 1, Type: types.QuestLongMessage, XP: 50},
	{Title: "Ask 3 questions", Target: 3, Type: types.QuestQuestions, XP: 40},
	{Title: "Earn 250 XP today", Target: 250, Type: types.QuestXPGain, XP: 75},
	{Title: "Short & Sweet (< 20 chars)", Target: 1, Type: types.QuestShortMessage, XP: 30},
}

var weeklyQuestTemplates = []types.Quest{
	{Title: "Send 50 messages this week", Target: 50, Type: types.QuestVolume, XP: 300},
	{Title: "Maintain 80+ Focus for 3 days", Target: 3, Type: types.QuestFocusWeek, XP: 250},
	{Title: "Earn 500 XP this week", Target: 500, Type: types.QuestXPGain, XP: 400},
	{Title: "Complete 10 Daily Quests", Target: 10, Type: types.QuestDailyQuestsWeek, XP: 350},
	{Title: "Ask 20 questions", Target: 20, Type: types.QuestQuestions, XP: 200},
}

// EnsureDailyQuests regenerates the daily set wholesale when the calendar
// day rolls over or the set is empty. Historical quests are not kept.
func (e *Engine) EnsureDailyQuests(gs *types.GameState) {
	now := e.now()
	today := now.Format(types.DayFormat)
	if today == gs.LastQuestGenerationDay && len(gs.DailyQuests) > 0 {
		return
	}
	gs.LastQuestGenerationDay = today
	gs.DailyQuests = e.pickQuests(dailyQuestTemplates, DailyQuestCount)
}

// EnsureWeeklyQuests regenerates the weekly set on a 7-day window.
func (e *Engine) EnsureWeeklyQuests(gs *types.GameState) {
	now := e.now()
	lastGen, err := time.ParseInLocation(types.DayFormat, gs.LastWeeklyQuestGenDate, now.Location())
	stale := err != nil || now.Sub(lastGen) >= 7*24*time.Hour
	if !stale && len(gs.WeeklyQuests) > 0 {
		return
	}
	gs.LastWeeklyQuestGenDate = now.Format(types.DayFormat)
	gs.WeeklyQuests = e.pickQuests(weeklyQuestTemplates, WeeklyQuestCount)
}

func (e *Engine) pickQuests(pool []types.Quest, count int) []types.Quest {
	shuffled := make([]types.Quest, len(pool))
	copy(shuffled, pool)
	e.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if count > len(shuffled) {
		count = len(shuffled)
	}
	quests := shuffled[:count]
	for i := range quests {
		quests[i].ID = i
		quests[i].Progress = 0
		quests[i].Completed = false
	}
	return quests
}

// AdvanceQuests applies one message's derived signals to every incomplete
// quest. Completion is a one-way flip: daily completions award credits and
// bump the quests-completed counters exactly once.
func (e *Engine) AdvanceQuests(gs *types.GameState, message string, xp int) {
	e.EnsureDailyQuests(gs)
	e.EnsureWeeklyQuests(gs)

	length := utf8.RuneCountInString(message)
	hasQuestion := strings.Contains(message, "?")
	wordCount := len(strings.Fields(message))
	p := &gs.Player

	dailyCompleted := 0
	for i := range gs.DailyQuests {
		q := &gs.DailyQuests[i]
		if q.Completed {
			continue
		}
		switch q.Type {
		case types.QuestMessages:
			if xp > 0 {
				q.Progress++
			}
		case types.QuestLongQuestion:
			if hasQuestion && wordCount >= 10 {
				q.Progress++
			}
		case types.QuestFocusMaintenance:
			if p.Stats.Focus >= 70 {
				q.Progress++
			}
		case types.QuestHighXPMessage:
			if xp >= 50 {
				q.Progress++
			}
		case types.QuestVolume:
			q.Progress++
		case types.QuestPhilosophical:
			if hasQuestion && length > 100 {
				q.Progress++
			}
		case types.QuestStreak:
			q.Progress++
		case types.QuestLongMessage:
			if length >= 500 {
				q.Progress++
			}
		case types.QuestQuestions:
			if hasQuestion {
				q.Progress++
			}
		case types.QuestXPGain:
			q.Progress += xp
		case types.QuestShortMessage:
			if length > 0 && length < 20 {
				q.Progress++
			}
		}
		if q.Progress >= q.Target {
			q.Completed = true
			dailyCompleted++
			p.Statistics.QuestsCompleted++
			p.Credits += QuestCreditReward
			if allComplete(gs.DailyQuests) {
				p.Statistics.DailyQuestsCompletedTotal++
			}
		}
	}

	for i := range gs.WeeklyQuests {
		q := &gs.WeeklyQuests[i]
		if q.Completed {
			continue
		}
		switch q.Type {
		case types.QuestVolume:
			if xp > 0 {
				q.Progress++
			}
		case types.QuestQuestions:
			if hasQuestion {
				q.Progress++
			}
		case types.QuestXPGain:
			q.Progress += xp
		case types.QuestFocusWeek:
			if p.Stats.Focus >= 80 && xp > 0 {
				q.Progress++
			}
		case types.QuestDailyQuestsWeek:
			q.Progress += dailyCompleted
		}
		if q.Progress >= q.Target {
			q.Completed = true
			p.Statistics.QuestsCompleted++
		}
	}
}

func allComplete(quests []types.Quest) bool {
	for _, q := range quests {
		if !q.Completed {
			return false
		}
	}
	return len(quests) > 0
}

// CompletedCount counts finished quests in a set.
func CompletedCount(quests []types.Quest) int {
	n := 0
	for _, q := range quests {
		if q.Completed {
			n++
		}
	}
	return n
}
