package game

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/astralisgame/astralis-backend/internal/platform/logger"
	"github.com/astralisgame/astralis-backend/internal/types"
)

// newTestEngine returns an engine on a controllable clock. Tests move the
// clock by writing through the returned pointer.
func newTestEngine(t *testing.T) (*Engine, *time.Time) {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	clock := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	e := &Engine{
		log: log,
		now: func() time.Time { return clock },
		rng: rand.New(rand.NewSource(42)),
	}
	return e, &clock
}

// freezeQuests pins both quest sets as already generated and completed so
// quest side effects stay out of an assertion.
func freezeQuests(gs *types.GameState, day time.Time) {
	done := []types.Quest{{ID: 0, Title: "done", Target: 1, Progress: 1, Completed: true, Type: types.QuestMessages, XP: 50}}
	gs.DailyQuests = done
	gs.WeeklyQuests = append([]types.Quest{}, done...)
	gs.LastQuestGenerationDay = day.Format(types.DayFormat)
	gs.LastWeeklyQuestGenDate = day.Format(types.DayFormat)
}

func TestStreakMonotonicity(t *testing.T) {
	e, clock := newTestEngine(t)
	start := *clock
	gs := types.NewDefaultGameState(start)

	for day := 1; day <= 5; day++ {
		*clock = start.AddDate(0, 0, day)
		res := e.AwardXP(gs, fmt.Sprintf("what do you think about topic number %d?", day))
		if res.XP == 0 {
			t.Fatalf("day %d: expected XP, got zero (reason=%q)", day, res.Reason)
		}
		if gs.Player.Streak != day {
			t.Fatalf("day %d: streak want=%d got=%d", day, day, gs.Player.Streak)
		}
	}

	before := gs.Player.Streak
	e.AwardXP(gs, "a second distinct question on the same exact day?")
	if gs.Player.Streak != before {
		t.Fatalf("same-day message changed streak: want=%d got=%d", before, gs.Player.Streak)
	}

	*clock = start.AddDate(0, 0, 9)
	e.AwardXP(gs, "does a long silence reset my progress entirely?")
	if gs.Player.Streak != 1 {
		t.Fatalf("gap >1 day should reset streak to 1, got=%d", gs.Player.Streak)
	}
	if gs.Player.LongestStreak != before {
		t.Fatalf("longest streak should survive a reset: want=%d got=%d", before, gs.Player.LongestStreak)
	}
}

func TestStreakMultiplierTiers(t *testing.T) {
	e, clock := newTestEngine(t)
	cases := []struct {
		streak int
		want   float64
	}{
		{0, 1.0}, {2, 1.0}, {3, 1.5}, {6, 1.5}, {7, 2.0}, {13, 2.0}, {14, 3.0}, {29, 3.0}, {30, 5.0}, {90, 5.0},
	}
	for _, tc := range cases {
		p := &types.Player{Streak: tc.streak, LastMessageDay: clock.Format(types.DayFormat)}
		got := e.updateStreak(p, *clock)
		if got != tc.want {
			t.Fatalf("streak %d: multiplier want=%v got=%v", tc.streak, tc.want, got)
		}
	}
}

func TestAwardXPLevelUpGrantsRewards(t *testing.T) {
	e, clock := newTestEngine(t)
	gs := types.NewDefaultGameState(*clock)
	freezeQuests(gs, *clock)
	gs.Player.XP = 90

	msg := "When we analyze the relationship between memory and identity, do our recollections define who we become, or does the self exist independently of everything we remember?"
	res := e.AwardXP(gs, msg)

	if res.BaseXP != 75 {
		t.Fatalf("base xp want=75 got=%d", res.BaseXP)
	}
	if res.XP != 75 {
		t.Fatalf("xp want=75 got=%d", res.XP)
	}
	if gs.Player.Level != 2 {
		t.Fatalf("level want=2 got=%d", gs.Player.Level)
	}
	if gs.Player.XP != 65 {
		t.Fatalf("residual xp want=65 got=%d", gs.Player.XP)
	}
	if gs.Player.SkillPoints != SkillPointsPerLevel {
		t.Fatalf("skill points want=%d got=%d", SkillPointsPerLevel, gs.Player.SkillPoints)
	}
	if gs.Player.Credits != 50+CreditsPerLevel {
		t.Fatalf("credits want=%d got=%d", 50+CreditsPerLevel, gs.Player.Credits)
	}
	if gs.Player.TotalXPEarned != 75 {
		t.Fatalf("total xp want=75 got=%d", gs.Player.TotalXPEarned)
	}

	// Long analytical message: energy -2, focus +5, creativity/awareness +2,
	// no kindness keyword, health already at the cap.
	st := gs.Player.Stats
	if st.Energy != 98 {
		t.Fatalf("energy want=98 got=%d", st.Energy)
	}
	if st.Focus != 55 {
		t.Fatalf("focus want=55 got=%d", st.Focus)
	}
	if st.Creativity != 52 || st.Awareness != 52 {
		t.Fatalf("creativity/awareness want=52/52 got=%d/%d", st.Creativity, st.Awareness)
	}
	if st.Kindness != 50 {
		t.Fatalf("kindness want=50 got=%d", st.Kindness)
	}
	if st.Health != 100 {
		t.Fatalf("health want=100 got=%d", st.Health)
	}
}

func TestDecayHealthAfterAbsence(t *testing.T) {
	e, clock := newTestEngine(t)
	now := *clock

	p := &types.Player{Stats: types.DefaultStats()}
	p.LastMessageTime = now.AddDate(0, 0, -3).UnixMilli()
	e.decayHealth(p, now)
	if p.Stats.Health != 70 {
		t.Fatalf("3-day absence: health want=70 got=%d", p.Stats.Health)
	}
	if p.LastMessageTime != now.UnixMilli() {
		t.Fatalf("timestamp not refreshed: want=%d got=%d", now.UnixMilli(), p.LastMessageTime)
	}

	p = &types.Player{Stats: types.DefaultStats()}
	p.LastMessageTime = now.Add(-20 * time.Hour).UnixMilli()
	e.decayHealth(p, now)
	if p.Stats.Health != 100 {
		t.Fatalf("under a day: health want=100 got=%d", p.Stats.Health)
	}
	if p.LastMessageTime != now.UnixMilli() {
		t.Fatal("timestamp should refresh even without decay")
	}

	p = &types.Player{Stats: types.DefaultStats()}
	p.LastMessageTime = now.AddDate(0, 0, -30).UnixMilli()
	e.decayHealth(p, now)
	if p.Stats.Health != 0 {
		t.Fatalf("long absence should clamp health at 0, got=%d", p.Stats.Health)
	}
}

func TestApplyStatEffects(t *testing.T) {
	e, _ := newTestEngine(t)
	p := &types.Player{Stats: types.DefaultStats()}

	// Short message, analytical and kindness keywords both present.
	msg := "thank you, can you explain that part?"
	e.applyStatEffects(p, msg, strings.ToLower(msg))

	if p.Stats.Energy != 98 {
		t.Fatalf("energy want=98 got=%d", p.Stats.Energy)
	}
	if p.Stats.Focus != 52 {
		t.Fatalf("short message focus want=52 got=%d", p.Stats.Focus)
	}
	if p.Stats.Creativity != 52 || p.Stats.Awareness != 52 {
		t.Fatalf("creativity/awareness want=52/52 got=%d/%d", p.Stats.Creativity, p.Stats.Awareness)
	}
	if p.Stats.Kindness != 52 {
		t.Fatalf("kindness want=52 got=%d", p.Stats.Kindness)
	}
	if p.Stats.Health != 100 {
		t.Fatalf("health should clamp at 100, got=%d", p.Stats.Health)
	}
}

func TestAwardXPDuplicateMessageSuppressed(t *testing.T) {
	e, clock := newTestEngine(t)
	gs := types.NewDefaultGameState(*clock)
	freezeQuests(gs, *clock)

	msg := "why does the moon look bigger near the horizon?"
	first := e.AwardXP(gs, msg)
	if first.XP == 0 {
		t.Fatalf("first send should earn XP, reason=%q", first.Reason)
	}

	second := e.AwardXP(gs, msg)
	if second.XP != 0 {
		t.Fatalf("duplicate send should earn nothing, got=%d", second.XP)
	}
	if second.Reason == "" {
		t.Fatal("duplicate send should carry a reason")
	}
	if gs.Player.Statistics.TotalMessages != 1 {
		t.Fatalf("duplicate send should not count a message: got=%d", gs.Player.Statistics.TotalMessages)
	}
}

func TestAwardXPStopsAtMaxLevel(t *testing.T) {
	e, clock := newTestEngine(t)
	gs := types.NewDefaultGameState(*clock)
	freezeQuests(gs, *clock)
	gs.Player.Level = MaxLevel

	res := e.AwardXP(gs, "is there anything left to earn at the very top?")
	if res.XP != 0 {
		t.Fatalf("at max level xp want=0 got=%d", res.XP)
	}
	if gs.Player.XP != 0 || gs.Player.Level != MaxLevel {
		t.Fatalf("cap state drifted: level=%d xp=%d", gs.Player.Level, gs.Player.XP)
	}
}

func TestNeuralEfficiencyBonus(t *testing.T) {
	e, clock := newTestEngine(t)
	gs := types.NewDefaultGameState(*clock)
	freezeQuests(gs, *clock)
	gs.Player.UnlockedSkills = []string{SkillNeuralEfficiency}

	// Base 15 (short question), multiplier 1.0, skill floor(15*1.1)=16.
	res := e.AwardXP(gs, "what lies beyond the edge of a map?")
	if res.BaseXP != 15 {
		t.Fatalf("base xp want=15 got=%d", res.BaseXP)
	}
	if res.XP != 16 {
		t.Fatalf("skill-adjusted xp want=16 got=%d", res.XP)
	}
}

func TestMeaningful(t *testing.T) {
	cases := []struct {
		message string
		want    bool
	}{
		{"hi", false},
		{"  hello!  ", false},
		{"aaaaaaaaaaaaaaaa", false},
		{"?!?!?!?!?!?!", false},
		{"short msg", false},
		{"one two three", false},
		{"what is the meaning of life?", true},
		{"tell me more about distant stars", true},
	}
	for _, tc := range cases {
		if got := Meaningful(tc.message); got != tc.want {
			t.Fatalf("Meaningful(%q): want=%v got=%v", tc.message, tc.want, got)
		}
	}
}

func TestBaseXPFor(t *testing.T) {
	cases := []struct {
		message string
		want    int
	}{
		{"tell me more about stars", 10},
		{"the quick brown fox jumped past the lazy dog near the riverbank", 20},
		{"is it raining?", 15},
		{"I like it. It works well.", 15},
		{"please explain this", 30},
	}
	for _, tc := range cases {
		normalized := strings.ToLower(strings.TrimSpace(tc.message))
		if got := baseXPFor(tc.message, normalized); got != tc.want {
			t.Fatalf("baseXPFor(%q): want=%d got=%d", tc.message, tc.want, got)
		}
	}
}

func TestOracleHintCost(t *testing.T) {
	p := &types.Player{}
	if got := OracleHintCost(p); got != 75 {
		t.Fatalf("hint cost want=75 got=%d", got)
	}
	p.UnlockedSkills = []string{SkillHackerInstinct}
	if got := OracleHintCost(p); got != 37 {
		t.Fatalf("discounted hint cost want=37 got=%d", got)
	}
}
