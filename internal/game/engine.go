package game

import (
	"math"
	"math/rand"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/astralisgame/astralis-backend/internal/platform/logger"
	"github.com/astralisgame/astralis-backend/internal/types"
)

const (
	// XPPerLevel is the canonical level threshold; player.XP stays in
	// [0, XPPerLevel) at rest.
	XPPerLevel = 100
	// MaxLevel caps progression; at the cap XP gain is suppressed entirely.
	MaxLevel = 100

	SkillPointsPerLevel = 1
	CreditsPerLevel     = 50
	QuestCreditReward   = 25

	// HighQualityXP is the per-message XP at which a message counts toward
	// the high-quality statistic.
	HighQualityXP = 20

	DailyQuestCount  = 7
	WeeklyQuestCount = 3

	minMessageLength = 10
)

var analyticalKeywords = []string{
	"analyze", "theory", "concept", "explain", "difference", "impact",
	"relationship", "cause", "prove", "perspective", "why", "how",
}

var kindnessKeywords = []string{
	"please", "thank", "thanks", "appreciate", "helpful", "good", "love",
	"great", "kind", "sorry",
}

var messageStoplist = map[string]bool{
	"hi": true, "hello": true, "hey": true, "ok": true, "okay": true,
	"yes": true, "no": true, "thanks": true, "lol": true,
}

// SkillNeuralEfficiency grants +10% XP, applied after the streak multiplier.
// SkillHackerInstinct halves the oracle hint price.
const (
	SkillNeuralEfficiency = "neural_efficiency_1"
	SkillFocusMaster      = "focus_master"
	SkillHackerInstinct   = "hacker_instinct"
)

// Engine runs the pure progression transforms over a caller-supplied
// snapshot. The clock and rng are injected so tests can drive calendar days
// and quest shuffles deterministically.
type Engine struct {
	log *logger.Logger
	now func() time.Time
	rng *rand.Rand
}

func NewEngine(log *logger.Logger) *Engine {
	return &Engine{
		log: log.With("component", "GameEngine"),
		now: time.Now,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// XPResult describes one award pass. It is UI feedback only and never
// persisted separately from the state snapshot.
type XPResult struct {
	XP           int     `json:"xp"`
	BaseXP       int     `json:"baseXp"`
	Multiplier   float64 `json:"multiplier"`
	Streak       int     `json:"streak"`
	NewBadges    []Badge `json:"newBadges"`
	TitleChanged bool    `json:"titleChanged"`
	Title        string  `json:"title"`
	Reason       string  `json:"reason,omitempty"`
}

// AwardXP applies one chat message to the game state: gates, health decay,
// streak and multiplier, base XP shaping, stat side effects, leveling,
// statistics, quest progress, badges, and title recomputation.
func (e *Engine) AwardXP(gs *types.GameState, message string) XPResult {
	now := e.now()
	gs.Normalize(now)
	p := &gs.Player

	zero := XPResult{Multiplier: 1, Streak: p.Streak, NewBadges: []Badge{}, Title: p.Title}

	normalized := strings.ToLower(strings.TrimSpace(message))
	if normalized != "" && normalized == p.LastMessageContent {
		zero.Reason = "repeated message"
		return zero
	}
	if !Meaningful(message) {
		zero.Reason = "message too short or low effort"
		return zero
	}

	prevTitle := p.Title

	e.decayHealth(p, now)
	multiplier := e.updateStreak(p, now)

	baseXP := baseXPFor(message, normalized)

	e.applyStatEffects(p, message, normalized)

	xp := int(math.Floor(float64(baseXP) * multiplier))
	if p.HasSkill(SkillNeuralEfficiency) {
		xp = int(math.Floor(float64(xp) * 1.1))
	}
	if p.Level >= MaxLevel {
		xp = 0
	}

	e.applyXP(p, xp)
	p.LastMessageContent = normalized

	e.updateStatistics(p, xp)
	e.AdvanceQuests(gs, message, xp)
	newBadges := e.EvaluateBadges(p, now)
	ApplyTitle(p)

	return XPResult{
		XP:           xp,
		BaseXP:       baseXP,
		Multiplier:   multiplier,
		Streak:       p.Streak,
		NewBadges:    newBadges,
		TitleChanged: p.Title != prevTitle,
		Title:        p.Title,
	}
}

// Meaningful is the validity gate: short, stoplisted, repeated-character, or
// symbol-dominated messages earn nothing. A message must carry a question
// mark or at least four words.
func Meaningful(message string) bool {
	trimmed := strings.TrimSpace(message)
	if utf8.RuneCountInString(trimmed) < minMessageLength {
		return false
	}
	lower := strings.ToLower(trimmed)
	if messageStoplist[lower] || messageStoplist[strings.Trim(lower, ".!? ")] {
		return false
	}
	if dominantRuneRatio(lower) > 0.6 {
		return false
	}
	if symbolRatio(trimmed) > 0.5 {
		return false
	}
	if !strings.Contains(trimmed, "?") && len(strings.Fields(trimmed)) < 4 {
		return false
	}
	return true
}

func dominantRuneRatio(s string) float64 {
	counts := map[rune]int{}
	total := 0
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		counts[r]++
		total++
	}
	if total == 0 {
		return 1
	}
	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	return float64(max) / float64(total)
}

func symbolRatio(s string) float64 {
	symbols, total := 0, 0
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			symbols++
		}
		total++
	}
	if total == 0 {
		return 1
	}
	return float64(symbols) / float64(total)
}

// baseXPFor shapes the reward from the message alone: length tier, question
// bonus, multi-sentence bonus, analytical keyword bonus.
func baseXPFor(message, normalized string) int {
	length := utf8.RuneCountInString(message)
	base := 10
	if length > 50 {
		base = 20
	}
	if length > 150 {
		base = 50
	}
	if strings.Contains(message, "?") {
		base += 5
	}
	if sentenceCount(message) >= 2 {
		base += 5
	}
	if containsAny(normalized, analyticalKeywords) {
		base += 20
	}
	return base
}

func sentenceCount(message string) int {
	return strings.Count(message, ".") + strings.Count(message, "!") + strings.Count(message, "?")
}

func containsAny(normalized string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(normalized, k) {
			return true
		}
	}
	return false
}

// decayHealth applies elapsed-time decay based on the previous message
// timestamp, then refreshes the timestamp whether or not decay applied.
func (e *Engine) decayHealth(p *types.Player, now time.Time) {
	days := float64(now.UnixMilli()-p.LastMessageTime) / float64(24*time.Hour/time.Millisecond)
	if days > 1 {
		p.Stats.Health = clampStat(p.Stats.Health - int(math.Floor(days*10)))
	}
	p.LastMessageTime = now.UnixMilli()
}

// updateStreak advances or resets the consecutive-day counter on a calendar
// day change and returns the multiplier derived from the post-update streak.
func (e *Engine) updateStreak(p *types.Player, now time.Time) float64 {
	today := now.Format(types.DayFormat)
	if today != p.LastMessageDay {
		gap := calendarDayGap(p.LastMessageDay, now)
		if gap == 1 {
			p.Streak++
		} else {
			p.Streak = 1
		}
		p.CurrentDay = now.Day()
		p.LastMessageDay = today
	}

	switch {
	case p.Streak >= 30:
		return 5.0
	case p.Streak >= 14:
		return 3.0
	case p.Streak >= 7:
		return 2.0
	case p.Streak >= 3:
		return 1.5
	default:
		return 1.0
	}
}

func calendarDayGap(lastDay string, now time.Time) int {
	last, err := time.ParseInLocation(types.DayFormat, lastDay, now.Location())
	if err != nil {
		return -1
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return int(math.Round(today.Sub(last).Hours() / 24))
}

func (e *Engine) applyStatEffects(p *types.Player, message, normalized string) {
	p.Stats.Energy = clampStat(p.Stats.Energy - 2)
	if utf8.RuneCountInString(message) > 50 {
		p.Stats.Focus = clampStat(p.Stats.Focus + 5)
	} else {
		p.Stats.Focus = clampStat(p.Stats.Focus + 2)
	}
	p.Stats.Health = clampStat(p.Stats.Health + 1)
	if containsAny(normalized, analyticalKeywords) {
		p.Stats.Creativity = clampStat(p.Stats.Creativity + 2)
		p.Stats.Awareness = clampStat(p.Stats.Awareness + 2)
	}
	if containsAny(normalized, kindnessKeywords) {
		p.Stats.Kindness = clampStat(p.Stats.Kindness + 2)
	}
}

// applyXP credits the award and resolves level-ups, granting skill points and
// credits per level gained. At the cap, XP is zeroed and gains stop.
func (e *Engine) applyXP(p *types.Player, xp int) {
	p.XP += xp
	p.TotalXPEarned += xp

	for p.XP >= XPPerLevel && p.Level < MaxLevel {
		p.XP -= XPPerLevel
		p.Level++
		p.SkillPoints += SkillPointsPerLevel
		p.Credits += CreditsPerLevel
	}
	if p.Level >= MaxLevel {
		p.Level = MaxLevel
		p.XP = 0
	}
}

func (e *Engine) updateStatistics(p *types.Player, xp int) {
	st := &p.Statistics
	st.TotalMessages++
	st.TotalXPEarned += xp
	st.AverageXPPerMessage = int(math.Round(float64(st.TotalXPEarned) / float64(st.TotalMessages)))
	if xp > st.HighestSingleMessageXP {
		st.HighestSingleMessageXP = xp
	}
	if xp >= HighQualityXP {
		st.TotalHighQualityMessages++
	}
	if p.Streak > st.TotalDaysActive {
		st.TotalDaysActive = p.Streak
	}
	if p.Streak > p.LongestStreak {
		p.LongestStreak = p.Streak
	}
}

func clampStat(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// OracleHintCost is the XP price of an oracle hint; the hacker_instinct
// skill halves it.
func OracleHintCost(p *types.Player) int {
	if p.HasSkill(SkillHackerInstinct) {
		return 37
	}
	return 75
}
