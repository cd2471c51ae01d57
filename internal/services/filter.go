package services

import (
	"encoding/json"
	"math/rand"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/astralisgame/astralis-backend/internal/platform/logger"
)

// redactions replace filtered words in-fiction rather than with asterisks.
var redactions = []string{
	"[CORRUPTED]",
	"[REDACTED]",
	"*static*",
	"[SIGNAL_LOST]",
	"[DATA_EXPUNGED]",
	"*glitch*",
}

// ProfanityFilter screens chat text against per-language word lists before
// the progression engine or the LLM ever sees it. The declared language tag
// is not trusted; every list is checked.
type ProfanityFilter struct {
	log   *logger.Logger
	words []string
	exprs []*regexp.Regexp
	rng   *rand.Rand
}

// NewProfanityFilter loads the word list file. A missing or malformed file
// degrades to a pass-through filter rather than failing startup.
func NewProfanityFilter(log *logger.Logger, path string) *ProfanityFilter {
	f := &ProfanityFilter{
		log: log.With("component", "ProfanityFilter"),
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		f.log.Warn("Word list not loaded; filter is pass-through", "path", path, "error", err)
		return f
	}
	var lists map[string][]string
	if err := json.Unmarshal(raw, &lists); err != nil {
		f.log.Warn("Word list not parsed; filter is pass-through", "path", path, "error", err)
		return f
	}
	for _, words := range lists {
		for _, w := range words {
			w = strings.TrimSpace(w)
			if w == "" {
				continue
			}
			f.words = append(f.words, strings.ToLower(w))
			if isASCIIWord(w) {
				f.exprs = append(f.exprs, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(w)+`\b`))
			} else {
				// \b has no meaning outside ASCII; fall back to a plain
				// case-insensitive match for non-Latin lists.
				f.exprs = append(f.exprs, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(w)))
			}
		}
	}
	f.log.Info("Profanity word list loaded", "words", len(f.words))
	return f
}

func isASCIIWord(s string) bool {
	for _, r := range s {
		if r > 127 {
			return false
		}
	}
	return true
}

func (f *ProfanityFilter) ContainsProfanity(text string) bool {
	lower := strings.ToLower(text)
	for _, w := range f.words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// CleanText replaces each filtered word with a random sci-fi redaction.
func (f *ProfanityFilter) CleanText(text string) string {
	cleaned := text
	for _, expr := range f.exprs {
		if expr.MatchString(cleaned) {
			cleaned = expr.ReplaceAllString(cleaned, redactions[f.rng.Intn(len(redactions))])
		}
	}
	return cleaned
}
