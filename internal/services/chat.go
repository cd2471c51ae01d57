package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/astralisgame/astralis-backend/internal/platform/logger"
)

const gameMasterFallback = "The signal from the game master wavers and dissolves into static. The cosmos is listening; ask again, traveler. What do you seek?"

const oracleFallback = "The Oracle is silent."

var languageInstructions = map[string]string{
	"en": "Response MUST be in English.",
	"ru": "Answer strictly in Russian (Русский).",
	"am": "Answer strictly in Armenian (Հայերեն).",
}

// ChatService turns player messages into game-master narration, oracle
// hints, and generated riddles. Provider failures never propagate: XP was
// already awarded for the engagement, so content degrades to static
// fallbacks instead.
type ChatService struct {
	log *logger.Logger
	ai  AIClient
}

func NewChatService(log *logger.Logger, ai AIClient) *ChatService {
	return &ChatService{log: log.With("service", "ChatService"), ai: ai}
}

func langInstruction(language string) string {
	if ins, ok := languageInstructions[language]; ok {
		return ins
	}
	return languageInstructions["en"]
}

// GameMasterReply narrates the next beat of the story. Always returns text.
func (s *ChatService) GameMasterReply(ctx context.Context, message, language string) string {
	system := fmt.Sprintf(`You are an active RPG Game Master in a sci-fi universe. Your goal is to engage the user in an ongoing cosmic narrative.

CRITICAL RULES:
1. %s
2. YOU MUST end every single response with a direct question to the user.
3. Never end on a statement.
4. Keep the dialogue moving.
5. Be concise but immersive.`, langInstruction(language))

	text, err := s.ai.Chat(ctx, []AIMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: message},
	}, &AIOptions{MaxTokens: 1000})
	if err != nil {
		s.log.Warn("Game master completion failed, using fallback", "error", err)
		return gameMasterFallback
	}
	return text
}

// OracleHint produces a riddle hint scaled by level (1=vague, 3=nearly the
// answer).
func (s *ChatService) OracleHint(ctx context.Context, question, riddle, language string, hintLevel int) string {
	var instruction string
	switch {
	case hintLevel <= 1:
		instruction = "Give a VAGUE, MYSTICAL hint. Do not reveal keywords. Be cryptic."
	case hintLevel == 2:
		instruction = "Give a HELPFUL hint. Point them towards the key concepts. Be less cryptic."
	default:
		instruction = "Give a VERY OBVIOUS hint. You can almost give it away, but don't say the exact answer word-for-word."
	}

	system := fmt.Sprintf(`You are the Oracle of a Sci-Fi RPG. The user is trying to solve this riddle: %q.
The user asks you: %q.

Task: %s

Language: %s

Rules:
1. DO NOT give the direct answer.
2. If they guess correctly, say something like "The stars align with your thought..." but never a plain yes.
3. Keep it under 20 words.
4. Be mystical.`, riddle, question, instruction, langInstruction(language))

	text, err := s.ai.Chat(ctx, []AIMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: "Oracle, guide me."},
	}, &AIOptions{MaxTokens: 150})
	if err != nil {
		s.log.Warn("Oracle completion failed, using fallback", "error", err)
		return oracleFallback
	}
	return text
}

// Riddle is a generated NPC challenge for the anomaly board.
type Riddle struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	NPCName  string   `json:"npcName"`
	Question string   `json:"question"`
	Answers  []string `json:"answers"`
	Hint     string   `json:"hint"`
	Hint2    string   `json:"hint2"`
	Reward   int      `json:"reward"`
	Color    string   `json:"color"`
	Image    string   `json:"image"`
}

type generatedRiddle struct {
	Title    string `json:"title"`
	NPCName  string `json:"npcName"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Hint1    string `json:"hint1"`
	Hint2    string `json:"hint2"`
	Reward   int    `json:"reward"`
	Color    string `json:"color"`
}

// GenerateRiddles asks the provider for three unique riddles in the target
// language. Any failure along the way returns the static fallback set.
func (s *ChatService) GenerateRiddles(ctx context.Context, language string) []Riddle {
	instruction := map[string]string{
		"en": "Generate riddles in English.",
		"ru": "Generate riddles in Russian (using Cyrillic). Answers must be single Russian words.",
		"am": "Generate riddles in Armenian (using Armenian script). Answers must be single Armenian words.",
	}[language]
	if instruction == "" {
		instruction = "Generate riddles in English."
	}

	system := fmt.Sprintf(`You are a riddle generator for a sci-fi RPG. Generate 3 UNIQUE riddles in strict JSON format.

LANGUAGE: %s

CRITICAL RULES:
1. Return ONLY a valid JSON array. No markdown, no code blocks, no extra text.
2. Each riddle must have ONE CLEAR, UNAMBIGUOUS answer.
3. AVOID riddles with multiple possible answers.
4. The answer must be a common word in the target language.

Format:
[{"title":"...","npcName":"...","question":"...","answer":"single word, lowercase","hint1":"vague hint","hint2":"obvious hint","reward":150,"color":"#hexcolor"}]

Requirements: variety (logic puzzles, wordplay, tech riddles), single-word answers, futuristic NPC names, vibrant colors.`, instruction)

	content, err := s.ai.Chat(ctx, []AIMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: "Generate riddles"},
	}, &AIOptions{MaxTokens: 1200, Temperature: 1.2})
	if err != nil {
		s.log.Warn("Riddle generation failed, using fallback set", "error", err)
		return fallbackRiddles()
	}

	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var generated []generatedRiddle
	if err := json.Unmarshal([]byte(content), &generated); err != nil || len(generated) == 0 {
		s.log.Warn("Riddle payload not parseable, using fallback set", "error", err)
		return fallbackRiddles()
	}

	base := time.Now().UnixMilli()
	riddles := make([]Riddle, 0, len(generated))
	for i, g := range generated {
		reward := g.Reward
		if reward < 150 {
			reward = 150
		}
		if reward > 500 {
			reward = 500
		}
		title := g.Title
		if title == "" {
			title = "Mystery Challenge"
		}
		npc := g.NPCName
		if npc == "" {
			npc = "Unknown"
		}
		hint := g.Hint1
		if hint == "" {
			hint = "Think carefully..."
		}
		hint2 := g.Hint2
		if hint2 == "" {
			hint2 = "The answer is obvious."
		}
		color := g.Color
		if color == "" {
			color = "#00d2ff"
		}
		riddles = append(riddles, Riddle{
			ID:       base + int64(i),
			Title:    title,
			NPCName:  npc,
			Question: g.Question,
			Answers:  []string{strings.ToLower(g.Answer)},
			Hint:     hint,
			Hint2:    hint2,
			Reward:   reward,
			Color:    color,
			Image:    "https://api.dicebear.com/7.x/bottts/svg?seed=" + npc,
		})
	}
	return riddles
}

func fallbackRiddles() []Riddle {
	base := time.Now().UnixMilli()
	return []Riddle{
		{
			ID: base, Title: "The Data Stream", NPCName: "Cache-7",
			Question: "What has keys but can't open locks?",
			Answers:  []string{"keyboard", "piano"},
			Hint:     "You use it to communicate.", Hint2: "It's on your device.",
			Reward: 250, Color: "#00d2ff",
			Image: "https://api.dicebear.com/7.x/bottts/svg?seed=Cache",
		},
		{
			ID: base + 1, Title: "The Echo Chamber", NPCName: "Signal-3",
			Question: "I speak without a mouth. What am I?",
			Answers:  []string{"echo"},
			Hint:     "You hear me in canyons.", Hint2: "I repeat what you say.",
			Reward: 300, Color: "#bc13fe",
			Image: "https://api.dicebear.com/7.x/bottts/svg?seed=Signal",
		},
		{
			ID: base + 2, Title: "The Void", NPCName: "Shadow-X",
			Question: "The more there is, the less you see. What is it?",
			Answers:  []string{"darkness", "dark"},
			Hint:     "It comes at night.", Hint2: "Turn on lights to remove it.",
			Reward: 200, Color: "#9b59b6",
			Image: "https://api.dicebear.com/7.x/bottts/svg?seed=Shadow",
		},
	}
}
