package handlers

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/astralisgame/astralis-backend/internal/game"
	"github.com/astralisgame/astralis-backend/internal/services"
)

type scriptedAI struct {
	reply string
	err   error
}

func (s *scriptedAI) Chat(_ context.Context, _ []services.AIMessage, _ *services.AIOptions) (string, error) {
	return s.reply, s.err
}

func newChatRouter(t *testing.T, ai services.AIClient) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := testLogger(t)
	ch := NewChatHandler(
		log,
		game.NewEngine(log),
		services.NewChatService(log, ai),
		services.NewProfanityFilter(log, filepath.Join(t.TempDir(), "missing.json")),
	)

	r := gin.New()
	r.POST("/chat", ch.Chat)
	r.POST("/oracle", ch.Oracle)
	return r
}

func TestChatReturnsCompletionEnvelopeWithAward(t *testing.T) {
	r := newChatRouter(t, &scriptedAI{reply: "The grid hums in response."})

	w, payload := postJSON(t, r, "/chat", `{"message":"why does the anomaly pulse every seven minutes?"}`)
	require.Equal(t, http.StatusOK, w.Code)

	candidates := payload["candidates"].([]any)
	require.Len(t, candidates, 1)
	content := candidates[0].(map[string]any)["content"].(map[string]any)
	parts := content["parts"].([]any)
	text := parts[0].(map[string]any)["text"]
	require.Equal(t, "The grid hums in response.", text)

	award := payload["xpAwarded"].(map[string]any)
	require.Greater(t, award["xp"].(float64), float64(0))

	state := payload["gameState"].(map[string]any)
	player := state["player"].(map[string]any)
	require.Greater(t, player["totalXpEarned"].(float64), float64(0))
}

func TestChatFallsBackWhenProviderFails(t *testing.T) {
	r := newChatRouter(t, &scriptedAI{err: context.DeadlineExceeded})

	w, payload := postJSON(t, r, "/chat", `{"message":"what hides behind the broken relay station?"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// XP is still awarded; the user engaged even though the narrator was
	// unavailable.
	award := payload["xpAwarded"].(map[string]any)
	require.Greater(t, award["xp"].(float64), float64(0))

	candidates := payload["candidates"].([]any)
	content := candidates[0].(map[string]any)["content"].(map[string]any)
	parts := content["parts"].([]any)
	require.NotEmpty(t, parts[0].(map[string]any)["text"])
}

func TestChatCheatCode(t *testing.T) {
	r := newChatRouter(t, &scriptedAI{reply: "unused"})

	w, payload := postJSON(t, r, "/chat", `{"message":"/lvlup444"}`)
	require.Equal(t, http.StatusOK, w.Code)

	state := payload["gameState"].(map[string]any)
	player := state["player"].(map[string]any)
	require.EqualValues(t, 11, player["level"])
	require.EqualValues(t, 10, player["skillPoints"])
	require.EqualValues(t, 550, player["credits"])
	require.Nil(t, payload["xpAwarded"])
}

func TestOracleRequiresXP(t *testing.T) {
	r := newChatRouter(t, &scriptedAI{reply: "Look to the silent frequencies."})

	w, payload := postJSON(t, r, "/oracle", `{"question":"what is the answer?","riddle":"r1","gameState":{"player":{"xp":10}}}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Not enough XP", payload["error"])

	w, payload = postJSON(t, r, "/oracle", `{"question":"what is the answer?","riddle":"r1","gameState":{"player":{"xp":80}}}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Look to the silent frequencies.", payload["hint"])
	state := payload["gameState"].(map[string]any)
	player := state["player"].(map[string]any)
	require.EqualValues(t, 5, player["xp"])
}
