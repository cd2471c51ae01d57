package handlers

import (
	"time"

	"github.com/astralisgame/astralis-backend/internal/types"
)

// resolveGameState repairs the client-supplied snapshot, or produces the
// canonical default when the client sent nothing usable. Partial snapshots
// are never rejected; the client is the source of truth in this mode.
func resolveGameState(gs *types.GameState) *types.GameState {
	now := time.Now()
	if gs == nil {
		return types.NewDefaultGameState(now)
	}
	gs.Normalize(now)
	return gs
}
