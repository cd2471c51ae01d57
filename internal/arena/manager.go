package arena

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/astralisgame/astralis-backend/internal/platform/logger"
	"github.com/astralisgame/astralis-backend/internal/sse"
)

const (
	// WinThreshold is the match XP a player must reach to win the race.
	// Match XP is session-scoped, distinct from lifetime totalXpEarned.
	WinThreshold = 250

	roomTTL         = time.Hour
	lobbyVisibility = 5 * time.Minute
	sweepInterval   = 5 * time.Minute

	// Unambiguous alphabet: no I, O, 0, 1.
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength   = 6
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomFull        = errors.New("room is full")
	ErrSelfJoin        = errors.New("cannot join your own room")
	ErrPlayerNotInRoom = errors.New("player not in this room")
)

// Occupant is one side of a 1v1 room. XP is the match-scoped score.
type Occupant struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Level   int    `json:"level"`
	XP      int    `json:"xp"`
	TotalXP int    `json:"totalXp"`
}

// Room is an ephemeral two-player session. All mutable fields are guarded by
// mu so the first-to-threshold race resolves atomically.
type Room struct {
	Code      string
	CreatedAt time.Time

	mu     sync.Mutex
	host   Occupant
	guest  *Occupant
	winner string
}

// RoomState is the lock-free snapshot handed to handlers and subscribers.
type RoomState struct {
	Code   string    `json:"code"`
	Host   Occupant  `json:"host"`
	Guest  *Occupant `json:"guest"`
	Winner string    `json:"winner,omitempty"`
}

func (r *Room) snapshotLocked() RoomState {
	st := RoomState{Code: r.Code, Host: r.host, Winner: r.winner}
	if r.guest != nil {
		g := *r.guest
		st.Guest = &g
	}
	return st
}

// LobbyRoom is the public listing entry for an open room.
type LobbyRoom struct {
	Code      string `json:"code"`
	HostName  string `json:"hostName"`
	HostLevel int    `json:"hostLevel"`
}

// Manager owns the in-memory room registry. This is the only server-side
// authoritative shared state in the system; everything else rides on the
// client snapshot.
type Manager struct {
	log *logger.Logger
	hub *sse.Hub
	now func() time.Time
	rng *rand.Rand

	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewManager(log *logger.Logger, hub *sse.Hub) *Manager {
	return &Manager{
		log:   log.With("component", "ArenaManager"),
		hub:   hub,
		now:   time.Now,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		rooms: make(map[string]*Room),
	}
}

// Start launches the background sweep that bounds registry memory.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Sweep()
			}
		}
	}()
}

// Sweep deletes rooms older than the TTL regardless of state.
func (m *Manager) Sweep() {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	for code, room := range m.rooms {
		if now.Sub(room.CreatedAt) > roomTTL {
			delete(m.rooms, code)
			m.log.Info("Swept stale arena room", "code", code)
		}
	}
}

// Create opens a room for the host, replacing any room the same host already
// owns. One active room per host.
func (m *Manager) Create(host Occupant) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	for code, room := range m.rooms {
		if room.host.ID == host.ID {
			delete(m.rooms, code)
		}
	}

	code := m.generateCodeLocked()
	host.XP = 0
	host.TotalXP = 0
	m.rooms[code] = &Room{
		Code:      code,
		CreatedAt: m.now(),
		host:      host,
	}
	m.log.Info("Arena room created", "code", code, "hostName", host.Name)
	return code
}

func (m *Manager) generateCodeLocked() string {
	for {
		var b strings.Builder
		for i := 0; i < codeLength; i++ {
			b.WriteByte(codeAlphabet[m.rng.Intn(len(codeAlphabet))])
		}
		code := b.String()
		if _, taken := m.rooms[code]; !taken {
			return code
		}
	}
}

func (m *Manager) room(code string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	room, ok := m.rooms[strings.ToUpper(code)]
	return room, ok
}

// Join fills the guest slot and notifies subscribers.
func (m *Manager) Join(code string, guest Occupant) (Occupant, error) {
	room, ok := m.room(code)
	if !ok {
		return Occupant{}, ErrRoomNotFound
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.guest != nil {
		return Occupant{}, ErrRoomFull
	}
	if room.host.ID == guest.ID {
		return Occupant{}, ErrSelfJoin
	}
	guest.XP = 0
	guest.TotalXP = 0
	room.guest = &guest

	m.hub.Broadcast(room.Code, map[string]any{"type": "player_joined", "player": guest})
	m.log.Info("Player joined arena room", "code", room.Code, "guestName", guest.Name)
	return room.host, nil
}

// Subscribe registers a push subscriber on the room and returns the client
// plus the connected-snapshot to emit immediately.
func (m *Manager) Subscribe(code string) (*sse.Client, RoomState, error) {
	room, ok := m.room(code)
	if !ok {
		return nil, RoomState{}, ErrRoomNotFound
	}

	client := m.hub.NewClient()
	m.hub.Subscribe(client, room.Code)

	room.mu.Lock()
	snapshot := room.snapshotLocked()
	room.mu.Unlock()
	return client, snapshot, nil
}

// Unsubscribe prunes a closed subscriber.
func (m *Manager) Unsubscribe(client *sse.Client) {
	m.hub.RemoveClient(client)
}

// ReportProgress records a player's match XP and resolves the win race. The
// check-then-set on winner happens under the room lock, so exactly one
// winner broadcast is ever emitted.
func (m *Manager) ReportProgress(code, playerID string, xp, totalXP int) error {
	room, ok := m.room(code)
	if !ok {
		return ErrRoomNotFound
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	var player *Occupant
	var role string
	switch {
	case room.host.ID == playerID:
		player = &room.host
		role = "host"
	case room.guest != nil && room.guest.ID == playerID:
		player = room.guest
		role = "guest"
	default:
		return ErrPlayerNotInRoom
	}

	player.XP = xp
	player.TotalXP = totalXP

	if player.XP >= WinThreshold && room.winner == "" {
		room.winner = player.Name
		m.hub.Broadcast(room.Code, map[string]any{"type": "winner", "winner": player.Name, "role": role})
		m.log.Info("Arena room decided", "code", room.Code, "winner", player.Name)
	}

	m.hub.Broadcast(room.Code, map[string]any{
		"type":    "xp_update",
		"role":    role,
		"xp":      player.XP,
		"totalXp": player.TotalXP,
		"name":    player.Name,
	})
	return nil
}

// Leave removes a player. A departing host collapses the room; a departing
// guest reopens it.
func (m *Manager) Leave(code, playerID string) {
	room, ok := m.room(code)
	if !ok {
		return
	}

	m.hub.Broadcast(room.Code, map[string]any{"type": "player_left", "playerId": playerID})

	room.mu.Lock()
	hostLeft := room.host.ID == playerID
	if !hostLeft && room.guest != nil && room.guest.ID == playerID {
		room.guest = nil
	}
	room.mu.Unlock()

	if hostLeft {
		m.mu.Lock()
		delete(m.rooms, room.Code)
		m.mu.Unlock()
		m.log.Info("Arena room closed, host left", "code", room.Code)
	}
}

// State returns a point-in-time room snapshot.
func (m *Manager) State(code string) (RoomState, error) {
	room, ok := m.room(code)
	if !ok {
		return RoomState{}, ErrRoomNotFound
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	return room.snapshotLocked(), nil
}

// ListOpen returns guestless rooms created within the lobby visibility
// window.
func (m *Manager) ListOpen() []LobbyRoom {
	now := m.now()
	m.mu.RLock()
	defer m.mu.RUnlock()

	open := []LobbyRoom{}
	for _, room := range m.rooms {
		room.mu.Lock()
		guestless := room.guest == nil
		host := room.host
		room.mu.Unlock()
		if guestless && now.Sub(room.CreatedAt) < lobbyVisibility {
			open = append(open, LobbyRoom{Code: room.Code, HostName: host.Name, HostLevel: host.Level})
		}
	}
	return open
}
