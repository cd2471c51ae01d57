package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/astralisgame/astralis-backend/internal/platform/logger"
	"github.com/astralisgame/astralis-backend/internal/types"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

// UserRecord is one entry of the user table. Credentials are stored and
// compared in plaintext: the trust model here is explicitly
// client-owns-truth, and hardening it is a known, accepted gap in the
// product contract, not an oversight.
type UserRecord struct {
	PlayerID string           `json:"playerId"`
	Username string           `json:"username"`
	Password string           `json:"password"`
	State    *types.GameState `json:"gameState"`
}

// UserStore persists the whole user table as a single JSON document: load
// the table, mutate one entry, write the table back. The file layout is
// shared with other tooling, so the document shape is a contract.
type UserStore struct {
	log  *logger.Logger
	path string
	rng  *rand.Rand

	mu    sync.Mutex
	users map[string]*UserRecord
}

func NewUserStore(log *logger.Logger, path string) (*UserStore, error) {
	s := &UserStore{
		log:   log.With("component", "UserStore"),
		path:  path,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		users: make(map[string]*UserRecord),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *UserStore) load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Info("User table not found, starting empty", "path", s.path)
			return nil
		}
		return fmt.Errorf("read user table: %w", err)
	}
	if err := json.Unmarshal(raw, &s.users); err != nil {
		return fmt.Errorf("parse user table: %w", err)
	}
	s.log.Info("User table loaded", "path", s.path, "users", len(s.users))
	return nil
}

// saveLocked writes the whole table back. Atomicity across keys is not
// required; the file is a single document.
func (s *UserStore) saveLocked() {
	raw, err := json.MarshalIndent(s.users, "", "  ")
	if err != nil {
		s.log.Error("Failed to marshal user table", "error", err)
		return
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		s.log.Error("Failed to write user table", "path", s.path, "error", err)
	}
}

const (
	idLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	idDigits  = "0123456789"
)

func (s *UserStore) generateIDLocked() string {
	for {
		var b strings.Builder
		for i := 0; i < 2; i++ {
			b.WriteByte(idLetters[s.rng.Intn(len(idLetters))])
		}
		for i := 0; i < 6; i++ {
			b.WriteByte(idDigits[s.rng.Intn(len(idDigits))])
		}
		id := b.String()
		if _, taken := s.users[id]; !taken {
			return id
		}
	}
}

// Signup creates a fresh player with the canonical default state. Username
// collision is checked case-insensitively.
func (s *UserStore) Signup(username, password, language string) (*UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lower := strings.ToLower(username)
	for _, u := range s.users {
		if strings.ToLower(u.Username) == lower {
			return nil, ErrUsernameTaken
		}
	}

	playerID := s.generateIDLocked()
	state := types.NewDefaultGameState(time.Now())
	state.Player.Name = username
	state.Player.PlayerID = playerID
	if language != "" {
		state.Player.Language = language
	}

	record := &UserRecord{
		PlayerID: playerID,
		Username: username,
		Password: password,
		State:    state,
	}
	s.users[playerID] = record
	s.saveLocked()
	s.log.Info("User signed up", "playerId", playerID, "username", username)
	return record, nil
}

func (s *UserStore) Login(username, password string) (*UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lower := strings.ToLower(username)
	for _, u := range s.users {
		if strings.ToLower(u.Username) == lower && u.Password == password {
			return u, nil
		}
	}
	return nil, ErrInvalidCredentials
}

func (s *UserStore) Get(playerID string) (*UserRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[playerID]
	return u, ok
}

// SyncState replaces a player's state with the client-supplied snapshot.
func (s *UserStore) SyncState(playerID string, state *types.GameState) error {
	return s.Mutate(playerID, func(u *UserRecord) error {
		u.State = state
		return nil
	})
}

// Mutate applies fn to one record under the table lock and persists the
// table when fn succeeds.
func (s *UserStore) Mutate(playerID string, fn func(*UserRecord) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[playerID]
	if !ok {
		return ErrUserNotFound
	}
	if err := fn(u); err != nil {
		return err
	}
	s.saveLocked()
	return nil
}
