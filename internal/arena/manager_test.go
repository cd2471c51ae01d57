package arena

import (
	"math/rand"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/astralisgame/astralis-backend/internal/platform/logger"
	"github.com/astralisgame/astralis-backend/internal/sse"
)

func newTestManager(t *testing.T) (*Manager, *time.Time) {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	clock := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	m := &Manager{
		log:   log,
		hub:   sse.NewHub(log),
		now:   func() time.Time { return clock },
		rng:   rand.New(rand.NewSource(7)),
		rooms: make(map[string]*Room),
	}
	return m, &clock
}

var codePattern = regexp.MustCompile(`^[A-HJ-NP-Z2-9]{6}$`)

func TestCreateAndJoinLifecycle(t *testing.T) {
	m, _ := newTestManager(t)

	code := m.Create(Occupant{ID: "AA111111", Name: "Neo", Level: 12})
	if !codePattern.MatchString(code) {
		t.Fatalf("room code %q does not match the alphabet", code)
	}

	if _, err := m.Join("ZZZZZZ", Occupant{ID: "BB222222"}); err != ErrRoomNotFound {
		t.Fatalf("want ErrRoomNotFound got=%v", err)
	}
	if _, err := m.Join(code, Occupant{ID: "AA111111"}); err != ErrSelfJoin {
		t.Fatalf("want ErrSelfJoin got=%v", err)
	}

	host, err := m.Join(code, Occupant{ID: "BB222222", Name: "Trinity", Level: 9, XP: 40})
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if host.Name != "Neo" {
		t.Fatalf("join should return the host, got=%q", host.Name)
	}

	state, err := m.State(code)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.Guest == nil || state.Guest.Name != "Trinity" {
		t.Fatalf("guest not recorded: %+v", state.Guest)
	}
	if state.Guest.XP != 0 {
		t.Fatalf("match XP should start at zero, got=%d", state.Guest.XP)
	}

	if _, err := m.Join(code, Occupant{ID: "CC333333"}); err != ErrRoomFull {
		t.Fatalf("want ErrRoomFull got=%v", err)
	}
}

func TestCreateReplacesHostsPreviousRoom(t *testing.T) {
	m, _ := newTestManager(t)
	first := m.Create(Occupant{ID: "AA111111", Name: "Neo"})
	second := m.Create(Occupant{ID: "AA111111", Name: "Neo"})

	if _, err := m.State(first); err != ErrRoomNotFound {
		t.Fatalf("first room should be gone, got=%v", err)
	}
	if _, err := m.State(second); err != nil {
		t.Fatalf("second room missing: %v", err)
	}
}

func TestReportProgressSingleWinner(t *testing.T) {
	m, _ := newTestManager(t)
	code := m.Create(Occupant{ID: "AA111111", Name: "Neo"})
	if _, err := m.Join(code, Occupant{ID: "BB222222", Name: "Trinity"}); err != nil {
		t.Fatalf("join: %v", err)
	}

	client, _, err := m.Subscribe(code)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer m.Unsubscribe(client)

	// Both players cross the threshold concurrently; exactly one winner
	// frame may be emitted.
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = m.ReportProgress(code, "AA111111", WinThreshold+n, WinThreshold+n)
		}(i)
		go func(n int) {
			defer wg.Done()
			_ = m.ReportProgress(code, "BB222222", WinThreshold+n, WinThreshold+n)
		}(i)
	}
	wg.Wait()

	winners := 0
	for len(client.Outbound) > 0 {
		frame := <-client.Outbound
		if m, ok := frame.(map[string]any); ok && m["type"] == "winner" {
			winners++
		}
	}
	if winners != 1 {
		t.Fatalf("winner frames want=1 got=%d", winners)
	}

	state, err := m.State(code)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.Winner != "Neo" && state.Winner != "Trinity" {
		t.Fatalf("winner not recorded: %q", state.Winner)
	}
}

func TestReportProgressUnknownPlayer(t *testing.T) {
	m, _ := newTestManager(t)
	code := m.Create(Occupant{ID: "AA111111", Name: "Neo"})
	if err := m.ReportProgress(code, "XX999999", 10, 10); err != ErrPlayerNotInRoom {
		t.Fatalf("want ErrPlayerNotInRoom got=%v", err)
	}
}

func TestLeaveGuestReopensRoomHostClosesIt(t *testing.T) {
	m, _ := newTestManager(t)
	code := m.Create(Occupant{ID: "AA111111", Name: "Neo"})
	if _, err := m.Join(code, Occupant{ID: "BB222222", Name: "Trinity"}); err != nil {
		t.Fatalf("join: %v", err)
	}

	m.Leave(code, "BB222222")
	state, err := m.State(code)
	if err != nil {
		t.Fatalf("state after guest left: %v", err)
	}
	if state.Guest != nil {
		t.Fatal("guest slot not cleared")
	}

	m.Leave(code, "AA111111")
	if _, err := m.State(code); err != ErrRoomNotFound {
		t.Fatalf("room should close when host leaves, got=%v", err)
	}

	// Leaving a dead room is a no-op.
	m.Leave(code, "AA111111")
}

func TestListOpenVisibilityWindow(t *testing.T) {
	m, clock := newTestManager(t)
	code := m.Create(Occupant{ID: "AA111111", Name: "Neo", Level: 12})

	open := m.ListOpen()
	if len(open) != 1 || open[0].Code != code || open[0].HostLevel != 12 {
		t.Fatalf("lobby listing wrong: %+v", open)
	}

	*clock = clock.Add(6 * time.Minute)
	if got := m.ListOpen(); len(got) != 0 {
		t.Fatalf("stale room still listed: %+v", got)
	}

	code2 := m.Create(Occupant{ID: "CC333333", Name: "Morpheus"})
	if _, err := m.Join(code2, Occupant{ID: "DD444444", Name: "Smith"}); err != nil {
		t.Fatalf("join: %v", err)
	}
	if got := m.ListOpen(); len(got) != 0 {
		t.Fatalf("full room listed as open: %+v", got)
	}
}

func TestSweepDropsExpiredRooms(t *testing.T) {
	m, clock := newTestManager(t)
	code := m.Create(Occupant{ID: "AA111111", Name: "Neo"})

	*clock = clock.Add(30 * time.Minute)
	m.Sweep()
	if _, err := m.State(code); err != nil {
		t.Fatalf("room swept before its TTL: %v", err)
	}

	*clock = clock.Add(time.Hour)
	m.Sweep()
	if _, err := m.State(code); err != ErrRoomNotFound {
		t.Fatalf("expired room survived the sweep: %v", err)
	}
}
