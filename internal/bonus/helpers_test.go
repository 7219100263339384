package bonus

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/osse101/GatherBonus_Go/internal/host"
	"github.com/osse101/GatherBonus_Go/internal/lang"
	"github.com/osse101/GatherBonus_Go/internal/logger"
	"github.com/osse101/GatherBonus_Go/internal/permission"
)

const testPerm = "extragatherbonuses.test"

// scriptedSource replays draws in order and records every n it was asked for.
// Once exhausted it returns 0.
type scriptedSource struct {
	draws []int
	calls []int
}

func (s *scriptedSource) IntN(n int) int {
	s.calls = append(s.calls, n)
	if len(s.draws) == 0 {
		return 0
	}
	v := s.draws[0]
	s.draws = s.draws[1:]
	return v % n
}

// MockItemFactory implements host.ItemFactory for testing
type MockItemFactory struct {
	mock.Mock
}

func (m *MockItemFactory) CreateByName(shortname string, amount int, skin uint64) (host.Item, error) {
	args := m.Called(shortname, amount, skin)
	item, _ := args.Get(0).(host.Item)
	return item, args.Error(1)
}

// failingPlayer refuses every item
type failingPlayer struct {
	*host.MemoryPlayer
	err error
}

func (p *failingPlayer) GiveItem(host.Item) error { return p.err }

type fixture struct {
	host     *host.Memory
	player   *host.MemoryPlayer
	registry *Registry
	rng      *scriptedSource
	resolver *Resolver
}

// newFixture builds a resolver over cfg with a permitted player and a catalog
// that knows paper and wood
func newFixture(t *testing.T, cfg *Config, draws ...int) *fixture {
	t.Helper()
	mem := host.NewMemory("paper", "wood")
	require.NoError(t, mem.Register(testPerm))
	player := mem.AddPlayer("76561198000000001", "Gatherer", "en")
	mem.Grant(player.UserID(), testPerm)

	snap, err := BuildSnapshot(cfg, "test")
	require.NoError(t, err)
	registry := NewRegistry(snap)
	rng := &scriptedSource{draws: draws}
	checker := permission.NewChecker(mem, 0, 0)

	return &fixture{
		host:     mem,
		player:   player,
		registry: registry,
		rng:      rng,
		resolver: NewResolver(registry, checker, mem, lang.NewLocalizer(language.English), rng),
	}
}

func singleRule(resource string, maxItems int, entries ...Entry) *Config {
	return &Config{
		ChatMessages: true,
		Rules: []Rule{{
			Resource:   resource,
			Permission: testPerm,
			MaxItems:   maxItems,
			Entries:    entries,
		}},
	}
}

func sureEntry(shortname string) Entry {
	return Entry{Shortname: shortname, AmountMin: 1, AmountMax: 1, Chance: 100}
}

// captureLogs routes the default logger into a buffer for the test's duration
func captureLogs(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	cfg := logger.DefaultConfig()
	cfg.Level = level
	cfg.Format = logger.LogFormatJSON
	logger.InitLoggerWithWriter(cfg, &buf)
	return &buf
}
