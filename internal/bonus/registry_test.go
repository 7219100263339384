package bonus

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GatherBonus_Go/internal/domain"
)

func TestBuildSnapshot(t *testing.T) {
	snap, err := BuildSnapshot(DefaultConfig(), "abc")
	require.NoError(t, err)

	assert.Equal(t, 2, snap.Len())
	assert.True(t, snap.ChatMessages())
	assert.Equal(t, "abc", snap.Hash())
	assert.False(t, snap.LoadedAt().IsZero())

	rule, ok := snap.Rule(domain.ItemCloth)
	require.True(t, ok)
	assert.Equal(t, domain.PermissionDefault, rule.Permission)
	require.Len(t, rule.Entries, 1)
	assert.Equal(t, "Sativa Hemp", rule.Entries[0].DisplayName)

	names := []string{}
	for _, r := range snap.Rules() {
		names = append(names, r.Resource)
	}
	assert.Equal(t, []string{domain.ItemCloth, domain.ItemWhiteBerry}, names)
}

func TestBuildSnapshot_Errors(t *testing.T) {
	_, err := BuildSnapshot(nil, "")
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	cfg := DefaultConfig()
	cfg.Rules = append(cfg.Rules, cfg.Rules[0])
	_, err = BuildSnapshot(cfg, "")
	assert.ErrorIs(t, err, domain.ErrDuplicateResource)
	assert.Contains(t, err.Error(), domain.ItemCloth)
}

func TestBuildSnapshot_IsolatedFromSource(t *testing.T) {
	cfg := DefaultConfig()
	snap, err := BuildSnapshot(cfg, "")
	require.NoError(t, err)

	cfg.Rules[0].Entries[0].Chance = 1
	cfg.Rules[0].Permission = "changed"

	rule, _ := snap.Rule(domain.ItemCloth)
	assert.Equal(t, 50, rule.Entries[0].Chance)
	assert.Equal(t, domain.PermissionDefault, rule.Permission)

	rules := snap.Rules()
	rules[0].Entries[0].Chance = 2
	rule, _ = snap.Rule(domain.ItemCloth)
	assert.Equal(t, 50, rule.Entries[0].Chance)
}

func TestRegistry_CurrentNeverNil(t *testing.T) {
	r := NewRegistry(nil)
	require.NotNil(t, r.Current())
	assert.Zero(t, r.Current().Len())

	_, ok := r.Current().Rule(domain.ItemCloth)
	assert.False(t, ok)
}

func TestRegistry_Swap(t *testing.T) {
	first, err := BuildSnapshot(DefaultConfig(), "first")
	require.NoError(t, err)
	second, err := BuildSnapshot(singleRule("wood", 0, sureEntry("paper")), "second")
	require.NoError(t, err)

	r := NewRegistry(first)
	prev := r.Swap(second)

	assert.Same(t, first, prev)
	assert.Same(t, second, r.Current())
	_, ok := r.Current().Rule(domain.ItemCloth)
	assert.False(t, ok)
}

// Readers racing a writer must always observe one complete table
func TestRegistry_ConcurrentSwap(t *testing.T) {
	a, err := BuildSnapshot(singleRule("a", 0, sureEntry("paper")), "a")
	require.NoError(t, err)
	b, err := BuildSnapshot(&Config{Rules: []Rule{
		{Resource: "b1", Permission: testPerm},
		{Resource: "b2", Permission: testPerm},
	}}, "b")
	require.NoError(t, err)

	r := NewRegistry(a)
	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if i%2 == 0 {
				r.Swap(b)
			} else {
				r.Swap(a)
			}
		}
		close(stop)
	}()

	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				snap := r.Current()
				switch snap.Hash() {
				case "a":
					_, ok := snap.Rule("a")
					assert.True(t, ok)
					assert.Equal(t, 1, snap.Len())
				case "b":
					_, ok1 := snap.Rule("b1")
					_, ok2 := snap.Rule("b2")
					assert.True(t, ok1 && ok2)
				default:
					t.Errorf("unexpected snapshot %q", snap.Hash())
				}
			}
		}()
	}
	wg.Wait()
}
