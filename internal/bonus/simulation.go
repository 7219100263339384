package bonus

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/GatherBonus_Go/internal/host"
	"github.com/osse101/GatherBonus_Go/internal/permission"
)

const simPlayerID = "simulation"

// EntryStats is how one entry fared over a simulation
type EntryStats struct {
	Shortname   string      `json:"shortname"`
	DisplayName string      `json:"display_name,omitempty"`
	Chance      int         `json:"chance"`
	Rolled      int         `json:"rolled"` // runs that reached this entry
	Hits        int         `json:"hits"`
	Amounts     map[int]int `json:"amounts"` // granted amount -> occurrences
}

// HitRate is hits per roll, 0 when the entry was never reached
func (s EntryStats) HitRate() float64 {
	if s.Rolled == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Rolled)
}

// SimulationReport aggregates repeated resolves of one rule
type SimulationReport struct {
	Resource     string       `json:"resource"`
	Runs         int          `json:"runs"`
	Entries      []EntryStats `json:"entries"`
	GrantsPerRun map[int]int  `json:"grants_per_run"` // grants in one run -> occurrences
}

// simPlayer holds the rule permission and discards what it is given
type simPlayer struct{}

func (simPlayer) UserID() string             { return simPlayerID }
func (simPlayer) DisplayName() string        { return simPlayerID }
func (simPlayer) Language() string           { return "" }
func (simPlayer) GiveItem(host.Item) error   { return nil }
func (simPlayer) ChatMessage(message string) {}

// Simulate resolves rule runs times through a real Resolver for a player who
// holds the rule permission, on a host that can create every entry item.
// Simulated rolls and grants are not recorded in the process metrics.
func Simulate(ctx context.Context, rule Rule, runs int, rng RandomSource) (SimulationReport, error) {
	if runs <= 0 {
		return SimulationReport{}, fmt.Errorf("runs must be positive, got %d", runs)
	}

	snap, err := BuildSnapshot(&Config{Rules: []Rule{rule}}, "")
	if err != nil {
		return SimulationReport{}, err
	}
	// Stored directly so the process-wide rules gauge is left alone
	registry := &Registry{}
	registry.current.Store(snap)

	mem := host.NewMemory()
	for _, e := range rule.Entries {
		mem.AddCatalogItems(e.Shortname)
	}
	mem.Grant(simPlayerID, rule.Permission)
	perms := permission.NewChecker(mem, 1, time.Hour)
	if err := perms.RegisterAll([]string{rule.Permission}); err != nil {
		return SimulationReport{}, err
	}

	resolver := NewResolver(registry, perms, mem, nil, rng)
	resolver.offline = true

	report := SimulationReport{
		Resource:     rule.Resource,
		Runs:         runs,
		Entries:      make([]EntryStats, len(rule.Entries)),
		GrantsPerRun: make(map[int]int),
	}
	for i, e := range rule.Entries {
		report.Entries[i] = EntryStats{
			Shortname:   e.Shortname,
			DisplayName: e.DisplayName,
			Chance:      e.Chance,
			Amounts:     make(map[int]int),
		}
	}

	player := simPlayer{}
	for range runs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		res, err := resolver.Resolve(ctx, player, rule.Resource)
		if err != nil {
			return report, err
		}
		// Entries are rolled in order, so the first Rolls entries were reached
		for i := 0; i < res.Rolls; i++ {
			report.Entries[i].Rolled++
		}
		for _, g := range res.Grants {
			report.Entries[g.Entry].Hits++
			report.Entries[g.Entry].Amounts[g.Amount]++
		}
		report.GrantsPerRun[res.Granted()]++
	}
	return report, nil
}
