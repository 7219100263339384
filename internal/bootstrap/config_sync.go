package bootstrap

import (
	"log/slog"

	"github.com/osse101/GatherBonus_Go/internal/bonus"
	"github.com/osse101/GatherBonus_Go/internal/host"
)

// SyncCatalog makes every shortname referenced by the current rules creatable
// on the in-memory host, so a freshly edited config never fails on an unknown
// item. Returns how many shortnames the rules reference.
func SyncCatalog(mem *host.Memory, registry *bonus.Registry) int {
	var names []string
	for _, rule := range registry.Current().Rules() {
		for _, entry := range rule.Entries {
			names = append(names, entry.Shortname)
		}
	}
	mem.AddCatalogItems(names...)

	slog.Debug(LogMsgCatalogSynced, "shortnames", len(names), "catalog", len(mem.Catalog()))
	return len(names)
}
