package domain

// Hook identifies which host callback reported a gather
type Hook string

// Host gather hooks. Every hook is normalized to a (player, resource) pair.
const (
	HookCollectiblePickup Hook = "collectible_pickup"
	HookCropGather        Hook = "crop_gather"
	HookGrowableGathered  Hook = "growable_gathered"
	HookDispenserBonus    Hook = "dispenser_bonus"
)

// AllHooks lists the hooks in registration order
var AllHooks = []Hook{
	HookCollectiblePickup,
	HookCropGather,
	HookGrowableGathered,
	HookDispenserBonus,
}

// Grant is one bonus item handed to a player during a resolve
type Grant struct {
	Entry       int    `json:"entry"` // index of the entry in its rule
	Shortname   string `json:"shortname"`
	Amount      int    `json:"amount"`
	Skin        uint64 `json:"skin,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// GatherResult summarizes one resolve call
type GatherResult struct {
	Resource string  `json:"resource"`
	Matched  bool    `json:"matched"` // a rule exists for the resource
	Allowed  bool    `json:"allowed"` // the player passed the permission gate
	Rolls    int     `json:"rolls"`   // entries that were rolled
	Grants   []Grant `json:"grants"`
}

// Granted returns the number of successful grants
func (r GatherResult) Granted() int {
	return len(r.Grants)
}
