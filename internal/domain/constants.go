package domain

// Permission constants
const (
	// PermissionDefault is the permission used by the built-in bonus rules
	PermissionDefault = "extragatherbonuses.default"
)

// Item shortnames used by the built-in bonus rules
const (
	ItemCloth      = "cloth"
	ItemWhiteBerry = "white.berry"
	ItemPaper      = "paper"
)

// Localization message keys
const (
	MessageKeyReceived = "Received"
)

// Chance bounds, in percent
const (
	ChanceMin = 0
	ChanceMax = 100
)
