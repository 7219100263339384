// Package host describes the game-engine services the bonus resolver calls
// into. The engine owns players, items and permissions; this module only
// talks to them through these interfaces.
package host

// Item is a created item handle that has not necessarily been delivered yet
type Item interface {
	Shortname() string
	Amount() int
	Skin() uint64
	Name() string
	SetName(name string)
}

// Player is the acting player of a gather event
type Player interface {
	UserID() string
	DisplayName() string
	Language() string
	GiveItem(item Item) error
	ChatMessage(message string)
}

// ItemFactory creates items by shortname. Unknown shortnames return domain.ErrUnknownItem.
type ItemFactory interface {
	CreateByName(shortname string, amount int, skin uint64) (Item, error)
}

// Permissions is the host permission system
type Permissions interface {
	Exists(perm string) bool
	Register(perm string) error
	UserHas(userID, perm string) bool
}

// PermissionNotifier is implemented by hosts that report permission changes.
// An empty userID means the change may affect every user.
type PermissionNotifier interface {
	OnPermissionChange(fn func(userID, perm string))
}

// Directory resolves player ids carried by serialized events
type Directory interface {
	Player(userID string) (Player, bool)
}
