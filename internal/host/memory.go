package host

import (
	"fmt"
	"sort"
	"sync"

	"github.com/osse101/GatherBonus_Go/internal/domain"
)

// MemoryItem is the in-memory Item implementation
type MemoryItem struct {
	shortname string
	amount    int
	skin      uint64
	name      string
}

// NewMemoryItem creates an item stack without a custom name
func NewMemoryItem(shortname string, amount int, skin uint64) *MemoryItem {
	return &MemoryItem{shortname: shortname, amount: amount, skin: skin}
}

func (i *MemoryItem) Shortname() string   { return i.shortname }
func (i *MemoryItem) Amount() int         { return i.amount }
func (i *MemoryItem) Skin() uint64        { return i.skin }
func (i *MemoryItem) Name() string        { return i.name }
func (i *MemoryItem) SetName(name string) { i.name = name }

// MemoryPlayer is a player with an inventory and a chat log
type MemoryPlayer struct {
	mu        sync.Mutex
	id        string
	name      string
	lang      string
	inventory []Item
	chat      []string
	host      *Memory
}

func (p *MemoryPlayer) UserID() string      { return p.id }
func (p *MemoryPlayer) DisplayName() string { return p.name }
func (p *MemoryPlayer) Language() string    { return p.lang }

// GiveItem appends item to the inventory
func (p *MemoryPlayer) GiveItem(item Item) error {
	if item == nil {
		return fmt.Errorf("%w: nil item", domain.ErrGiveFailed)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inventory = append(p.inventory, item)
	return nil
}

// ChatMessage records message in the chat log and forwards it to the host's chat sink
func (p *MemoryPlayer) ChatMessage(message string) {
	p.mu.Lock()
	p.chat = append(p.chat, message)
	p.mu.Unlock()

	if p.host == nil {
		return
	}
	if sink := p.host.chatSink(); sink != nil {
		sink(p.id, message)
	}
}

// Inventory returns a copy of the delivered items
func (p *MemoryPlayer) Inventory() []Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Item(nil), p.inventory...)
}

// Chat returns a copy of the received chat messages
func (p *MemoryPlayer) Chat() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.chat...)
}

// ItemCount sums the amounts of all stacks of shortname
func (p *MemoryPlayer) ItemCount(shortname string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	total := 0
	for _, it := range p.inventory {
		if it.Shortname() == shortname {
			total += it.Amount()
		}
	}
	return total
}

// Memory is an in-process host: item catalog, permission table and players.
// It backs the standalone harness, the simulator and tests.
type Memory struct {
	mu          sync.RWMutex
	catalog     map[string]bool
	permissions map[string]bool
	grants      map[string]map[string]bool // userID -> perm
	players     map[string]*MemoryPlayer
	sink        func(userID, message string)
	permWatch   []func(userID, perm string)
}

// NewMemory creates a host whose catalog knows the given shortnames
func NewMemory(catalog ...string) *Memory {
	m := &Memory{
		catalog:     make(map[string]bool),
		permissions: make(map[string]bool),
		grants:      make(map[string]map[string]bool),
		players:     make(map[string]*MemoryPlayer),
	}
	m.AddCatalogItems(catalog...)
	return m
}

// AddCatalogItems makes shortnames creatable
func (m *Memory) AddCatalogItems(shortnames ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range shortnames {
		if s != "" {
			m.catalog[s] = true
		}
	}
}

// Catalog returns the known shortnames, sorted
func (m *Memory) Catalog() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.catalog))
	for s := range m.catalog {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// CreateByName implements ItemFactory
func (m *Memory) CreateByName(shortname string, amount int, skin uint64) (Item, error) {
	m.mu.RLock()
	known := m.catalog[shortname]
	m.mu.RUnlock()

	if !known {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownItem, shortname)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("invalid amount %d for %s", amount, shortname)
	}
	return NewMemoryItem(shortname, amount, skin), nil
}

// Exists implements Permissions
func (m *Memory) Exists(perm string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.permissions[perm]
}

// Register implements Permissions
func (m *Memory) Register(perm string) error {
	m.mu.Lock()
	if m.permissions[perm] {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", domain.ErrPermissionExists, perm)
	}
	m.permissions[perm] = true
	m.mu.Unlock()

	m.notifyPermission("", perm)
	return nil
}

// UserHas implements Permissions
func (m *Memory) UserHas(userID, perm string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.permissions[perm] && m.grants[userID][perm]
}

// Grant gives userID the permission perm
func (m *Memory) Grant(userID, perm string) {
	m.mu.Lock()
	if m.grants[userID] == nil {
		m.grants[userID] = make(map[string]bool)
	}
	m.grants[userID][perm] = true
	m.mu.Unlock()

	m.notifyPermission(userID, perm)
}

// Revoke removes perm from userID
func (m *Memory) Revoke(userID, perm string) {
	m.mu.Lock()
	delete(m.grants[userID], perm)
	m.mu.Unlock()

	m.notifyPermission(userID, perm)
}

// OnPermissionChange implements PermissionNotifier. fn runs after every
// Register, Grant and Revoke, outside the host lock.
func (m *Memory) OnPermissionChange(fn func(userID, perm string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.permWatch = append(m.permWatch, fn)
}

func (m *Memory) notifyPermission(userID, perm string) {
	m.mu.RLock()
	watchers := append([]func(string, string){}, m.permWatch...)
	m.mu.RUnlock()
	for _, fn := range watchers {
		fn(userID, perm)
	}
}

// AddPlayer registers a player, replacing any previous one with the same id
func (m *Memory) AddPlayer(userID, name, lang string) *MemoryPlayer {
	p := &MemoryPlayer{id: userID, name: name, lang: lang, host: m}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[userID] = p
	return p
}

// Player implements Directory
func (m *Memory) Player(userID string) (Player, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.players[userID]
	if !ok {
		return nil, false
	}
	return p, true
}

// SetChatSink mirrors every chat message sent to a player into fn
func (m *Memory) SetChatSink(fn func(userID, message string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sink = fn
}

func (m *Memory) chatSink() func(userID, message string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sink
}
