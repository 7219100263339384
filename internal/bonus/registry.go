package bonus

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/osse101/GatherBonus_Go/internal/domain"
	"github.com/osse101/GatherBonus_Go/internal/metrics"
)

// Snapshot is an immutable view of one loaded config
type Snapshot struct {
	rules        map[string]Rule
	order        []string
	chatMessages bool
	hash         string
	loadedAt     time.Time
}

// BuildSnapshot indexes cfg by resource. The config is copied so later
// mutation of cfg never leaks into the snapshot.
func BuildSnapshot(cfg *Config, hash string) (*Snapshot, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is nil", domain.ErrInvalidConfig)
	}
	s := &Snapshot{
		rules:        make(map[string]Rule, len(cfg.Rules)),
		order:        make([]string, 0, len(cfg.Rules)),
		chatMessages: cfg.ChatMessages,
		hash:         hash,
		loadedAt:     time.Now(),
	}
	for _, r := range cfg.Rules {
		if _, dup := s.rules[r.Resource]; dup {
			return nil, fmt.Errorf("%w: '%s'", domain.ErrDuplicateResource, r.Resource)
		}
		s.rules[r.Resource] = r.Clone()
		s.order = append(s.order, r.Resource)
	}
	return s, nil
}

// Rule returns the rule for resource. The returned entries must not be modified.
func (s *Snapshot) Rule(resource string) (Rule, bool) {
	r, ok := s.rules[resource]
	return r, ok
}

// Rules returns copies of every rule in declared order
func (s *Snapshot) Rules() []Rule {
	out := make([]Rule, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.rules[name].Clone())
	}
	return out
}

// Config rebuilds the document the snapshot was made from
func (s *Snapshot) Config() *Config {
	return &Config{ChatMessages: s.chatMessages, Rules: s.Rules()}
}

func (s *Snapshot) ChatMessages() bool  { return s.chatMessages }
func (s *Snapshot) Hash() string        { return s.hash }
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }
func (s *Snapshot) Len() int            { return len(s.order) }

var emptySnapshot = &Snapshot{rules: map[string]Rule{}}

// Registry holds the active snapshot. Readers take one snapshot per resolve
// and never see a half-applied reload.
type Registry struct {
	current atomic.Pointer[Snapshot]
}

// NewRegistry returns a registry serving initial, or an empty table when nil
func NewRegistry(initial *Snapshot) *Registry {
	r := &Registry{}
	r.Swap(initial)
	return r
}

// Current returns the active snapshot, never nil
func (r *Registry) Current() *Snapshot {
	if s := r.current.Load(); s != nil {
		return s
	}
	return emptySnapshot
}

// Swap installs next and returns the previous snapshot
func (r *Registry) Swap(next *Snapshot) *Snapshot {
	if next == nil {
		next = emptySnapshot
	}
	prev := r.current.Swap(next)
	metrics.ActiveRules.Set(float64(next.Len()))
	if prev == nil {
		return emptySnapshot
	}
	return prev
}
