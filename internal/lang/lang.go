// Package lang holds the player-facing message templates and picks the best
// language for each player.
package lang

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/osse101/GatherBonus_Go/internal/domain"
)

// DefaultMessages are the English templates registered at startup.
// Placeholders are positional: {0}, {1}, ...
func DefaultMessages() map[string]string {
	return map[string]string{
		domain.MessageKeyReceived: "You received {0} for gathering!",
	}
}

// Localizer resolves message templates per player language
type Localizer struct {
	mu       sync.RWMutex
	tags     []language.Tag // tags[0] is the fallback
	messages map[language.Tag]map[string]string
	matcher  language.Matcher
}

// NewLocalizer creates a localizer whose fallback language is fallback,
// seeded with DefaultMessages.
func NewLocalizer(fallback language.Tag) *Localizer {
	l := &Localizer{
		messages: make(map[language.Tag]map[string]string),
	}
	l.RegisterMessages(fallback, DefaultMessages())
	return l
}

// RegisterMessages merges msgs into the templates for tag
func (l *Localizer) RegisterMessages(tag language.Tag, msgs map[string]string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	set, ok := l.messages[tag]
	if !ok {
		set = make(map[string]string, len(msgs))
		l.messages[tag] = set
		l.tags = append(l.tags, tag)
		l.matcher = language.NewMatcher(l.tags)
	}
	for k, v := range msgs {
		set[k] = v
	}
}

// Message renders key for a player whose language is playerLang.
// Keys missing in the matched language fall back to the default language,
// then to the key itself.
func (l *Localizer) Message(key, playerLang string, args ...any) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	template, ok := l.lookup(key, playerLang)
	if !ok {
		return key
	}
	return Format(template, args...)
}

func (l *Localizer) lookup(key, playerLang string) (string, bool) {
	if len(l.tags) == 0 {
		return "", false
	}
	if playerLang != "" {
		if tag, err := language.Parse(playerLang); err == nil {
			_, idx, conf := l.matcher.Match(tag)
			if conf != language.No {
				if t, ok := l.messages[l.tags[idx]][key]; ok {
					return t, true
				}
			}
		}
	}
	t, ok := l.messages[l.tags[0]][key]
	return t, ok
}

// Format replaces {i} with the i-th argument. Unmatched placeholders are left as-is.
func Format(template string, args ...any) string {
	if len(args) == 0 || !strings.Contains(template, "{") {
		return template
	}
	pairs := make([]string, 0, len(args)*2)
	for i, a := range args {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", fmt.Sprint(a))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// LoadDir registers every <language>.json file in dir, e.g. de.json or pt-BR.json.
// Each file is a flat object of message key to template. A missing dir is not an error.
// Returns the tags that were loaded.
func (l *Localizer) LoadDir(dir string) ([]language.Tag, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read language dir %s: %w", dir, err)
	}

	var loaded []language.Tag
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".json")
		tag, err := language.Parse(name)
		if err != nil {
			return loaded, fmt.Errorf("invalid language file name %q: %w", e.Name(), err)
		}

		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return loaded, fmt.Errorf("failed to read %s: %w", e.Name(), err)
		}
		var msgs map[string]string
		if err := json.Unmarshal(data, &msgs); err != nil {
			return loaded, fmt.Errorf("failed to parse %s: %w", e.Name(), err)
		}

		l.RegisterMessages(tag, msgs)
		loaded = append(loaded, tag)
	}
	return loaded, nil
}
