package bonus

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GatherBonus_Go/internal/domain"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "GatherBonus.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validDoc = `{
  "Chat message when item received": false,
  "Bonus list": [
    {
      "Item gathered to get bonus": "wood",
      "Permission": "extragatherbonuses.vip",
      "Maximal items that player can get by once": 2,
      "Bonus list": [
        {"Shortname": "paper", "Amount min": 2, "Amount max": 4, "Skin": 0, "Display name": null, "Chance": 30},
        {"Shortname": "scrap", "Chance": 5}
      ]
    }
  ]
}`

func TestLoad_ValidDocument(t *testing.T) {
	path := writeFile(t, validDoc)

	cfg, report, err := NewLoader().Load(path)

	require.NoError(t, err)
	assert.False(t, report.UsedDefaults)
	assert.Nil(t, report.Corrupt)
	assert.Empty(t, report.Warnings)
	assert.False(t, cfg.ChatMessages)
	require.Len(t, cfg.Rules, 1)

	rule := cfg.Rules[0]
	assert.Equal(t, "wood", rule.Resource)
	assert.Equal(t, "extragatherbonuses.vip", rule.Permission)
	assert.Equal(t, 2, rule.MaxItems)
	require.Len(t, rule.Entries, 2)
	assert.Equal(t, Entry{Shortname: "paper", AmountMin: 2, AmountMax: 4, Chance: 30}, rule.Entries[0])
	assert.Equal(t, 1, rule.Entries[1].AmountMin, "omitted amount min defaults to 1")
	assert.Equal(t, 1, rule.Entries[1].AmountMax, "omitted amount max defaults to 1")
}

func TestLoad_CanonicalRewriteOnlyWhenDifferent(t *testing.T) {
	path := writeFile(t, validDoc)
	loader := NewLoader()

	_, first, err := loader.Load(path)
	require.NoError(t, err)
	assert.True(t, first.Rewritten, "non-canonical file is rewritten")

	_, second, err := loader.Load(path)
	require.NoError(t, err)
	assert.False(t, second.Rewritten, "canonical file is left alone")
	assert.Equal(t, first.Hash, second.Hash)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Hash(data), second.Hash)
}

func TestLoad_MissingFileWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "GatherBonus.json")

	cfg, report, err := NewLoader().Load(path)

	require.NoError(t, err)
	assert.True(t, report.Missing)
	assert.True(t, report.UsedDefaults)
	assert.True(t, report.Rewritten)
	assert.Equal(t, DefaultConfig(), cfg)

	var onDisk Config
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, *DefaultConfig(), onDisk)
}

func TestLoad_CorruptFallsBackToDefaults(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax error", `{"Bonus list": [`},
		{"null document", `null`},
		{"wrong type", `{"Bonus list": [{"Item gathered to get bonus": "wood", "Bonus list": [{"Shortname": "paper", "Chance": "high"}]}]}`},
		{"missing list", `{"Chat message when item received": true}`},
		{"empty shortname", `{"Bonus list": [{"Item gathered to get bonus": "wood", "Permission": "p", "Bonus list": [{"Shortname": "", "Chance": 5}]}]}`},
		{"missing permission", `{"Bonus list": [{"Item gathered to get bonus": "wood", "Bonus list": []}]}`},
		{"negative max items", `{"Bonus list": [{"Item gathered to get bonus": "wood", "Permission": "p", "Maximal items that player can get by once": -1, "Bonus list": []}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLogs(t, "info")
			path := writeFile(t, tt.content)

			cfg, report, err := NewLoader().Load(path)

			require.NoError(t, err)
			assert.Error(t, report.Corrupt)
			assert.True(t, report.UsedDefaults)
			assert.True(t, report.Rewritten)
			assert.Equal(t, DefaultConfig(), cfg)
			assert.Contains(t, logs.String(), LogMsgConfigCorrupt)

			backup, err := os.ReadFile(path + CorruptSuffix)
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(backup))

			_, again, err := NewLoader().Load(path)
			require.NoError(t, err)
			assert.False(t, again.UsedDefaults, "rewritten defaults load cleanly")
		})
	}
}

func TestLoad_DuplicateResourceIsCorrupt(t *testing.T) {
	path := writeFile(t, `{"Bonus list": [
		{"Item gathered to get bonus": "wood", "Permission": "p", "Bonus list": []},
		{"Item gathered to get bonus": "wood", "Permission": "q", "Bonus list": []}
	]}`)

	cfg, report, err := NewLoader().Load(path)

	require.NoError(t, err)
	assert.ErrorIs(t, report.Corrupt, domain.ErrDuplicateResource)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_NormalizesOutOfRangeValues(t *testing.T) {
	path := writeFile(t, `{"Bonus list": [{"Item gathered to get bonus": "wood", "Permission": "p", "Bonus list": [
		{"Shortname": "paper", "Amount min": 5, "Amount max": 2, "Chance": 150},
		{"Shortname": "scrap", "Amount min": 0, "Amount max": 0, "Chance": -3}
	]}]}`)

	cfg, report, err := NewLoader().Load(path)

	require.NoError(t, err)
	assert.False(t, report.UsedDefaults)
	assert.Len(t, report.Warnings, 5)

	entries := cfg.Rules[0].Entries
	assert.Equal(t, 100, entries[0].Chance)
	assert.Equal(t, 5, entries[0].AmountMin)
	assert.Equal(t, 5, entries[0].AmountMax)
	assert.Equal(t, 0, entries[1].Chance)
	assert.Equal(t, 1, entries[1].AmountMin)
	assert.Equal(t, 1, entries[1].AmountMax)
}

func TestNormalize_ValidConfigUntouched(t *testing.T) {
	cfg := DefaultConfig()
	assert.Empty(t, Normalize(cfg))
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "GatherBonus.json")
	loader := NewLoader()

	written, err := loader.Save(path, DefaultConfig())
	require.NoError(t, err)
	assert.True(t, written)

	written, err = loader.Save(path, DefaultConfig())
	require.NoError(t, err)
	assert.False(t, written, "identical content is not rewritten")

	cfg := DefaultConfig()
	cfg.ChatMessages = false
	written, err = loader.Save(path, cfg)
	require.NoError(t, err)
	assert.True(t, written)

	loaded, report, err := loader.Load(path)
	require.NoError(t, err)
	assert.False(t, report.Rewritten)
	assert.False(t, loaded.ChatMessages)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestSave_RejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "GatherBonus.json")
	cfg := DefaultConfig()
	cfg.Rules[1].Resource = cfg.Rules[0].Resource

	_, err := NewLoader().Save(path, cfg)

	assert.ErrorIs(t, err, domain.ErrDuplicateResource)
	assert.NoFileExists(t, path)
}

func TestValidate(t *testing.T) {
	loader := NewLoader()

	assert.NoError(t, loader.Validate(DefaultConfig()))
	assert.ErrorIs(t, loader.Validate(nil), domain.ErrInvalidConfig)

	cfg := DefaultConfig()
	cfg.Rules[0].Entries[0].Shortname = ""
	err := loader.Validate(cfg)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "Shortname")
}

func TestParse(t *testing.T) {
	l := NewLoader()

	t.Run("valid document", func(t *testing.T) {
		cfg, warnings, err := l.Parse([]byte(validDoc))
		require.NoError(t, err)
		assert.Empty(t, warnings)
		require.Len(t, cfg.Rules, 1)
		assert.Equal(t, "wood", cfg.Rules[0].Resource)
	})

	t.Run("out of range values are clamped", func(t *testing.T) {
		doc := `{"Bonus list": [{"Item gathered to get bonus": "wood", "Permission": "p", "Bonus list": [{"Shortname": "paper", "Chance": 150}]}]}`
		cfg, warnings, err := l.Parse([]byte(doc))
		require.NoError(t, err)
		assert.Len(t, warnings, 1)
		assert.Equal(t, domain.ChanceMax, cfg.Rules[0].Entries[0].Chance)
	})

	t.Run("bad document", func(t *testing.T) {
		_, _, err := l.Parse([]byte(`{"Bonus list": 5}`))
		assert.Error(t, err)
	})
}
