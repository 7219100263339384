package bonus

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/GatherBonus_Go/internal/domain"
	"github.com/osse101/GatherBonus_Go/internal/logger"
	"github.com/osse101/GatherBonus_Go/internal/validation"
)

// Loader reads, repairs and persists the bonus config document
type Loader interface {
	// Load never fails on bad content: a missing or corrupt file yields the
	// defaults. The returned error only reports a failed rewrite.
	Load(path string) (*Config, LoadReport, error)
	// Parse checks and normalizes a document without touching the filesystem
	Parse(data []byte) (*Config, []string, error)
	Save(path string, cfg *Config) (bool, error)
	Validate(cfg *Config) error
}

// LoadReport describes what Load had to do to produce a usable config
type LoadReport struct {
	Path         string
	Hash         string // sha256 of the canonical document
	UsedDefaults bool
	Missing      bool
	Corrupt      error
	Warnings     []string
	Rewritten    bool
}

type fileLoader struct {
	schemaValidator validation.SchemaValidator
	validate        *validator.Validate
}

// NewLoader creates a Loader with the embedded document schema registered
func NewLoader() Loader {
	sv := validation.NewSchemaValidator()
	if err := sv.RegisterSchema(SchemaName, configSchema); err != nil {
		panic(fmt.Sprintf("embedded bonus schema: %v", err))
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &fileLoader{schemaValidator: sv, validate: v}
}

func (l *fileLoader) Load(path string) (*Config, LoadReport, error) {
	report := LoadReport{Path: path}

	data, cfg, err := l.read(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn(LogMsgConfigMissing, LogFieldPath, path)
		report.Missing = true
		report.UsedDefaults = true
		cfg = DefaultConfig()
	case err != nil:
		logger.Error(LogMsgConfigCorrupt, LogFieldPath, path, LogFieldError, err)
		report.Corrupt = err
		report.UsedDefaults = true
		preserveCorrupt(path, data)
		cfg = DefaultConfig()
	default:
		report.Warnings = Normalize(cfg)
		for _, w := range report.Warnings {
			logger.Warn(LogMsgConfigClamped, LogFieldPath, path, LogFieldWarning, w)
		}
	}

	canonical, err := encode(cfg)
	if err != nil {
		return cfg, report, err
	}
	report.Hash = hashBytes(canonical)

	if data != nil && hashBytes(data) == report.Hash {
		return cfg, report, nil
	}
	if err := writeAtomic(path, canonical); err != nil {
		return cfg, report, fmt.Errorf("%s %s: %w", ErrContextWriteConfig, path, err)
	}
	report.Rewritten = true
	logger.Info(LogMsgConfigRewritten, LogFieldPath, path)
	return cfg, report, nil
}

// read returns the raw bytes (nil when unreadable) and the parsed, validated config
func (l *fileLoader) read(path string) ([]byte, *Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%s: %w", ErrContextReadConfig, err)
	}

	cfg, err := l.decode(data)
	return data, cfg, err
}

func (l *fileLoader) decode(data []byte) (*Config, error) {
	if err := l.schemaValidator.ValidateBytes(data, SchemaName); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextSchemaConfig, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextParseConfig, err)
	}

	if err := l.Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (l *fileLoader) Parse(data []byte) (*Config, []string, error) {
	cfg, err := l.decode(data)
	if err != nil {
		return nil, nil, err
	}
	return cfg, Normalize(cfg), nil
}

// Save writes cfg as indented JSON when it differs from what is on disk.
// It reports whether the file was written.
func (l *fileLoader) Save(path string, cfg *Config) (bool, error) {
	if err := l.Validate(cfg); err != nil {
		return false, err
	}
	canonical, err := encode(cfg)
	if err != nil {
		return false, err
	}
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, canonical) {
		return false, nil
	}
	if err := writeAtomic(path, canonical); err != nil {
		return false, fmt.Errorf("%s %s: %w", ErrContextWriteConfig, path, err)
	}
	return true, nil
}

// Validate checks struct constraints and resource uniqueness
func (l *fileLoader) Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", domain.ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(cfg.Rules))
	for _, r := range cfg.Rules {
		if seen[r.Resource] {
			return fmt.Errorf("%w: '%s'", domain.ErrDuplicateResource, r.Resource)
		}
		seen[r.Resource] = true
	}

	if err := l.validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
		}
		fields := make([]string, 0, len(verrs))
		for _, e := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", e.Namespace(), e.Tag()))
		}
		return fmt.Errorf("%w: %s", domain.ErrInvalidConfig, strings.Join(fields, "; "))
	}
	return nil
}

// Normalize clamps out-of-range values in place and describes each change
func Normalize(cfg *Config) []string {
	var warnings []string
	for i := range cfg.Rules {
		rule := &cfg.Rules[i]
		for j := range rule.Entries {
			e := &rule.Entries[j]
			where := fmt.Sprintf("%s[%d] %s", rule.Resource, j, e.Shortname)

			if e.Chance < domain.ChanceMin || e.Chance > domain.ChanceMax {
				clamped := min(max(e.Chance, domain.ChanceMin), domain.ChanceMax)
				warnings = append(warnings, fmt.Sprintf("%s: chance %d clamped to %d", where, e.Chance, clamped))
				e.Chance = clamped
			}
			if e.AmountMin < DefaultAmountMin {
				warnings = append(warnings, fmt.Sprintf("%s: amount min %d raised to %d", where, e.AmountMin, DefaultAmountMin))
				e.AmountMin = DefaultAmountMin
			}
			if e.AmountMax < e.AmountMin {
				warnings = append(warnings, fmt.Sprintf("%s: amount max %d raised to amount min %d", where, e.AmountMax, e.AmountMin))
				e.AmountMax = e.AmountMin
			}
		}
	}
	return warnings
}

// Hash returns the sha256 hex digest of data
func Hash(data []byte) string {
	return hashBytes(data)
}

func hashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func encode(cfg *Config) ([]byte, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode bonus config: %w", err)
	}
	return append(data, '\n'), nil
}

func preserveCorrupt(path string, data []byte) {
	if data == nil {
		return
	}
	backup := path + CorruptSuffix
	if err := os.WriteFile(backup, data, ConfigFilePermissions); err != nil {
		logger.Warn(LogMsgCorruptKeepFailed, LogFieldBackup, backup, LogFieldError, err)
		return
	}
	logger.Info(LogMsgCorruptKept, LogFieldBackup, backup)
}

// writeAtomic replaces path with data via a temp file in the same directory
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, ConfigFilePermissions); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
