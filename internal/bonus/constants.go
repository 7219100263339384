package bonus

import "os"

// ============================================================================
// Configuration
// ============================================================================

// SchemaName is the name the embedded config schema is registered under
const SchemaName = "gather_bonuses.schema.json"

// CorruptSuffix is appended to a corrupt config file's name when it is preserved
const CorruptSuffix = ".corrupt"

// ConfigFilePermissions is the mode used when (re)writing the config file
const ConfigFilePermissions os.FileMode = 0o644

// Default entry amounts when a document omits them
const (
	DefaultAmountMin = 1
	DefaultAmountMax = 1
)

// RollSides is the size of the uniform chance draw domain [0, RollSides)
const RollSides = 100

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrContextReadConfig   = "failed to read bonus config"
	ErrContextParseConfig  = "failed to parse bonus config"
	ErrContextSchemaConfig = "bonus config does not match schema"
	ErrContextWriteConfig  = "failed to write bonus config"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgConfigCorrupt     = "Configuration file is corrupt! Loading defaults..."
	LogMsgConfigMissing     = "Configuration file not found, writing defaults"
	LogMsgConfigClamped     = "Bonus config value adjusted"
	LogMsgConfigRewritten   = "Bonus config file rewritten"
	LogMsgCorruptKept       = "Corrupt config preserved"
	LogMsgCorruptKeepFailed = "Failed to preserve corrupt config"
	LogMsgCreateFailed      = "Can't create item"
	LogMsgGiveFailed        = "Can't give item"
	LogMsgBonusGranted      = "Bonus item granted"
)

// Log field keys for structured logging
const (
	LogFieldPath     = "path"
	LogFieldError    = "error"
	LogFieldItem     = "item"
	LogFieldAmount   = "amount"
	LogFieldResource = "resource"
	LogFieldPlayer   = "player"
	LogFieldWarning  = "warning"
	LogFieldBackup   = "backup"
)
