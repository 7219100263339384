package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755
)

// =============================================================================
// Logger Configuration
// =============================================================================

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingGatherBonus = "Starting GatherBonus"
	LogMsgConfigurationLoaded = "Configuration loaded"
)

// =============================================================================
// Event System Configuration
// =============================================================================

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized    = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir = "failed to create dead-letter directory"
	LogMsgFailedOpenDeadLetter      = "failed to open dead-letter file"
)

// =============================================================================
// App Wiring
// =============================================================================

// Log messages for application wiring
const (
	LogMsgLanguagesLoaded   = "Language files loaded"
	LogMsgLanguagesFailed   = "Failed to load language files"
	LogMsgWatcherDisabled   = "Config watcher disabled"
	LogMsgAdminDisabled     = "Admin server disabled"
	LogMsgAdminServerFailed = "Admin server failed"
	LogMsgPlayerJoined      = "Player joined"
	LogMsgCatalogSynced     = "Host catalog synced with bonus rules"

	ErrMsgFailedInitialLoad   = "failed to load bonus config"
	ErrMsgFailedCreateWatcher = "failed to create config watcher"
	ErrMsgFailedRegisterPerm  = "failed to register permission"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer     = "Shutting down admin server..."
	LogMsgShuttingDownWatcher    = "Stopping config watcher..."
	LogMsgShuttingDownDeadLetter = "Closing dead-letter file..."
	LogMsgServerStopped          = "Shutdown complete"
	LogMsgServerForcedShutdown   = "Admin server forced to shutdown"
	LogMsgDeadLetterCloseFailed  = "Dead-letter file close failed"
)
