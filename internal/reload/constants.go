package reload

import "time"

// DefaultDebounce is how long the watcher waits for writes to settle
const DefaultDebounce = 250 * time.Millisecond

// Log messages
const (
	LogMsgReloaded          = "Bonus config loaded"
	LogMsgReloadUnchanged   = "Bonus config unchanged"
	LogMsgReloadFailed      = "Bonus config reload failed"
	LogMsgSaveFailed        = "Bonus config could not be written back"
	LogMsgPermissionsFailed = "Failed to register bonus permissions"
	LogMsgPublishFailed     = "Failed to publish config reloaded event"
	LogMsgWatching          = "Watching bonus config for changes"
	LogMsgWatchError        = "Config watcher error"
)

// Log field keys
const (
	LogFieldPath         = "path"
	LogFieldRules        = "rules"
	LogFieldHash         = "hash"
	LogFieldUsedDefaults = "used_defaults"
	LogFieldError        = "error"
	LogFieldEvent        = "event"
)
