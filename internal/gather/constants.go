package gather

// Log messages
const (
	LogMsgHookFailed = "Gather hook failed"
	LogMsgHookPanic  = "Gather hook recovered from panic"
	LogMsgResolved   = "Gather resolved"
)

// Log field keys
const (
	LogFieldHook     = "hook"
	LogFieldError    = "error"
	LogFieldPlayer   = "player"
	LogFieldResource = "resource"
	LogFieldGranted  = "granted"
)
