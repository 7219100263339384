package permission

// Log messages
const (
	LogMsgRegistered = "Registered permission"
)

// Log field keys
const (
	LogFieldPermission = "permission"
)
