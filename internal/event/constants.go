package event

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// Dead letter file configuration
const (
	// DeadLetterFilePermissions is the file permission mode for dead-letter files
	DeadLetterFilePermissions = 0644

	// DeadLetterSchemaVersion is the current version of the dead-letter line format
	DeadLetterSchemaVersion = "1.0"
)

// Log message constants
const (
	LogMsgEventDeadLettered = "event_dead_lettered"

	// Log message for handler errors
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)
