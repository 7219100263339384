package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Item errors
	ErrMsgUnknownItem = "unknown item"
	ErrMsgMissingItem = "missing item metadata"

	// Player errors
	ErrMsgPlayerNotFound = "player not found"
	ErrMsgNilPlayer      = "player is nil"
	ErrMsgGiveFailed     = "failed to give item"

	// Configuration errors
	ErrMsgInvalidConfig     = "invalid configuration"
	ErrMsgDuplicateResource = "duplicate resource"

	// Permission errors
	ErrMsgPermissionExists = "permission already registered"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Item errors
	ErrUnknownItem = errors.New(ErrMsgUnknownItem)
	ErrMissingItem = errors.New(ErrMsgMissingItem)

	// Player errors
	ErrPlayerNotFound = errors.New(ErrMsgPlayerNotFound)
	ErrNilPlayer      = errors.New(ErrMsgNilPlayer)
	ErrGiveFailed     = errors.New(ErrMsgGiveFailed)

	// Configuration errors
	ErrInvalidConfig     = errors.New(ErrMsgInvalidConfig)
	ErrDuplicateResource = errors.New(ErrMsgDuplicateResource)

	// Permission errors
	ErrPermissionExists = errors.New(ErrMsgPermissionExists)
)
