package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized  = "Unauthorized"
	ErrMsgRuleNotFound  = "No bonus rule for that resource"
	ErrMsgReloadFailed  = "Config reload failed"
	ErrMsgNotReady      = "No bonus config loaded yet"
	ErrMsgEncodeFailure = "Failed to encode JSON response"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
)

// HTTP header names
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderAuthorization  = "Authorization"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderReferrerPolicy = "Referrer-Policy"
)

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueDeny                 = "DENY"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
)

// PublicPaths bypass authentication
var PublicPaths = []string{
	"/healthz",
	"/readyz",
	"/version",
	"/metrics",
}

// Header redaction marker
const RedactedValue = "[REDACTED]"

// Server limits
const (
	MaxRequestBytes   = 64 << 10
	ReadHeaderTimeout = 5 * time.Second
)
