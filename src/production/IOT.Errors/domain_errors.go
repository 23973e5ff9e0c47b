package apperrors

var (
	// Gateway-facing errors.
	ErrUnauthenticated = New(CodeUnauthenticated, "authentication required")
	// Same message for a bad login and a bad device key: callers must not be
	// able to enumerate emails or device ids.
	ErrInvalidCredentials       = New(CodeInvalidCredentials, "invalid credentials")
	ErrInvalidDeviceCredentials = New(CodeInvalidCredentials, "invalid device ID or key")
	ErrAlreadyClaimed           = New(CodeAlreadyClaimed, "device already claimed")
	ErrEmailExists              = New(CodeEmailExists, "email already exists")

	// Ingestion reject reasons. Local to the listener, logged and dropped.
	ErrMalformedPayload = New(CodeMalformedPayload, "payload is not a valid JSON object")
	ErrMissingFields    = New(CodeMissingFields, "payload is missing required fields")
	ErrLengthMismatch   = New(CodeLengthMismatch, "reading fields have mismatched lengths")

	ErrStoreUnavailable = New(CodeStoreUnavailable, "store unavailable")
)
