package apperrors

type Code string

const (
	CodeUnknown            Code = "UNKNOWN"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeUnauthenticated    Code = "UNAUTHENTICATED"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeAlreadyClaimed     Code = "ALREADY_CLAIMED"
	CodeEmailExists        Code = "EMAIL_EXISTS"
	CodeMalformedPayload   Code = "MALFORMED_PAYLOAD"
	CodeMissingFields      Code = "MISSING_FIELDS"
	CodeLengthMismatch     Code = "LENGTH_MISMATCH"
	CodeStoreUnavailable   Code = "STORE_UNAVAILABLE"
	CodeInternal           Code = "INTERNAL"
)
