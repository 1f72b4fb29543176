package errors

// ErrorCode identifies an application error category
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS    ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1005
	ErrorCode_FORBIDDEN         ErrorCode = 1006
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1007

	// Auth
	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 2001
	ErrorCode_AUTH_INVALID_KEY   ErrorCode = 2002
	ErrorCode_AUTH_KEY_MISSING   ErrorCode = 2003

	// Meeting
	ErrorCode_MEETING_NOT_FOUND    ErrorCode = 3000
	ErrorCode_MEETING_ORG_MISMATCH ErrorCode = 3001
	ErrorCode_MEETING_COMPLETED    ErrorCode = 3002

	// Transcript ingestion
	ErrorCode_SEGMENT_INVALID ErrorCode = 4000

	// Task detection
	ErrorCode_NO_VALID_TASKS      ErrorCode = 5000
	ErrorCode_TASK_PERSIST_FAILED ErrorCode = 5001
	ErrorCode_TASK_FANOUT_FAILED  ErrorCode = 5002

	// Summary
	ErrorCode_SUMMARY_FAILED     ErrorCode = 6000
	ErrorCode_SUMMARY_EMPTY_TEXT ErrorCode = 6001

	// Integrations
	ErrorCode_DB_QUERY_FAILED   ErrorCode = 7000
	ErrorCode_CACHE_FAILED      ErrorCode = 7001
	ErrorCode_EXTERNAL_API_FAILED ErrorCode = 7002
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:               "HTTP_OK",
	ErrorCode_INTERNAL:              "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:      "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:             "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:        "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:     "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:       "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:             "FORBIDDEN",
	ErrorCode_INVALID_PAYLOAD:       "INVALID_PAYLOAD",
	ErrorCode_AUTH_INVALID_TOKEN:    "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:    "AUTH_TOKEN_EXPIRED",
	ErrorCode_AUTH_INVALID_KEY:      "AUTH_INVALID_KEY",
	ErrorCode_AUTH_KEY_MISSING:      "AUTH_KEY_MISSING",
	ErrorCode_MEETING_NOT_FOUND:     "MEETING_NOT_FOUND",
	ErrorCode_MEETING_ORG_MISMATCH:  "MEETING_ORG_MISMATCH",
	ErrorCode_MEETING_COMPLETED:     "MEETING_COMPLETED",
	ErrorCode_SEGMENT_INVALID:       "SEGMENT_INVALID",
	ErrorCode_NO_VALID_TASKS:        "NO_VALID_TASKS",
	ErrorCode_TASK_PERSIST_FAILED:   "TASK_PERSIST_FAILED",
	ErrorCode_TASK_FANOUT_FAILED:    "TASK_FANOUT_FAILED",
	ErrorCode_SUMMARY_FAILED:        "SUMMARY_FAILED",
	ErrorCode_SUMMARY_EMPTY_TEXT:    "SUMMARY_EMPTY_TEXT",
	ErrorCode_DB_QUERY_FAILED:       "DB_QUERY_FAILED",
	ErrorCode_CACHE_FAILED:          "CACHE_FAILED",
	ErrorCode_EXTERNAL_API_FAILED:   "EXTERNAL_API_FAILED",
}

// String returns the symbolic name of the error code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
