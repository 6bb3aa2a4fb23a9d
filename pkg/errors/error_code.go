package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeEmptyInput            ErrorCode = 100
	ErrCodeIndexOutOfRange       ErrorCode = 101
	ErrCodeDivisionByZero        ErrorCode = 102
	ErrCodeInvalidBucketFunction ErrorCode = 103
	ErrCodeEmptyBucket           ErrorCode = 104
	ErrCodeInvalidParameter      ErrorCode = 105
	ErrCodeInvalidConfiguration  ErrorCode = 106
	ErrCodeUnsortedSeries        ErrorCode = 107
	ErrCodeDuplicateTimestamp    ErrorCode = 108

	// Data source errors (200-299)
	ErrCodeSourceUnavailable ErrorCode = 200
	ErrCodeFetchFailed       ErrorCode = 201
	ErrCodeQueryFailed       ErrorCode = 202
	ErrCodeNoDataFound       ErrorCode = 203
	ErrCodeParseFailed       ErrorCode = 204
	ErrCodeInvalidSource     ErrorCode = 205

	// Chart dataset errors (300-399)
	ErrCodeUnknownChartKind ErrorCode = 300
	ErrCodeChartBuildFailed ErrorCode = 301

	// Export errors (400-499)
	ErrCodeExportFailed ErrorCode = 400
)
