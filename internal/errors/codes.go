package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK               Code = "OK"
	CodeCanceled         Code = "CANCELED"
	CodeInvalidArgument  Code = "INVALID_ARGUMENT"
	CodeDeadlineExceeded Code = "DEADLINE_EXCEEDED"
	CodeNotFound         Code = "NOT_FOUND"
	CodeInternal         Code = "INTERNAL"
	CodeUnavailable      Code = "UNAVAILABLE"

	// Generation pipeline codes
	CodeMalformedResponse Code = "MALFORMED_RESPONSE"
	CodeSchemaViolation   Code = "SCHEMA_VIOLATION"
	CodeGenerationFailed  Code = "GENERATION_FAILED"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// ExitCode returns the process exit status the CLI uses for the code
func (c Code) ExitCode() int {
	switch c {
	case CodeOK:
		return 0
	case CodeInvalidArgument:
		return 2
	case CodeUnavailable, CodeDeadlineExceeded:
		return 3
	case CodeNotFound:
		return 4
	default:
		return 1
	}
}
