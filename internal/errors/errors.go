package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// FileReadFailed indicates a source file or directory could not be read
	FileReadFailed ErrorCode = "FILE_READ_FAILED"
	// ParseFailed indicates the parser did not produce a syntax tree
	ParseFailed ErrorCode = "PARSE_FAILED"
	// ResolveFailed indicates a constructed type could not be resolved
	ResolveFailed ErrorCode = "RESOLVE_FAILED"
	// ReportWriteFailed indicates the report could not be written
	ReportWriteFailed ErrorCode = "REPORT_WRITE_FAILED"
	// IndexMissing indicates the SCIP index was not found
	IndexMissing ErrorCode = "INDEX_MISSING"
	// IndexInvalid indicates the SCIP index could not be decoded
	IndexInvalid ErrorCode = "INDEX_INVALID"
	// InvalidInput indicates a bad path, mode or output selection
	InvalidInput ErrorCode = "INVALID_INPUT"
	// Cancelled indicates the run was interrupted, e.g. by Ctrl-C
	Cancelled ErrorCode = "CANCELLED"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType says how a suggested fix is applied.
type FixActionType string

const (
	RunCommand  FixActionType = "run-command"
	InstallTool FixActionType = "install-tool"
)

// FixAction is one suggestion printed under a failed command. Safe marks
// commands that only read.
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	Tool        string        `json:"tool,omitempty"`
}

// ScanError carries a stable code and suggested fixes alongside the cause.
type ScanError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        any         `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error
}

// NewScanError creates a ScanError with explicit fixes.
func NewScanError(code ErrorCode, message string, cause error, suggestedFixes []FixAction) *ScanError {
	return &ScanError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: suggestedFixes,
	}
}

// Wrap creates a ScanError with the predefined fixes for code.
func Wrap(code ErrorCode, cause error, format string, args ...any) *ScanError {
	return NewScanError(code, fmt.Sprintf(format, args...), cause, GetSuggestedFixes(code))
}

func (e *ScanError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *ScanError) Unwrap() error {
	return e.cause
}

// WithDetails attaches structured context, e.g. the offending path.
func (e *ScanError) WithDetails(details any) *ScanError {
	e.Details = details
	return e
}

// CodeOf returns the code of the first ScanError in err's chain, or
// InternalError when there is none.
func CodeOf(err error) ErrorCode {
	var se *ScanError
	if errors.As(err, &se) {
		return se.Code
	}
	return InternalError
}

// ErrorActions are the default fixes attached by Wrap.
var ErrorActions = map[ErrorCode][]FixAction{
	IndexMissing: {
		{
			Type:        InstallTool,
			Tool:        "scip-dotnet",
			Command:     "dotnet tool install --global scip-dotnet && scip-dotnet index",
			Description: "Generate a SCIP index for the solution",
		},
	},
	IndexInvalid: {
		{
			Type:        RunCommand,
			Command:     "scip print --json index.scip",
			Safe:        true,
			Description: "Verify the SCIP index is valid",
		},
	},
	FileReadFailed: {
		{
			Type:        RunCommand,
			Command:     "dbcalls scan --exclude <dir> <path>",
			Safe:        true,
			Description: "Exclude unreadable directories from the scan",
		},
	},
	InvalidInput: {
		{
			Type:        RunCommand,
			Command:     "dbcalls scan --help",
			Safe:        true,
			Description: "Show accepted modes and outputs",
		},
	},
}

// GetSuggestedFixes returns the default fixes for code, if any.
func GetSuggestedFixes(code ErrorCode) []FixAction {
	return ErrorActions[code]
}
