// Package joinerr provides explicit, human-readable error types for the
// join CLIs. Every error carries a Reason and a Suggestion so hjoin and
// mjoin can print actionable one-line diagnostics (spec.md §7
// "source-attributed messages: which file, which field, why").
package joinerr

import "fmt"

// JoinError is the base error type. Every kind below embeds it.
type JoinError struct {
	Kind       Kind
	Message    string
	Reason     string
	Suggestion string
	Cause      error
}

// Kind is the five-member taxonomy from spec.md §7: Configuration, IO,
// Encoding, Schema, Internal. Unlike the teacher's CanonicError, which
// maps its kinds to four distinct process exit codes, every Kind here
// maps to exit code 1 — spec.md §6.3 mandates a single exit status for
// all listed failures. See DESIGN.md for this Open Question resolution.
type Kind int

const (
	Configuration Kind = iota
	IO
	Encoding
	Schema
	Internal
)

func (k Kind) String() string {
	switch k {
	case Configuration:
		return "configuration"
	case IO:
		return "io"
	case Encoding:
		return "encoding"
	case Schema:
		return "schema"
	default:
		return "internal"
	}
}

func (e *JoinError) Error() string {
	msg := e.Message
	if e.Reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	}
	if e.Suggestion != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Suggestion)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *JoinError) Unwrap() error { return e.Cause }

// NewFieldSpecError reports a malformed or duplicate field list
// (spec.md §6.3 "unparseable field list" / "duplicate field indices").
func NewFieldSpecError(spec, reason string) *JoinError {
	return &JoinError{
		Kind:       Configuration,
		Message:    fmt.Sprintf("invalid field list %q", spec),
		Reason:     reason,
		Suggestion: "field lists are comma-separated 1-based indices, e.g. -1 2,4",
	}
}

// NewSeparatorError reports an input record separator that isn't one
// UTF-8 byte (spec.md §6.3 "record-separator not single-byte").
func NewSeparatorError(sep string) *JoinError {
	return &JoinError{
		Kind:       Configuration,
		Message:    fmt.Sprintf("invalid record separator %q", sep),
		Reason:     "record separators must be exactly one byte",
		Suggestion: "use a single-character separator such as \\n",
	}
}

// NewFileOpenError reports a file that could not be opened.
func NewFileOpenError(path string, cause error) *JoinError {
	return &JoinError{
		Kind:       IO,
		Message:    fmt.Sprintf("could not open %s", path),
		Reason:     cause.Error(),
		Suggestion: "check the file exists and is readable",
		Cause:      cause,
	}
}

// NewReadError reports a mid-stream read failure.
func NewReadError(path string, cause error) *JoinError {
	return &JoinError{
		Kind:       IO,
		Message:    fmt.Sprintf("could not read from %s", path),
		Reason:     cause.Error(),
		Suggestion: "check the file is not truncated or locked by another process",
		Cause:      cause,
	}
}

// NewEncodingError reports non-UTF-8 record bytes.
func NewEncodingError(path string, recordIndex int) *JoinError {
	return &JoinError{
		Kind:       Encoding,
		Message:    fmt.Sprintf("%s: record %d is not valid UTF-8", path, recordIndex),
		Reason:     "record bytes could not be decoded as a UTF-8 string",
		Suggestion: "re-encode the file as UTF-8 before joining",
	}
}

// NewArityError reports a record with fewer fields than the plan needs.
func NewArityError(path string, recordIndex, have, need int) *JoinError {
	return &JoinError{
		Kind:       Schema,
		Message:    fmt.Sprintf("%s: record %d has %d field(s), need %d", path, recordIndex, have, need),
		Reason:     "the field plan references a field index beyond the record's length",
		Suggestion: "check the -1/-2 field list matches the file's column count",
	}
}

// NewNumericParseError reports a tagged field that fails to parse as
// the declared integer type.
func NewNumericParseError(path string, recordIndex, fieldIndex int, typ string, token string) *JoinError {
	return &JoinError{
		Kind:       Schema,
		Message:    fmt.Sprintf("%s: record %d field %d is not a valid %s", path, recordIndex, fieldIndex, typ),
		Reason:     fmt.Sprintf("token %q could not be parsed as %s", token, typ),
		Suggestion: "drop the type tag or fix the source data",
	}
}

// NewWriteError reports a failure writing to the output stream.
func NewWriteError(cause error) *JoinError {
	return &JoinError{
		Kind:       IO,
		Message:    "could not write to output",
		Reason:     cause.Error(),
		Suggestion: "check the output destination is writable and has space",
		Cause:      cause,
	}
}

// NewMigrationError reports a failure applying the audit-log schema.
func NewMigrationError(migration string, cause error) *JoinError {
	return &JoinError{
		Kind:       IO,
		Message:    fmt.Sprintf("audit-log migration %q failed", migration),
		Reason:     cause.Error(),
		Suggestion: "check the --audit-dsn connection and migration file syntax",
		Cause:      cause,
	}
}

// NewConfigError reports a configuration-file or flag-conflict failure.
func NewConfigError(reason string, cause error) *JoinError {
	return &JoinError{
		Kind:       Configuration,
		Message:    "invalid configuration",
		Reason:     reason,
		Suggestion: "check the flags and config file for conflicting values",
		Cause:      cause,
	}
}
