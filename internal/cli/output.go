package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/microsoft/figma-variables-import/internal/result"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // The import ran but its result log has errors
	ExitCommandError = 2 // Command error (invalid paths, database not found, etc.)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *CLIError   `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`              // "E001", "E002", etc.
	Message string      `json:"message"`           // human-readable message
	Details interface{} `json:"details,omitempty"` // additional context
}

// ImportResult is the payload of the import and validate commands.
type ImportResult struct {
	Entries []result.Entry `json:"entries"`
	Errors  int            `json:"errors"`
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	// Human-readable text output
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "%s [%s]: %s\n", f.styles().err.Render("Error"), code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Log outputs a result log. JSON output wraps it in a CLIResponse whose
// status is "error", with code E101, when any entry is an error.
func (f *OutputFormatter) Log(entries []result.Entry) error {
	var errs int
	for _, e := range entries {
		if e.Kind == result.KindError {
			errs++
		}
	}

	if f.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: ImportResult{Entries: entries, Errors: errs}}
		if entries == nil {
			resp.Data = ImportResult{Entries: []result.Entry{}}
		}
		if errs > 0 {
			resp.Status = "error"
			resp.Error = &CLIError{
				Code:    ErrCodeImportErrors,
				Message: fmt.Sprintf("import finished with %d error(s)", errs),
			}
		}
		return json.NewEncoder(f.Writer).Encode(resp)
	}

	s := f.styles()
	for _, e := range entries {
		tag := s.info.Render(string(e.Kind))
		if e.Kind == result.KindError {
			tag = s.err.Render(string(e.Kind))
		}
		fmt.Fprintf(f.Writer, "%s %s\n", tag, e.Text)
	}
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

type styles struct {
	info    lipgloss.Style
	err     lipgloss.Style
	heading lipgloss.Style
	dim     lipgloss.Style
}

// styles builds text styles for the formatter's writer. Colors are dropped
// when the writer is not a terminal.
func (f *OutputFormatter) styles() styles {
	r := lipgloss.NewRenderer(f.Writer)
	return styles{
		info:    r.NewStyle().Width(5).Foreground(lipgloss.Color("4")),
		err:     r.NewStyle().Width(5).Bold(true).Foreground(lipgloss.Color("1")),
		heading: r.NewStyle().Bold(true),
		dim:     r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}
