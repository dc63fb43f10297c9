package core

import (
	"errors"
	"fmt"
)

// ConversionError represents a conversion failure with a machine-readable
// code and an actionable instruction for the user.
type ConversionError struct {
	Code    string // Error code for programmatic handling
	Message string // Human-readable error message
	Action  string // Actionable instruction for resolution
	Err     error  // Underlying cause, if any
}

func (e *ConversionError) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("%s. %s", e.Message, e.Action)
	}
	return e.Message
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Error codes for conversion errors
const (
	ErrCodeInvalidConfig = "INVALID_CONFIG"
	ErrCodeDecodeError   = "DECODE_ERROR"
	ErrCodeEncodeError   = "ENCODE_ERROR"
	ErrCodeMissingAPIKey = "MISSING_API_KEY"
	ErrCodeInputMissing  = "INPUT_MISSING"
)

// ErrInvalidConfig returns an error for a configuration value the conversion
// engine cannot act on (bad dimensions, unrecognized color, non-positive width).
func ErrInvalidConfig(reason string, cause error) *ConversionError {
	return &ConversionError{
		Code:    ErrCodeInvalidConfig,
		Message: fmt.Sprintf("Invalid conversion configuration: %s", reason),
		Action:  "Check the conversion flags and try again",
		Err:     cause,
	}
}

// ErrDecodeFailed returns an error for an unreadable or corrupt source image.
func ErrDecodeFailed(path string, cause error) *ConversionError {
	return &ConversionError{
		Code:    ErrCodeDecodeError,
		Message: fmt.Sprintf("Cannot decode image %s", path),
		Action:  "Verify the file is a valid PNG, JPEG or GIF image",
		Err:     cause,
	}
}

// ErrEncodeFailed returns an error when output bytes cannot be produced.
func ErrEncodeFailed(path string, cause error) *ConversionError {
	return &ConversionError{
		Code:    ErrCodeEncodeError,
		Message: fmt.Sprintf("Cannot encode output image %s", path),
		Action:  "Check the output path is writable and its extension is a supported format",
		Err:     cause,
	}
}

// ErrMissingAPIKey returns an error for a missing description API key.
func ErrMissingAPIKey() *ConversionError {
	return &ConversionError{
		Code:    ErrCodeMissingAPIKey,
		Message: "Missing OpenAI API key for image descriptions",
		Action:  "Set OPENAI_API_KEY in your environment or .env file",
	}
}

// ErrInputMissing returns an error for an unreadable input file.
func ErrInputMissing(path string, cause error) *ConversionError {
	return &ConversionError{
		Code:    ErrCodeInputMissing,
		Message: fmt.Sprintf("Input file not found: %s", path),
		Action:  "Check the -i path and try again",
		Err:     cause,
	}
}

// IsConversionError checks if an error is a ConversionError and returns it if so.
func IsConversionError(err error) (*ConversionError, bool) {
	var convErr *ConversionError
	if errors.As(err, &convErr) {
		return convErr, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from an error if it is a ConversionError.
func GetErrorCode(err error) string {
	if convErr, ok := IsConversionError(err); ok {
		return convErr.Code
	}
	return ""
}
