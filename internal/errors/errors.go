package errors

import (
	"errors"
	"fmt"
)

// Code represents an error code for categorizing errors
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates client specified an invalid argument
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates a requested resource was not found
	CodeNotFound Code = "not_found"

	// CodeAlreadyExists indicates an attempt to create a resource that already exists
	CodeAlreadyExists Code = "already_exists"

	// CodeInternal indicates internal system error
	CodeInternal Code = "internal"

	// CodeMalformedExpression indicates a dice expression that does not match the grammar
	CodeMalformedExpression Code = "malformed_expression"

	// CodeInvalidAmount indicates a negative experience award
	CodeInvalidAmount Code = "invalid_amount"

	// CodeEmptyEncounter indicates an encounter without enough participants to start
	CodeEmptyEncounter Code = "empty_encounter"

	// CodeNotYourTurn indicates an action submitted by a combatant who is not up
	CodeNotYourTurn Code = "not_your_turn"

	// CodeNoValidTarget indicates an attack without a living opposing target
	CodeNoValidTarget Code = "no_valid_target"

	// CodeEncounterEnded indicates an operation against a finished encounter
	CodeEncounterEnded Code = "encounter_ended"
)

// Error represents an application error with code and metadata
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error

	// Meta contains additional context
	Meta map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context, keeping the code of a wrapped *Error
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var engineErr *Error
	if errors.As(err, &engineErr) {
		return &Error{
			Code:    engineErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(engineErr.Meta),
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates a formatted invalid argument error
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// AlreadyExistsf creates a formatted already exists error
func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// Internalf creates a formatted internal error
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// MalformedExpressionf reports a dice expression that could not be parsed
func MalformedExpressionf(format string, args ...any) *Error {
	return Newf(CodeMalformedExpression, format, args...)
}

// InvalidAmountf reports an experience award that cannot be applied
func InvalidAmountf(format string, args ...any) *Error {
	return Newf(CodeInvalidAmount, format, args...)
}

// EmptyEncounter reports an encounter that cannot start
func EmptyEncounter(message string) *Error {
	return New(CodeEmptyEncounter, message)
}

// NotYourTurnf reports an action from a combatant who is not up
func NotYourTurnf(format string, args ...any) *Error {
	return Newf(CodeNotYourTurn, format, args...)
}

// NoValidTargetf reports an attack with no legal target
func NoValidTargetf(format string, args ...any) *Error {
	return Newf(CodeNoValidTarget, format, args...)
}

// EncounterEndedf reports an operation on a finished encounter
func EncounterEndedf(format string, args ...any) *Error {
	return Newf(CodeEncounterEnded, format, args...)
}

// Is checks if the error is of a specific code
func Is(err error, code Code) bool {
	var engineErr *Error
	if errors.As(err, &engineErr) {
		return engineErr.Code == code
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return Is(err, CodeInvalidArgument)
}

// IsAlreadyExists checks if the error is an already exists error
func IsAlreadyExists(err error) bool {
	return Is(err, CodeAlreadyExists)
}

func IsMalformedExpression(err error) bool {
	return Is(err, CodeMalformedExpression)
}

func IsInvalidAmount(err error) bool {
	return Is(err, CodeInvalidAmount)
}

func IsEmptyEncounter(err error) bool {
	return Is(err, CodeEmptyEncounter)
}

func IsNotYourTurn(err error) bool {
	return Is(err, CodeNotYourTurn)
}

func IsNoValidTarget(err error) bool {
	return Is(err, CodeNoValidTarget)
}

func IsEncounterEnded(err error) bool {
	return Is(err, CodeEncounterEnded)
}

// GetCode returns the error code
func GetCode(err error) Code {
	var engineErr *Error
	if errors.As(err, &engineErr) {
		return engineErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the error metadata
func GetMeta(err error) map[string]any {
	var engineErr *Error
	if errors.As(err, &engineErr) {
		return engineErr.Meta
	}
	return nil
}

func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
