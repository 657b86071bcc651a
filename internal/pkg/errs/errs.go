package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrObjectNotFound     = errors.New("object not found")
	ErrValueIsInvalid     = errors.New("value is invalid")
	ErrValueIsRequired    = errors.New("value is required")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrMalformedReference = errors.New("malformed reference")
)

// fieldError is implemented by errors that describe a single offending input field.
type fieldError interface {
	error
	Field() string
	FieldMessage() string
}

func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %s)", msg, cause.Error())
}

// ObjectNotFoundError reports that an aggregate with the given ID does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return withCause(
			fmt.Sprintf("%s: param is: %s, ID is: %s", ErrObjectNotFound, e.ParamName, sanitize(e.ID)),
			e.Cause,
		)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a field whose value breaks a domain rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

func (e *ValueIsInvalidError) Field() string {
	return e.ParamName
}

func (e *ValueIsInvalidError) FieldMessage() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return e.ParamName + " is invalid"
}

// ValueIsRequiredError reports a missing or blank field.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

func (e *ValueIsRequiredError) Field() string {
	return e.ParamName
}

func (e *ValueIsRequiredError) FieldMessage() string {
	return e.ParamName + " is required"
}

// ValidationError groups field-level failures of a single request.
// Fields maps the offending field name to a human-readable message.
type ValidationError struct {
	Fields map[string]string
	Cause  error
}

// NewValidationError flattens cause (usually the result of errors.Join over
// field errors) into a ValidationError. Errors without a field are reported
// under the "request" key.
func NewValidationError(cause error) *ValidationError {
	fields := make(map[string]string)
	collectFields(cause, fields)
	return &ValidationError{Fields: fields, Cause: cause}
}

func collectFields(err error, fields map[string]string) {
	if err == nil {
		return
	}

	if fe, ok := err.(fieldError); ok {
		if _, exists := fields[fe.Field()]; !exists {
			fields[fe.Field()] = fe.FieldMessage()
		}
		return
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, inner := range joined.Unwrap() {
			collectFields(inner, fields)
		}
		return
	}

	var fe fieldError
	if inner := errors.Unwrap(err); inner != nil && errors.As(inner, &fe) {
		collectFields(inner, fields)
		return
	}

	if _, exists := fields["request"]; !exists {
		fields["request"] = err.Error()
	}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Cause}
}

// ConflictError reports a well-formed request that breaks a business rule
// given the current state of the aggregate.
type ConflictError struct {
	Reason string
	Cause  error
}

func NewConflictError(reason string) *ConflictError {
	return &ConflictError{Reason: reason}
}

func NewConflictErrorWithCause(reason string, cause error) *ConflictError {
	return &ConflictError{Reason: reason, Cause: cause}
}

func (e *ConflictError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrConflict, e.Reason), e.Cause)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// MalformedReferenceError reports an identifier that does not have the shape of a store key.
type MalformedReferenceError struct {
	ParamName string
	Value     string
	Cause     error
}

func NewMalformedReferenceError(paramName, value string) *MalformedReferenceError {
	return &MalformedReferenceError{ParamName: paramName, Value: value}
}

func NewMalformedReferenceErrorWithCause(paramName, value string, cause error) *MalformedReferenceError {
	return &MalformedReferenceError{ParamName: paramName, Value: value, Cause: cause}
}

func (e *MalformedReferenceError) Error() string {
	return withCause(fmt.Sprintf("%s: %s %q", ErrMalformedReference, e.ParamName, sanitize(e.Value)), e.Cause)
}

func (e *MalformedReferenceError) Unwrap() error {
	return ErrMalformedReference
}
