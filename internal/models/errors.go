package models

import "fmt"

type ErrorKind string

const (
	ErrorKindValidation ErrorKind = "validation"
	ErrorKindNotFound   ErrorKind = "not_found"
	ErrorKindInternal   ErrorKind = "internal"
	ErrorKindExternal   ErrorKind = "external"
)

// PipelineError is the error type every layer of the pipeline returns.
// Kind drives HTTP status mapping in the handlers; Metadata carries
// structured context for logs.
type PipelineError struct {
	Kind     ErrorKind
	Code     string
	Message  string
	Cause    error
	Metadata map[string]interface{}
}

func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s [%s]: %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Kind, e.Code, e.Message)
}

func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is match any instance against the exported sentinels: two
// pipeline errors are the same error when kind and code agree.
func (e *PipelineError) Is(target error) bool {
	t, ok := target.(*PipelineError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// WithCause returns a copy carrying the underlying cause. The receiver is
// left untouched, so the shared sentinels stay immutable.
func (e *PipelineError) WithCause(cause error) *PipelineError {
	clone := e.clone()
	clone.Cause = cause
	return clone
}

// WithMetadata returns a copy with one structured context entry added.
func (e *PipelineError) WithMetadata(key string, value interface{}) *PipelineError {
	clone := e.clone()
	if clone.Metadata == nil {
		clone.Metadata = make(map[string]interface{})
	}
	clone.Metadata[key] = value
	return clone
}

func (e *PipelineError) clone() *PipelineError {
	clone := *e
	if e.Metadata != nil {
		clone.Metadata = make(map[string]interface{}, len(e.Metadata))
		for k, v := range e.Metadata {
			clone.Metadata[k] = v
		}
	}
	return &clone
}

func NewValidationError(code, message string) *PipelineError {
	return &PipelineError{Kind: ErrorKindValidation, Code: code, Message: message}
}

func NewNotFoundError(code, message string) *PipelineError {
	return &PipelineError{Kind: ErrorKindNotFound, Code: code, Message: message}
}

func NewInternalError(code, message string) *PipelineError {
	return &PipelineError{Kind: ErrorKindInternal, Code: code, Message: message}
}

func NewExternalError(code, message string) *PipelineError {
	return &PipelineError{Kind: ErrorKindExternal, Code: code, Message: message}
}

var (
	ErrConversationNotFound = NewNotFoundError("CONVERSATION_NOT_FOUND", "conversation does not exist")
	ErrEmptyMessage         = NewValidationError("EMPTY_MESSAGE", "message text must not be empty")
	ErrStoreUnavailable     = NewExternalError("STORE_UNAVAILABLE", "conversation store is unreachable")
	ErrServiceClosed        = NewInternalError("SERVICE_CLOSED", "conversation service is shutting down")
)
