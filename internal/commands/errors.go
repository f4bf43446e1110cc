package commands

import (
	"context"
	"errors"

	"github.com/goliatone/go-pagebuilder/internal/layout"
	"github.com/goliatone/go-pagebuilder/internal/session"
	"github.com/goliatone/go-pagebuilder/internal/validation"
	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to layout command failures.
const (
	CodeMessageInvalid  = "LAYOUT_COMMAND_INVALID"
	CodeSessionNotFound = "LAYOUT_SESSION_NOT_FOUND"
	CodePayloadInvalid  = "LAYOUT_PAYLOAD_INVALID"
	CodeCancelled       = "LAYOUT_COMMAND_CANCELLED"
	CodeTimeout         = "LAYOUT_COMMAND_TIMEOUT"
	CodeContextError    = "LAYOUT_COMMAND_CONTEXT_ERROR"
	CodeFailed          = "LAYOUT_COMMAND_FAILED"
)

// Retryable reports whether a dispatcher may run the command again after err.
// Invalid messages, rejected payloads and missing sessions fail the same way
// on every attempt.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	var classified interface{ IsRetryable() bool }
	if errors.As(err, &classified) {
		return classified.IsRetryable()
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// TextCode returns the text code carried by err, or "".
func TextCode(err error) string {
	var retryable *goerrors.RetryableError
	if errors.As(err, &retryable) && retryable.BaseError != nil {
		return retryable.TextCode
	}
	var wrapped *goerrors.Error
	if errors.As(err, &wrapped) {
		return wrapped.TextCode
	}
	return ""
}

func permanent(err error, category goerrors.Category, message, code string) error {
	return goerrors.WrapRetryable(err, category, message).
		WithRetryable(false).
		WithTextCode(code)
}

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return permanent(err, goerrors.CategoryValidation, "layout command rejected", CodeMessageInvalid)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "layout command cancelled").
			WithTextCode(CodeCancelled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "layout command deadline exceeded").
			WithTextCode(CodeTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "layout command context error").
			WithTextCode(CodeContextError)
	}
}

func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}

	var notFound *session.NotFoundError
	switch {
	case errors.As(err, &notFound):
		return permanent(err, goerrors.CategoryNotFound, "editing session not found", CodeSessionNotFound)
	case errors.Is(err, validation.ErrSchemaValidation),
		errors.Is(err, layout.ErrUnknownKind),
		errors.Is(err, layout.ErrPayloadFieldType),
		errors.Is(err, layout.ErrUnknownSourceKind):
		return permanent(err, goerrors.CategoryValidation, "component payload rejected", CodePayloadInvalid)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return wrapContextError(err)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "layout command failed").
		WithTextCode(CodeFailed)
}
