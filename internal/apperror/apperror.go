// Package apperror defines the error kinds surfaced by the box and unboxing
// services and how each one maps onto an HTTP response.
package apperror

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation   Kind = "VALIDATION_ERROR"
	KindNotFound     Kind = "NOT_FOUND"
	KindConflict     Kind = "CONFLICT"
	KindInvalidState Kind = "INVALID_STATE"
	KindForbidden    Kind = "FORBIDDEN"
	KindInternal     Kind = "INTERNAL_ERROR"
)

type Metadata struct {
	HTTPStatus int
	Retryable  bool
}

var metadataByKind = map[Kind]Metadata{
	KindValidation:   {HTTPStatus: http.StatusBadRequest},
	KindNotFound:     {HTTPStatus: http.StatusNotFound},
	KindConflict:     {HTTPStatus: http.StatusConflict, Retryable: true},
	KindInvalidState: {HTTPStatus: http.StatusUnprocessableEntity},
	KindForbidden:    {HTTPStatus: http.StatusForbidden},
	KindInternal:     {HTTPStatus: http.StatusInternalServerError},
}

func MetadataFor(kind Kind) Metadata {
	if meta, ok := metadataByKind[kind]; ok {
		return meta
	}
	return metadataByKind[KindInternal]
}

type Error struct {
	kind    Kind
	message string
	cause   error
}

func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

func Wrap(kind Kind, err error, message string) *Error {
	return &Error{kind: kind, message: message, cause: err}
}

func (e *Error) Kind() Kind {
	if e == nil {
		return KindInternal
	}
	return e.kind
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is matches any *Error of the same kind, so callers can test
// errors.Is(err, apperror.NotFound) style sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil {
		return false
	}
	return t.message == "" && t.kind == e.kind
}

// Kind sentinels for errors.Is.
var (
	Validation   = &Error{kind: KindValidation}
	NotFound     = &Error{kind: KindNotFound}
	Conflict     = &Error{kind: KindConflict}
	InvalidState = &Error{kind: KindInvalidState}
	Forbidden    = &Error{kind: KindForbidden}
	Internal     = &Error{kind: KindInternal}
)

// KindOf returns the kind of the first *Error in err's chain, KindInternal otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	return KindInternal
}

// PublicMessage is the message safe to hand back to a client.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind() != KindInternal {
		return e.Message()
	}
	return "internal server error"
}
