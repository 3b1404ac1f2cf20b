// file: internals/helpers/errs/errs.go
package errs

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Kode error stabil yang dipakai seluruh service layer.
// Boundary (controller) yang menerjemahkan ke HTTP, service cukup kembalikan kode + pesan.
const (
	CodeInvalidID           = "INVALID_ID"
	CodeNotFound            = "NOT_FOUND"
	CodeForbidden           = "FORBIDDEN"
	CodeNotApproved         = "NOT_APPROVED"
	CodeConflict            = "CONFLICT"
	CodeInvalidDate         = "INVALID_DATE"
	CodeInvalidDateRange    = "INVALID_DATE_RANGE"
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	CodeInvalidSlotType     = "INVALID_SLOT_TYPE"
	CodeInvalidStatus       = "INVALID_STATUS"
	CodeInternal            = "INTERNAL_ERROR"
)

type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func InvalidID(msg string) *Error           { return New(CodeInvalidID, msg) }
func NotFound(msg string) *Error            { return New(CodeNotFound, msg) }
func Forbidden(msg string) *Error           { return New(CodeForbidden, msg) }
func NotApproved(msg string) *Error         { return New(CodeNotApproved, msg) }
func Conflict(msg string) *Error            { return New(CodeConflict, msg) }
func InvalidDate(msg string) *Error         { return New(CodeInvalidDate, msg) }
func InvalidDateRange(msg string) *Error    { return New(CodeInvalidDateRange, msg) }
func InsufficientBalance(msg string) *Error { return New(CodeInsufficientBalance, msg) }
func InvalidSlotType(msg string) *Error     { return New(CodeInvalidSlotType, msg) }
func InvalidStatus(msg string) *Error       { return New(CodeInvalidStatus, msg) }

// As membongkar *Error dari error berantai (termasuk hasil rollback transaction).
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Code mengembalikan kode stabil suatu error, INTERNAL_ERROR jika bukan *Error.
func Code(err error) string {
	if e, ok := As(err); ok {
		return e.Code
	}
	return CodeInternal
}

// HTTPStatus memetakan kode ke status HTTP untuk boundary layer.
func HTTPStatus(err error) int {
	switch Code(err) {
	case CodeInvalidID, CodeInvalidDate, CodeInvalidDateRange, CodeInvalidSlotType, CodeInvalidStatus:
		return fiber.StatusBadRequest
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeForbidden, CodeNotApproved:
		return fiber.StatusForbidden
	case CodeConflict:
		return fiber.StatusConflict
	case CodeInsufficientBalance:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}
