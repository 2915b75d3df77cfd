package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes are the stable kinds surfaced to callers.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodePermissionDenied    = "PERMISSION_DENIED"
	CodeInvalidState        = "INVALID_STATE"
	CodeCapacityExceeded    = "CAPACITY_EXCEEDED"
	CodeAdminLimitReached   = "ADMIN_LIMIT_REACHED"
	CodeAlreadyMember       = "ALREADY_MEMBER"
	CodeNotAMember          = "NOT_A_MEMBER"
	CodeCreatorCannotLeave  = "CREATOR_CANNOT_LEAVE"
	CodeCannotRemoveCreator = "CANNOT_REMOVE_CREATOR"
	CodeGroupNotApproved    = "GROUP_NOT_APPROVED"
	CodeTargetNotMember     = "TARGET_NOT_MEMBER"
	CodeAlreadyAdmin        = "ALREADY_ADMIN"
	CodeNotAdmin            = "NOT_ADMIN"
	CodeInternal            = "INTERNAL_ERROR"
)

// Sentinels for errors.Is. Matching compares codes only.
var (
	ErrValidation          = &AppError{Code: CodeValidation}
	ErrNotFound            = &AppError{Code: CodeNotFound}
	ErrPermissionDenied    = &AppError{Code: CodePermissionDenied}
	ErrInvalidState        = &AppError{Code: CodeInvalidState}
	ErrCapacityExceeded    = &AppError{Code: CodeCapacityExceeded}
	ErrAdminLimitReached   = &AppError{Code: CodeAdminLimitReached}
	ErrAlreadyMember       = &AppError{Code: CodeAlreadyMember}
	ErrNotAMember          = &AppError{Code: CodeNotAMember}
	ErrCreatorCannotLeave  = &AppError{Code: CodeCreatorCannotLeave}
	ErrCannotRemoveCreator = &AppError{Code: CodeCannotRemoveCreator}
	ErrGroupNotApproved    = &AppError{Code: CodeGroupNotApproved}
	ErrTargetNotMember     = &AppError{Code: CodeTargetNotMember}
	ErrAlreadyAdmin        = &AppError{Code: CodeAlreadyAdmin}
	ErrNotAdmin            = &AppError{Code: CodeNotAdmin}
	ErrInternal            = &AppError{Code: CodeInternal}
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Code
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError of the same kind.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Code returns the kind of err, or CodeInternal when err is not an AppError.
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

func newError(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return newError(CodeValidation, message)
}

func NewPermissionDeniedError(message string) *AppError {
	return newError(CodePermissionDenied, message)
}

func NewInvalidStateError(message string) *AppError {
	return newError(CodeInvalidState, message)
}

func NewCapacityExceededError(maxMembers int) *AppError {
	return newError(CodeCapacityExceeded, fmt.Sprintf("group is full (%d members)", maxMembers))
}

func NewAdminLimitReachedError(limit int) *AppError {
	return newError(CodeAdminLimitReached, fmt.Sprintf("group already has %d admins", limit))
}

func NewAlreadyMemberError() *AppError {
	return newError(CodeAlreadyMember, "user is already a member of this group")
}

func NewNotAMemberError() *AppError {
	return newError(CodeNotAMember, "user is not a member of this group")
}

func NewCreatorCannotLeaveError() *AppError {
	return newError(CodeCreatorCannotLeave, "the group creator cannot leave; delete the group instead")
}

func NewCannotRemoveCreatorError() *AppError {
	return newError(CodeCannotRemoveCreator, "the group creator cannot be removed")
}

func NewGroupNotApprovedError() *AppError {
	return newError(CodeGroupNotApproved, "group is not approved")
}

func NewTargetNotMemberError(userID uint) *AppError {
	return newError(CodeTargetNotMember, fmt.Sprintf("user %d is not a member of this group", userID))
}

func NewAlreadyAdminError(userID uint) *AppError {
	return newError(CodeAlreadyAdmin, fmt.Sprintf("user %d is already an admin", userID))
}

func NewNotAdminError(userID uint) *AppError {
	return newError(CodeNotAdmin, fmt.Sprintf("user %d is not an admin", userID))
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// StatusFor maps an error kind to an HTTP status.
func StatusFor(err error) int {
	switch Code(err) {
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodePermissionDenied:
		return fiber.StatusForbidden
	case CodeInvalidState, CodeGroupNotApproved:
		return fiber.StatusUnprocessableEntity
	case CodeCapacityExceeded, CodeAdminLimitReached, CodeAlreadyMember, CodeAlreadyAdmin,
		CodeCreatorCannotLeave, CodeCannotRemoveCreator:
		return fiber.StatusConflict
	case CodeNotAMember, CodeTargetNotMember, CodeNotAdmin:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}

// RespondWithAppError writes err using the status derived from its kind.
func RespondWithAppError(c *fiber.Ctx, err error) error {
	return RespondWithError(c, StatusFor(err), err)
}
