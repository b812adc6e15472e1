package recorderrors

import (
	"net/http"

	"go-vms/internal/shared/apperror"
)

var (
	ErrNoRecords = apperror.New(
		apperror.CodeInvalidInput,
		"No record data provided",
		http.StatusBadRequest,
	)
	ErrInvalidEmail = apperror.New(
		apperror.CodeInvalidInput,
		"Email is not a valid email address",
		http.StatusBadRequest,
	)
	ErrInvalidCategory = apperror.New(
		apperror.CodeInvalidInput,
		"Category is not allowed for this record type",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Status is not allowed for this record type",
		http.StatusBadRequest,
	)
	ErrRemoveViaUpdate = apperror.New(
		apperror.CodeInvalidInput,
		"Status removed can only be set through remove-ui",
		http.StatusBadRequest,
	)
	ErrRecordRemoved = apperror.New(
		apperror.CodeInvalidState,
		"Record has been removed and can no longer change",
		http.StatusConflict,
	)
	ErrBatchInsert = apperror.New(
		apperror.CodeBatchInsertFailed,
		"Failed to create records",
		http.StatusInternalServerError,
	)

	ErrVisitorNotFound = apperror.New(
		apperror.CodeNotFound,
		"Visitor not found",
		http.StatusNotFound,
	)
	ErrGuestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Guest not found",
		http.StatusNotFound,
	)
	ErrAdhocNotFound = apperror.New(
		apperror.CodeNotFound,
		"Adhoc visitor not found",
		http.StatusNotFound,
	)

	ErrVisitorProcessed = apperror.New(
		apperror.CodeInvalidState,
		"Cannot remove. Visitor already authorized/processed.",
		http.StatusConflict,
	)
	ErrGuestProcessed = apperror.New(
		apperror.CodeInvalidState,
		"Cannot remove. Guest already authorized/processed.",
		http.StatusConflict,
	)
	ErrAdhocProcessed = apperror.New(
		apperror.CodeInvalidState,
		"Cannot remove. Adhoc visitor already authorized/processed.",
		http.StatusConflict,
	)
)
