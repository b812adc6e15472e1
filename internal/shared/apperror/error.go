package apperror

import "fmt"

// AppError is the error every layer returns to the HTTP edge. Code is one of
// the Code* constants and decides the response status:
//
//	CodeInvalidInput       400  field, phone, category or status rule broken
//	CodeNotFound           404  no visitor, guest or adhoc record with that id
//	CodeInvalidState       409  record already processed or removed
//	CodeBatchInsertFailed  500  an intake batch could not be stored
//
// Err keeps the cause for logs; clients only see Message.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New returns an AppError with no cause.
func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap attaches err as the cause. A nil err gives nil.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}
