package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-vms/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps status and code", func(t *testing.T) {
		got := apperror.ToHTTP(apperror.New(apperror.CodeInvalidState, "cannot remove", http.StatusConflict))
		assert.Equal(t, http.StatusConflict, got.Status)
		assert.Equal(t, apperror.CodeInvalidState, got.Code)
		assert.Equal(t, "cannot remove", got.Message)
	})

	t.Run("wrapped app error is unwrapped", func(t *testing.T) {
		err := fmt.Errorf("update: %w", apperror.ErrNotFound)
		got := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusNotFound, got.Status)
		assert.Equal(t, apperror.CodeNotFound, got.Code)
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		got := apperror.ToHTTP(errors.New("pq: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, apperror.CodeInternalError, got.Code)
		assert.NotContains(t, got.Message, "pq")
	})
}

func TestWrap_Unwrap(t *testing.T) {
	cause := errors.New("duplicate")
	err := apperror.Wrap(cause, apperror.CodeBatchInsertFailed, "batch insert failed", http.StatusInternalServerError)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "batch insert failed: duplicate", err.Error())
	assert.Nil(t, apperror.Wrap(nil, apperror.CodeInternalError, "x", 500))
}
