package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go-vms/internal/shared/apperror"
	"go-vms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

type Handler struct {
	kind    Kind
	service Service
	logger  *zap.Logger
}

func NewHandler(kind Kind, service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("record.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("record.handler")
	}
	return &Handler{kind: kind, service: service, logger: l.With(zap.String("kind", string(kind)))}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("record request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Create accepts a single record or an array of records.
func (h *Handler) Create(c *gin.Context) {
	actor := c.GetString("user_email")
	h.logger.Debug("http create records", zap.String("actor", actor))

	raw, err := c.GetRawData()
	if err != nil {
		h.writeServiceError(c, apperror.ErrInvalidInput)
		return
	}

	var reqs []CreateRequest
	switch h.kind {
	case KindGuest:
		reqs, err = bindBatch[CreateGuestRequest](raw)
	case KindAdhoc:
		reqs, err = bindBatch[CreateAdhocRequest](raw)
	default:
		reqs, err = bindBatch[CreateVisitorRequest](raw)
	}
	if err != nil {
		h.logger.Warn("http create records validation failed", zap.Error(err))
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), h.kind, actor, reqs)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context(), h.kind)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, pageSize := response.PageParams(c)
	items, meta := response.Paginate(resp, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	id := c.Param("id")
	h.logger.Debug("http get record by id", zap.String("record_id", id))

	resp, err := h.service.GetByID(c.Request.Context(), h.kind, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	h.logger.Debug("http update record",
		zap.String("record_id", id),
		zap.String("actor", c.GetString("user_email")),
	)

	var req UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update record validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), h.kind, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Remove(c *gin.Context) {
	id := c.Param("id")
	h.logger.Debug("http remove record",
		zap.String("record_id", id),
		zap.String("actor", c.GetString("user_email")),
	)

	// The reason is optional, so an empty body is fine.
	var req RemoveRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Remove(c.Request.Context(), h.kind, id, req.Reason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, RemoveRecordResponse{
		Message: h.kind.Label() + " removed from UI",
		Record:  resp,
	}, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	h.logger.Info("http delete record",
		zap.String("record_id", id),
		zap.String("actor", c.GetString("user_email")),
	)

	if err := h.service.Delete(c.Request.Context(), h.kind, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": h.kind.Label() + " deleted"}, nil)
}

// bindBatch decodes either one T or a JSON array of T and validates every
// element with the binding tags.
func bindBatch[T CreateRequest](raw []byte) ([]CreateRequest, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, apperror.ErrInvalidInput
	}

	var items []T
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, apperror.ErrInvalidInput
		}
	} else {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, apperror.ErrInvalidInput
		}
		items = append(items, item)
	}

	reqs := make([]CreateRequest, 0, len(items))
	for _, item := range items {
		if err := binding.Validator.ValidateStruct(item); err != nil {
			return nil, apperror.MapValidationError(err)
		}
		reqs = append(reqs, item)
	}
	return reqs, nil
}
