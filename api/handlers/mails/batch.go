package mails

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/log"

	"github.com/customeros/webmail/dto"
	"github.com/customeros/webmail/internal/tracing"
)

// Trash moves every id to the trash independently. Per id failures are reported in the body, never as an error status.
func (h *MailsHandler) Trash() gin.HandlerFunc {
	const operation = "Trash mails"
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "MailsHandler.Trash")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		cred, ok := h.credential(c, span, operation)
		if !ok {
			return
		}

		var request dto.MessageIdsRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			h.badRequest(c, span, err)
			return
		}
		span.LogFields(log.Int("count", len(request.MessageIDs)))

		resp, err := h.mailService.TrashMany(ctx, cred, request.MessageIDs)
		if err != nil {
			h.respondWithError(c, span, operation, err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// BatchDelete permanently deletes the ids in a single upstream call
func (h *MailsHandler) BatchDelete() gin.HandlerFunc {
	const operation = "Batch delete mails"
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "MailsHandler.BatchDelete")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		cred, ok := h.credential(c, span, operation)
		if !ok {
			return
		}

		var request dto.MessageIdsRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			h.badRequest(c, span, err)
			return
		}
		span.LogFields(log.Int("count", len(request.MessageIDs)))

		resp, err := h.mailService.BatchDelete(ctx, cred, request.MessageIDs)
		if err != nil {
			h.respondWithError(c, span, operation, err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}
