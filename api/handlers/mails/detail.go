package mails

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/customeros/webmail/dto"
	"github.com/customeros/webmail/internal/tracing"
)

func (h *MailsHandler) Get() gin.HandlerFunc {
	const operation = "Get mail"
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "MailsHandler.Get")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		cred, ok := h.credential(c, span, operation)
		if !ok {
			return
		}

		messageId := c.Param("messageId")
		tracing.TagEntity(span, messageId)

		detail, err := h.mailService.Get(ctx, cred, messageId)
		if err != nil {
			h.respondWithError(c, span, operation, err)
			return
		}

		c.JSON(http.StatusOK, dto.DetailResponse{Message: detail})
	}
}

func (h *MailsHandler) GetAttachment() gin.HandlerFunc {
	const operation = "Get attachment"
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "MailsHandler.GetAttachment")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		cred, ok := h.credential(c, span, operation)
		if !ok {
			return
		}

		messageId := c.Param("messageId")
		tracing.TagEntity(span, messageId)

		attachment, err := h.mailService.GetAttachment(ctx, cred, messageId, c.Param("attachmentId"))
		if err != nil {
			h.respondWithError(c, span, operation, err)
			return
		}

		c.JSON(http.StatusOK, attachment)
	}
}
