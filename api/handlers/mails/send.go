package mails

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/customeros/webmail/dto"
	"github.com/customeros/webmail/internal/tracing"
)

// Send composes and sends a message on behalf of the caller
func (h *MailsHandler) Send() gin.HandlerFunc {
	const operation = "Send mail"
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "MailsHandler.Send")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		cred, ok := h.credential(c, span, operation)
		if !ok {
			return
		}

		var request dto.ComposeRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			h.badRequest(c, span, err)
			return
		}

		resp, err := h.mailService.Send(ctx, cred, request)
		if err != nil {
			h.respondWithError(c, span, operation, err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}
