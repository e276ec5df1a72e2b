package mails

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/customeros/webmail/internal/tracing"
)

func (h *MailsHandler) ListLabels() gin.HandlerFunc {
	const operation = "List labels"
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "MailsHandler.ListLabels")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		cred, ok := h.credential(c, span, operation)
		if !ok {
			return
		}

		labels, err := h.mailService.ListLabels(ctx, cred)
		if err != nil {
			h.respondWithError(c, span, operation, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": labels})
	}
}
