package mails

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/log"

	"github.com/customeros/webmail/dto"
	"github.com/customeros/webmail/internal/enum"
	internal_errors "github.com/customeros/webmail/internal/errors"
	"github.com/customeros/webmail/internal/tracing"
)

// List returns one page of a folder. Query params: pageToken, maxResults, category.
func (h *MailsHandler) List(folder enum.MailFolder) gin.HandlerFunc {
	operation := "List " + folder.String()
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "MailsHandler.List")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)
		span.LogFields(log.String("folder", folder.String()))

		cred, ok := h.credential(c, span, operation)
		if !ok {
			return
		}

		req := dto.ListRequest{
			PageToken: c.Query("pageToken"),
			Category:  strings.TrimSpace(c.Query("category")),
		}
		if raw := c.Query("maxResults"); raw != "" {
			maxResults, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || maxResults <= 0 {
				h.respondWithError(c, span, operation, internal_errors.NewFieldValidationError("maxResults", "maxResults must be a positive integer"))
				return
			}
			req.MaxResults = maxResults
		}

		resp, err := h.mailService.List(ctx, cred, folder, req)
		if err != nil {
			h.respondWithError(c, span, operation, err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}
