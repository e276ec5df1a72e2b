package mails

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/customeros/webmail/api/middleware"
	"github.com/customeros/webmail/interfaces"
	internal_errors "github.com/customeros/webmail/internal/errors"
	"github.com/customeros/webmail/internal/tracing"
)

// respondWithError maps the error taxonomy onto a status code and JSON body
func (h *MailsHandler) respondWithError(c *gin.Context, span opentracing.Span, operation string, err error) {
	tracing.TraceErr(span, err)

	var validationErr *internal_errors.ValidationError
	var upstreamErr *internal_errors.UpstreamError

	switch {
	case internal_errors.IsAuthError(err), errors.Is(err, internal_errors.ErrCredentialMissing):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "details": err.Error()})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"details": validationErr.Error(),
			"fields":  validationErr.FieldMessages(),
		})
	case errors.As(err, &upstreamErr):
		h.log.Errorf("%s failed upstream with status %d (trace %s): %v", operation, upstreamErr.StatusCode, tracing.GetTraceId(span), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": operation + " failed", "details": upstreamErr.Error()})
	default:
		h.log.Errorf("%s failed (trace %s): %v", operation, tracing.GetTraceId(span), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": operation + " failed", "details": err.Error()})
	}
}

// badRequest is used for bodies that cannot be parsed at all
func (h *MailsHandler) badRequest(c *gin.Context, span opentracing.Span, err error) {
	tracing.TraceErr(span, err)
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
}

func (h *MailsHandler) credential(c *gin.Context, span opentracing.Span, operation string) (interfaces.Credential, bool) {
	cred, err := middleware.CredentialFromContext(c)
	if err != nil {
		h.respondWithError(c, span, operation, err)
		return interfaces.Credential{}, false
	}
	return cred, true
}
