package mail

import (
	"fmt"
	"strings"

	"github.com/customeros/mailsherpa/mailvalidate"

	custom_err "github.com/customeros/webmail/api/errors"
	"github.com/customeros/webmail/config"
	"github.com/customeros/webmail/dto"
	internal_errors "github.com/customeros/webmail/internal/errors"
	"github.com/customeros/webmail/services/message"
)

// ValidateCompose collects every problem with a compose request. It returns nil or a *ValidationError.
func ValidateCompose(req dto.ComposeRequest, cfg config.GmailConfig) error {
	errs := custom_err.NewMultiErrors()

	if len(req.To) == 0 {
		errs.Add("to", "at least one recipient is required", nil)
	}
	validateRecipients("to", req.To, errs)
	validateRecipients("cc", req.Cc, errs)
	validateRecipients("bcc", req.Bcc, errs)

	if strings.TrimSpace(req.Subject) == "" {
		errs.Add("subject", "subject is required", nil)
	}
	if strings.TrimSpace(req.Body) == "" {
		errs.Add("body", "body is required", nil)
	}

	for i, attachment := range req.Attachments {
		key := fmt.Sprintf("attachments[%d]", i)
		if strings.TrimSpace(attachment.Name) == "" {
			errs.Add(key, "name is required", nil)
		}
		if strings.TrimSpace(attachment.Type) == "" {
			errs.Add(key, "type is required", nil)
		}
		if attachment.Data == "" {
			errs.Add(key, "data is required", nil)
		}
		if cfg.MaxAttachmentSize > 0 && len(attachment.Data) > cfg.MaxAttachmentSize {
			errs.Add(key, fmt.Sprintf("attachment exceeds the maximum size of %d bytes", cfg.MaxAttachmentSize), nil)
		}
	}

	return internal_errors.NewValidationError(errs)
}

func validateRecipients(field string, recipients []string, errs *custom_err.MultiErrors) {
	for i, recipient := range recipients {
		key := fmt.Sprintf("%s[%d]", field, i)
		address := message.ParseAddress(recipient)
		if address.Email == "" {
			errs.Add(key, "email address is required", nil)
			continue
		}
		if validation := mailvalidate.ValidateEmailSyntax(address.Email); !validation.IsValid {
			errs.Add(key, fmt.Sprintf("invalid email address: %s", address.Email), nil)
		}
	}
}

// ValidateMessageIDs checks a batch of ids against the batch size limit.
func ValidateMessageIDs(ids []string, maxIDs int) error {
	errs := custom_err.NewMultiErrors()

	switch {
	case len(ids) == 0:
		errs.Add("messageIds", "at least one message id is required", nil)
	case maxIDs > 0 && len(ids) > maxIDs:
		errs.Add("messageIds", fmt.Sprintf("at most %d message ids are allowed", maxIDs), nil)
	}
	for i, id := range ids {
		if strings.TrimSpace(id) == "" {
			errs.Add(fmt.Sprintf("messageIds[%d]", i), "message id must not be empty", nil)
		}
	}

	return internal_errors.NewValidationError(errs)
}
