package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"
	"google.golang.org/api/gmail/v1"

	"github.com/customeros/webmail/config"
	"github.com/customeros/webmail/dto"
	"github.com/customeros/webmail/interfaces"
	"github.com/customeros/webmail/internal/enum"
	internal_errors "github.com/customeros/webmail/internal/errors"
	"github.com/customeros/webmail/internal/logger"
	"github.com/customeros/webmail/internal/metrics"
	"github.com/customeros/webmail/internal/tracing"
	"github.com/customeros/webmail/services/message"
)

const (
	formatFull     = "full"
	formatMetadata = "metadata"

	sentArchiveContentType = "message/rfc822"
)

type mailService struct {
	gmail   interfaces.GmailClient
	archive interfaces.StorageService
	cfg     config.GmailConfig
	views   viewBuilder
	log     logger.Logger
}

// NewMailService wires the mail pipeline. archive may be nil, in which case sent messages are not stored.
func NewMailService(gmailClient interfaces.GmailClient, archive interfaces.StorageService, cfg *config.Config, log logger.Logger) interfaces.MailService {
	location, err := time.LoadLocation(cfg.AppConfig.DisplayTimezone)
	if err != nil {
		log.Warnf("Unknown display timezone %q, falling back to UTC: %v", cfg.AppConfig.DisplayTimezone, err)
		location = time.UTC
	}
	return &mailService{
		gmail:   gmailClient,
		archive: archive,
		cfg:     *cfg.GmailConfig,
		views:   newViewBuilder(location),
		log:     log,
	}
}

func (s *mailService) List(ctx context.Context, cred interfaces.Credential, folder enum.MailFolder, req dto.ListRequest) (*dto.ListResponse, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "mailService.List")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogFields(log.String("folder", folder.String()), log.String("category", req.Category))

	if !isKnownFolder(folder) {
		err := errors.Errorf("unknown folder %q", folder)
		tracing.TraceErr(span, err)
		return nil, err
	}
	if req.MaxResults < 0 {
		err := internal_errors.NewFieldValidationError("maxResults", "maxResults must be a positive integer")
		tracing.TraceErr(span, err)
		return nil, err
	}

	params := listParams(folder, req.Category, req.PageToken, s.pageSize(req.MaxResults))
	tracing.LogObjectAsJson(span, "params", params)
	page, err := s.gmail.ListMessages(ctx, cred, params)
	if err != nil {
		tracing.TraceErr(span, err)
		s.log.Errorf("Failed to list %s messages: %v", folder, err)
		return nil, err
	}

	ids := make([]string, 0, len(page.Messages))
	for _, m := range page.Messages {
		if m != nil && m.Id != "" {
			ids = append(ids, m.Id)
		}
	}

	messages, err := AllOrNothingJoin(ctx, ids, s.cfg.MaxConcurrentFetches, func(ctx context.Context, id string) (*gmail.Message, error) {
		return s.gmail.GetMessage(ctx, cred, id, formatMetadata, metadataHeaders...)
	})
	if err != nil {
		tracing.TraceErr(span, err)
		s.log.Errorf("Failed to fetch %s message metadata: %v", folder, err)
		return nil, err
	}

	isInInbox := folders[folder].isInInbox
	views := make([]dto.MessageView, 0, len(messages))
	for _, msg := range messages {
		views = append(views, s.views.listItem(msg, isInInbox))
	}
	sortNewestFirst(views)

	category := req.Category
	if category == "" {
		category = enum.EmailCategoryPrimary.String()
	}

	return &dto.ListResponse{
		Messages:           views,
		NextPageToken:      page.NextPageToken,
		ResultSizeEstimate: page.ResultSizeEstimate,
		Category:           category,
		Type:               folder.String(),
		HasMore:            page.NextPageToken != "",
	}, nil
}

func (s *mailService) pageSize(requested int64) int64 {
	if requested == 0 {
		return s.cfg.DefaultPageSize
	}
	if s.cfg.MaxPageSize > 0 && requested > s.cfg.MaxPageSize {
		return s.cfg.MaxPageSize
	}
	return requested
}

func (s *mailService) Get(ctx context.Context, cred interfaces.Credential, messageID string) (*dto.MessageDetail, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "mailService.Get")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, messageID)

	msg, err := s.gmail.GetMessage(ctx, cred, messageID, formatFull)
	if err != nil {
		tracing.TraceErr(span, err)
		s.log.Errorf("Failed to get message %s: %v", messageID, err)
		return nil, err
	}

	decoded := message.Decode(msg.Payload)
	if decoded.Undecodable > 0 {
		s.log.Warnf("Message %s has %d body parts that could not be decoded", messageID, decoded.Undecodable)
	}

	return s.views.detail(msg, decoded, hasLabel(msg.LabelIds, enum.LabelInbox)), nil
}

func (s *mailService) GetAttachment(ctx context.Context, cred interfaces.Credential, messageID, attachmentID string) (*dto.AttachmentResponse, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "mailService.GetAttachment")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, messageID)
	span.LogFields(log.String("attachmentId", attachmentID))

	body, err := s.gmail.GetAttachment(ctx, cred, messageID, attachmentID)
	if err != nil {
		tracing.TraceErr(span, err)
		s.log.Errorf("Failed to get attachment %s of message %s: %v", attachmentID, messageID, err)
		return nil, err
	}

	return &dto.AttachmentResponse{
		AttachmentID: attachmentID,
		Size:         body.Size,
		Data:         body.Data,
	}, nil
}

func (s *mailService) Send(ctx context.Context, cred interfaces.Credential, req dto.ComposeRequest) (*dto.SendResponse, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "mailService.Send")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogFields(log.Int("recipients", len(req.To)+len(req.Cc)+len(req.Bcc)), log.Int("attachments", len(req.Attachments)))

	if err := ValidateCompose(req, s.cfg); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	multipart := len(req.Attachments) > 0
	raw, transport := message.Encode(req)

	sent, err := s.gmail.SendMessage(ctx, cred, transport)
	metrics.RecordMessageSent(err == nil, multipart)
	if err != nil {
		tracing.TraceErr(span, err)
		s.log.Errorf("Failed to send message: %v", err)
		return nil, err
	}
	tracing.TagEntity(span, sent.Id)

	s.archiveSent(ctx, cred, sent.Id, raw)

	return &dto.SendResponse{
		Success:   true,
		MessageID: sent.Id,
		Message:   "Email sent successfully",
	}, nil
}

// archiveSent stores the raw message. Failures are logged only.
func (s *mailService) archiveSent(ctx context.Context, cred interfaces.Credential, messageID, raw string) {
	if s.archive == nil || messageID == "" {
		return
	}
	span, ctx := opentracing.StartSpanFromContext(ctx, "mailService.archiveSent")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	key := SentArchiveKey(cred.UserID, messageID)
	if err := s.archive.Upload(ctx, key, []byte(raw), sentArchiveContentType); err != nil {
		tracing.TraceErr(span, err)
		s.log.Warnf("Failed to archive sent message %s: %v", messageID, err)
	}
}

// removeArchived drops archived copies of permanently deleted messages. Failures are logged only.
func (s *mailService) removeArchived(ctx context.Context, cred interfaces.Credential, messageIDs []string) {
	if s.archive == nil {
		return
	}
	span, ctx := opentracing.StartSpanFromContext(ctx, "mailService.removeArchived")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	for _, id := range messageIDs {
		if err := s.archive.Delete(ctx, SentArchiveKey(cred.UserID, id)); err != nil {
			tracing.TraceErr(span, err)
			s.log.Warnf("Failed to remove archived message %s: %v", id, err)
		}
	}
}

// SentArchiveKey is the object key of an archived sent message.
func SentArchiveKey(userID, messageID string) string {
	if userID == "" {
		userID = "me"
	}
	return fmt.Sprintf("sent/%s/%s.eml", userID, messageID)
}

func (s *mailService) TrashMany(ctx context.Context, cred interfaces.Credential, messageIDs []string) (*dto.TrashResponse, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "mailService.TrashMany")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogFields(log.Int("count", len(messageIDs)))

	if err := ValidateMessageIDs(messageIDs, s.cfg.MaxBatchIDs); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	outcome := BestEffortJoin(ctx, messageIDs, func(ctx context.Context, id string) error {
		return s.gmail.TrashMessage(ctx, cred, id)
	})

	response := &dto.TrashResponse{
		Success:       len(outcome.Succeeded) > 0,
		TotalCount:    outcome.Total(),
		SuccessCount:  len(outcome.Succeeded),
		FailedCount:   len(outcome.Failed),
		SuccessfulIDs: outcome.Succeeded,
		FailedIDs:     outcome.FailedIDs(),
		Errors:        make([]dto.TrashError, 0, len(outcome.Failed)),
	}
	for _, f := range outcome.Failed {
		response.Errors = append(response.Errors, dto.TrashError{MessageID: f.ID, Error: f.Err.Error()})
		s.log.Warnf("Failed to trash message %s: %v", f.ID, f.Err)
	}

	switch {
	case response.FailedCount == 0:
		response.Message = fmt.Sprintf("Successfully moved %d email(s) to trash", response.SuccessCount)
	case response.SuccessCount == 0:
		response.Message = "Failed to move any emails to trash"
		err := errors.Errorf("all %d trash requests failed", response.FailedCount)
		tracing.TraceErr(span, err)
	default:
		response.Message = fmt.Sprintf("Moved %d email(s) to trash, %d failed", response.SuccessCount, response.FailedCount)
	}

	return response, nil
}

func (s *mailService) BatchDelete(ctx context.Context, cred interfaces.Credential, messageIDs []string) (*dto.BatchDeleteResponse, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "mailService.BatchDelete")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogFields(log.Int("count", len(messageIDs)))

	if err := ValidateMessageIDs(messageIDs, s.cfg.MaxBatchIDs); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	if err := s.gmail.BatchDeleteMessages(ctx, cred, messageIDs); err != nil {
		tracing.TraceErr(span, err)
		s.log.Errorf("Failed to batch delete %d messages: %v", len(messageIDs), err)
		return nil, err
	}
	s.removeArchived(ctx, cred, messageIDs)

	return &dto.BatchDeleteResponse{
		Success:      true,
		Message:      fmt.Sprintf("Successfully deleted %d email(s) permanently", len(messageIDs)),
		DeletedCount: len(messageIDs),
		DeletedIDs:   messageIDs,
		Permanent:    true,
	}, nil
}

func (s *mailService) ListLabels(ctx context.Context, cred interfaces.Credential) (*gmail.ListLabelsResponse, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "mailService.ListLabels")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	labels, err := s.gmail.ListLabels(ctx, cred)
	if err != nil {
		tracing.TraceErr(span, err)
		s.log.Errorf("Failed to list labels: %v", err)
		return nil, err
	}
	return labels, nil
}

func hasLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}
