package mail

import (
	"net/mail"
	"sort"
	"strconv"
	"time"

	"google.golang.org/api/gmail/v1"

	"github.com/customeros/webmail/dto"
	"github.com/customeros/webmail/services/message"
)

const (
	noSubject         = "(No subject)"
	displayDateLayout = "2006-01-02 15:04:05"
)

// metadataHeaders are requested for every list item.
var metadataHeaders = []string{"From", "Subject", "Date", "To", "Cc", "Bcc"}

type viewBuilder struct {
	location *time.Location
}

func newViewBuilder(location *time.Location) viewBuilder {
	if location == nil {
		location = time.UTC
	}
	return viewBuilder{location: location}
}

func (b viewBuilder) listItem(msg *gmail.Message, isInInbox bool) dto.MessageView {
	var headers []*gmail.MessagePartHeader
	var parts []*gmail.MessagePart
	if msg.Payload != nil {
		headers = msg.Payload.Headers
		parts = msg.Payload.Parts
	}

	labels := msg.LabelIds
	if labels == nil {
		labels = []string{}
	}
	classification := message.Classify(labels)

	from := message.ParseAddress(message.GetHeader("From", headers))
	subject := message.GetHeader("Subject", headers)
	if subject == "" {
		subject = noSubject
	}
	rawDate := message.GetHeader("Date", headers)
	timestamp, formatted := b.parseDate(rawDate)

	return dto.MessageView{
		ID:           msg.Id,
		ThreadID:     msg.ThreadId,
		LabelIDs:     labels,
		Snippet:      msg.Snippet,
		HistoryID:    strconv.FormatUint(msg.HistoryId, 10),
		InternalDate: strconv.FormatInt(msg.InternalDate, 10),
		SizeEstimate: msg.SizeEstimate,

		FromName:  from.Name,
		FromEmail: from.Email,
		Subject:   subject,
		Date:      rawDate,
		To:        message.GetHeader("To", headers),
		Cc:        message.GetHeader("Cc", headers),
		Bcc:       message.GetHeader("Bcc", headers),

		RawDate:       rawDate,
		FormattedDate: formatted,
		Timestamp:     timestamp,

		Category: classification.Category.String(),
		Priority: classification.Priority.String(),

		IsUnread:    classification.Flags.Unread,
		IsImportant: classification.Flags.Important,
		IsStarred:   classification.Flags.Starred,
		IsSpam:      classification.Flags.Spam,
		IsTrash:     classification.Flags.Trash,

		IsInInbox:      isInInbox,
		HasAttachments: hasTopLevelAttachment(parts),
		ThreadLength:   1,
	}
}

func (b viewBuilder) detail(msg *gmail.Message, decoded message.Decoded, isInInbox bool) *dto.MessageDetail {
	view := b.listItem(msg, isInInbox)

	to := message.ParseAddress(view.To)
	toEmail := to.Email
	if toEmail == "" {
		toEmail = view.To
	}

	attachments := decoded.Attachments
	if attachments == nil {
		attachments = []dto.AttachmentRef{}
	}

	return &dto.MessageDetail{
		MessageView: view,
		ToName:      to.Name,
		ToEmail:     toEmail,
		Body:        decoded.Body,
		Attachments: attachments,
	}
}

// parseDate returns unix milliseconds and the display string, or zero values when the header is unusable.
func (b viewBuilder) parseDate(raw string) (int64, string) {
	if raw == "" {
		return 0, ""
	}
	t, err := mail.ParseDate(raw)
	if err != nil {
		return 0, ""
	}
	return t.UnixMilli(), t.In(b.location).Format(displayDateLayout)
}

func hasTopLevelAttachment(parts []*gmail.MessagePart) bool {
	for _, p := range parts {
		if p != nil && p.Filename != "" {
			return true
		}
	}
	return false
}

// sortNewestFirst orders views by timestamp descending, keeping the upstream order for ties.
func sortNewestFirst(views []dto.MessageView) {
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Timestamp > views[j].Timestamp
	})
}
