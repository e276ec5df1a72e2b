package interfaces

import (
	"context"

	"google.golang.org/api/gmail/v1"
)

// Credential is the caller's Gmail access. The pipeline never inspects how it was issued.
type Credential struct {
	AccessToken string
	UserID      string
}

type ListMessagesParams struct {
	Query            string
	LabelIDs         []string
	PageToken        string
	MaxResults       int64
	IncludeSpamTrash *bool
}

type GmailClient interface {
	ListMessages(ctx context.Context, cred Credential, params ListMessagesParams) (*gmail.ListMessagesResponse, error)
	GetMessage(ctx context.Context, cred Credential, messageID, format string, metadataHeaders ...string) (*gmail.Message, error)
	GetAttachment(ctx context.Context, cred Credential, messageID, attachmentID string) (*gmail.MessagePartBody, error)
	SendMessage(ctx context.Context, cred Credential, raw string) (*gmail.Message, error)
	TrashMessage(ctx context.Context, cred Credential, messageID string) error
	BatchDeleteMessages(ctx context.Context, cred Credential, messageIDs []string) error
	ListLabels(ctx context.Context, cred Credential) (*gmail.ListLabelsResponse, error)
}
