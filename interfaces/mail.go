package interfaces

import (
	"context"

	"google.golang.org/api/gmail/v1"

	"github.com/customeros/webmail/dto"
	"github.com/customeros/webmail/internal/enum"
)

type MailService interface {
	List(ctx context.Context, cred Credential, folder enum.MailFolder, req dto.ListRequest) (*dto.ListResponse, error)
	Get(ctx context.Context, cred Credential, messageID string) (*dto.MessageDetail, error)
	GetAttachment(ctx context.Context, cred Credential, messageID, attachmentID string) (*dto.AttachmentResponse, error)
	Send(ctx context.Context, cred Credential, req dto.ComposeRequest) (*dto.SendResponse, error)
	TrashMany(ctx context.Context, cred Credential, messageIDs []string) (*dto.TrashResponse, error)
	BatchDelete(ctx context.Context, cred Credential, messageIDs []string) (*dto.BatchDeleteResponse, error)
	ListLabels(ctx context.Context, cred Credential) (*gmail.ListLabelsResponse, error)
}
