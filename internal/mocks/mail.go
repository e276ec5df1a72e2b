package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"google.golang.org/api/gmail/v1"

	"github.com/customeros/webmail/dto"
	"github.com/customeros/webmail/interfaces"
	"github.com/customeros/webmail/internal/enum"
)

// MockMailService implements interfaces.MailService
type MockMailService struct {
	mock.Mock
}

func (m *MockMailService) List(ctx context.Context, cred interfaces.Credential, folder enum.MailFolder, req dto.ListRequest) (*dto.ListResponse, error) {
	args := m.Called(ctx, cred, folder, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListResponse), args.Error(1)
}

func (m *MockMailService) Get(ctx context.Context, cred interfaces.Credential, messageID string) (*dto.MessageDetail, error) {
	args := m.Called(ctx, cred, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MessageDetail), args.Error(1)
}

func (m *MockMailService) GetAttachment(ctx context.Context, cred interfaces.Credential, messageID, attachmentID string) (*dto.AttachmentResponse, error) {
	args := m.Called(ctx, cred, messageID, attachmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AttachmentResponse), args.Error(1)
}

func (m *MockMailService) Send(ctx context.Context, cred interfaces.Credential, req dto.ComposeRequest) (*dto.SendResponse, error) {
	args := m.Called(ctx, cred, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SendResponse), args.Error(1)
}

func (m *MockMailService) TrashMany(ctx context.Context, cred interfaces.Credential, messageIDs []string) (*dto.TrashResponse, error) {
	args := m.Called(ctx, cred, messageIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TrashResponse), args.Error(1)
}

func (m *MockMailService) BatchDelete(ctx context.Context, cred interfaces.Credential, messageIDs []string) (*dto.BatchDeleteResponse, error) {
	args := m.Called(ctx, cred, messageIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BatchDeleteResponse), args.Error(1)
}

func (m *MockMailService) ListLabels(ctx context.Context, cred interfaces.Credential) (*gmail.ListLabelsResponse, error) {
	args := m.Called(ctx, cred)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gmail.ListLabelsResponse), args.Error(1)
}
