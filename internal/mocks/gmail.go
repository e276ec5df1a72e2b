package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"google.golang.org/api/gmail/v1"

	"github.com/customeros/webmail/interfaces"
)

// MockGmailClient implements interfaces.GmailClient
type MockGmailClient struct {
	mock.Mock
}

func (m *MockGmailClient) ListMessages(ctx context.Context, cred interfaces.Credential, params interfaces.ListMessagesParams) (*gmail.ListMessagesResponse, error) {
	args := m.Called(ctx, cred, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gmail.ListMessagesResponse), args.Error(1)
}

func (m *MockGmailClient) GetMessage(ctx context.Context, cred interfaces.Credential, messageID, format string, metadataHeaders ...string) (*gmail.Message, error) {
	args := m.Called(ctx, cred, messageID, format, metadataHeaders)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gmail.Message), args.Error(1)
}

func (m *MockGmailClient) GetAttachment(ctx context.Context, cred interfaces.Credential, messageID, attachmentID string) (*gmail.MessagePartBody, error) {
	args := m.Called(ctx, cred, messageID, attachmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gmail.MessagePartBody), args.Error(1)
}

func (m *MockGmailClient) SendMessage(ctx context.Context, cred interfaces.Credential, raw string) (*gmail.Message, error) {
	args := m.Called(ctx, cred, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gmail.Message), args.Error(1)
}

func (m *MockGmailClient) TrashMessage(ctx context.Context, cred interfaces.Credential, messageID string) error {
	args := m.Called(ctx, cred, messageID)
	return args.Error(0)
}

func (m *MockGmailClient) BatchDeleteMessages(ctx context.Context, cred interfaces.Credential, messageIDs []string) error {
	args := m.Called(ctx, cred, messageIDs)
	return args.Error(0)
}

func (m *MockGmailClient) ListLabels(ctx context.Context, cred interfaces.Credential) (*gmail.ListLabelsResponse, error) {
	args := m.Called(ctx, cred)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gmail.ListLabelsResponse), args.Error(1)
}
