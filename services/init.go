package services

import (
	"github.com/pkg/errors"

	"github.com/customeros/webmail/config"
	"github.com/customeros/webmail/interfaces"
	"github.com/customeros/webmail/internal/logger"
	"github.com/customeros/webmail/services/gmailclient"
	"github.com/customeros/webmail/services/mail"
	"github.com/customeros/webmail/services/storage"
)

type Services struct {
	GmailClient interfaces.GmailClient
	SentArchive interfaces.StorageService
	MailService interfaces.MailService
}

func InitServices(cfg *config.Config, log logger.Logger, opts ...gmailclient.Option) (*Services, error) {
	gmailClient := gmailclient.NewGmailClient(cfg.GmailConfig, cfg.CircuitBreaker, log, opts...)

	archive, err := storage.NewSentArchive(cfg.ArchiveConfig)
	if err != nil {
		return nil, errors.Wrap(err, "sent archive")
	}
	if archive != nil {
		log.Infof("Sent archive enabled on %s bucket %s", cfg.ArchiveConfig.Provider, cfg.ArchiveConfig.Bucket)
	}

	services := Services{
		GmailClient: gmailClient,
		SentArchive: archive,
		MailService: mail.NewMailService(gmailClient, archive, cfg, log),
	}

	return &services, nil
}
