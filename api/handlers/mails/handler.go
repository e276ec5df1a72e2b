package mails

import (
	"github.com/customeros/webmail/interfaces"
	"github.com/customeros/webmail/internal/logger"
)

type MailsHandler struct {
	mailService interfaces.MailService
	log         logger.Logger
}

func NewMailsHandler(mailService interfaces.MailService, log logger.Logger) *MailsHandler {
	return &MailsHandler{
		mailService: mailService,
		log:         log,
	}
}
