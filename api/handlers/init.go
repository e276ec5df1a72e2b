package handlers

import (
	"github.com/customeros/webmail/api/handlers/mails"
	"github.com/customeros/webmail/internal/logger"
	"github.com/customeros/webmail/services"
)

type APIHandlers struct {
	Mails *mails.MailsHandler
}

func InitHandlers(s *services.Services, log logger.Logger) *APIHandlers {
	return &APIHandlers{
		Mails: mails.NewMailsHandler(s.MailService, log),
	}
}
