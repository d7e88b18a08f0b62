package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	portssvc "github.com/craneworks/craneops_backend/internal/core/ports/services"
	"github.com/craneworks/craneops_backend/internal/platform/config"
	"github.com/wneessen/go-mail"
)

type mailService struct {
	BaseService
	cfg *config.Config
}

// NewMailService creates the outbound SMTP mail service.
func NewMailService(cfg *config.Config) portssvc.MailSvcFacade {
	return &mailService{cfg: cfg}
}

var _ portssvc.MailSvcFacade = (*mailService)(nil)

func (s *mailService) client() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(s.cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.SMTPUsername),
		mail.WithPassword(s.cfg.SMTPPassword),
	}
	if s.cfg.SMTPImplicitTLS {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}
	return mail.NewClient(s.cfg.SMTPHost, opts...)
}

func (s *mailService) SendWithAttachment(ctx context.Context, to []string, subject, body string, attachment *portssvc.ExportFile) error {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.SMTPFrom); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to...); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	if attachment != nil {
		if err := msg.AttachReader(attachment.Filename, bytes.NewReader(attachment.Data)); err != nil {
			return fmt.Errorf("failed to attach %s: %w", attachment.Filename, err)
		}
	}

	client, err := s.client()
	if err != nil {
		return fmt.Errorf("failed to build mail client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	s.LogInfo(ctx, "mail sent", slog.Int("recipients", len(to)), slog.String("subject", subject))
	return nil
}
