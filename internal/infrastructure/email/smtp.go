package email

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/gomail.v2"

	"apmdigest/internal/application/digest/usecases"
	apperrors "apmdigest/internal/shared/errors"
	"apmdigest/internal/shared/logger"
	"apmdigest/internal/shared/utils/logutil"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	// CaptureAddress, when set, receives every digest in place of the
	// real recipient. Only honoured on development stages.
	CaptureAddress string
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender delivers digests over SMTP with a plain-text alternative part.
type SMTPSender struct {
	config SMTPConfig
	dialer dialer
	text   *bluemonday.Policy
	logger logger.Interface
}

var _ usecases.Sender = (*SMTPSender)(nil)

func NewSMTPSender(config SMTPConfig, logger logger.Interface) *SMTPSender {
	return &SMTPSender{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		text:   bluemonday.StrictPolicy(),
		logger: logger,
	}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewSendError("send cancelled", err, to)
	}

	m := s.buildMessage(to, subject, htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return apperrors.NewSendError("failed to send email", err, to)
	}

	return nil
}

func (s *SMTPSender) buildMessage(to, subject, htmlBody string) *gomail.Message {
	if s.config.CaptureAddress != "" {
		s.logger.Debugw("redirecting digest to capture address", "to", logutil.MaskEmail(to))
		subject = fmt.Sprintf("%s :: %s", subject, to)
		to = s.config.CaptureAddress
	}

	m := gomail.NewMessage()
	if s.config.FromName != "" {
		m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	} else {
		m.SetHeader("From", s.config.FromAddress)
	}
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", s.plainText(htmlBody))
	m.AddAlternative("text/html", htmlBody)
	return m
}

var blankLines = regexp.MustCompile(`\n\s*\n+`)

// plainText strips markup from an HTML body, keeping one blank line between blocks.
func (s *SMTPSender) plainText(htmlBody string) string {
	text := html.UnescapeString(s.text.Sanitize(htmlBody))

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	return strings.TrimSpace(blankLines.ReplaceAllString(text, "\n\n"))
}
