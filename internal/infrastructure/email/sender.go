package email

import (
	"context"

	"apmdigest/internal/application/digest/usecases"
	"apmdigest/internal/shared/config"
	"apmdigest/internal/shared/logger"
	"apmdigest/internal/shared/utils/logutil"
)

// NewSender builds the digest sender for the current configuration. The
// capture address is applied only on development stages. Without an SMTP
// host, or when dryRun is set, digests are logged and dropped.
func NewSender(emailCfg config.EmailConfig, apiCfg config.APIConfig, dryRun bool, logger logger.Interface) usecases.Sender {
	if dryRun || emailCfg.SMTPHost == "" {
		if !dryRun {
			logger.Warnw("email service not configured, smtp_host is empty")
		}
		return NewDryRunSender(logger)
	}

	capture := ""
	if apiCfg.IsDevStage() {
		capture = emailCfg.CaptureAddress
	}

	smtpCfg := SMTPConfig{
		Host:           emailCfg.SMTPHost,
		Port:           emailCfg.SMTPPort,
		Username:       emailCfg.SMTPUser,
		Password:       emailCfg.SMTPPassword,
		FromAddress:    emailCfg.FromAddress,
		FromName:       emailCfg.FromName,
		CaptureAddress: capture,
	}

	logger.Infow("email service initialized",
		"host", smtpCfg.Host,
		"port", smtpCfg.Port,
		"from", smtpCfg.FromAddress,
		"capture", capture != "",
	)

	return NewSMTPSender(smtpCfg, logger)
}

// DryRunSender logs each digest instead of delivering it.
type DryRunSender struct {
	logger logger.Interface
}

var _ usecases.Sender = (*DryRunSender)(nil)

func NewDryRunSender(logger logger.Interface) *DryRunSender {
	return &DryRunSender{logger: logger}
}

func (d *DryRunSender) Send(_ context.Context, to, subject, htmlBody string) error {
	d.logger.Infow("digest not sent (dry run)",
		"to", logutil.MaskEmail(to),
		"subject", subject,
		"size", len(htmlBody),
	)
	return nil
}
