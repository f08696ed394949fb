package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"flightdeals-service/internal/domain/repository"
	"flightdeals-service/pkg/logger"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// ReportMailer delivers rendered deal reports through the Gmail API.
type ReportMailer struct {
	gmailService *gmail.Service
	sender       string
	recipient    string
	logger       logger.Logger
}

// NewReportMailer creates a new Gmail report mailer
func NewReportMailer(ctx context.Context, tokenSource oauth2.TokenSource, sender, recipient string, logger logger.Logger) (repository.ReportMailer, error) {
	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, err
	}

	return &ReportMailer{
		gmailService: service,
		sender:       sender,
		recipient:    recipient,
		logger:       logger,
	}, nil
}

// SendReport sends the HTML report to the configured recipient
func (m *ReportMailer) SendReport(ctx context.Context, subject, htmlBody string) error {
	raw := m.buildMessage(subject, htmlBody)

	message := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	_, err := m.gmailService.Users.Messages.Send("me", message).Context(ctx).Do()
	if err != nil {
		m.logger.Error("Failed to send report email", "recipient", m.recipient, "error", err)
		return fmt.Errorf("send report email: %w", err)
	}

	m.logger.Info("Report email sent", "recipient", m.recipient, "subject", subject)
	return nil
}

// buildMessage assembles an RFC 2822 message with an HTML body
func (m *ReportMailer) buildMessage(subject, htmlBody string) string {
	var sb strings.Builder
	if m.sender != "" {
		sb.WriteString(fmt.Sprintf("From: %s\r\n", m.sender))
	}
	sb.WriteString(fmt.Sprintf("To: %s\r\n", m.recipient))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(htmlBody)
	return sb.String()
}
