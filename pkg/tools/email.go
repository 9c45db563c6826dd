package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	mail "github.com/wneessen/go-mail"

	"github.com/ajvoice/go-aj/internal/log"
)

// Email is one outbound message handed to a Mailer.
type Email struct {
	To         string
	CC         string
	Subject    string
	Body       string
	Attachment string // path on disk, empty for none
}

// Mailer delivers outbound email. The default implementation speaks
// SMTP with STARTTLS; tests swap in a recorder.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

type smtpMailer struct {
	host     string
	port     int
	user     string
	password string
}

func (m *smtpMailer) Send(ctx context.Context, email Email) error {
	msg := mail.NewMsg()
	if err := msg.From(m.user); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(email.To); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	if email.CC != "" {
		if err := msg.Cc(email.CC); err != nil {
			return fmt.Errorf("invalid cc address: %w", err)
		}
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextPlain, email.Body)
	if email.Attachment != "" {
		msg.AttachFile(email.Attachment)
	}

	client, err := mail.NewClient(m.host,
		mail.WithTLSPortPolicy(mail.TLSMandatory),
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.user),
		mail.WithPassword(m.password),
	)
	if err != nil {
		return fmt.Errorf("smtp client setup failed: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}

// emailTool sends plain text mail through the configured Gmail account.
func emailTool(cfg Config) Tool {
	return Tool{
		Name:        "send_email",
		Description: "Send an email through Gmail. Optionally CC a second recipient.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"to_email": map[string]any{
					"type":        "string",
					"description": "Recipient email address",
				},
				"subject": map[string]any{
					"type":        "string",
					"description": "Email subject line",
				},
				"message": map[string]any{
					"type":        "string",
					"description": "Email body text",
				},
				"cc_email": map[string]any{
					"type":        "string",
					"description": "Optional CC email address",
				},
			},
			"required": []string{"to_email", "subject", "message"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			to := strings.TrimSpace(stringArg(args, "to_email", ""))
			cc := strings.TrimSpace(stringArg(args, "cc_email", ""))
			subject := stringArg(args, "subject", "")
			body := stringArg(args, "message", "")

			if cfg.GmailUser == "" || cfg.GmailAppPassword == "" {
				log.Error("gmail credentials not configured")
				return "Email sending failed: Gmail credentials not configured.", nil
			}
			if to == "" {
				return "Email sending failed: no recipient address was provided.", nil
			}

			if err := cfg.Mailer.Send(ctx, Email{To: to, CC: cc, Subject: subject, Body: body}); err != nil {
				log.Error("email send failed", "to", to, "error", err)
				return mailFailure("sending email", err), nil
			}
			log.Info("email sent", "to", to, "cc", cc)
			return fmt.Sprintf("Email sent successfully to %s", to), nil
		},
	}
}

// emailWithAttachmentTool sends mail with a file from local disk
// attached. The file must exist before any network work starts.
func emailWithAttachmentTool(cfg Config) Tool {
	return Tool{
		Name:        "send_email_with_attachment",
		Description: "Send an email through Gmail with a file attached.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"to_email": map[string]any{
					"type":        "string",
					"description": "Recipient email address",
				},
				"subject": map[string]any{
					"type":        "string",
					"description": "Email subject line",
				},
				"message": map[string]any{
					"type":        "string",
					"description": "Email body text",
				},
				"attachment_path": map[string]any{
					"type":        "string",
					"description": "Path to the file to attach",
				},
				"cc_email": map[string]any{
					"type":        "string",
					"description": "Optional CC email address",
				},
			},
			"required": []string{"to_email", "subject", "message", "attachment_path"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			to := strings.TrimSpace(stringArg(args, "to_email", ""))
			cc := strings.TrimSpace(stringArg(args, "cc_email", ""))
			subject := stringArg(args, "subject", "")
			body := stringArg(args, "message", "")
			attachment := strings.TrimSpace(stringArg(args, "attachment_path", ""))

			if cfg.GmailUser == "" || cfg.GmailAppPassword == "" {
				log.Error("gmail credentials not configured")
				return "Email sending failed: Gmail credentials not configured.", nil
			}
			if to == "" {
				return "Email sending failed: no recipient address was provided.", nil
			}
			info, err := os.Stat(attachment)
			if err != nil {
				return fmt.Sprintf("Email sending failed: Attachment file not found at %s", attachment), nil
			}

			if err := cfg.Mailer.Send(ctx, Email{To: to, CC: cc, Subject: subject, Body: body, Attachment: attachment}); err != nil {
				log.Error("email send failed", "to", to, "attachment", attachment, "error", err)
				return mailFailure("sending email with attachment", err), nil
			}
			log.Info("email sent", "to", to, "cc", cc, "attachment", attachment)
			return fmt.Sprintf("Email with attachment '%s' (%s) sent successfully to %s",
				filepath.Base(attachment), formatSize(info.Size()), to), nil
		},
	}
}

// mailFailure maps a delivery error onto the fixed set of user-facing
// failure messages. action names the attempt for the generic fallback,
// e.g. "sending email".
func mailFailure(action string, err error) string {
	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "auth"):
		return "Email sending failed: Authentication error. Please check your Gmail credentials."
	case strings.Contains(lower, "smtp"):
		return fmt.Sprintf("Email sending failed: SMTP error - %s", msg)
	default:
		return fmt.Sprintf("An error occurred while %s: %s", action, msg)
	}
}
