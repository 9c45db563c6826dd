package tools

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type fakeMailer struct {
	sent []Email
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, email Email) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, email)
	return nil
}

func emailConfig(m Mailer) Config {
	return Config{
		GmailUser:        "aj@example.com",
		GmailAppPassword: "app-password",
		Mailer:           m,
	}
}

func TestSendEmail(t *testing.T) {
	mailer := &fakeMailer{}
	tool := emailTool(emailConfig(mailer))

	got, err := tool.Handler(context.Background(), map[string]any{
		"to_email": "boss@example.com",
		"subject":  "Status",
		"message":  "All systems nominal.",
		"cc_email": "team@example.com",
	})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got != "Email sent successfully to boss@example.com" {
		t.Errorf("unexpected result: %q", got)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 sent email, got %d", len(mailer.sent))
	}
	sent := mailer.sent[0]
	if sent.To != "boss@example.com" || sent.CC != "team@example.com" {
		t.Errorf("wrong envelope: to=%q cc=%q", sent.To, sent.CC)
	}
	if sent.Subject != "Status" || sent.Body != "All systems nominal." {
		t.Errorf("wrong content: subject=%q body=%q", sent.Subject, sent.Body)
	}
	if sent.Attachment != "" {
		t.Errorf("plain email carried an attachment: %q", sent.Attachment)
	}
}

func TestSendEmailMissingCredentials(t *testing.T) {
	mailer := &fakeMailer{}
	tool := emailTool(Config{Mailer: mailer})

	got, err := tool.Handler(context.Background(), map[string]any{
		"to_email": "boss@example.com",
		"subject":  "Status",
		"message":  "hi",
	})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got != "Email sending failed: Gmail credentials not configured." {
		t.Errorf("unexpected result: %q", got)
	}
	if len(mailer.sent) != 0 {
		t.Error("email was sent despite missing credentials")
	}
}

func TestSendEmailMissingRecipient(t *testing.T) {
	mailer := &fakeMailer{}
	tool := emailTool(emailConfig(mailer))

	got, err := tool.Handler(context.Background(), map[string]any{
		"subject": "Status",
		"message": "hi",
	})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got != "Email sending failed: no recipient address was provided." {
		t.Errorf("unexpected result: %q", got)
	}
	if len(mailer.sent) != 0 {
		t.Error("email was sent without a recipient")
	}
}

func TestSendEmailDeliveryFailure(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("SMTP error: 421 service busy")}
	tool := emailTool(emailConfig(mailer))

	got, err := tool.Handler(context.Background(), map[string]any{
		"to_email": "boss@example.com",
		"subject":  "Status",
		"message":  "hi",
	})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got != "Email sending failed: SMTP error - SMTP error: 421 service busy" {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestSendEmailWithAttachment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(path, []byte("pdf bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	mailer := &fakeMailer{}
	tool := emailWithAttachmentTool(emailConfig(mailer))

	got, err := tool.Handler(context.Background(), map[string]any{
		"to_email":        "boss@example.com",
		"subject":         "Report",
		"message":         "Attached.",
		"attachment_path": path,
	})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got != "Email with attachment 'report.pdf' (9 B) sent successfully to boss@example.com" {
		t.Errorf("unexpected result: %q", got)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 sent email, got %d", len(mailer.sent))
	}
	if mailer.sent[0].Attachment != path {
		t.Errorf("attachment path = %q, want %q", mailer.sent[0].Attachment, path)
	}
}

func TestSendEmailWithAttachmentMissingFile(t *testing.T) {
	mailer := &fakeMailer{}
	tool := emailWithAttachmentTool(emailConfig(mailer))

	missing := filepath.Join(t.TempDir(), "nope.pdf")
	got, err := tool.Handler(context.Background(), map[string]any{
		"to_email":        "boss@example.com",
		"subject":         "Report",
		"message":         "Attached.",
		"attachment_path": missing,
	})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got != "Email sending failed: Attachment file not found at "+missing {
		t.Errorf("unexpected result: %q", got)
	}
	if len(mailer.sent) != 0 {
		t.Error("delivery was attempted for a missing attachment")
	}
}

func TestMailFailureClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "authentication",
			err:  errors.New("535 5.7.8 authentication failed"),
			want: "Email sending failed: Authentication error. Please check your Gmail credentials.",
		},
		{
			name: "smtp",
			err:  errors.New("SMTP error: 421 service busy"),
			want: "Email sending failed: SMTP error - SMTP error: 421 service busy",
		},
		{
			name: "other",
			err:  errors.New("dial tcp: connection refused"),
			want: "An error occurred while sending email: dial tcp: connection refused",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mailFailure("sending email", tt.err); got != tt.want {
				t.Errorf("mailFailure() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSMTPMailerConstruction(t *testing.T) {
	cfg := Config{
		GmailUser:        "aj@example.com",
		GmailAppPassword: "app-password",
	}
	cfg = cfg.withDefaults()

	m, ok := cfg.Mailer.(*smtpMailer)
	if !ok {
		t.Fatalf("default mailer is %T, want *smtpMailer", cfg.Mailer)
	}
	if m.host != DefaultSMTPHost || m.port != DefaultSMTPPort {
		t.Errorf("mailer target = %s:%d, want %s:%d", m.host, m.port, DefaultSMTPHost, DefaultSMTPPort)
	}
	if m.user != "aj@example.com" {
		t.Errorf("mailer user = %q", m.user)
	}
}
