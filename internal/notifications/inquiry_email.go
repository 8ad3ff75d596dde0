package notifications

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"veilandvow-backend/internal/inquiry"
)

// InquiryMailer alerts the studio about a new general inquiry. It
// implements inquiry.Notifier.
type InquiryMailer struct {
	client *ResendClient
	from   string
	to     string
}

func NewInquiryMailer(client *ResendClient, from, to string) *InquiryMailer {
	if client == nil || strings.TrimSpace(to) == "" {
		return nil
	}
	return &InquiryMailer{
		client: client,
		from:   from,
		to:     to,
	}
}

func (m *InquiryMailer) SendInquiryAlert(ctx context.Context, inq inquiry.Inquiry) (string, error) {
	var buf bytes.Buffer
	if err := inquiryAlertTmpl.Execute(&buf, inq); err != nil {
		return "", fmt.Errorf("inquiry alert template: %w", err)
	}

	subject := "New Inquiry"
	if inq.Subject != "" {
		subject = fmt.Sprintf("New Inquiry: %s", inq.Subject)
	}

	return m.client.send(ctx, resendMessage{
		From:    m.from,
		To:      []string{m.to},
		ReplyTo: inq.Email,
		Subject: subject,
		HTML:    buf.String(),
	})
}

const inquiryAlertTemplate = `<!DOCTYPE html>
<html>
<body>
  <h3>New Website Inquiry</h3>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  {{if .Phone}}<p><strong>Phone:</strong> {{.Phone}}</p>{{end}}
  {{if .Subject}}<p><strong>Subject:</strong> {{.Subject}}</p>{{end}}
  <p><strong>Message:</strong><br/>{{.Message}}</p>
  <p><strong>ID:</strong> {{.ID}}</p>
</body>
</html>`

var inquiryAlertTmpl = template.Must(template.New("inquiry_alert").Parse(inquiryAlertTemplate))
