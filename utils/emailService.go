package utils

import (
	"fmt"
	"html"
	"log"
	"net/http"
	"strings"

	"rplsite/config"

	"github.com/pkg/errors"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends one HTML email
type Mailer interface {
	Send(to []string, subject, htmlBody string) error
}

// Mail is the mailer used by every email trigger
var Mail Mailer = ConsoleMailer{}

// NewMailer returns a sendgrid mailer, or a console one when no API key is set
func NewMailer(apiKey, fromEmail, fromName string) Mailer {
	if apiKey == "" {
		return ConsoleMailer{}
	}
	return &SendgridMailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   sgmail.NewEmail(fromName, fromEmail),
	}
}

// SendgridMailer delivers mail through the sendgrid v3 API
type SendgridMailer struct {
	client *sendgrid.Client
	from   *sgmail.Email
}

func (m *SendgridMailer) Send(to []string, subject, htmlBody string) error {
	p := sgmail.NewPersonalization()
	p.Subject = subject
	for _, addr := range to {
		p.AddTos(sgmail.NewEmail("", addr))
	}

	msg := sgmail.NewV3Mail()
	msg.SetFrom(m.from)
	msg.AddPersonalizations(p)
	msg.AddContent(sgmail.NewContent("text/html", htmlBody))

	res, err := m.client.Send(msg)
	if err != nil {
		return errors.Wrap(err, "sendgrid")
	}
	if res.StatusCode >= http.StatusBadRequest {
		return errors.Errorf("sendgrid: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

// ConsoleMailer prints emails to the log instead of sending them
type ConsoleMailer struct{}

func (ConsoleMailer) Send(to []string, subject, htmlBody string) error {
	log.Printf("--- Email (console) ---\nTo: %v\nSubject: %s\n%s", to, subject, htmlBody)
	return nil
}

// SendEmail sends an email through the configured mailer
func SendEmail(to []string, subject string, htmlBody string) error {
	fmt.Printf("--- Sending Email ---\nTo: %v\nSubject: %s\n", to, subject)
	if err := Mail.Send(to, subject, htmlBody); err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	fmt.Println("--- Email Sent Successfully ---")
	return nil
}

// Field is one labelled row of a notification email
type Field struct {
	Label string
	Value string
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #0B3954; padding: 24px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 22px; }
			.content { padding: 32px 28px; color: #0B3954; line-height: 1.6; }
			.content th { text-align: left; padding: 6px 12px 6px 0; vertical-align: top; }
			.footer { background-color: #F6F6F6; padding: 16px; text-align: center; font-size: 12px; color: #666666; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>%s</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				Sent by the website back office.
			</div>
		</div>
	</body>
	</html>
	`, html.EscapeString(config.AppConfig.EmailSenderName), html.EscapeString(title), bodyContent)
}

func fieldTable(fields []Field) string {
	var b strings.Builder
	b.WriteString("<table>")
	for _, f := range fields {
		fmt.Fprintf(&b, "<tr><th>%s</th><td>%s</td></tr>", html.EscapeString(f.Label), html.EscapeString(f.Value))
	}
	b.WriteString("</table>")
	return b.String()
}

// --- Triggers ---

// SendLeadNotification tells the lead inbox about a new form submission.
// Nothing is sent when no inbox is configured.
func SendLeadNotification(kind string, fields []Field) {
	inbox := config.AppConfig.LeadInbox
	if inbox == "" {
		return
	}
	subject := "New " + kind
	if err := SendEmail([]string{inbox}, subject, getEmailTemplate(subject, fieldTable(fields))); err != nil {
		log.Printf("[LEADS] Failed to notify %s about %s: %v", inbox, kind, err)
	}
}

// SendLeadAcknowledgement thanks the visitor for getting in touch
func SendLeadAcknowledgement(email, name, kind string) {
	body := fmt.Sprintf(`<p>Hi %s,</p><p>Thanks for your %s. One of our advisers will contact you shortly.</p>`,
		html.EscapeString(name), html.EscapeString(strings.ToLower(kind)))
	if err := SendEmail([]string{email}, "We received your "+strings.ToLower(kind), getEmailTemplate("Thank you", body)); err != nil {
		log.Printf("[LEADS] Failed to acknowledge %s: %v", email, err)
	}
}
