package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"net/url"
)

// Config holds SMTP configuration
type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	FrontendURL  string
}

// Service handles email sending
type Service struct {
	config Config
}

// NewService creates a new email service
func NewService(config Config) *Service {
	return &Service{config: config}
}

// IsConfigured reports whether SMTP credentials are present. Sending is
// skipped silently when they are not; local setups rarely have SMTP.
func (s *Service) IsConfigured() bool {
	return s.config.SMTPHost != "" && s.config.SMTPUsername != ""
}

// SendPasswordResetEmail sends a password reset email
func (s *Service) SendPasswordResetEmail(toEmail, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s&email=%s",
		s.config.FrontendURL,
		url.QueryEscape(token),
		url.QueryEscape(toEmail),
	)

	htmlContent, err := render(passwordResetTemplate, map[string]string{
		"Email":    toEmail,
		"ResetURL": resetURL,
		"AppName":  "Tyre Shoppe",
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	message := s.buildHTMLEmail(toEmail, "Reset Your Password - Tyre Shoppe", htmlContent)
	return s.sendEmail(toEmail, message)
}

// SendInvoiceFinalizedEmail notifies shop staff that an invoice was
// finalized and the order submitted upstream.
func (s *Service) SendInvoiceFinalizedEmail(toEmail, invoiceNo, customerName, grandTotal string) error {
	htmlContent, err := render(invoiceFinalizedTemplate, map[string]string{
		"InvoiceNo":    invoiceNo,
		"CustomerName": customerName,
		"GrandTotal":   grandTotal,
		"AppName":      "Tyre Shoppe",
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Invoice %s finalized - Tyre Shoppe", invoiceNo)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)
	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *Service) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *Service) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)
	return []byte(headers + htmlBody)
}

func render(tmplText string, data map[string]string) (string, error) {
	tmpl, err := template.New("email").Parse(tmplText)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const passwordResetTemplate = `
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Reset Your Password</title></head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="max-width: 600px; margin: 40px auto; background-color: #ffffff; border-radius: 8px; border-collapse: collapse;">
        <tr>
            <td style="background-color: #1a1a2e; padding: 30px; text-align: center;">
                <h1 style="color: #ffffff; margin: 0; font-size: 26px;">{{.AppName}}</h1>
            </td>
        </tr>
        <tr>
            <td style="padding: 30px;">
                <h2 style="color: #1a1a2e; margin: 0 0 20px 0;">Reset Your Password</h2>
                <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">
                    We received a request to reset the password for the account associated with <strong>{{.Email}}</strong>.
                </p>
                <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">
                    Click the button below to reset your password. This link will expire in <strong>1 hour</strong>.
                </p>
                <p style="text-align: center; margin: 30px 0;">
                    <a href="{{.ResetURL}}" style="background-color: #e63946; color: #ffffff; padding: 14px 32px; border-radius: 6px; text-decoration: none; font-size: 16px;">Reset Password</a>
                </p>
                <p style="color: #718096; font-size: 14px;">
                    If you did not request this, you can safely ignore this email.
                </p>
            </td>
        </tr>
    </table>
</body>
</html>`

const invoiceFinalizedTemplate = `
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Invoice Finalized</title></head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="max-width: 600px; margin: 40px auto; background-color: #ffffff; border-radius: 8px; border-collapse: collapse;">
        <tr>
            <td style="background-color: #1a1a2e; padding: 30px; text-align: center;">
                <h1 style="color: #ffffff; margin: 0; font-size: 26px;">{{.AppName}}</h1>
            </td>
        </tr>
        <tr>
            <td style="padding: 30px;">
                <h2 style="color: #1a1a2e; margin: 0 0 20px 0;">Invoice {{.InvoiceNo}} finalized</h2>
                <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">
                    The invoice for <strong>{{.CustomerName}}</strong> has been finalized and the
                    order was submitted to the warehouse.
                </p>
                <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">
                    Grand total: <strong>Rs. {{.GrandTotal}}</strong>
                </p>
            </td>
        </tr>
    </table>
</body>
</html>`
