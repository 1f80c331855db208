package utils

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type EmailLine struct {
	Name     string
	Quantity int
	Price    string
}

type EmailData struct {
	Name    string
	Message string
	OrderID uint
	Items   []EmailLine
	Total   string
	LogoURL string
}

type Mailer interface {
	SendEmail(emailTo string, emailSubject string, data EmailData, templateName string) error
}

type SMTPConfig struct {
	Address  string
	From     string
	Password string
	Host     string
}

type SMTPMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func RenderEmail(data EmailData, templateName string) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return "", fmt.Errorf("template execution error: %w", err)
	}
	return body.String(), nil
}

func (m *SMTPMailer) SendEmail(emailTo string, emailSubject string, data EmailData, templateName string) error {
	body, err := RenderEmail(data, templateName)
	if err != nil {
		return err
	}

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		m.cfg.From,
		emailTo,
		emailSubject,
		body,
	)

	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)
	if err := smtp.SendMail(m.cfg.Address, auth, m.cfg.From, []string{emailTo}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// LogMailer renders the message and logs it instead of sending. Used when
// SMTP is not configured.
type LogMailer struct{}

func (LogMailer) SendEmail(emailTo string, emailSubject string, data EmailData, templateName string) error {
	if _, err := RenderEmail(data, templateName); err != nil {
		return err
	}
	log.Printf("mail: to=%s subject=%q template=%s (not sent, SMTP disabled)", emailTo, emailSubject, templateName)
	return nil
}
