package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"go-job/internals/config"
)

type EmailManager struct {
	Config  *config.SMTPConfig
	AppName string
	CodeExp int // verification code lifetime in minutes, for the email copy
}

func NewEmailManager(cfg *config.SMTPConfig, appName string, codeExp int) *EmailManager {
	return &EmailManager{
		Config:  cfg,
		AppName: appName,
		CodeExp: codeExp,
	}
}

// send is a private helper that handles the actual SMTP handshake and delivery
func (em *EmailManager) send(toEmail string, subject string, body string) error {
	smtpAddr := fmt.Sprintf("%s:%d", em.Config.Host, em.Config.Port)

	// Constructing headers according to RFC 822 standards
	// Note the use of \r\n (Carriage Return + Line Feed)
	headers := []string{
		fmt.Sprintf("From: %s", em.Config.User),
		fmt.Sprintf("To: %s", toEmail),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"", // This empty string creates the necessary blank line between headers and body
		body,
	}

	message := strings.Join(headers, "\r\n")

	auth := smtp.PlainAuth("", em.Config.User, em.Config.Password, em.Config.Host)

	return smtp.SendMail(smtpAddr, auth, em.Config.User, []string{toEmail}, []byte(message))
}

// SendVerificationCode delivers a registration verification code
func (em *EmailManager) SendVerificationCode(toEmail string, code string) error {
	subject := fmt.Sprintf("Your %s Verification Code", em.AppName)

	body := fmt.Sprintf(
		"Your verification code is: %s\n\n"+
			"This code will expire in %d minutes. If you did not request it, you can ignore this email.\n\n"+
			"Best regards,\nThe %s Team",
		code, em.CodeExp, em.AppName)

	return em.send(toEmail, subject, body)
}
