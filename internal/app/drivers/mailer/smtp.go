package mailer

import (
	"net/smtp"
	"tabib-service/internal/app/config"
)

type SMTPClient struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
	Auth     smtp.Auth
}

func NewSMTPClient(driverConfig *config.DriverConfig) *SMTPClient {
	auth := smtp.PlainAuth("", driverConfig.SMTP.Username, driverConfig.SMTP.Password, driverConfig.SMTP.Host)
	return &SMTPClient{
		Host:     driverConfig.SMTP.Host,
		Port:     driverConfig.SMTP.Port,
		Username: driverConfig.SMTP.Username,
		Password: driverConfig.SMTP.Password,
		Sender:   driverConfig.SMTP.EmailSender,
		Auth:     auth,
	}
}
