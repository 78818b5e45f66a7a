package utils

import (
	"fmt"
	"net/smtp"
	"os"
)

// SendMail envía un correo por SMTP. Usado para notificar leads nuevos
// al equipo y dar la bienvenida a los usuarios registrados.
func SendMail(email string, message []byte) {
	from := os.Getenv("SMTP_FROM")
	password := os.Getenv("SMTP_PASSWORD")
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	if smtpHost == "" {
		smtpHost = "smtp.gmail.com"
	}
	if smtpPort == "" {
		smtpPort = "587"
	}

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, []string{email}, message)
	if err != nil {
		LogError(err, "Error al enviar el correo")
		return
	}

	LogSuccess("Correo enviado correctamente")
}

// NewLeadNotification construye el correo que avisa al equipo de un lead nuevo
func NewLeadNotification(name, email, subject string) []byte {
	return []byte(fmt.Sprintf(
		"Subject: Nuevo lead: %s\r\n\r\nNombre: %s\r\nEmail: %s\r\nAsunto: %s\r\n",
		subject, name, email, subject))
}

// WelcomeMail construye el correo de bienvenida tras el registro
func WelcomeMail(name string) []byte {
	return []byte(fmt.Sprintf(
		"Subject: Bienvenido a Colombia en España\r\n\r\nHola %s,\r\n\r\nGracias por registrarte en Colombia en España. Ya puedes acceder a tu cuenta.\r\n",
		name))
}
