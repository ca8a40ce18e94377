package utils

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"gkb/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: GK Books <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// SendSubscriptionEmail confirms a new subscription
func SendSubscriptionEmail(email, name, planName string, endDate *time.Time) {
	validity := ""
	if endDate != nil {
		validity = `<p>Your plan is valid until <strong>` + endDate.Format("January 2, 2006") + `</strong>.</p>`
	}

	subject := "Your GK Books Subscription is Active!"
	body := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Subscription Active</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2563eb;">Subscription Active</h2>
        <p>Dear ` + name + `,</p>
        <p>Your <strong>` + planName + `</strong> is now active. Happy reading!</p>
        ` + validity + `
        <p>If you have any questions, please contact our support team.</p>
        <hr style="border: 1px solid #eee; margin: 20px 0;">
        <p style="font-size: 12px; color: #666;">This is an automated notification from GK Books.</p>
    </div>
</body>
</html>`

	go SendEmail([]string{email}, subject, body)
}

// SendSubscriptionExpiryReminder sends an email reminder before subscription expires
func SendSubscriptionExpiryReminder(email, name, planName string, endDate *time.Time) {
	expiryStr := "soon"
	if endDate != nil {
		expiryStr = endDate.Format("January 2, 2006")
	}

	subject := "Your GK Books Subscription is Expiring Soon!"
	body := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Subscription Expiring Soon</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2563eb;">Subscription Expiring Soon</h2>
        <p>Dear ` + name + `,</p>
        <p>Your subscription to <strong>` + planName + `</strong> is expiring on <strong>` + expiryStr + `</strong>.</p>
        <p>To keep access to your books and quizzes, please renew before it expires.</p>
        <p>If you have any questions, please contact our support team.</p>
        <hr style="border: 1px solid #eee; margin: 20px 0;">
        <p style="font-size: 12px; color: #666;">This is an automated reminder from GK Books.</p>
    </div>
</body>
</html>`

	go SendEmail([]string{email}, subject, body)
}

// SendSubscriptionExpiredEmail sends an email when subscription has expired
func SendSubscriptionExpiredEmail(email, name, planName string) {
	subject := "Your GK Books Subscription Has Expired"
	body := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Subscription Expired</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #dc2626;">Subscription Expired</h2>
        <p>Dear ` + name + `,</p>
        <p>Your subscription to <strong>` + planName + `</strong> has expired.</p>
        <p>Non-preview content is locked until you renew. We hope to see you back soon!</p>
        <hr style="border: 1px solid #eee; margin: 20px 0;">
        <p style="font-size: 12px; color: #666;">This is an automated notification from GK Books.</p>
    </div>
</body>
</html>`

	go SendEmail([]string{email}, subject, body)
}
