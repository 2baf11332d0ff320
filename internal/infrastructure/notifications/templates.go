package notifications

import (
	"bytes"
	"html/template"
)

// Rendered email content handed to the notifier
type Message struct {
	Subject  string
	HTMLBody string
}

var otpTemplate = template.Must(template.New("otp").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 20px auto; padding: 20px;">
    <p>Hello,</p>
    <p>{{.Intro}}</p>
    <div style="padding: 20px; font-size: 32px; font-weight: bold; text-align: center; background-color: #f1f1f1; border-radius: 10px;">{{.OTP}}</div>
    <p>This code is valid for the next {{.Minutes}} minutes. If you did not request it, please ignore this email.</p>
    <p>Thank you!</p>
  </div>
</body>
</html>
`))

var inviteTemplate = template.Must(template.New("invite").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 20px auto; padding: 20px;">
    <p>Hello {{.FullName}},</p>
    <p>You have been invited to the dashboard as <strong>{{.Role}}</strong>.</p>
    <p>Your temporary password is:</p>
    <div style="padding: 20px; font-size: 24px; font-weight: bold; text-align: center; background-color: #f1f1f1; border-radius: 10px;">{{.Password}}</div>
    <p>Please sign in and change it right away.</p>
  </div>
</body>
</html>
`))

type otpData struct {
	Intro   string
	OTP     string
	Minutes int
}

// RegistrationOTPMessage renders the account-verification email
func RegistrationOTPMessage(otp string, minutes int) (*Message, error) {
	return renderOTP("Account Verification",
		"Your One-Time Password (OTP) for email verification is:", otp, minutes)
}

// OTPRequestMessage renders the email for re-sent and password-reset
// codes
func OTPRequestMessage(otp string, minutes int) (*Message, error) {
	return renderOTP("Your Secure OTP for Verification",
		"Your One-Time Password (OTP) is:", otp, minutes)
}

// DashboardInviteMessage renders the dashboard-invite email carrying
// the generated password
func DashboardInviteMessage(fullName, role, password string) (*Message, error) {
	var buf bytes.Buffer
	err := inviteTemplate.Execute(&buf, struct {
		FullName string
		Role     string
		Password string
	}{fullName, role, password})
	if err != nil {
		return nil, err
	}
	return &Message{Subject: "Invitation for " + role, HTMLBody: buf.String()}, nil
}

func renderOTP(subject, intro, otp string, minutes int) (*Message, error) {
	var buf bytes.Buffer
	if err := otpTemplate.Execute(&buf, otpData{Intro: intro, OTP: otp, Minutes: minutes}); err != nil {
		return nil, err
	}
	return &Message{Subject: subject, HTMLBody: buf.String()}, nil
}
