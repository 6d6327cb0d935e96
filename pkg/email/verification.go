package email

import (
	"fmt"
	"html/template"
	"strings"
)

// TagVerificationCode is the delivery-stream tag applied to all
// verification-code messages.
const TagVerificationCode = "verification-code"

const verificationSubject = "Please verify your account"

var verificationTmpl = template.Must(template.New("verification_code").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #1a1a1a;">
  <p>Welcome {{.Name}}! Thank you for joining {{.Product}}!</p>
  <p>Please enter the following code to verify your account:</p>
  <p style="font-size: 28px; font-weight: bold; letter-spacing: 6px;">{{.Code}}</p>
  <p style="color: #6b6b6b;">The code expires in {{.TTLText}}. If you did not sign up, you can ignore this email.</p>
</body>
</html>
`))

// VerificationCodeEmail builds the message carrying a one-time
// verification code. ttlSeconds is informational only; the challenge
// store, not the email, decides when the code stops working.
func VerificationCodeEmail(product, name, to, code string, ttlSeconds int) (SendEmailParams, error) {
	var body strings.Builder
	err := verificationTmpl.Execute(&body, struct {
		Name    string
		Product string
		Code    string
		TTLText string
	}{
		Name:    name,
		Product: product,
		Code:    code,
		TTLText: ttlText(ttlSeconds),
	})
	if err != nil {
		return SendEmailParams{}, fmt.Errorf("%w: rendering body: %v", ErrInvalidParams, err)
	}

	return SendEmailParams{
		SendTo:   to,
		Subject:  verificationSubject,
		BodyHTML: body.String(),
		Tag:      TagVerificationCode,
	}, nil
}

func ttlText(seconds int) string {
	if seconds <= 0 {
		return "a short while"
	}
	if seconds < 120 {
		return fmt.Sprintf("%d seconds", seconds)
	}
	return fmt.Sprintf("%d minutes", seconds/60)
}
