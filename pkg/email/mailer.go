package email

import (
	"context"
	"fmt"
	"regexp"
)

// EmailSender is the mail transport contract consumed by the
// verification flow. Implementations may fail; callers surface the
// failure so the user can ask for a resend instead of retrying blindly,
// which would rotate an already-delivered code.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams represents a single outbound message.
type SendEmailParams struct {
	SendTo   string // Recipient address
	Subject  string
	BodyHTML string
	Tag      string // Optional delivery-stream tag
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks the minimum a transport needs to accept the message.
func (p SendEmailParams) Validate() error {
	if p.SendTo == "" || !emailRegex.MatchString(p.SendTo) {
		return fmt.Errorf("%w: invalid recipient %q", ErrInvalidParams, p.SendTo)
	}
	if p.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidParams)
	}
	if p.BodyHTML == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidParams)
	}
	return nil
}
