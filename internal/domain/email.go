package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// PendingPartyEmailData holds data for the moderation-notice email sent when a
// new party is submitted for review.
type PendingPartyEmailData struct {
	Title     string
	Host      string
	Day       string
	DoorsOpen string
	Address   string
	WeekendOf string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	// SendPendingPartyNotice notifies the moderation inbox that a party is
	// awaiting review.
	SendPendingPartyNotice(ctx context.Context, to string, data *PendingPartyEmailData) error
}
