package domain

import (
	"context"
	"strings"
)

// EmailMessage is a rendered e-mail for a single recipient.
type EmailMessage struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer sends rendered e-mails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailTemplateRenderer renders the template set of n.Kind into a message addressed to n.To.
type EmailTemplateRenderer interface {
	Render(n *Notification) (EmailMessage, error)
}

// NotificationKind selects the e-mail template of a notification.
type NotificationKind string

const (
	NotificationInvitation NotificationKind = "invitation"
	NotificationReminder   NotificationKind = "reminder"
	NotificationWelcome    NotificationKind = "welcome"
)

// Notification is one e-mail to one recipient. It is self-contained so it can travel through a queue.
type Notification struct {
	Kind          NotificationKind `json:"kind"`
	To            string           `json:"to"`
	RecipientName string           `json:"recipient_name"`
	HostName      string           `json:"host_name,omitempty"`
	PactID        string           `json:"pact_id,omitempty"`
	PactTitle     string           `json:"pact_title,omitempty"`
	Description   string           `json:"description,omitempty"`
	EventDate     string           `json:"event_date,omitempty"`
	EventTime     string           `json:"event_time,omitempty"`
	Location      string           `json:"location,omitempty"`
	RSVPDeadline  string           `json:"rsvp_deadline,omitempty"`
	// Link is filled in by the email service from the configured frontend URL.
	Link string `json:"-"`
}

const notificationDateLayout = "January 2, 2006"

// NewPactNotification builds a notification of kind about pact for guest.
func NewPactNotification(kind NotificationKind, pact *Pact, hostName string, guest *Guest) *Notification {
	n := &Notification{
		Kind:          kind,
		To:            guest.Email,
		RecipientName: guest.Name,
		HostName:      hostName,
		PactID:        pact.ID,
		PactTitle:     pact.Title,
		Description:   pact.Description,
		EventDate:     pact.EventDate.Format(notificationDateLayout),
		EventTime:     pact.EventTime,
		Location:      strings.TrimSpace(pact.Location),
	}
	if pact.RSVPDeadline != nil {
		n.RSVPDeadline = pact.RSVPDeadline.Format(notificationDateLayout)
	}
	return n
}

// EmailService renders and delivers notifications.
type EmailService interface {
	Deliver(ctx context.Context, n *Notification) error
}

// NotificationDispatcher hands notifications off for delivery without waiting for the result.
// A failure for one recipient never affects the others.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, notes ...*Notification)
}
