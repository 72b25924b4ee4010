package ports

import "context"

// EmailSender delivers a single plain-text email.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// WebhookSender posts a JSON payload to the configured notification webhook.
type WebhookSender interface {
	SendWebhook(ctx context.Context, payload any) error
}

// Notification is one queued side-channel delivery. Exactly one of Email or
// Webhook is set.
type Notification struct {
	// Key shards deliveries so notifications for one recipient stay ordered.
	Key     string
	Email   *EmailNotification
	Webhook *WebhookNotification
}

// EmailNotification is the email branch of a Notification.
type EmailNotification struct {
	To      string
	Subject string
	Body    string
}

// WebhookNotification is the webhook branch of a Notification.
type WebhookNotification struct {
	Payload any
}

// NotificationDispatcher queues best-effort notifications. Enqueue never
// blocks the caller on delivery and delivery failures never surface.
type NotificationDispatcher interface {
	Enqueue(n Notification)
}
