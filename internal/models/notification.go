package models

import "time"

// NotificationType classifies toast notifications.
type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
	NotificationInfo    NotificationType = "info"
)

// Notification is a short-lived message addressed to one session.
type Notification struct {
	ID        string           `json:"id"`
	SessionID string           `json:"-"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	CreatedAt time.Time        `json:"createdAt"`
	ExpiresAt time.Time        `json:"expiresAt"`
}
