package domain

import "time"

// PushSubscription is a browser Web Push endpoint. Each user has at most one.
type PushSubscription struct {
	ID        string
	UserID    string
	Endpoint  string
	P256dhKey string
	AuthKey   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Notification is the JSON payload delivered to the service worker.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	JobID string `json:"job_id,omitempty"`
}
