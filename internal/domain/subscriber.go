package domain

import "time"

// Subscriber is a newsletter signup. Emails are unique.
type Subscriber struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
