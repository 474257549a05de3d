package models

import (
	"time"

	"github.com/google/uuid"
)

// FormSubmission represents a contact form message. Processed is a simple
// work-queue flag flipped by an admin; there is no retry or backoff.
type FormSubmission struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Message     string     `json:"message"`
	Processed   bool       `json:"processed"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
