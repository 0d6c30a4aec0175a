package models

import "time"

type ChatMessage struct {
	ID            string    `json:"id"`
	AppointmentID string    `json:"appointment_id"`
	SenderID      string    `json:"sender_id"`
	SenderName    string    `json:"sender_name,omitempty"`
	Message       string    `json:"message"`
	CreatedAt     time.Time `json:"created_at"`
}

type ChatMessageRequest struct {
	AppointmentID string `json:"appointment_id"`
	Message       string `json:"message"`
}
