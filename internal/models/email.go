package models

import "time"

// Email represents a normalized parsed email message
type Email struct {
	ID       uint32
	From     string
	Subject  string
	BodyText string
	TraceID  string
}

// Ticket is the document persisted for every support-worthy email.
// Date is the capture time, not the message date.
type Ticket struct {
	Subject string    `bson:"subject"`
	Sender  string    `bson:"sender"`
	Date    time.Time `bson:"date"`
	Content string    `bson:"content"`
}
