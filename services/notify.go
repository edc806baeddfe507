package services

import (
	"fmt"
	"log"
	"time"

	"exam-data-api/config"
)

// NotificationService sends best-effort emails for workflow events.
// Delivery failures are logged and swallowed; they never fail the
// triggering operation.
type NotificationService struct {
	send func(to []string, subject, html string) error
}

// NewNotificationService returns a mailer-backed notification service.
func NewNotificationService() *NotificationService {
	return &NotificationService{send: config.SendMail}
}

// NewNotificationServiceWithSender allows tests to capture outgoing mail.
func NewNotificationServiceWithSender(send func(to []string, subject, html string) error) *NotificationService {
	return &NotificationService{send: send}
}

// AssignmentCreated notifies an intern about a newly assigned task.
func (s *NotificationService) AssignmentCreated(internEmail, examName string, dueDate time.Time) {
	if internEmail == "" {
		return
	}
	subject := "New exam data-entry assignment"
	html := fmt.Sprintf(
		"<p>You have been assigned a new exam data-entry task for <b>%s</b>.</p><p>Due date: %s</p>",
		examName, dueDate.Format("2 January 2006"),
	)
	if err := s.send([]string{internEmail}, subject, html); err != nil {
		log.Printf("Warning: failed to send assignment notification to %s: %v", internEmail, err)
	}
}

// SubmissionReviewed notifies an intern about a review decision.
func (s *NotificationService) SubmissionReviewed(internEmail, status, feedbackNotes string) {
	if internEmail == "" {
		return
	}
	subject := fmt.Sprintf("Your submission was %s", status)
	html := fmt.Sprintf("<p>Your exam form submission has been <b>%s</b>.</p>", status)
	if feedbackNotes != "" {
		html += fmt.Sprintf("<p>Feedback: %s</p>", feedbackNotes)
	}
	if err := s.send([]string{internEmail}, subject, html); err != nil {
		log.Printf("Warning: failed to send review notification to %s: %v", internEmail, err)
	}
}
