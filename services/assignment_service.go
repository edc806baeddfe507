package services

import (
	"fmt"
	"strconv"
	"time"

	"exam-data-api/models"
	"exam-data-api/store"
)

// AssignmentService owns CRUD and status transitions for assignments.
// Status updates are read-modify-write without a concurrent-merge
// guarantee: racing updates resolve last-write-wins on scalar fields.
type AssignmentService struct {
	store   store.Store
	audit   *AuditService
	notify  *NotificationService
	catalog *CatalogService
}

// NewAssignmentService wires the assignment workflow.
func NewAssignmentService(st store.Store, audit *AuditService, notify *NotificationService, catalog *CatalogService) *AssignmentService {
	return &AssignmentService{store: st, audit: audit, notify: notify, catalog: catalog}
}

// AssignWorkInput describes an admin assigning one exam to one or more
// interns.
type AssignWorkInput struct {
	MainExamID string
	SubExamID  *string
	InternIDs  []string
	DueDate    time.Time
	AssignedBy string
	Notes      string
}

// AssignWork creates one assignment per intern and returns the new ids.
// Notes are enriched with catalog names when the exam resolves.
func (s *AssignmentService) AssignWork(input AssignWorkInput) ([]string, error) {
	if len(input.InternIDs) == 0 {
		return nil, fmt.Errorf("at least one intern is required")
	}

	notes := models.AssignmentNotes{Text: input.Notes}
	if examID, err := strconv.Atoi(input.MainExamID); err == nil {
		if mainExam := s.catalog.MainExam(examID); mainExam != nil {
			notes.MainExamName = mainExam.Name
			if input.SubExamID != nil {
				if subID, err := strconv.Atoi(*input.SubExamID); err == nil {
					if subExam := mainExam.FindSubExam(subID); subExam != nil {
						notes.SubExamName = subExam.Name
						notes.SubExamCode = subExam.Code
					}
				}
			}
		}
	}

	now := time.Now()
	ids := make([]string, 0, len(input.InternIDs))
	for _, internID := range input.InternIDs {
		assignment := models.Assignment{
			MainExamID: input.MainExamID,
			SubExamID:  input.SubExamID,
			InternID:   internID,
			AssignedBy: input.AssignedBy,
			DueDate:    input.DueDate,
			Status:     models.AssignmentStatusAssigned,
			Notes:      notes,
			History: []models.HistoryEntry{{
				Action:    models.AssignmentStatusAssigned,
				ActorID:   input.AssignedBy,
				Timestamp: now,
				Details:   map[string]interface{}{"notes": input.Notes},
			}},
		}

		id, err := s.store.Insert(store.CollectionAssignments, assignment)
		if err != nil {
			return ids, fmt.Errorf("failed to create assignment for intern %s: %w", internID, err)
		}
		ids = append(ids, id)

		s.audit.LogBestEffort("assignment_created", input.AssignedBy, "assignment", id, map[string]interface{}{
			"internId":   internID,
			"mainExamId": input.MainExamID,
		})
		s.notifyIntern(internID, notes.MainExamName, input.DueDate)
	}
	return ids, nil
}

// notifyIntern emails the intern about a new assignment when their
// account resolves to an address. Best effort only.
func (s *AssignmentService) notifyIntern(internID, examName string, dueDate time.Time) {
	var user models.User
	if err := s.store.GetByID(store.CollectionUsers, internID, &user); err != nil {
		return
	}
	if examName == "" {
		examName = "a government exam"
	}
	s.notify.AssignmentCreated(user.Email, examName, dueDate)
}

// Assignment loads a single assignment.
func (s *AssignmentService) Assignment(id string) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := s.store.GetByID(store.CollectionAssignments, id, &assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// AssignmentsForIntern lists assignments for one intern. An empty intern
// id is an explicit wildcard meaning all assignments.
func (s *AssignmentService) AssignmentsForIntern(internID string) ([]models.Assignment, error) {
	var assignments []models.Assignment
	var err error
	if internID == "" {
		err = s.store.QueryAll(store.CollectionAssignments, &assignments)
	} else {
		err = s.store.QueryByField(store.CollectionAssignments, "internId", internID, &assignments)
	}
	if err != nil {
		return nil, err
	}
	if assignments == nil {
		assignments = []models.Assignment{}
	}
	return assignments, nil
}

// UpdateStatus transitions an assignment and appends the matching
// history entry. History is append-only; prior entries are never
// rewritten.
func (s *AssignmentService) UpdateStatus(id, status, actorID string, details map[string]interface{}) error {
	var assignment models.Assignment
	if err := s.store.GetByID(store.CollectionAssignments, id, &assignment); err != nil {
		return err
	}

	history := append(assignment.History, models.HistoryEntry{
		Action:    status,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Details:   details,
	})

	return s.store.UpdateFields(store.CollectionAssignments, id, map[string]interface{}{
		"status":  status,
		"history": history,
	})
}

// Delete removes an assignment entirely (hard delete). The audit entry
// is written before the delete.
func (s *AssignmentService) Delete(id, actorID string) error {
	var assignment models.Assignment
	if err := s.store.GetByID(store.CollectionAssignments, id, &assignment); err != nil {
		return err
	}

	s.audit.LogBestEffort("assignment_deleted", actorID, "assignment", id, map[string]interface{}{
		"internId":   assignment.InternID,
		"mainExamId": assignment.MainExamID,
		"status":     assignment.Status,
	})

	return s.store.DeleteByID(store.CollectionAssignments, id)
}
